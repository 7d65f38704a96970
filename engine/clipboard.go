package engine

// Clipboard is the single unnamed register the engine yanks into and
// pastes from. A trailing '\n' in the stored text marks it linewise; this
// avoids a side-channel boolean and stays compatible with system-clipboard
// hosts that only store plain text.
type Clipboard interface {
	// Get returns the current register contents. ok is false if the
	// register has never been set (distinct from an empty string).
	Get() (text string, ok bool)
	// Set overwrites the register contents.
	Set(text string)
}
