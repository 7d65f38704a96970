package engine

// KeyCode is a platform-neutral tagged union of the key codes the engine
// understands. Hosts normalize their own terminal/GUI key events into this
// shape before calling HandleEvent.
type KeyCode int

const (
	// KeyChar carries a literal character in Event.Char. Capital letters
	// arrive as KeyChar with ModShift set, not as a distinct code.
	KeyChar KeyCode = iota
	// KeyEsc is the Escape key.
	KeyEsc
	// KeyEnter is the Enter/Return key.
	KeyEnter
	// KeyBackspace is the Backspace key.
	KeyBackspace
)

// Mods is a bitset of modifier keys held during a Key event.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether m includes all bits of other.
func (m Mods) Has(other Mods) bool {
	return m&other == other
}

// Key is a single key-press event: a code plus held modifiers.
type Key struct {
	Code KeyCode
	Char rune // valid only when Code == KeyChar
	Mods Mods
}

// EventKind distinguishes a command Key from composed text input.
type EventKind int

const (
	// EventKey is a command keystroke (see Key).
	EventKey EventKind = iota
	// EventReceivedChar is post-IME, post-composition text input. It is
	// routed separately from EventKey so hosts can deliver IME-composed
	// text without it colliding with command keys.
	EventReceivedChar
)

// Event is a single input event delivered to HandleEvent. Exactly one of
// Key or Char is meaningful, selected by Kind.
type Event struct {
	Kind EventKind
	Key  Key  // valid when Kind == EventKey
	Char rune // valid when Kind == EventReceivedChar
}

// KeyEvent wraps a Key as an Event.
func KeyEvent(k Key) Event {
	return Event{Kind: EventKey, Key: k}
}

// CharEvent wraps a received character as an Event.
func CharEvent(ch rune) Event {
	return Event{Kind: EventReceivedChar, Char: ch}
}

// charKey builds the common case of an unmodified (or shift-only) character
// key, e.g. charKey('d') or charKey('D').
func charKey(ch rune) Key {
	return Key{Code: KeyChar, Char: ch}
}
