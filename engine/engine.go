package engine

// HandleEvent is the engine's single public entry point. It is pure with
// respect to everything except the Engine's own state and the Clipboard it
// is handed: no I/O, no goroutines, no allocation beyond the returned
// command slice and internal string buffers. Every path returns a cursor
// and a (possibly empty) command list; the engine has no fallible
// operations.
//
// Callers must serialize calls to HandleEvent on a given Engine; the
// engine itself performs no locking.
func (e *Engine) HandleEvent(ops TextOps, clip Clipboard, cursor Position, ev Event) (Position, []Command) {
	cursor = ops.Clamp(cursor)
	switch e.mode {
	case ModeInsert:
		return e.handleInsert(ops, clip, cursor, ev)
	case ModeVisual, ModeVisualLine:
		return e.handleVisual(ops, clip, cursor, ev)
	case ModeSearchPrompt:
		return e.handleSearchPrompt(ops, clip, cursor, ev)
	default:
		return e.handleNormal(ops, clip, cursor, ev)
	}
}
