package engine

// handleInsert implements the Insert-mode dispatcher.
// Insert mode never accumulates a count or a pending sequence; every event
// is either text entry, Enter, Backspace, or the Esc that leaves the mode.
func (e *Engine) handleInsert(ops TextOps, clip Clipboard, cursor Position, ev Event) (Position, []Command) {
	switch ev.Kind {
	case EventKey:
		switch ev.Key.Code {
		case KeyEsc:
			e.mode = ModeNormal
			return cursor, nil
		case KeyEnter:
			target := Position{Line: cursor.Line + 1, Col: 0}
			return target, []Command{insertTextCmd(cursor, "\n")}
		case KeyBackspace:
			start := ops.MoveLeft(cursor, 1)
			if start == cursor {
				return cursor, nil
			}
			return start, []Command{deleteCmd(Range{Start: start, End: cursor})}
		}
		return cursor, nil
	case EventReceivedChar:
		text := string(ev.Char)
		cmds := []Command{insertTextCmd(cursor, text)}
		target := Position{Line: cursor.Line, Col: cursor.Col + 1}
		return target, cmds
	}
	return cursor, nil
}
