package engine

import "strings"

// handlePaste implements 'p'. An empty or absent register is a
// no-op. A trailing '\n' marks the register linewise; otherwise the paste
// is charwise, inserted one grapheme to the right of the cursor.
func (e *Engine) handlePaste(ops TextOps, clip Clipboard, cursor Position) (Position, []Command) {
	count := e.takeCount()
	text, ok := clip.Get()
	if !ok || text == "" {
		return cursor, nil
	}
	if strings.HasSuffix(text, "\n") {
		return e.pasteLinewise(cursor, text, count)
	}
	return e.pasteCharwise(ops, cursor, text, count)
}

// pasteLinewise inserts text count times: the first one line below the
// cursor, each later one advanced from the previous insertion by the
// number of newlines text contains.
func (e *Engine) pasteLinewise(cursor Position, text string, count int) (Position, []Command) {
	lines := strings.Count(text, "\n")
	target := Position{Line: cursor.Line + 1, Col: 0}
	cmds := make([]Command, 0, count)
	for i := 0; i < count; i++ {
		cmds = append(cmds, insertTextCmd(target, text))
		target = Position{Line: target.Line + lines, Col: 0}
	}
	final := Position{Line: cursor.Line + 1, Col: 0}
	return final, cmds
}

// pasteCharwise inserts text count times on the same line, each repetition
// starting grapheme_count(text) columns after the previous insertion.
func (e *Engine) pasteCharwise(ops TextOps, cursor Position, text string, count int) (Position, []Command) {
	width := graphemeCount(text)
	first := ops.MoveRight(cursor, 1)
	target := first
	cmds := make([]Command, 0, count)
	for i := 0; i < count; i++ {
		cmds = append(cmds, insertTextCmd(target, text))
		target = Position{Line: target.Line, Col: target.Col + width}
	}
	return first, cmds
}
