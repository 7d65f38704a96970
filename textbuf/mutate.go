package textbuf

import "github.com/vimkeys/vimkeys/engine"

// ApplyInsert inserts text at a grapheme position, splitting it on '\n'
// into new lines as needed. It is the mutator side of engine.CmdInsertText.
// The engine never calls it directly; a host (or, here, a test) applies
// the command the engine returned.
func (b *Buffer) ApplyInsert(at engine.Position, text string) {
	if text == "" {
		return
	}
	whole := b.String()
	offset := b.byteOffset(at)
	b.lines = splitLines(whole[:offset] + text + whole[offset:])
}

// ApplyDelete removes the text in [r.Start, r.End), merging lines when the
// range crosses a line boundary. It is the mutator side of engine.CmdDelete.
func (b *Buffer) ApplyDelete(r engine.Range) {
	if r.Start == r.End {
		return
	}
	whole := b.String()
	start := b.byteOffset(r.Start)
	end := b.byteOffset(r.End)
	b.lines = splitLines(whole[:start] + whole[end:])
}

// byteOffset converts a grapheme Position into a byte offset into
// b.String(), the buffer's lines joined with '\n'. pos.Line == len(lines)
// (the "one past the last line" endpoint used by linewise ranges) maps to
// the end of the text.
func (b *Buffer) byteOffset(pos engine.Position) int {
	offset := 0
	for i := 0; i < pos.Line && i < len(b.lines); i++ {
		offset += len(b.lines[i]) + 1 // +1 for the '\n' joiner
	}
	if pos.Line < len(b.lines) {
		offset += graphemeToByte(b.lines[pos.Line], pos.Col)
	} else if pos.Line > 0 {
		// One past the last line: the join has one fewer separator than
		// lines iterated above implies.
		offset -= 1
	}
	return offset
}
