package textbuf

import (
	"strings"

	"github.com/vimkeys/vimkeys/engine"
)

// Buffer is a grapheme-aware in-memory line buffer. It implements
// engine.TextOps in full and additionally exposes ApplyDelete/ApplyInsert
// so a test or a minimal embedding example can round-trip engine.Command
// values back into the buffer.
//
// Buffer is not safe for concurrent use; callers must serialize access the
// same way the engine requires HandleEvent calls to be serialized.
type Buffer struct {
	lines []string
}

// New builds a Buffer from text, splitting on '\n'. A trailing newline is
// treated as a line terminator, not a separate empty final line, so
// "a\nb\n" yields two lines ("a", "b"). An empty string yields a single
// empty line.
func New(text string) *Buffer {
	return &Buffer{lines: splitLines(text)}
}

func splitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// String renders the buffer back to a single string, lines joined by '\n'.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns a copy of the buffer's line slice.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *Buffer) lineStr(line int) string {
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

func (b *Buffer) isBlankLine(line int) bool {
	return strings.TrimSpace(b.lineStr(line)) == ""
}

// LineCount implements engine.TextOps.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLen implements engine.TextOps.
func (b *Buffer) LineLen(line int) int {
	if line < 0 || line >= len(b.lines) {
		return 0
	}
	return graphemeCount(b.lines[line])
}

// Clamp implements engine.TextOps using only LineCount/LineLen, the same
// way engine.DefaultClamp does, reimplemented here so Buffer has no
// compile-time dependency on that helper's exact shape.
func (b *Buffer) Clamp(pos engine.Position) engine.Position {
	if len(b.lines) == 0 {
		return engine.ZeroPosition
	}
	line := pos.Line
	if line >= len(b.lines) {
		line = len(b.lines) - 1
	}
	if line < 0 {
		line = 0
	}
	col := pos.Col
	if max := b.LineLen(line); col > max {
		col = max
	}
	if col < 0 {
		col = 0
	}
	return engine.Position{Line: line, Col: col}
}

// MoveLeft implements engine.TextOps: same-line, clamped at column 0.
func (b *Buffer) MoveLeft(pos engine.Position, count int) engine.Position {
	col := pos.Col - count
	if col < 0 {
		col = 0
	}
	return engine.Position{Line: pos.Line, Col: col}
}

// MoveRight implements engine.TextOps: same-line, clamped at line length
// (one past the last character, for append-mode callers).
func (b *Buffer) MoveRight(pos engine.Position, count int) engine.Position {
	max := b.LineLen(pos.Line)
	col := pos.Col + count
	if col > max {
		col = max
	}
	return engine.Position{Line: pos.Line, Col: col}
}

// MoveUp implements engine.TextOps.
func (b *Buffer) MoveUp(pos engine.Position, count int, preferredCol int) engine.Position {
	line := pos.Line - count
	if line < 0 {
		line = 0
	}
	return engine.Position{Line: line, Col: b.verticalCol(line, preferredCol)}
}

// MoveDown implements engine.TextOps.
func (b *Buffer) MoveDown(pos engine.Position, count int, preferredCol int) engine.Position {
	line := pos.Line + count
	if last := len(b.lines) - 1; line > last {
		line = last
	}
	if line < 0 {
		line = 0
	}
	return engine.Position{Line: line, Col: b.verticalCol(line, preferredCol)}
}

func (b *Buffer) verticalCol(line, preferredCol int) int {
	max := b.LineLen(line)
	if preferredCol < max {
		return preferredCol
	}
	return max
}

// LineStart implements engine.TextOps.
func (b *Buffer) LineStart(line int) engine.Position {
	return engine.Position{Line: line, Col: 0}
}

// LineEnd implements engine.TextOps: the last character's position, not
// one past it; empty lines return column 0.
func (b *Buffer) LineEnd(line int) engine.Position {
	n := b.LineLen(line)
	col := 0
	if n > 0 {
		col = n - 1
	}
	return engine.Position{Line: line, Col: col}
}

// NextWordStart implements engine.TextOps: scan forward grapheme by
// grapheme, crossing line boundaries, stopping at the count-th
// "not word -> word" transition.
func (b *Buffer) NextWordStart(pos engine.Position, count int) engine.Position {
	cur := pos
	found := 0
	for found < count {
		inWord := b.runeIsWord(cur)
		advanced := false
		for {
			if cur.Col+1 < b.LineLen(cur.Line) {
				cur.Col++
				isWord := b.runeIsWord(cur)
				if !inWord && isWord {
					advanced = true
					break
				}
				inWord = isWord
				continue
			}
			if cur.Line+1 < len(b.lines) {
				cur.Line++
				cur.Col = 0
				if b.LineLen(cur.Line) > 0 {
					isWord := b.runeIsWord(cur)
					if isWord {
						advanced = true
						break
					}
					inWord = isWord
					continue
				}
				inWord = false
				continue
			}
			return b.Clamp(cur)
		}
		if advanced {
			found++
		}
	}
	return b.Clamp(cur)
}

// PrevWordStart implements engine.TextOps: scan backward, stopping at the
// count-th word-start boundary.
func (b *Buffer) PrevWordStart(pos engine.Position, count int) engine.Position {
	cur := pos
	found := 0
	for found < count {
		if cur.Col > 0 {
			cur.Col--
		} else if cur.Line > 0 {
			cur.Line--
			cur.Col = lastColOrZero(b.LineLen(cur.Line))
		} else {
			return engine.ZeroPosition
		}

		for {
			if cur.Col < b.LineLen(cur.Line) && b.runeIsWord(cur) {
				if cur.Col == 0 {
					break
				}
				prev := engine.Position{Line: cur.Line, Col: cur.Col - 1}
				if !b.runeIsWord(prev) {
					break
				}
			}
			if cur.Col > 0 {
				cur.Col--
			} else if cur.Line > 0 {
				cur.Line--
				cur.Col = lastColOrZero(b.LineLen(cur.Line))
			} else {
				return engine.ZeroPosition
			}
		}
		found++
	}
	return b.Clamp(cur)
}

func lastColOrZero(lineLen int) int {
	if lineLen == 0 {
		return 0
	}
	return lineLen - 1
}

func (b *Buffer) runeIsWord(pos engine.Position) bool {
	r, ok := firstRuneAt(b.lineStr(pos.Line), pos.Col)
	if !ok {
		return false
	}
	return isWordRune(r)
}

// NextParagraphStart implements engine.TextOps.
func (b *Buffer) NextParagraphStart(pos engine.Position, count int) engine.Position {
	line := pos.Line
	found := 0
	for found < count && line < len(b.lines) {
		for line < len(b.lines) && !b.isBlankLine(line) {
			line++
		}
		for line < len(b.lines) && b.isBlankLine(line) {
			line++
		}
		if line < len(b.lines) {
			found++
		}
	}
	if line >= len(b.lines) {
		line = len(b.lines) - 1
		if line < 0 {
			line = 0
		}
	}
	return b.LineStart(line)
}

// PrevParagraphStart implements engine.TextOps.
func (b *Buffer) PrevParagraphStart(pos engine.Position, count int) engine.Position {
	line := pos.Line
	found := 0
	for found < count && line > 0 {
		line--
		for line > 0 && !b.isBlankLine(line) {
			line--
		}
		for line > 0 && b.isBlankLine(line) {
			line--
		}
		for line > 0 && !b.isBlankLine(line-1) {
			line--
		}
		found++
	}
	return b.LineStart(line)
}

// FindInLine implements engine.TextOps. The before flag is accepted but
// unused; it is advisory only, and the engine applies the f/t adjustment
// itself.
func (b *Buffer) FindInLine(pos engine.Position, ch rune, before bool, count int) (engine.Position, bool) {
	_ = before
	line := b.lineStr(pos.Line)
	n := graphemeCount(line)
	matches := 0
	for col := pos.Col + 1; col < n; col++ {
		r, ok := firstRuneAt(line, col)
		if ok && r == ch {
			matches++
			if matches == count {
				return engine.Position{Line: pos.Line, Col: col}, true
			}
		}
	}
	return engine.Position{}, false
}

// SliceToString implements engine.TextOps.
func (b *Buffer) SliceToString(r engine.Range) string {
	if r.Start == r.End {
		return ""
	}
	if r.Start.Line == r.End.Line {
		return sliceByGraphemes(b.lineStr(r.Start.Line), r.Start.Col, r.End.Col)
	}
	var sb strings.Builder
	sb.WriteString(sliceByGraphemes(b.lineStr(r.Start.Line), r.Start.Col, b.LineLen(r.Start.Line)))
	sb.WriteByte('\n')
	for line := r.Start.Line + 1; line < r.End.Line; line++ {
		sb.WriteString(b.lineStr(line))
		sb.WriteByte('\n')
	}
	if r.End.Line < len(b.lines) {
		sb.WriteString(sliceByGraphemes(b.lineStr(r.End.Line), 0, r.End.Col))
	}
	return sb.String()
}

// SearchForward implements engine.TextOps: scan from just after `from` to
// the end of the buffer, then, if wrap, from the start back to `from`.
func (b *Buffer) SearchForward(from engine.Position, needle string, wrap bool) (engine.Position, bool) {
	if needle == "" {
		return engine.Position{}, false
	}
	for line := from.Line; line < len(b.lines); line++ {
		start := 0
		if line == from.Line {
			start = from.Col + 1
		}
		if pos, ok := b.findInLineRange(line, start, graphemeCount(b.lineStr(line)), needle); ok {
			return pos, true
		}
	}
	if !wrap {
		return engine.Position{}, false
	}
	for line := 0; line <= from.Line; line++ {
		end := graphemeCount(b.lineStr(line))
		if line == from.Line {
			end = from.Col + 1
		}
		if pos, ok := b.findInLineRange(line, 0, end, needle); ok {
			return pos, true
		}
	}
	return engine.Position{}, false
}

// SearchBackward implements engine.TextOps: scan from just before `from`
// back to the start of the buffer, then, if wrap, from the end back to
// `from`.
func (b *Buffer) SearchBackward(from engine.Position, needle string, wrap bool) (engine.Position, bool) {
	if needle == "" {
		return engine.Position{}, false
	}
	for line := from.Line; line >= 0; line-- {
		end := graphemeCount(b.lineStr(line))
		if line == from.Line {
			end = from.Col
		}
		if pos, ok := b.rfindInLineRange(line, 0, end, needle); ok {
			return pos, true
		}
	}
	if !wrap {
		return engine.Position{}, false
	}
	for line := len(b.lines) - 1; line >= from.Line; line-- {
		start := 0
		if line == from.Line {
			start = from.Col
		}
		if pos, ok := b.rfindInLineRange(line, start, graphemeCount(b.lineStr(line)), needle); ok {
			return pos, true
		}
	}
	return engine.Position{}, false
}

// findInLineRange scans line's graphemes [start, end) forward for needle,
// comparing as a grapheme-aligned prefix match against the remainder of
// the line (so multi-grapheme needles that aren't grapheme-boundary-split
// themselves still match correctly against the line's own boundaries).
func (b *Buffer) findInLineRange(line, start, end int, needle string) (engine.Position, bool) {
	text := b.lineStr(line)
	n := graphemeCount(text)
	if end > n {
		end = n
	}
	for col := start; col < end; col++ {
		if strings.HasPrefix(sliceByGraphemes(text, col, n), needle) {
			return engine.Position{Line: line, Col: col}, true
		}
	}
	return engine.Position{}, false
}

func (b *Buffer) rfindInLineRange(line, start, end int, needle string) (engine.Position, bool) {
	text := b.lineStr(line)
	n := graphemeCount(text)
	if end > n {
		end = n
	}
	for col := end - 1; col >= start; col-- {
		if strings.HasPrefix(sliceByGraphemes(text, col, n), needle) {
			return engine.Position{Line: line, Col: col}, true
		}
	}
	return engine.Position{}, false
}
