package engine

// TextOps is the read-only, grapheme-aware text-navigation contract the
// engine calls into. The engine never allocates or indexes into a buffer
// itself; every motion and every operator range is resolved by calling
// back into the host's implementation of this interface. All column
// arguments and returns are grapheme counts, and every count argument is
// already normalized to be >= 1.
type TextOps interface {
	// LineCount returns the total number of lines. An empty buffer may
	// return 0 or 1 (one empty line); the engine tolerates both.
	LineCount() int

	// LineLen returns the grapheme count of line, excluding any trailing
	// newline. Returns 0 if line >= LineCount().
	LineLen(line int) int

	// MoveLeft/MoveRight move within the same line by count graphemes,
	// clamping at the line bounds. May return pos unchanged.
	MoveLeft(pos Position, count int) Position
	MoveRight(pos Position, count int) Position

	// MoveUp/MoveDown move by count lines, clamping at buffer bounds.
	// The target column is min(preferredCol, target line length).
	MoveUp(pos Position, count int, preferredCol int) Position
	MoveDown(pos Position, count int, preferredCol int) Position

	// LineStart/LineEnd return the first/last character position of
	// line. LineEnd is the last character, not one past it; empty lines
	// return column 0 for both.
	LineStart(line int) Position
	LineEnd(line int) Position

	// NextWordStart/PrevWordStart move by count words, where a word is
	// a maximal run of alphanumerics and '_'. Whitespace and punctuation
	// runs are skipped; motion may cross line boundaries and clamps at
	// buffer bounds.
	NextWordStart(pos Position, count int) Position
	PrevWordStart(pos Position, count int) Position

	// NextParagraphStart/PrevParagraphStart move by count paragraphs,
	// where a paragraph boundary is a blank (trimmed-empty) line. The
	// result is the first non-blank line after the blank run, or the
	// corresponding buffer bound.
	NextParagraphStart(pos Position, count int) Position
	PrevParagraphStart(pos Position, count int) Position

	// FindInLine searches strictly after pos.Col on pos.Line (no
	// wrapping across lines) for the count-th grapheme whose first rune
	// equals ch. ok is false on a miss. before is advisory; the engine
	// performs the "t" one-grapheme-back adjustment itself.
	FindInLine(pos Position, ch rune, before bool, count int) (result Position, ok bool)

	// SliceToString returns the text within r, grapheme-aligned,
	// including any line breaks crossed.
	SliceToString(r Range) string

	// SearchForward/SearchBackward look for needle strictly after/before
	// from. If wrap is true and no match is found in the primary
	// direction, the other segment of the buffer is searched too. ok is
	// false on a total miss.
	SearchForward(from Position, needle string, wrap bool) (result Position, ok bool)
	SearchBackward(from Position, needle string, wrap bool) (result Position, ok bool)

	// Clamp pulls pos back within buffer bounds:
	// line <- min(line, LineCount()-1), col <- min(col, LineLen(line)).
	Clamp(pos Position) Position
}

// DefaultClamp implements the Clamp contract using only LineCount and
// LineLen, for TextOps implementations that want the engine's standard
// clamping behavior without writing it themselves.
func DefaultClamp(ops TextOps, pos Position) Position {
	lineCount := ops.LineCount()
	if lineCount <= 0 {
		return ZeroPosition
	}
	line := pos.Line
	if line >= lineCount {
		line = lineCount - 1
	}
	if line < 0 {
		line = 0
	}
	col := pos.Col
	if maxCol := ops.LineLen(line); col > maxCol {
		col = maxCol
	}
	if col < 0 {
		col = 0
	}
	return Position{Line: line, Col: col}
}
