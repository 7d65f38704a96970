package engine

import "strings"

// incCol returns pos shifted one grapheme to the right, purely
// arithmetically (no clamping). This is the "extend the end by one
// grapheme" adjustment applied to inclusive motion targets before the
// range is normalized.
func incCol(pos Position) Position {
	return Position{Line: pos.Line, Col: pos.Col + 1}
}

// ensureTrailingNewline appends '\n' if text doesn't already end with one,
// marking it linewise for the clipboard contract.
func ensureTrailingNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

// composeOperatorRange turns (cursor, motion target, flavor) into the Range
// an operator acts on.
func composeOperatorRange(cursor, target Position, flavor motionFlavor) Range {
	adjusted := target
	if flavor == flavorInclusive {
		adjusted = incCol(target)
	}
	r := normalizedRange(cursor, adjusted)
	if flavor == flavorLineGrained {
		r = Range{
			Start: Position{Line: r.Start.Line, Col: 0},
			End:   Position{Line: r.End.Line + 1, Col: 0},
		}
	}
	return r
}

// applyOperator executes op over r against ops/clip, returning the
// commands to emit and the resulting cursor (always r.Start). Delete
// additionally yanks the deleted text; Yank copies without deleting.
// linewise marks the clipboard write as linewise, appending '\n' if the
// sliced text doesn't already end with one.
func applyOperator(op operator, r Range, ops TextOps, clip Clipboard, linewise bool) (cursor Position, cmds []Command) {
	if r.Start == r.End {
		// Nothing to delete or yank.
		return r.Start, nil
	}
	text := ops.SliceToString(r)
	if linewise {
		text = ensureTrailingNewline(text)
	}
	clip.Set(text)
	if op == opDelete {
		cmds = append(cmds, deleteCmd(r))
	}
	return r.Start, cmds
}
