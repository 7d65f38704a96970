package engine

// motionFlavor tags how an operator should extend a motion's raw target
// into a Range.
type motionFlavor int

const (
	// flavorExclusive motions (h/l, 0, w/b, gg/G with no line change)
	// never extend the end of an operator range.
	flavorExclusive motionFlavor = iota
	// flavorInclusive motions ($ and f<ch>) extend the end by one
	// grapheme when composed with an operator.
	flavorInclusive
	// flavorLineGrained motions (j/k, gg/G when the target line differs,
	// {/}) additionally round the operator range out to whole lines.
	flavorLineGrained
)

// motionResult is the outcome of resolving a single motion keystroke: the
// new cursor target and how an operator should treat it.
type motionResult struct {
	target Position
	flavor motionFlavor
}

// resolveSimpleMotion resolves every motion that completes in a single Key
// event (i.e. everything except gg and f/t, which need a second key and
// are handled by the pending-key continuation in normal.go). ok is false
// for keys that are not a motion at all.
func resolveSimpleMotion(e *Engine, ops TextOps, cursor Position, k Key) (res motionResult, ok bool) {
	if k.Code != KeyChar {
		return motionResult{}, false
	}
	switch k.Char {
	case 'h', 'l', 'j', 'k', '0', '$', 'w', 'b', '{', '}', 'G':
	default:
		// Not a motion: leave the accumulated count (and preferred
		// column) untouched for whatever the key table does with this
		// key - 2dd must still see its 2.
		return motionResult{}, false
	}
	hadCount := e.hasCount
	count := e.takeCount()
	switch k.Char {
	case 'h':
		e.clearPreferredCol()
		return motionResult{target: ops.MoveLeft(cursor, count), flavor: flavorExclusive}, true
	case 'l':
		e.clearPreferredCol()
		return motionResult{target: ops.MoveRight(cursor, count), flavor: flavorExclusive}, true
	case 'j':
		target := ops.MoveDown(cursor, count, e.verticalPreferredCol(cursor))
		e.setPreferredCol(target.Col)
		return motionResult{target: target, flavor: flavorLineGrained}, true
	case 'k':
		target := ops.MoveUp(cursor, count, e.verticalPreferredCol(cursor))
		e.setPreferredCol(target.Col)
		return motionResult{target: target, flavor: flavorLineGrained}, true
	case '0':
		e.setPreferredCol(0)
		return motionResult{target: ops.LineStart(cursor.Line), flavor: flavorExclusive}, true
	case '$':
		e.clearPreferredCol()
		flavor := flavorInclusive
		if ops.LineLen(cursor.Line) == 0 {
			// Nothing under the line-end position to include: d$ on an
			// empty line must not reach past the line.
			flavor = flavorExclusive
		}
		return motionResult{target: ops.LineEnd(cursor.Line), flavor: flavor}, true
	case 'w':
		e.clearPreferredCol()
		return motionResult{target: ops.NextWordStart(cursor, count), flavor: flavorExclusive}, true
	case 'b':
		e.clearPreferredCol()
		return motionResult{target: ops.PrevWordStart(cursor, count), flavor: flavorExclusive}, true
	case '{':
		e.setPreferredCol(0)
		return motionResult{target: ops.PrevParagraphStart(cursor, count), flavor: flavorLineGrained}, true
	case '}':
		e.setPreferredCol(0)
		return motionResult{target: ops.NextParagraphStart(cursor, count), flavor: flavorLineGrained}, true
	case 'G':
		e.setPreferredCol(0)
		target := goToLine(ops, lastLineOr(ops, count, hadCount))
		return motionResult{target: target, flavor: lineFlavorIfDiffers(cursor, target)}, true
	}
	return motionResult{}, false
}

// resolveGoToLineStart resolves 'gg': the completion of the G pending-key
// sequence. Like lastLineOr, a count present means line count-1; with no
// count, gg goes to line 0 (where G goes to the last line). It takes
// whatever count was accumulated before 'g' started the sequence.
func resolveGoToLineStart(ops TextOps, cursor Position, count int, hadCount bool) motionResult {
	line := 0
	if hadCount {
		line = count - 1
	}
	target := goToLine(ops, line)
	return motionResult{target: target, flavor: lineFlavorIfDiffers(cursor, target)}
}

// lineFlavorIfDiffers reports flavorLineGrained only when target lands on a
// different line than cursor; a gg/G that stays on its own line degenerates
// to an exclusive motion.
func lineFlavorIfDiffers(cursor, target Position) motionFlavor {
	if target.Line != cursor.Line {
		return flavorLineGrained
	}
	return flavorExclusive
}

// verticalPreferredCol returns the sticky column to pass to MoveUp/MoveDown,
// falling back to the cursor's own column when no preferred column is set.
func (e *Engine) verticalPreferredCol(cursor Position) int {
	if e.hasPreferredCol {
		return e.preferredCol
	}
	return cursor.Col
}

// goToLine returns line_start for the given (clamped) target line.
func goToLine(ops TextOps, line int) Position {
	return ops.LineStart(clampLine(ops, line))
}

func clampLine(ops TextOps, line int) int {
	n := ops.LineCount()
	if n <= 0 {
		return 0
	}
	if line >= n {
		return n - 1
	}
	if line < 0 {
		return 0
	}
	return line
}

// lastLineOr resolves 'G's target line: explicit count means "go to line
// count-1" (1-based count to 0-based line), absent count means the last
// line of the buffer.
func lastLineOr(ops TextOps, count int, hadCount bool) int {
	if hadCount {
		return count - 1
	}
	return ops.LineCount() - 1
}
