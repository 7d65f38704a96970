package engine

// charwiseSelection computes the raw (unextended) charwise selection
// stored/displayed between anchor and cursor: [min, max). Extension by one
// grapheme to cover the character under the cursor happens separately,
// when 'd' or 'y' executes.
func charwiseSelection(anchor, cursor Position) Selection {
	return Selection{Range: normalizedRange(anchor, cursor), Kind: CharWise}
}

// linewiseSelection computes the displayed linewise selection between
// lowLine and highLine: (line_start(low), line_end(high)). Note the End
// endpoint is the inclusive last-character position, not one-past, which
// is distinct from the half-open range a Delete/Yank of the same span
// uses.
func linewiseSelection(ops TextOps, lowLine, highLine int) Selection {
	return Selection{
		Range: Range{Start: ops.LineStart(lowLine), End: ops.LineEnd(highLine)},
		Kind:  LineWise,
	}
}

// visualKind returns CharWise/LineWise for the current visual mode, or
// false if not in a visual mode.
func (e *Engine) visualKind() (SelectionKind, bool) {
	switch e.mode {
	case ModeVisual:
		return CharWise, true
	case ModeVisualLine:
		return LineWise, true
	}
	return 0, false
}

// handleVisual implements the Visual-mode dispatcher.
// Visual mode resolves the same motion set as Normal (including the
// multi-key gg/f/t sequences), recomputing the selection from (anchor,
// cursor) after every motion.
func (e *Engine) handleVisual(ops TextOps, clip Clipboard, cursor Position, ev Event) (Position, []Command) {
	if e.pending != pendingNone {
		if cur, cmds, handled := e.continueVisualPending(ops, cursor, ev); handled {
			return cur, cmds
		}
	}

	if ev.Kind == EventKey && ev.Key.Code == KeyChar && isDigit(ev.Key.Char) {
		// A bare '0' is the line-start motion, resolved below like any
		// other motion so the selection is recomputed; any other digit
		// (or '0' after one) accumulates into the count.
		if ev.Key.Char != '0' || e.hasCount {
			e.accumulateDigit(ev.Key.Char)
			return cursor, nil
		}
	}

	if ev.Kind == EventKey && ev.Key.Code == KeyEsc {
		e.exitVisual()
		return cursor, []Command{setSelectionCmd(nil)}
	}

	if ev.Kind != EventKey {
		return cursor, nil
	}
	k := ev.Key

	if mr, ok := resolveSimpleMotion(e, ops, cursor, k); ok {
		return e.applyVisualMotion(ops, cursor, mr.target)
	}

	if k.Code != KeyChar {
		return cursor, nil
	}

	switch k.Char {
	case 'g':
		e.pending = pendingG
		return cursor, nil
	case 'f':
		e.pending = pendingFind
		e.pendingFindBefore = false
		return cursor, nil
	case 't':
		e.pending = pendingFind
		e.pendingFindBefore = true
		return cursor, nil
	case 'v':
		if e.mode == ModeVisual {
			e.exitVisual()
			return cursor, []Command{setSelectionCmd(nil)}
		}
		e.mode = ModeVisual
		sel := charwiseSelection(e.visualAnchor, cursor)
		return cursor, []Command{setSelectionCmd(&sel)}
	case 'V':
		if e.mode == ModeVisualLine {
			e.exitVisual()
			return cursor, []Command{setSelectionCmd(nil)}
		}
		e.mode = ModeVisualLine
		low, high := lineSpan(e.visualAnchor, cursor)
		sel := linewiseSelection(ops, low, high)
		return cursor, []Command{setSelectionCmd(&sel)}
	case 'd':
		return e.visualDelete(ops, clip, cursor)
	case 'y':
		return e.visualYank(ops, clip, cursor)
	}
	return cursor, nil
}

// continueVisualPending resolves the gg/f/t continuations while in a
// visual mode: always as a plain motion (never composed with an
// operator; Visual's 'd'/'y' act on the whole current selection, not on
// a motion result).
func (e *Engine) continueVisualPending(ops TextOps, cursor Position, ev Event) (Position, []Command, bool) {
	switch e.pending {
	case pendingG:
		if isCharKey(ev, 'g') {
			hadCount := e.hasCount
			count := e.takeCount()
			e.pending = pendingNone
			e.setPreferredCol(0)
			mr := resolveGoToLineStart(ops, cursor, count, hadCount)
			cur, cmds := e.applyVisualMotion(ops, cursor, mr.target)
			return cur, cmds, true
		}
		e.pending = pendingNone
		return Position{}, nil, false
	case pendingFind:
		if ev.Kind == EventKey && ev.Key.Code == KeyChar {
			before := e.pendingFindBefore
			e.pending = pendingNone
			e.clearPreferredCol()
			count := e.takeCount()
			match, ok := resolveFind(ops, cursor, ev.Key.Char, count)
			if !ok {
				return cursor, nil, true
			}
			cur, cmds := e.applyVisualMotion(ops, cursor, findStandaloneTarget(match, before))
			return cur, cmds, true
		}
		e.pending = pendingNone
		return Position{}, nil, false
	}
	e.pending = pendingNone
	return Position{}, nil, false
}

// applyVisualMotion moves the cursor to target, clamps it, and re-derives
// the selection from (anchor, new cursor), emitting SetCursor then
// SetSelection, in that order.
func (e *Engine) applyVisualMotion(ops TextOps, cursor Position, target Position) (Position, []Command) {
	newCursor := ops.Clamp(target)
	kind, _ := e.visualKind()
	var sel Selection
	if kind == LineWise {
		low, high := lineSpan(e.visualAnchor, newCursor)
		sel = linewiseSelection(ops, low, high)
	} else {
		sel = charwiseSelection(e.visualAnchor, newCursor)
	}
	return newCursor, []Command{setCursorCmd(newCursor), setSelectionCmd(&sel)}
}

func lineSpan(anchor, cursor Position) (low, high int) {
	if anchor.Line <= cursor.Line {
		return anchor.Line, cursor.Line
	}
	return cursor.Line, anchor.Line
}

// visualDelete implements Visual 'd': delete the current selection,
// extending a CharWise selection's end by one grapheme to include the
// character under the cursor.
func (e *Engine) visualDelete(ops TextOps, clip Clipboard, cursor Position) (Position, []Command) {
	kind, _ := e.visualKind()
	var r Range
	var linewise bool
	if kind == LineWise {
		low, high := lineSpan(e.visualAnchor, cursor)
		r = lineSpanRange(low, high-low+1)
		linewise = true
	} else {
		raw := normalizedRange(e.visualAnchor, cursor)
		r = Range{Start: raw.Start, End: incCol(raw.End)}
	}
	newCursor, cmds := applyOperator(opDelete, r, ops, clip, linewise)
	e.exitVisual()
	cmds = append(cmds, setSelectionCmd(nil))
	return newCursor, cmds
}

// visualYank implements Visual 'y': copy the current selection to the
// clipboard without deleting. Like visualDelete, a CharWise selection's
// end is extended by one grapheme so the character under the cursor is
// included.
func (e *Engine) visualYank(ops TextOps, clip Clipboard, cursor Position) (Position, []Command) {
	kind, _ := e.visualKind()
	var r Range
	var linewise bool
	if kind == LineWise {
		low, high := lineSpan(e.visualAnchor, cursor)
		r = lineSpanRange(low, high-low+1)
		linewise = true
	} else {
		raw := normalizedRange(e.visualAnchor, cursor)
		r = Range{Start: raw.Start, End: incCol(raw.End)}
	}
	newCursor, cmds := applyOperator(opYank, r, ops, clip, linewise)
	e.exitVisual()
	cmds = append(cmds, setSelectionCmd(nil))
	return newCursor, cmds
}
