package engine

// handleNormal runs Normal-mode handling in a fixed order: pending-key
// continuation, digit accumulation, operator completion, then the key
// table.
func (e *Engine) handleNormal(ops TextOps, clip Clipboard, cursor Position, ev Event) (Position, []Command) {
	if e.pending != pendingNone {
		if cur, cmds, handled := e.continuePending(ops, clip, cursor, ev); handled {
			return cur, cmds
		}
		// "anything else -> pending is cleared, event re-enters step 2"
	}
	return e.handleNormalRest(ops, clip, cursor, ev)
}

// continuePending attempts to consume ev as the completion of the
// multi-key sequence named by e.pending. handled is false when ev doesn't
// complete the sequence, in which case e.pending has already been reset to
// pendingNone and the caller must re-dispatch ev from digit accumulation
// onward.
func (e *Engine) continuePending(ops TextOps, clip Clipboard, cursor Position, ev Event) (Position, []Command, bool) {
	switch e.pending {
	case pendingG:
		if isCharKey(ev, 'g') {
			hadCount := e.hasCount
			count := e.takeCount()
			e.pending = pendingNone
			e.setPreferredCol(0)
			mr := resolveGoToLineStart(ops, cursor, count, hadCount)
			if e.opPending != opNone {
				cur, cmds := e.finishOperatorMotion(ops, clip, cursor, mr)
				return cur, cmds, true
			}
			target := ops.Clamp(mr.target)
			return target, []Command{setCursorCmd(target)}, true
		}
		e.pending = pendingNone
		return Position{}, nil, false

	case pendingD:
		if isCharKey(ev, 'd') {
			n := e.takeCount()
			e.pending = pendingNone
			e.opPending = opNone
			r := lineSpanRange(cursor.Line, n)
			newCursor, cmds := applyOperator(opDelete, r, ops, clip, true)
			return ops.Clamp(newCursor), cmds, true
		}
		e.pending = pendingNone
		return Position{}, nil, false

	case pendingY:
		if isCharKey(ev, 'y') {
			n := e.takeCount()
			e.pending = pendingNone
			e.opPending = opNone
			r := lineSpanRange(cursor.Line, n)
			newCursor, cmds := applyOperator(opYank, r, ops, clip, true)
			return newCursor, cmds, true
		}
		e.pending = pendingNone
		return Position{}, nil, false

	case pendingFind:
		if ev.Kind == EventKey && ev.Key.Code == KeyChar {
			before := e.pendingFindBefore
			e.pending = pendingNone
			cur, cmds := e.finishFind(ops, clip, cursor, ev.Key.Char, before)
			return cur, cmds, true
		}
		e.pending = pendingNone
		return Position{}, nil, false
	}
	e.pending = pendingNone
	return Position{}, nil, false
}

// finishFind completes an f/t sequence now that the target character has
// arrived, composing with a pending operator when one is active.
func (e *Engine) finishFind(ops TextOps, clip Clipboard, cursor Position, ch rune, before bool) (Position, []Command) {
	e.clearPreferredCol()
	count := e.takeCount()
	match, ok := resolveFind(ops, cursor, ch, count)
	if !ok {
		// A find miss aborts any pending operator: cursor unchanged,
		// nothing emitted.
		e.opPending = opNone
		return cursor, nil
	}
	if e.opPending != opNone {
		mr := motionResult{target: match, flavor: findFlavor(before)}
		return e.finishOperatorMotion(ops, clip, cursor, mr)
	}
	target := findStandaloneTarget(match, before)
	return target, cursorMovedCmd(cursor, target)
}

func isCharKey(ev Event, ch rune) bool {
	return ev.Kind == EventKey && ev.Key.Code == KeyChar && ev.Key.Char == ch
}

// lineSpanRange builds the [ (line,0), (line+n,0) ) range used by dd/yy and
// by line-grained operator motions.
func lineSpanRange(line, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{Start: Position{Line: line, Col: 0}, End: Position{Line: line + n, Col: 0}}
}

// finishOperatorMotion composes op_pending with a resolved motion, applies
// it, and clears op_pending.
func (e *Engine) finishOperatorMotion(ops TextOps, clip Clipboard, cursor Position, mr motionResult) (Position, []Command) {
	op := e.opPending
	e.opPending = opNone
	r := composeOperatorRange(cursor, mr.target, mr.flavor)
	return applyOperator(op, r, ops, clip, mr.flavor == flavorLineGrained)
}

// handleNormalRest implements digit accumulation, operator completion, and
// the Normal-mode key table.
func (e *Engine) handleNormalRest(ops TextOps, clip Clipboard, cursor Position, ev Event) (Position, []Command) {
	if ev.Kind == EventKey && ev.Key.Code == KeyChar && isDigit(ev.Key.Char) {
		if handled, cur, cmds := e.handleDigit(ops, cursor, ev.Key.Char); handled {
			return cur, cmds
		}
		// '0' with op_pending set falls through to operator completion.
	}

	if e.opPending != opNone {
		if cur, cmds, handled := e.tryOperatorMotion(ops, clip, cursor, ev); handled {
			return cur, cmds
		}
		// Not a motion: abort the pending operator and fall through to
		// the key table for this same event.
		e.opPending = opNone
	}

	return e.handleNormalKey(ops, clip, cursor, ev)
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

// handleDigit handles a digit keystroke. handled is false only for the "0 with
// an operator pending" case, which must fall through to operator
// completion in the caller.
func (e *Engine) handleDigit(ops TextOps, cursor Position, ch rune) (handled bool, pos Position, cmds []Command) {
	if ch == '0' && !e.hasCount {
		if e.opPending == opNone {
			e.setPreferredCol(0)
			target := ops.LineStart(cursor.Line)
			return true, target, cursorMovedCmd(cursor, target)
		}
		return false, Position{}, nil
	}
	e.accumulateDigit(ch)
	return true, cursor, nil
}

// accumulateDigit folds ch into the count accumulator, saturating at
// maxCount.
func (e *Engine) accumulateDigit(ch rune) {
	digit := int(ch - '0')
	next := 0
	if e.hasCount {
		next = e.count
	}
	next = next*10 + digit
	if next > maxCount {
		next = maxCount
	}
	e.count = next
	e.hasCount = true
}

// tryOperatorMotion treats ev as a motion for the
// pending operator. handled is true whenever ev was consumed by this
// step, whether that completed the operator or merely advanced a further
// pending sequence (g/f/t).
func (e *Engine) tryOperatorMotion(ops TextOps, clip Clipboard, cursor Position, ev Event) (Position, []Command, bool) {
	if ev.Kind != EventKey {
		return Position{}, nil, false
	}
	k := ev.Key
	if mr, ok := resolveSimpleMotion(e, ops, cursor, k); ok {
		cur, cmds := e.finishOperatorMotion(ops, clip, cursor, mr)
		return cur, cmds, true
	}
	if k.Code == KeyChar {
		switch k.Char {
		case 'g':
			e.pending = pendingG
			return cursor, nil, true
		case 'f':
			e.pending = pendingFind
			e.pendingFindBefore = false
			return cursor, nil, true
		case 't':
			e.pending = pendingFind
			e.pendingFindBefore = true
			return cursor, nil, true
		}
	}
	return Position{}, nil, false
}

// handleNormalKey dispatches the Normal-mode key table.
func (e *Engine) handleNormalKey(ops TextOps, clip Clipboard, cursor Position, ev Event) (Position, []Command) {
	if ev.Kind == EventKey && ev.Key.Code == KeyEsc {
		e.resetTransient()
		e.clearPreferredCol()
		return cursor, nil
	}

	if ev.Kind != EventKey {
		e.pending = pendingNone
		return cursor, nil
	}
	k := ev.Key

	if mr, ok := resolveSimpleMotion(e, ops, cursor, k); ok {
		target := ops.Clamp(mr.target)
		return target, cursorMovedCmd(cursor, target)
	}

	if k.Code != KeyChar {
		e.pending = pendingNone
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
	case 'd':
		e.opPending = opDelete
		e.pending = pendingD
		return cursor, nil
	case 'y':
		e.opPending = opYank
		e.pending = pendingY
		return cursor, nil
	case 'x':
		return e.handleDeleteChar(ops, clip, cursor)
	case 'p':
		return e.handlePaste(ops, clip, cursor)
	case 'v':
		e.count, e.hasCount, e.pending = 0, false, pendingNone
		e.enterVisual(ModeVisual, cursor)
		sel := charwiseSelection(cursor, cursor)
		return cursor, []Command{setSelectionCmd(&sel)}
	case 'V':
		e.count, e.hasCount, e.pending = 0, false, pendingNone
		e.enterVisual(ModeVisualLine, cursor)
		sel := linewiseSelection(ops, cursor.Line, cursor.Line)
		return cursor, []Command{setSelectionCmd(&sel)}
	case 'i':
		e.count, e.hasCount, e.pending = 0, false, pendingNone
		e.mode = ModeInsert
		return cursor, nil
	case 'a':
		e.count, e.hasCount, e.pending = 0, false, pendingNone
		e.mode = ModeInsert
		target := ops.MoveRight(cursor, 1)
		return target, []Command{setCursorCmd(target)}
	case 'I':
		e.count, e.hasCount, e.pending = 0, false, pendingNone
		e.mode = ModeInsert
		e.setPreferredCol(0)
		target := ops.LineStart(cursor.Line)
		return target, cursorMovedCmd(cursor, target)
	case 'A':
		e.count, e.hasCount, e.pending = 0, false, pendingNone
		e.mode = ModeInsert
		target := ops.MoveRight(ops.LineEnd(cursor.Line), 1)
		return target, []Command{setCursorCmd(target)}
	case '/':
		e.mode = ModeSearchPrompt
		e.searchResumeCursor = cursor
		e.searchQuery = ""
		return cursor, nil
	case 'n':
		e.clearPreferredCol()
		return e.repeatSearch(ops, cursor, false)
	case 'N':
		e.clearPreferredCol()
		return e.repeatSearch(ops, cursor, true)
	}

	e.pending = pendingNone
	return cursor, nil
}

// handleDeleteChar implements the 'x' command: delete count graphemes at
// the cursor, a no-op if the cursor is already at line end.
func (e *Engine) handleDeleteChar(ops TextOps, clip Clipboard, cursor Position) (Position, []Command) {
	count := e.takeCount()
	end := ops.MoveRight(cursor, count)
	r := Range{Start: cursor, End: end}
	if r.Start == r.End {
		return cursor, nil
	}
	return applyOperator(opDelete, r, ops, clip, false)
}
