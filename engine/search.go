package engine

import "github.com/rivo/uniseg"

// handleSearchPrompt implements the SearchPrompt-mode dispatcher. The
// prompt is pure engine state: search_query is
// never handed to TextOps until Enter commits it, so popping the last
// grapheme on Backspace is done in-process with uniseg rather than via the
// host.
func (e *Engine) handleSearchPrompt(ops TextOps, clip Clipboard, cursor Position, ev Event) (Position, []Command) {
	switch ev.Kind {
	case EventReceivedChar:
		e.searchQuery += string(ev.Char)
		return cursor, nil
	case EventKey:
		switch ev.Key.Code {
		case KeyBackspace:
			e.searchQuery = dropLastGrapheme(e.searchQuery)
			return cursor, nil
		case KeyEnter:
			return e.commitSearch(ops, cursor)
		case KeyEsc:
			resume := e.searchResumeCursor
			e.mode = ModeNormal
			e.searchQuery = ""
			return resume, nil
		}
	}
	return cursor, nil
}

// commitSearch implements Enter in SearchPrompt: a non-empty query searches
// forward with wrap; a miss leaves the cursor and last_search untouched. The
// mode always returns to Normal and the query buffer is always cleared.
func (e *Engine) commitSearch(ops TextOps, cursor Position) (Position, []Command) {
	query := e.searchQuery
	e.mode = ModeNormal
	e.searchQuery = ""
	if query == "" {
		return cursor, nil
	}
	match, ok := ops.SearchForward(cursor, query, true)
	if !ok {
		return cursor, nil
	}
	e.last = lastSearch{needle: query, forward: true}
	e.hasLastSearch = true
	target := ops.Clamp(match)
	return target, []Command{setCursorCmd(target)}
}

// repeatSearch implements 'n'/'N': repeat last_search in its recorded
// direction, or the reverse when reversed is true. A miss leaves the cursor
// and last_search unchanged; last_search itself is never mutated here.
func (e *Engine) repeatSearch(ops TextOps, cursor Position, reversed bool) (Position, []Command) {
	if !e.hasLastSearch {
		return cursor, nil
	}
	forward := e.last.forward
	if reversed {
		forward = !forward
	}
	var match Position
	var ok bool
	if forward {
		match, ok = ops.SearchForward(cursor, e.last.needle, true)
	} else {
		match, ok = ops.SearchBackward(cursor, e.last.needle, true)
	}
	if !ok {
		return cursor, nil
	}
	target := ops.Clamp(match)
	return target, []Command{setCursorCmd(target)}
}

// graphemeCount returns the number of grapheme clusters in s, used by paste
// to advance repeated charwise pastes by whole clusters rather than
// runes or bytes.
func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// dropLastGrapheme removes the last grapheme cluster from s, returning s
// unchanged if it is already empty.
func dropLastGrapheme(s string) string {
	if s == "" {
		return s
	}
	count := uniseg.GraphemeClusterCount(s)
	if count <= 1 {
		return ""
	}
	state := -1
	rest := s
	var keep int
	for i := 0; i < count-1; i++ {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		keep += len(cluster)
		rest = next
		state = newState
	}
	return s[:keep]
}
