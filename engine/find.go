package engine

// resolveFind locates the raw match for an f/t keystroke: the count-th
// occurrence of ch strictly after cursor on the current line. It never
// wraps across lines. The returned Position is always the raw match (not
// yet adjusted for 't's "one grapheme before" standalone-motion rule, nor
// for an operator's inclusive/exclusive extension).
func resolveFind(ops TextOps, cursor Position, ch rune, count int) (match Position, ok bool) {
	return ops.FindInLine(cursor, ch, false, count)
}

// findFlavor reports the motionFlavor an operator should use for a find:
// 'f' is inclusive (range extends one grapheme past the match), 't' is
// exclusive (range stops exactly at the match).
func findFlavor(before bool) motionFlavor {
	if before {
		return flavorExclusive
	}
	return flavorInclusive
}

// findStandaloneTarget resolves where a bare (no operator) f/t motion
// leaves the cursor: 'f' lands on the match itself, 't' lands one
// grapheme before it.
func findStandaloneTarget(match Position, before bool) Position {
	if before {
		return Position{Line: match.Line, Col: match.Col - 1}
	}
	return match
}
