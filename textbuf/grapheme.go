// Package textbuf provides a grapheme-aware in-memory line buffer that
// implements engine.TextOps. It is a reference realization of the
// capability contract the engine consumes.
//
// textbuf is a plain library package: it owns no rendering, no event loop,
// and no file I/O. It exists so the engine can be exercised end to end
// without a terminal host.
package textbuf

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// graphemeCount returns the number of grapheme clusters in s.
func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// graphemeToByte converts a grapheme index into a byte offset into s,
// clamping to [0, len(s)].
func graphemeToByte(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	i := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		i++
		if i == idx {
			return len(s) - len(next)
		}
		_ = cluster
		rest = next
		state = newState
	}
	return len(s)
}

// sliceByGraphemes returns the substring of s spanning grapheme indices
// [start, end), clamped to s's bounds.
func sliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}
	startByte := graphemeToByte(s, start)
	endByte := graphemeToByte(s, end)
	if startByte >= len(s) {
		return ""
	}
	if endByte > len(s) {
		endByte = len(s)
	}
	return s[startByte:endByte]
}

// firstRuneAt returns the first rune of the grapheme cluster at index idx,
// and ok=false if idx is out of bounds.
func firstRuneAt(s string, idx int) (r rune, ok bool) {
	i := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		if i == idx {
			for _, rn := range cluster {
				return rn, true
			}
			return 0, false
		}
		i++
		rest = next
		state = newState
	}
	return 0, false
}

// isWordRune reports whether r is part of a "word" grapheme per the
// engine's word-motion contract: alphanumeric or underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
