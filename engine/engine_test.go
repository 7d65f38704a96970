package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vimkeys/vimkeys/clipreg"
	"github.com/vimkeys/vimkeys/engine"
	"github.com/vimkeys/vimkeys/textbuf"
)

// run feeds a sequence of normal-mode character keys (plus a few named
// specials) through HandleEvent, returning the final cursor and the
// commands returned by the last event (empty if that event emitted none).
func run(t *testing.T, e *engine.Engine, buf *textbuf.Buffer, clip engine.Clipboard, cursor engine.Position, keys ...string) (engine.Position, []engine.Command) {
	t.Helper()
	var cmds []engine.Command
	for _, k := range keys {
		ev := eventFor(k)
		cursor, cmds = e.HandleEvent(buf, clip, cursor, ev)
	}
	return cursor, cmds
}

func eventFor(k string) engine.Event {
	switch k {
	case "<Esc>":
		return engine.KeyEvent(engine.Key{Code: engine.KeyEsc})
	case "<Enter>":
		return engine.KeyEvent(engine.Key{Code: engine.KeyEnter})
	case "<BS>":
		return engine.KeyEvent(engine.Key{Code: engine.KeyBackspace})
	default:
		r := []rune(k)[0]
		return engine.KeyEvent(engine.Key{Code: engine.KeyChar, Char: r})
	}
}

func charEvents(s string) []engine.Event {
	evs := make([]engine.Event, 0, len(s))
	for _, r := range s {
		evs = append(evs, engine.CharEvent(r))
	}
	return evs
}

// Linewise delete with a count: 2dd removes two whole lines.
func TestScenario_LinewiseDeleteWithCount(t *testing.T) {
	buf := textbuf.New("a\nb\nc\nd\n")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 1, Col: 0}, "2", "d", "d")

	require.Equal(t, engine.Position{Line: 1, Col: 0}, cursor)
	require.Len(t, cmds, 1)
	require.Equal(t, engine.CmdDelete, cmds[0].Kind)
	require.Equal(t, engine.Range{
		Start: engine.Position{Line: 1, Col: 0},
		End:   engine.Position{Line: 3, Col: 0},
	}, cmds[0].Range)
}

// Operator + inclusive motion: d$ deletes through the last character.
func TestScenario_DeleteToLineEnd(t *testing.T) {
	buf := textbuf.New("hello world")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	_, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "d", "$")

	require.Len(t, cmds, 1)
	require.Equal(t, engine.Range{
		Start: engine.Position{Line: 0, Col: 0},
		End:   engine.Position{Line: 0, Col: 11},
	}, cmds[0].Range)
}

// Visual charwise delete includes the character under the cursor.
func TestScenario_VisualCharwiseDelete(t *testing.T) {
	buf := textbuf.New("hello world")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "v", "l", "l", "l", "l", "d")

	require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
	require.Len(t, cmds, 2)
	require.Equal(t, engine.CmdDelete, cmds[0].Kind)
	require.Equal(t, engine.Range{
		Start: engine.Position{Line: 0, Col: 0},
		End:   engine.Position{Line: 0, Col: 5},
	}, cmds[0].Range)
	require.Equal(t, engine.CmdSetSelection, cmds[1].Kind)
	require.Nil(t, cmds[1].Selection)
}

// yy then p duplicates the current line below.
func TestScenario_YankAndPasteLine(t *testing.T) {
	buf := textbuf.New("line one\nline two\n")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "y", "y")
	require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
	require.Empty(t, cmds)
	text, ok := clip.Get()
	require.True(t, ok)
	require.Equal(t, "line one\n", text)

	cursor, cmds = run(t, e, buf, clip, cursor, "p")
	require.Equal(t, engine.Position{Line: 1, Col: 0}, cursor)
	require.Len(t, cmds, 1)
	require.Equal(t, engine.CmdInsertText, cmds[0].Kind)
	require.Equal(t, engine.Position{Line: 1, Col: 0}, cmds[0].At)
	require.Equal(t, "line one\n", cmds[0].Text)
}

// Committing a search moves to the next match, wrapping if needed.
func TestScenario_SearchWithWrap(t *testing.T) {
	buf := textbuf.New("first\nsecond foo\nthird line")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor := engine.Position{Line: 1, Col: 8}
	var cmds []engine.Command
	cursor, cmds = e.HandleEvent(buf, clip, cursor, eventFor("/"))
	require.Empty(t, cmds)
	for _, ev := range charEvents("line") {
		cursor, cmds = e.HandleEvent(buf, clip, cursor, ev)
		require.Empty(t, cmds)
	}
	cursor, cmds = e.HandleEvent(buf, clip, cursor, eventFor("<Enter>"))
	require.Equal(t, engine.Position{Line: 2, Col: 6}, cursor)
	require.Len(t, cmds, 1)
	require.Equal(t, engine.CmdSetCursor, cmds[0].Kind)
}

// A count before f finds the count-th occurrence.
func TestScenario_CountPlusFind(t *testing.T) {
	buf := textbuf.New("hello world, look at those books")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "3", "f", "o")
	require.Equal(t, engine.Position{Line: 0, Col: 14}, cursor)
	require.Len(t, cmds, 1)
	require.Equal(t, engine.CmdSetCursor, cmds[0].Kind)
	require.Equal(t, engine.Position{Line: 0, Col: 14}, cmds[0].Cursor)
}

// Every bare motion that moves the cursor announces the move, so hosts
// that track the cursor through the command stream stay in sync.
func TestNormalMotionEmitsSetCursor(t *testing.T) {
	buf := textbuf.New("hello world\nsecond line")
	clip := clipreg.NewMemory()

	cases := []struct {
		key  string
		want engine.Position
	}{
		{"l", engine.Position{Line: 0, Col: 4}},
		{"j", engine.Position{Line: 1, Col: 3}},
		{"$", engine.Position{Line: 0, Col: 10}},
		{"w", engine.Position{Line: 0, Col: 6}},
		{"G", engine.Position{Line: 1, Col: 0}},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			e := engine.New(engine.Config{})
			cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 3}, c.key)
			require.Equal(t, c.want, cursor)
			require.Len(t, cmds, 1)
			require.Equal(t, engine.CmdSetCursor, cmds[0].Kind)
			require.Equal(t, c.want, cmds[0].Cursor)
		})
	}

	t.Run("0", func(t *testing.T) {
		e := engine.New(engine.Config{})
		cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 3}, "0")
		require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
		require.Len(t, cmds, 1)
		require.Equal(t, engine.CmdSetCursor, cmds[0].Kind)
	})

	t.Run("I", func(t *testing.T) {
		e := engine.New(engine.Config{})
		cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 3}, "I")
		require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
		require.Equal(t, engine.ModeInsert, e.Snapshot().Mode)
		require.Len(t, cmds, 1)
		require.Equal(t, engine.CmdSetCursor, cmds[0].Kind)
	})

	t.Run("motion that goes nowhere stays silent", func(t *testing.T) {
		e := engine.New(engine.Config{})
		cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "h")
		require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
		require.Empty(t, cmds)
	})
}

// Boundary: empty buffer motions are all (0,0) with no commands.
func TestBoundary_EmptyBuffer(t *testing.T) {
	buf := textbuf.New("")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	for _, k := range []string{"h", "l", "j", "k", "w", "b", "0", "$"} {
		cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, k)
		require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor, "key %q", k)
		require.Empty(t, cmds, "key %q", k)
	}
}

// Boundary: single-character buffer l/h/x edge cases.
func TestBoundary_SingleCharBuffer(t *testing.T) {
	clip := clipreg.NewMemory()

	t.Run("l yields col 1", func(t *testing.T) {
		buf := textbuf.New("a")
		e := engine.New(engine.Config{})
		cursor, _ := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "l")
		require.Equal(t, engine.Position{Line: 0, Col: 1}, cursor)
	})

	t.Run("h yields col 0", func(t *testing.T) {
		buf := textbuf.New("a")
		e := engine.New(engine.Config{})
		cursor, _ := run(t, e, buf, clip, engine.Position{Line: 0, Col: 1}, "h")
		require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
	})

	t.Run("x at col 1 is a no-op", func(t *testing.T) {
		buf := textbuf.New("a")
		e := engine.New(engine.Config{})
		_, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 1}, "x")
		require.Empty(t, cmds)
	})

	t.Run("x at col 0 deletes one grapheme", func(t *testing.T) {
		buf := textbuf.New("a")
		e := engine.New(engine.Config{})
		_, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "x")
		require.Len(t, cmds, 1)
		require.Equal(t, engine.Range{
			Start: engine.Position{Line: 0, Col: 0},
			End:   engine.Position{Line: 0, Col: 1},
		}, cmds[0].Range)
	})
}

// Boundary: $ on an empty line equals line_start.
func TestBoundary_DollarOnEmptyLine(t *testing.T) {
	buf := textbuf.New("\nhello")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, _ := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "$")
	require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
}

// Boundary: 100G on a 4-line buffer goes to the last line.
func TestBoundary_CountedGPastEnd(t *testing.T) {
	buf := textbuf.New("a\nb\nc\nd")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, _ := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "1", "0", "0", "G")
	require.Equal(t, engine.Position{Line: 3, Col: 0}, cursor)
}

// Invariant: Esc in Normal mode is idempotent and clears all transient
// state.
func TestInvariant_EscIdempotent(t *testing.T) {
	buf := textbuf.New("hello world")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, _ := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "3", "d", "<Esc>")
	snap := e.Snapshot()
	require.Equal(t, 0, snap.PendingCount)

	cursor2, cmds := run(t, e, buf, clip, cursor, "<Esc>")
	require.Equal(t, cursor, cursor2)
	require.Empty(t, cmds)

	// The operator never fired: a bare 'l' afterwards must be a plain
	// motion, not a delete.
	_, cmds = run(t, e, buf, clip, cursor, "l")
	require.Len(t, cmds, 1)
	require.Equal(t, engine.CmdSetCursor, cmds[0].Kind)
}

// Invariant: i then Esc returns to the exact starting cursor.
func TestInvariant_InsertEscRoundTrip(t *testing.T) {
	buf := textbuf.New("hello world")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	start := engine.Position{Line: 0, Col: 3}
	cursor, _ := run(t, e, buf, clip, start, "i", "<Esc>")
	require.Equal(t, start, cursor)
	require.Equal(t, engine.ModeNormal, e.Snapshot().Mode)
}

// Round-trip: digits then Esc leaves count cleared.
func TestRoundTrip_DigitsThenEscClearsCount(t *testing.T) {
	buf := textbuf.New("hello")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	run(t, e, buf, clip, engine.Position{}, "4", "2", "<Esc>")
	require.Equal(t, 0, e.Snapshot().PendingCount)
}

// Round-trip: v then v is identity on mode and selection.
func TestRoundTrip_VisualToggleIsIdentity(t *testing.T) {
	buf := textbuf.New("hello")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, _ := run(t, e, buf, clip, engine.Position{}, "v")
	require.Equal(t, engine.ModeVisual, e.Snapshot().Mode)

	_, cmds := run(t, e, buf, clip, cursor, "v")
	require.Equal(t, engine.ModeNormal, e.Snapshot().Mode)
	require.Len(t, cmds, 1)
	require.Equal(t, engine.CmdSetSelection, cmds[0].Kind)
	require.Nil(t, cmds[0].Selection)
}

// Round-trip: yank then paste at selection start restores equivalent text.
func TestRoundTrip_YankPasteCharwise(t *testing.T) {
	buf := textbuf.New("hello world")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	_, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "v", "l", "l", "l", "l", "y")
	require.Len(t, cmds, 1)
	text, ok := clip.Get()
	require.True(t, ok)
	require.Equal(t, "hello", text)

	_, cmds = run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "p")
	require.Len(t, cmds, 1)
	require.Equal(t, engine.Position{Line: 0, Col: 1}, cmds[0].At)
	require.Equal(t, "hello", cmds[0].Text)
}

func TestPaste_EmptyClipboardIsNoOp(t *testing.T) {
	buf := textbuf.New("hello")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "p")
	require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
	require.Empty(t, cmds)
}

func TestSearchMiss_LeavesCursorUnchangedAndReturnsToNormal(t *testing.T) {
	buf := textbuf.New("alpha\nbeta")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor := engine.Position{Line: 0, Col: 0}
	cursor, _ = e.HandleEvent(buf, clip, cursor, eventFor("/"))
	for _, ev := range charEvents("zzz") {
		cursor, _ = e.HandleEvent(buf, clip, cursor, ev)
	}
	cursor, cmds := e.HandleEvent(buf, clip, cursor, eventFor("<Enter>"))
	require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
	require.Empty(t, cmds)
	require.Equal(t, engine.ModeNormal, e.Snapshot().Mode)
}

func TestSearchEscRestoresCursorButKeepsLastSearch(t *testing.T) {
	buf := textbuf.New("alpha beta\nalpha gamma")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor := engine.Position{Line: 0, Col: 0}
	cursor, _ = e.HandleEvent(buf, clip, cursor, eventFor("/"))
	for _, ev := range charEvents("alpha") {
		cursor, _ = e.HandleEvent(buf, clip, cursor, ev)
	}
	cursor, _ = e.HandleEvent(buf, clip, cursor, eventFor("<Enter>"))
	require.Equal(t, engine.Position{Line: 1, Col: 0}, cursor)

	cursor, _ = e.HandleEvent(buf, clip, cursor, eventFor("/"))
	for _, ev := range charEvents("nope") {
		cursor, _ = e.HandleEvent(buf, clip, cursor, ev)
	}
	cursor, _ = e.HandleEvent(buf, clip, cursor, eventFor("<Esc>"))
	require.Equal(t, engine.Position{Line: 1, Col: 0}, cursor)

	// n repeats the *prior* committed search, ignoring the cancelled one.
	cursor, cmds := e.HandleEvent(buf, clip, cursor, eventFor("n"))
	require.Len(t, cmds, 1)
	require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
}

func TestInsertMode_EnterAndBackspace(t *testing.T) {
	buf := textbuf.New("ab")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 1}, "i", "<Enter>")
	require.Equal(t, engine.Position{Line: 1, Col: 0}, cursor)
	require.Len(t, cmds, 1)
	require.Equal(t, "\n", cmds[0].Text)

	buf2 := textbuf.New("ab")
	e2 := engine.New(engine.Config{})
	cursor2, cmds2 := run(t, e2, buf2, clip, engine.Position{Line: 0, Col: 1}, "i", "<BS>")
	require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor2)
	require.Len(t, cmds2, 1)
	require.Equal(t, engine.CmdDelete, cmds2[0].Kind)
}

func TestVisualZeroMotionRecomputesSelection(t *testing.T) {
	buf := textbuf.New("hello world")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 6}, "v", "0")
	require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
	require.Len(t, cmds, 2)
	require.Equal(t, engine.CmdSetCursor, cmds[0].Kind)
	require.Equal(t, engine.CmdSetSelection, cmds[1].Kind)
	require.NotNil(t, cmds[1].Selection)
	require.Equal(t, engine.Range{
		Start: engine.Position{Line: 0, Col: 0},
		End:   engine.Position{Line: 0, Col: 6},
	}, cmds[1].Selection.Range)
}

func TestDeleteToLineEndOnEmptyLineEmitsNothing(t *testing.T) {
	buf := textbuf.New("\nhello")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "d", "$")
	require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
	require.Empty(t, cmds)
}

func TestCountSurvivesOperatorPrefix(t *testing.T) {
	// d2w and 2dw both delete two words; the count accumulated before or
	// after the operator key must reach the motion intact.
	for _, keys := range [][]string{{"d", "2", "w"}, {"2", "d", "w"}} {
		buf := textbuf.New("one two three four")
		clip := clipreg.NewMemory()
		e := engine.New(engine.Config{})

		_, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, keys...)
		require.Len(t, cmds, 1, "keys %v", keys)
		require.Equal(t, engine.Range{
			Start: engine.Position{Line: 0, Col: 0},
			End:   engine.Position{Line: 0, Col: 8},
		}, cmds[0].Range, "keys %v", keys)
	}
}

func TestVisualLineDelete(t *testing.T) {
	buf := textbuf.New("one\ntwo\nthree")
	clip := clipreg.NewMemory()
	e := engine.New(engine.Config{})

	cursor, cmds := run(t, e, buf, clip, engine.Position{Line: 0, Col: 0}, "V", "j", "d")
	require.Equal(t, engine.Position{Line: 0, Col: 0}, cursor)
	require.Len(t, cmds, 2)
	require.Equal(t, engine.Range{
		Start: engine.Position{Line: 0, Col: 0},
		End:   engine.Position{Line: 2, Col: 0},
	}, cmds[0].Range)
}
