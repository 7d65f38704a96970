package engine

// CommandKind tags the variant of a Command.
type CommandKind int

const (
	// CmdSetCursor is advisory; hosts may ignore it and take the cursor
	// from HandleEvent's returned Position. Motions, search hits and the
	// a/A/I insert entries emit it when they move the cursor. Edits
	// (Insert-mode input, Enter, Backspace, paste, x, operators, Visual
	// d/y) and an Esc-cancelled search prompt report the new cursor only
	// through the returned Position.
	CmdSetCursor CommandKind = iota
	// CmdSetSelection replaces (or, with Selection == nil, clears) the
	// host's active selection.
	CmdSetSelection
	// CmdDelete removes the text in [Range.Start, Range.End).
	CmdDelete
	// CmdInsertText inserts Text at At.
	CmdInsertText
)

// Command is one host-applied edit/cursor/selection effect. HandleEvent
// returns an ordered slice of these; hosts must apply them in order, since
// a Delete followed by an Insert never depends on post-delete geometry
// without the host having applied the Delete first.
type Command struct {
	Kind CommandKind

	// CmdSetCursor
	Cursor Position

	// CmdSetSelection: nil clears the selection.
	Selection *Selection

	// CmdDelete
	Range Range

	// CmdInsertText
	At   Position
	Text string
}

func setCursorCmd(p Position) Command {
	return Command{Kind: CmdSetCursor, Cursor: p}
}

// cursorMovedCmd returns the SetCursor command for a motion from one
// position to another, or nothing when the cursor did not move. Hosts that
// derive the cursor from the command stream rather than the tuple return
// rely on every motion being emitted.
func cursorMovedCmd(from, to Position) []Command {
	if from == to {
		return nil
	}
	return []Command{setCursorCmd(to)}
}

func setSelectionCmd(sel *Selection) Command {
	return Command{Kind: CmdSetSelection, Selection: sel}
}

func deleteCmd(r Range) Command {
	return Command{Kind: CmdDelete, Range: r}
}

func insertTextCmd(at Position, text string) Command {
	return Command{Kind: CmdInsertText, At: at, Text: text}
}
