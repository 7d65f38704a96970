// Package engine implements a minimal, embeddable modal keystroke engine
// inspired by vi-family editors.
//
// The engine is a pure, host-agnostic interpreter: it consumes a stream of
// input events, maintains the modal and operator-pending state machine,
// resolves motions and operators against a host-provided [TextOps]
// implementation, and returns a list of edit/cursor/selection [Command]
// values that the host applies to its own buffer. The engine never stores
// text itself and never performs I/O; see [Engine.HandleEvent].
package engine
