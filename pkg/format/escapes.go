package format

// These are structural terminal-control sequences (cursor positioning,
// line-clearing) rather than per-value colouring, so they stay as raw CSI
// constants: fatih/color (used below for Threshold and Heading colouring)
// wraps a single value with its own reset, it has no notion of "erase to
// end of line" or "move cursor home".
const (
	escClearLine  = "\x1B[0K"
	escCursorHome = "\x1B[1;1H"
	escClearToEnd = "\x1B[0J"
)

// Newline returns the line terminator: a plain "\n", or, on a smart
// terminal, "\n" preceded by an erase-to-end-of-line so that a shorter
// line doesn't leave stray characters from the previous frame.
func Newline(smart bool) string {
	if smart {
		return escClearLine + "\n"
	}
	return "\n"
}

// FrameStart returns the sequence the tick driver emits at the start of
// each frame: cursor-home + clear-to-end on a smart terminal, or a plain
// horizontal rule otherwise.
func FrameStart(smart bool) string {
	if smart {
		return escCursorHome + escClearToEnd
	}
	return "----------\n"
}

// FrameEnd returns the trailing erase-to-end-of-screen emitted after the
// last block on a smart terminal (no-op otherwise).
func FrameEnd(smart bool) string {
	if smart {
		return escClearToEnd
	}
	return ""
}
