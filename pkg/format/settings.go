// Package format holds the typed display primitives shared by every stat
// block: byte/watt/percentage/temperature wrappers, the threshold colourer,
// and the smart-terminal escape helpers.
package format

import "fmt"

// MinColWidth is the smallest column width the renderer will accept.
const MinColWidth = 8

// Settings is process-wide and rebound once per tick so that auto-probed
// terminal dimensions take effect on the next render without requiring
// every block to re-read the environment itself.
type Settings struct {
	// Smart reports whether the terminal understands ANSI colour/escape
	// sequences. When false, every value renders plain.
	Smart bool

	// RefreshMS is the tick period in milliseconds.
	RefreshMS uint64

	ColWidth int
	MaxCols  int
	MaxRows  int

	AutoColWidth bool
	AutoMaxCols  bool
	AutoMaxRows  bool
}

// Validate enforces the geometry invariants from spec §3. It is called once
// at startup and again after every auto-resize probe.
func (s Settings) Validate() error {
	if s.ColWidth < MinColWidth {
		return fmt.Errorf("format: colwidth %d below minimum %d", s.ColWidth, MinColWidth)
	}
	if s.MaxCols < 8*s.ColWidth+7 {
		return fmt.Errorf("format: max_cols %d too small for colwidth %d", s.MaxCols, s.ColWidth)
	}
	if s.MaxRows < 24 {
		return fmt.Errorf("format: max_rows %d below minimum 24", s.MaxRows)
	}
	return nil
}
