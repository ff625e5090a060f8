package format

import "fmt"

// Percentage is a fractional value rendered with a % suffix.
type Percentage float64

func (p Percentage) Float64() float64 { return float64(p) }

func (p Percentage) Format(width, precision int) string {
	return fmt.Sprintf("%*.*f%%", width-1, precision, float64(p))
}

func (p Percentage) String() string { return p.Format(8, 2) }
