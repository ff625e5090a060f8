package format

import "fmt"

// Watts is a power reading, rendered as a plain integer with a W suffix.
type Watts float64

func (w Watts) Float64() float64 { return float64(w) }

// Format ignores precision: watts are always rendered as an integer.
func (w Watts) Format(width, precision int) string {
	return fmt.Sprintf("%*dW", width-1, int64(w+0.5))
}

func (w Watts) String() string { return w.Format(8, 0) }
