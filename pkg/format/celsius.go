package format

import "fmt"

// Celsius is a temperature reading rendered with a C suffix and one
// fractional digit by default.
type Celsius float64

func (c Celsius) Float64() float64 { return float64(c) }

func (c Celsius) Format(width, precision int) string {
	return fmt.Sprintf("%*.*f%c", width-1, precision, float64(c), 'C')
}

func (c Celsius) String() string { return c.Format(8, 1) }
