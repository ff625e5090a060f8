package format

import "github.com/fatih/color"

// Value is any typed quantity that can be rendered with the format(width,
// precision) contract and compared numerically for threshold colouring.
type Value interface {
	Float64() float64
	Format(width, precision int) string
}

// Threshold colours a value by the highest of four ordered levels it
// reaches. When Smart is false the value renders plain.
type Threshold[T Value] struct {
	Val, Med, High, Crit T
	Smart                bool
}

var (
	medColor  = color.New(color.Bold, color.FgHiYellow)
	highColor = color.New(color.Bold, color.FgHiRed)
	critColor = color.New(color.Bold, color.FgHiMagenta)
)

// Render formats Val at the given width/precision, then colours it
// according to the highest threshold level reached.
func (t Threshold[T]) Render(width, precision int) string {
	s := t.Val.Format(width, precision)

	if !t.Smart || t.Val.Float64() < t.Med.Float64() {
		return s
	}

	var c *color.Color
	switch {
	case t.Val.Float64() < t.High.Float64():
		c = medColor
	case t.Val.Float64() < t.Crit.Float64():
		c = highColor
	default:
		c = critColor
	}

	c.EnableColor()
	return c.Sprint(s)
}
