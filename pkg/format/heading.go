package format

import (
	"fmt"

	"github.com/fatih/color"
)

var boldColor = color.New(color.Bold)

// Heading renders s right- or left-aligned within width, bold when smart.
func Heading(s string, width int, smart, leftAlign bool) string {
	var padded string
	if leftAlign {
		padded = fmt.Sprintf("%-*s", width, s)
	} else {
		padded = fmt.Sprintf("%*s", width, s)
	}
	if !smart {
		return padded
	}
	boldColor.EnableColor()
	return boldColor.Sprint(padded)
}
