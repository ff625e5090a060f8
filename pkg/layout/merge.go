// Package layout composes two sibling stat blocks side-by-side when
// their combined padded width fits the terminal, or stacks them
// otherwise.
package layout

import (
	"strings"

	"github.com/ja7ad/hitop/pkg/blocks"
)

// Merge renders a and b as a single string. If both blocks have
// content and their combined padded width fits within maxCols, they
// render line-by-line side-by-side with a single-space separator;
// otherwise a's buffer is followed by b's.
func Merge(a, b blocks.StatBlock, colWidth, maxCols int) string {
	aRows, bRows := a.Rows(), b.Rows()
	aCols := a.Cols()

	if aRows > 0 && bRows > 0 {
		padded := paddedWidth(aCols, colWidth)
		if padded+b.Cols() < maxCols {
			return mergeSideBySide(a.Render(), b.Render(), padded, aRows, bRows)
		}
	}
	return a.Render() + b.Render()
}

// paddedWidth rounds cols up to the next column boundary: the spec's
// padded_A = cols + colwidth - cols mod (colwidth + 1).
func paddedWidth(cols, colWidth int) int {
	step := colWidth + 1
	return cols + colWidth - cols%step
}

func mergeSideBySide(aBuf, bBuf string, padded, aRows, bRows int) string {
	aLines := splitLines(aBuf)
	bLines := splitLines(bBuf)

	height := aRows
	if bRows > height {
		height = bRows
	}

	var sb strings.Builder
	for i := 0; i < height; i++ {
		left := ""
		if i < len(aLines) {
			left = aLines[i]
		}
		right := ""
		if i < len(bLines) {
			right = bLines[i]
		}
		sb.WriteString(padRight(left, padded))
		sb.WriteByte(' ')
		sb.WriteString(right)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
