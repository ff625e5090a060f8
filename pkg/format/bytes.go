package format

import (
	"fmt"
	"math"
)

// Bytes is a byte counter rendered with an automatically chosen unit.
type Bytes uint64

const (
	kib = 1024.0
	mib = kib * 1024.0
	gib = mib * 1024.0
	tib = gib * 1024.0
)

// Float64 implements Value.
func (b Bytes) Float64() float64 { return float64(b) }

// Format renders b right-aligned in width characters, choosing the
// smallest unit in {K, M, G, T} such that the mantissa fits in
// width-2-precision printable digits before the decimal point. Zero
// renders as a right-aligned ".".
func (b Bytes) Format(width, precision int) string {
	if b == 0 {
		return fmt.Sprintf("%*s", width, ".")
	}

	maxIntDigits := width - 2 - precision
	if maxIntDigits < 1 {
		maxIntDigits = 1
	}
	threshold := math.Pow(10, float64(maxIntDigits))

	units := []struct {
		div    float64
		suffix rune
	}{
		{kib, 'K'},
		{mib, 'M'},
		{gib, 'G'},
		{tib, 'T'},
	}

	div, suffix := units[0].div, units[0].suffix
	for _, u := range units {
		div, suffix = u.div, u.suffix
		if float64(b)/u.div < threshold {
			break
		}
	}

	numWidth := width - 1
	return fmt.Sprintf("%*.*f%c", numWidth, precision, float64(b)/div, suffix)
}

func (b Bytes) String() string { return b.Format(8, 2) }
