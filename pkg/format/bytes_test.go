package format

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes_Format_Zero(t *testing.T) {
	assert.Equal(t, "       .", Bytes(0).Format(8, 2))
}

func TestBytes_Format_UnitSelection(t *testing.T) {
	cases := []struct {
		in   Bytes
		want string
	}{
		{Bytes(1000 * 1024), "1000.00K"},
		{Bytes(9999 * 1024), "9999.00K"},
		{Bytes(1024 * 1024), "1024.00K"},
		{Bytes(2000 * 1024 * 1024), "2000.00M"},
		{Bytes(10 * 1024 * 1024 * 1024), "  10.00G"},
		{Bytes(20 * 1024 * 1024 * 1024 * 1024), "  20.00T"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			got := tc.in.Format(8, 2)
			assert.Equal(t, tc.want, got)
			assert.Len(t, got, 8)
		})
	}
}

func TestBytes_Format_WidthInvariant(t *testing.T) {
	for _, width := range []int{8, 9, 10, 12} {
		for _, precision := range []int{0, 1, 2} {
			if width < precision+4 {
				continue
			}
			for _, v := range []Bytes{0, 1, 1023, 1 << 20, 1 << 30, 1 << 40} {
				got := v.Format(width, precision)
				assert.Len(t, got, width, "width=%d precision=%d v=%d got=%q", width, precision, v, got)
			}
		}
	}
}

func TestBytes_String_Default(t *testing.T) {
	assert.Equal(t, Bytes(0).Format(8, 2), Bytes(0).String())
}

func TestBytes_Float64(t *testing.T) {
	assert.Equal(t, float64(12345), Bytes(12345).Float64())
}
