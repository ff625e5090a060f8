package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage_Format(t *testing.T) {
	assert.Equal(t, "  95.00%", Percentage(95).Format(8, 2))
	assert.Equal(t, "   0.00%", Percentage(0).Format(8, 2))
	assert.Equal(t, " 100.0%", Percentage(100).Format(7, 1))
}

func TestPercentage_Float64(t *testing.T) {
	assert.Equal(t, 33.3, Percentage(33.3).Float64())
}
