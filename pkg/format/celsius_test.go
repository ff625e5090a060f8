package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCelsius_Format(t *testing.T) {
	assert.Equal(t, "   45.0C", Celsius(45).Format(8, 1))
	assert.Equal(t, "   45.0C", Celsius(45).String())
}

func TestCelsius_Float64(t *testing.T) {
	assert.Equal(t, 36.6, Celsius(36.6).Float64())
}
