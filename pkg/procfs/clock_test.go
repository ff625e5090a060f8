//go:build linux

package procfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockTicks_Positive(t *testing.T) {
	assert.Greater(t, ClockTicks(), int64(0))
}

func TestPageSize_Positive(t *testing.T) {
	assert.Greater(t, PageSize(), int64(0))
}

func TestFDBudget_NonNegative(t *testing.T) {
	assert.GreaterOrEqual(t, FDBudget(), 0)
}
