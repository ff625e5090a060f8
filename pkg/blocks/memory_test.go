//go:build linux

package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlock_UpdateReal(t *testing.T) {
	m := &MemoryBlock{Settings: testSettings()}
	m.Update()
	require.True(t, m.ok)
	assert.Equal(t, 3, m.Rows())
	out := m.Render()
	assert.Contains(t, out, "ACTIVE")
	assert.Contains(t, out, "ZRAM")

	lines := 0
	for _, c := range out {
		if c == '\n' {
			lines++
		}
	}
	assert.Equal(t, 3, lines)
}

func TestMemoryBlock_ZeroValueRendersEmpty(t *testing.T) {
	m := &MemoryBlock{Settings: testSettings()}
	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 0, m.Cols())
	assert.Equal(t, "", m.Render())
}

func TestReadSwapUsedKB_Self(t *testing.T) {
	_, err := readSwapUsedKB()
	assert.NoError(t, err)
}

func TestReadZramMemUsed_NoPanicWithoutZram(t *testing.T) {
	assert.GreaterOrEqual(t, readZramMemUsed(), uint64(0))
}
