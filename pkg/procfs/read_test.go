//go:build linux

package procfs

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadFile_Self(t *testing.T) {
	r := NewReader(64)
	pid := os.Getpid()
	got, err := r.ReadFile(fmt.Sprintf("/proc/%d/comm", pid))
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestReader_ReadFile_GrowsBuffer(t *testing.T) {
	r := NewReader(1)
	pid := os.Getpid()
	got, err := r.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	require.NoError(t, err)
	assert.Greater(t, len(got), 1)
}

func TestReader_ReadFile_MissingFile(t *testing.T) {
	r := NewReader(64)
	_, err := r.ReadFile("/proc/999999999/comm")
	assert.Error(t, err)
}

func TestCachedStat_ReadRereadsFromStart(t *testing.T) {
	pid := os.Getpid()
	cs, err := OpenCachedStat(fmt.Sprintf("/proc/%d/stat", pid))
	require.NoError(t, err)
	defer cs.Close()

	a, err := cs.Read()
	require.NoError(t, err)
	b, err := cs.Read()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}
