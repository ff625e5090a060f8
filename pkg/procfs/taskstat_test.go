//go:build linux

package procfs

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStat_Self(t *testing.T) {
	pid := os.Getpid()
	b, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	require.NoError(t, err)

	ts, err := ParseTaskStat(string(b))
	require.NoError(t, err)
	assert.Contains(t, "RSDZTI", string(ts.State))
	assert.GreaterOrEqual(t, ts.UTime, uint64(0))
	assert.GreaterOrEqual(t, ts.STime, uint64(0))
	assert.Greater(t, ts.StartTime, uint64(0))
}

func TestParseTaskStat_CommWithSpacesAndParens(t *testing.T) {
	line := "1234 (my (weird) prog) S 1 1 1 0 -1 4194304 100 0 0 0 11 12 0 0 20 0 1 0 98765 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 17 1 0 0 0 0 0 0 0 0 0 0 0 0 0\n"
	ts, err := ParseTaskStat(line)
	require.NoError(t, err)
	assert.Equal(t, byte('S'), ts.State)
	assert.Equal(t, uint64(11), ts.UTime)
	assert.Equal(t, uint64(12), ts.STime)
	assert.Equal(t, uint64(98765), ts.StartTime)
}

func TestParseTaskStat_Malformed(t *testing.T) {
	_, err := ParseTaskStat("not a stat line at all")
	assert.ErrorIs(t, err, ErrMalformedStat)
}
