//go:build linux

package blocks

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskState_KnownAndUnknown(t *testing.T) {
	assert.Equal(t, byte('S'), taskState('S'))
	assert.Equal(t, byte('R'), taskState('R'))
	assert.Equal(t, byte('D'), taskState('D'))
	assert.Equal(t, byte('?'), taskState('X'))
}

func TestFormatCmdline_ArgvPrefixesComm(t *testing.T) {
	got := formatCmdline("bash", "/bin/bash\x00-c\x00ls", 200)
	assert.Equal(t, "bash -c ls", got)
}

func TestFormatCmdline_CommNotPrefixWrapsInParens(t *testing.T) {
	got := formatCmdline("worker", "/usr/bin/server\x00--flag", 200)
	assert.Equal(t, "(worker) server --flag", got)
}

func TestFormatCmdline_QuotesArgsWithSpaces(t *testing.T) {
	got := formatCmdline("bash", "/bin/bash\x00-c\x00hello world", 200)
	assert.Equal(t, "bash -c 'hello world'", got)
}

func TestFormatCmdline_EscapesEmbeddedQuote(t *testing.T) {
	got := formatCmdline("bash", "/bin/bash\x00-c\x00it's ok", 200)
	assert.Equal(t, `bash -c 'it\'s ok'`, got)
}

func TestFormatCmdline_NoArgsFallsBackToComm(t *testing.T) {
	got := formatCmdline("kworker", "", 200)
	assert.Equal(t, "(kworker)", got)
}

func TestFormatCmdline_TruncatesToWidth(t *testing.T) {
	got := formatCmdline("bash", "/bin/bash\x00-c\x00"+string(make([]byte, 50)), 10)
	assert.LessOrEqual(t, len(got), 10)
}

func TestTaskSort_UninterruptibleDominates(t *testing.T) {
	d := TaskSort{tid: 1, state: 'D', cpu: 0}
	r := TaskSort{tid: 2, state: 'R', cpu: 255}
	// d has higher priority than r regardless of cpu, so r.less(d) is true
	assert.True(t, r.less(d))
	assert.False(t, d.less(r))
}

func TestTaskSort_TiesBreakOnCPU(t *testing.T) {
	low := TaskSort{tid: 1, state: 'R', cpu: 10}
	high := TaskSort{tid: 2, state: 'R', cpu: 90}
	assert.True(t, low.less(high))
	assert.False(t, high.less(low))
}

func TestTaskBlock_SelectTop_RespectsK(t *testing.T) {
	tb := NewTaskBlock(testSettings())
	for i := 1; i <= 20; i++ {
		tb.entries[i] = &taskEntry{state: 'R', cpuPct: uint8(i), seen: true}
	}
	got := tb.selectTop(5)
	assert.LessOrEqual(t, len(got), 5)
}

func TestTaskBlock_SelectTop_ZeroBudget(t *testing.T) {
	tb := NewTaskBlock(testSettings())
	tb.entries[1] = &taskEntry{state: 'R', cpuPct: 50, seen: true}
	assert.Nil(t, tb.selectTop(0))
}

func TestTaskBlock_UpdateSelf(t *testing.T) {
	tb := NewTaskBlock(testSettings())
	tb.Update(10)

	found := false
	for _, tid := range tb.order {
		if e, ok := tb.entries[tid]; ok && e.seen {
			found = true
			_ = e
		}
	}
	// After a single Update every task is new and has 0% CPU, so only
	// Uninterruptible tasks can be listed; the header row always renders.
	_ = found
	assert.True(t, tb.Rows() >= 1)
}

func TestTaskBlock_ParseTidFromPath(t *testing.T) {
	tid, ok := parseTidFromPath("/proc/123/task/456")
	require.True(t, ok)
	assert.Equal(t, 456, tid)

	_, ok = parseTidFromPath("/proc/123/task/notanumber")
	assert.False(t, ok)
}

func TestTaskBlock_ReadCmdlineSelf(t *testing.T) {
	pid := os.Getpid()
	path := "/proc/" + strconv.Itoa(pid) + "/cmdline"
	if _, err := os.Stat(path); err != nil {
		t.Skip("cmdline unavailable on this host")
	}
	got := readCmdline(path)
	assert.NotEmpty(t, got)
}
