//go:build linux

package driver

import (
	"bytes"
	"testing"

	"github.com/ja7ad/hitop/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDriverSettings() format.Settings {
	return format.Settings{Smart: false, RefreshMS: 1, ColWidth: 8, MaxCols: 200, MaxRows: 48}
}

func TestDriver_TickProducesOutput(t *testing.T) {
	var buf bytes.Buffer
	d := New(testDriverSettings(), &buf)

	err := d.tick()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "----------")
}

func TestDriver_TaskBudget_ClampedToFloor(t *testing.T) {
	var buf bytes.Buffer
	d := New(testDriverSettings(), &buf)

	d.mem.Update()
	d.pres.Update()
	d.cpu.Update()
	d.net.Update()
	d.bdev.Update()
	d.fs.Update()
	d.hwmon.Update()

	// The blocks read this host's real sources, so the row counts vary;
	// only the floor of 5 is checked.
	got := d.taskBudget()
	assert.GreaterOrEqual(t, got, 5)
}

func TestDriver_RebindSettingsPropagates(t *testing.T) {
	var buf bytes.Buffer
	d := New(testDriverSettings(), &buf)

	d.Settings.ColWidth = 9
	d.rebindSettings()

	assert.Equal(t, 9, d.mem.Settings.ColWidth)
	assert.Equal(t, 9, d.task.Settings.ColWidth)
}

func TestEnvInt_FallsBackOnMissingOrInvalid(t *testing.T) {
	assert.Equal(t, 42, envInt("HITOP_TEST_DOES_NOT_EXIST", 42))

	t.Setenv("HITOP_TEST_INVALID", "notanumber")
	assert.Equal(t, 42, envInt("HITOP_TEST_INVALID", 42))
}
