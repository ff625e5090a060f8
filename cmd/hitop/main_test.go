//go:build linux

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSettings_ExplicitColumnsAndWidth(t *testing.T) {
	s, err := buildSettings(cliFlags{colour: "true", columns: 120, rows: 40, columnWidth: 9, refreshMS: 2000})
	require.NoError(t, err)
	assert.True(t, s.Smart)
	assert.Equal(t, 120, s.MaxCols)
	assert.Equal(t, 40, s.MaxRows)
	assert.Equal(t, 9, s.ColWidth)
	assert.False(t, s.AutoMaxCols)
	assert.False(t, s.AutoMaxRows)
	assert.False(t, s.AutoColWidth)
}

func TestBuildSettings_AutoColumnWidthClampedToRange(t *testing.T) {
	s, err := buildSettings(cliFlags{colour: "false", columns: 300, rows: 40, columnWidth: 0, refreshMS: 2000})
	require.NoError(t, err)
	assert.Equal(t, 10, s.ColWidth) // 300/10=30, clamped down to 10
	assert.True(t, s.AutoColWidth)
}

func TestBuildSettings_InvalidColourRejected(t *testing.T) {
	_, err := buildSettings(cliFlags{colour: "loud", columns: 80, rows: 24, refreshMS: 2000})
	assert.Error(t, err)
}

func TestBuildSettings_ColourAutoRespectsDumbTerm(t *testing.T) {
	old := os.Getenv("TERM")
	defer os.Setenv("TERM", old)

	os.Setenv("TERM", "dumb")
	s, err := buildSettings(cliFlags{colour: "auto", columns: 80, rows: 24, refreshMS: 2000})
	require.NoError(t, err)
	assert.False(t, s.Smart)
}

func TestEnvIntDefault_FallsBackOnEmpty(t *testing.T) {
	os.Unsetenv("HITOP_TEST_VAR")
	assert.Equal(t, 42, envIntDefault("HITOP_TEST_VAR", 42))
}

func TestEnvIntDefault_ParsesValidValue(t *testing.T) {
	os.Setenv("HITOP_TEST_VAR", "99")
	defer os.Unsetenv("HITOP_TEST_VAR")
	assert.Equal(t, 99, envIntDefault("HITOP_TEST_VAR", 42))
}

func TestRun_RejectsNonPositiveRefresh(t *testing.T) {
	err := run(cliFlags{colour: "auto", refreshMS: 0})
	assert.Error(t, err)
}
