package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewline(t *testing.T) {
	assert.Equal(t, "\n", Newline(false))
	assert.Equal(t, escClearLine+"\n", Newline(true))
}

func TestFrameStart(t *testing.T) {
	assert.Equal(t, "----------\n", FrameStart(false))
	assert.Equal(t, escCursorHome+escClearToEnd, FrameStart(true))
}

func TestFrameEnd(t *testing.T) {
	assert.Equal(t, "", FrameEnd(false))
	assert.Equal(t, escClearToEnd, FrameEnd(true))
}
