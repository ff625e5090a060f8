//go:build linux

package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMountstatsLineRegexp(t *testing.T) {
	m := mountstatsLine.FindStringSubmatch(`device /dev/sda1 mounted on / with fstype ext4 statvers=1.1`)
	if assert.NotNil(t, m) {
		assert.Equal(t, "/dev/sda1", m[1])
		assert.Equal(t, "/", m[2])
		assert.Equal(t, "ext4", m[3])
	}
}

func TestMountstatsLineRegexp_NoMatchOnUnrelatedLine(t *testing.T) {
	m := mountstatsLine.FindStringSubmatch("RPC statistics")
	assert.Nil(t, m)
}

func TestFilesystemBlock_NoMountsRendersEmpty(t *testing.T) {
	fsb := &FilesystemBlock{Settings: testSettings()}
	assert.Equal(t, 0, fsb.Rows())
	assert.Equal(t, 0, fsb.Cols())
	assert.Equal(t, "", fsb.Render())
}

func TestFilesystemBlock_UpdateReal(t *testing.T) {
	fsb := &FilesystemBlock{Settings: testSettings()}
	fsb.Update()
	if len(fsb.mounts) == 0 {
		t.Skip("no block-device mounts on this host")
	}
	assert.Equal(t, 2+len(fsb.mounts), fsb.Rows())
	out := fsb.Render()
	assert.Contains(t, out, "USED%")

	lines := 0
	for _, c := range out {
		if c == '\n' {
			lines++
		}
	}
	assert.Equal(t, fsb.Rows(), lines)
}
