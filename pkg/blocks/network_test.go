//go:build linux

package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadNetDev_Self(t *testing.T) {
	devs, err := readNetDev()
	require.NoError(t, err)
	assert.NotEmpty(t, devs)
	for iface := range devs {
		assert.NotContains(t, iface, ":")
	}
}

func TestNetworkBlock_NoInterfacesRendersEmpty(t *testing.T) {
	n := NewNetworkBlock(testSettings())
	assert.Equal(t, 0, n.Rows())
	assert.Equal(t, 0, n.Cols())
	assert.Equal(t, "", n.Render())
}

func TestNetworkBlock_FirstTickMarksEntriesFresh(t *testing.T) {
	n := NewNetworkBlock(testSettings())
	n.Update()
	if len(n.ifaces) == 0 {
		t.Skip("no network interfaces on this host")
	}
	for _, iface := range n.ifaces {
		e, ok := n.tracker.Get(iface)
		require.True(t, ok)
		assert.True(t, e.fresh, "interface seen on the first tick must be marked fresh")
	}
}

func TestNetworkBlock_UpdateTwiceProducesTrailingBlankLine(t *testing.T) {
	n := NewNetworkBlock(testSettings())
	n.Update()
	n.Update()
	if len(n.ifaces) == 0 {
		t.Skip("no network interfaces on this host")
	}
	assert.Equal(t, 2+len(n.ifaces), n.Rows())
	out := n.Render()
	lines := 0
	for _, c := range out {
		if c == '\n' {
			lines++
		}
	}
	assert.Equal(t, n.Rows(), lines)
}
