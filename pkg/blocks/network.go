//go:build linux

package blocks

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ja7ad/hitop/pkg/format"
	"github.com/ja7ad/hitop/pkg/sample"
)

// NetworkBlock tracks per-interface rx/tx byte counters from
// /proc/net/dev and renders wrap-safe-subtracted rates.
type NetworkBlock struct {
	Settings format.Settings

	tracker *sample.Tracker[string, netEntry]
	ifaces  []string
}

type netEntry struct {
	rx, tx sample.Pair
	fresh  bool
}

// NewNetworkBlock returns an empty network block.
func NewNetworkBlock(s format.Settings) *NetworkBlock {
	return &NetworkBlock{Settings: s, tracker: sample.NewTracker[string, netEntry]()}
}

func readNetDev() (map[string][2]uint64, error) {
	f, err := os.Open("/proc/net/dev")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make(map[string][2]uint64)
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		if line <= 2 {
			continue
		}
		text := sc.Text()
		colon := strings.IndexByte(text, ':')
		if colon < 0 {
			continue
		}
		iface := strings.TrimSpace(text[:colon])
		if strings.HasPrefix(iface, "br") {
			continue
		}
		fields := strings.Fields(text[colon+1:])
		if len(fields) < 9 {
			continue
		}
		rx, err1 := strconv.ParseUint(fields[0], 10, 64)
		tx, err2 := strconv.ParseUint(fields[8], 10, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out[iface] = [2]uint64{rx, tx}
	}
	return out, sc.Err()
}

// Update re-reads /proc/net/dev and rotates each interface's rx/tx pair.
func (n *NetworkBlock) Update() {
	devs, err := readNetDev()
	if err != nil {
		return
	}
	now := time.Now()

	n.tracker.Begin()
	ifaces := make([]string, 0, len(devs))
	for iface, rxtx := range devs {
		ifaces = append(ifaces, iface)
		e, fresh := n.tracker.Observe(iface)
		e.fresh = fresh
		e.rx.Observe(rxtx[0], now)
		e.tx.Observe(rxtx[1], now)
	}
	n.tracker.Sweep()
	n.ifaces = n.tracker.Keys(func(a, b string) bool { return a < b })
}

// Rows reports 2+N when N interfaces are present, 0 otherwise.
func (n *NetworkBlock) Rows() int {
	if len(n.ifaces) == 0 {
		return 0
	}
	return 2 + len(n.ifaces)
}

// Cols reports the rendered width of the network block.
func (n *NetworkBlock) Cols() int {
	if len(n.ifaces) == 0 {
		return 0
	}
	return n.Settings.ColWidth*3 + 2
}

func (n *NetworkBlock) Render() string {
	if len(n.ifaces) == 0 {
		return ""
	}
	w := n.Settings.ColWidth
	var sb strings.Builder

	sb.WriteString(format.Heading("IFACE", w, n.Settings.Smart, true))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("RX/s", w, n.Settings.Smart, false))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("TX/s", w, n.Settings.Smart, false))
	sb.WriteString(format.Newline(n.Settings.Smart))

	for _, iface := range n.ifaces {
		e, ok := n.tracker.Get(iface)
		if !ok {
			continue
		}
		var rxRate, txRate format.Bytes
		if !e.fresh && e.rx.ElapsedMs() > 0 {
			rxRate = format.Bytes(sample.Rate(sample.WrapSub(e.rx.Cur, e.rx.Prev), e.rx.ElapsedMs()))
			txRate = format.Bytes(sample.Rate(sample.WrapSub(e.tx.Cur, e.tx.Prev), e.tx.ElapsedMs()))
		}
		sb.WriteString(fmt.Sprintf("%-*s", w, iface))
		sb.WriteByte(' ')
		sb.WriteString(rxRate.Format(w, 2))
		sb.WriteByte(' ')
		sb.WriteString(txRate.Format(w, 2))
		sb.WriteString(format.Newline(n.Settings.Smart))
	}
	sb.WriteString(format.Newline(n.Settings.Smart))
	return sb.String()
}
