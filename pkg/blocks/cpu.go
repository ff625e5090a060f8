//go:build linux

package blocks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ja7ad/hitop/pkg/format"
	"github.com/ja7ad/hitop/pkg/procfs"
	"github.com/ja7ad/hitop/pkg/sample"
)

// CPUBlock keeps per-logical-CPU tick deltas and renders a glyph-density
// matrix: one row each for IOWAIT/SYSTEM/USER/NICE, one glyph per core.
type CPUBlock struct {
	Settings format.Settings

	tracker *sample.Tracker[int, cpuEntry]
	ids     []int
}

type cpuEntry struct {
	prev, cur procfs.CPUTicks
	fresh     bool
}

// NewCPUBlock returns an empty CPU block.
func NewCPUBlock(s format.Settings) *CPUBlock {
	return &CPUBlock{Settings: s, tracker: sample.NewTracker[int, cpuEntry]()}
}

// Update re-reads /proc/stat's per-core lines and rotates each core's
// sample pair.
func (c *CPUBlock) Update() {
	_, perCore, err := procfs.ReadCPUStat()
	if err != nil {
		return
	}

	c.tracker.Begin()
	ids := make([]int, 0, len(perCore))
	for id, ticks := range perCore {
		ids = append(ids, id)
		e, fresh := c.tracker.Observe(id)
		e.prev = e.cur
		e.cur = ticks
		e.fresh = fresh
	}
	c.tracker.Sweep()
	sort.Ints(ids)
	c.ids = ids
}

// Rows reports 5 when any cores are present (4 usage rows + heading), 0
// otherwise.
func (c *CPUBlock) Rows() int {
	if len(c.ids) == 0 {
		return 0
	}
	return 5
}

// Cols reports the rendered width: a label column plus one glyph per
// core.
func (c *CPUBlock) Cols() int {
	if len(c.ids) == 0 {
		return 0
	}
	return 8 + len(c.ids)
}

// idleColour derives the (med, high, crit) cutoffs applied to a core's
// CpuUsage value from its idle share: (0,0,0) always renders critical,
// (1,1,1) never colours (a fractional usage value essentially never
// reaches 1.0).
func idleColour(idleShare float64) (med, high, crit format.CpuUsage) {
	switch {
	case idleShare <= 0.20:
		return 0, 0, 0
	case idleShare <= 0.40:
		return 0, 0, 1
	case idleShare <= 0.60:
		return 0, 1, 1
	default:
		return 1, 1, 1
	}
}

// idleShare computes this tick's fraction of idle time,
// (cur.idle - prev.idle) / (cur.total - prev.total), defaulting to 1.0
// (never colour) for a freshly-seen core with no prior sample.
func (c *CPUBlock) idleShare(id int) float64 {
	e, ok := c.tracker.Get(id)
	if !ok || e.fresh {
		return 1.0
	}
	dTotal := sample.SaturatingSub(e.cur.Total, e.prev.Total)
	if dTotal == 0 {
		return 1.0
	}
	dIdle := sample.SaturatingSub(e.cur.Idle, e.prev.Idle)
	return float64(dIdle) / float64(dTotal)
}

func (c *CPUBlock) usage(id int, field func(procfs.CPUTicks) uint64) format.CpuUsage {
	e, ok := c.tracker.Get(id)
	if !ok || e.fresh {
		return 0
	}
	dTotal := sample.SaturatingSub(e.cur.Total, e.prev.Total)
	if dTotal == 0 {
		return 0
	}
	dField := sample.SaturatingSub(field(e.cur), field(e.prev))
	return format.CpuUsage(float64(dField) / float64(dTotal))
}

func (c *CPUBlock) Render() string {
	if len(c.ids) == 0 {
		return ""
	}
	rows := []struct {
		label string
		field func(procfs.CPUTicks) uint64
	}{
		{"IOWAIT", func(t procfs.CPUTicks) uint64 { return t.IOWait }},
		{"SYSTEM", func(t procfs.CPUTicks) uint64 { return t.System }},
		{"USER", func(t procfs.CPUTicks) uint64 { return t.User }},
		{"NICE", func(t procfs.CPUTicks) uint64 { return t.Nice }},
	}

	var sb strings.Builder
	sb.WriteString(format.Heading("CPU", 8, c.Settings.Smart, true))
	for range c.ids {
		sb.WriteByte(' ')
	}
	sb.WriteString(format.Newline(c.Settings.Smart))

	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-8s", row.label))
		for _, id := range c.ids {
			u := c.usage(id, row.field)
			idleShare := c.idleShare(id)
			med, high, crit := idleColour(idleShare)
			th := format.Threshold[format.CpuUsage]{
				Val: u, Med: med, High: high, Crit: crit, Smart: c.Settings.Smart,
			}
			sb.WriteString(th.Render(0, 0))
		}
		sb.WriteString(format.Newline(c.Settings.Smart))
	}
	return sb.String()
}
