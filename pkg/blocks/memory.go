//go:build linux

package blocks

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ja7ad/hitop/pkg/format"
	"github.com/ja7ad/hitop/pkg/procfs"
)

// MemoryBlock aggregates /proc/vmstat, /proc/swaps and
// /sys/block/zram*/mm_stat into the single ACTIVE/INACTIVE/CACHED/FREE/
// DIRTY/W_BACK/SWAP/ZRAM row.
type MemoryBlock struct {
	Settings format.Settings

	active, inactive, cached, free format.Bytes
	dirty                          format.Threshold[format.Bytes]
	writeback, swap, zram          format.Bytes

	ok bool
}

var vmstatKeys = map[string]bool{
	"nr_active_anon": true, "nr_inactive_anon": true,
	"nr_active_file": true, "nr_inactive_file": true,
	"nr_slab_reclaimable": true, "nr_slab_unreclaimable": true,
	"nr_kernel_misc_reclaimable": true, "nr_swapcached": true,
	"nr_free_pages": true, "nr_dirty": true,
	"nr_dirty_background_threshold": true, "nr_dirty_threshold": true,
	"nr_writeback": true,
}

func readVMStat() (map[string]uint64, error) {
	f, err := os.Open("/proc/vmstat")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make(map[string]uint64, len(vmstatKeys))
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 || !vmstatKeys[fields[0]] {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		out[fields[0]] = v
	}
	return out, sc.Err()
}

// readSwapUsedKB sums field index 3 ("Used") of every /proc/swaps entry,
// in KiB.
func readSwapUsedKB() (uint64, error) {
	f, err := os.Open("/proc/swaps")
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var total uint64
	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			continue
		}
		v, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			continue
		}
		total += v
	}
	return total, sc.Err()
}

// readZramMemUsed sums field index 2 ("mem_used_total", bytes) across
// every /sys/block/zram*/mm_stat.
func readZramMemUsed() uint64 {
	paths, _ := filepath.Glob("/sys/block/zram*/mm_stat")
	var total uint64
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		fields := strings.Fields(string(b))
		if len(fields) < 3 {
			continue
		}
		v, err := strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			continue
		}
		total += v
	}
	return total
}

// Update re-reads vmstat/swaps/zram sources. Failure to read vmstat
// leaves the block's previous (or empty) state and suppresses render.
func (m *MemoryBlock) Update() {
	vm, err := readVMStat()
	if err != nil {
		m.ok = false
		return
	}

	pageSize := format.Bytes(procfs.PageSize())
	pages := func(key string) format.Bytes {
		return format.Bytes(vm[key]) * pageSize
	}

	m.active = pages("nr_active_anon") + pages("nr_active_file")
	m.inactive = pages("nr_inactive_anon") + pages("nr_inactive_file")
	m.cached = pages("nr_active_file") + pages("nr_inactive_file") +
		pages("nr_slab_reclaimable") + pages("nr_slab_unreclaimable") +
		pages("nr_kernel_misc_reclaimable") + pages("nr_swapcached")
	m.free = pages("nr_free_pages")
	m.writeback = pages("nr_writeback")

	m.dirty = format.Threshold[format.Bytes]{
		Val:   pages("nr_dirty"),
		Med:   pages("nr_dirty_background_threshold"),
		High:  pages("nr_dirty_background_threshold"),
		Crit:  pages("nr_dirty_threshold"),
		Smart: m.Settings.Smart,
	}

	swapUsedKB, _ := readSwapUsedKB()
	swapBytes := format.Bytes(swapUsedKB * 1024)
	swapCached := pages("nr_swapcached")
	if swapBytes > swapCached {
		m.swap = swapBytes - swapCached
	} else {
		m.swap = 0
	}

	m.zram = format.Bytes(readZramMemUsed())
	m.ok = true
}

// Rows reports 3 when data is present, matching the layout engine's
// fixed memory-block row height; 0 otherwise.
func (m *MemoryBlock) Rows() int {
	if !m.ok {
		return 0
	}
	return 3
}

// Cols reports the rendered width of the memory block's widest line.
func (m *MemoryBlock) Cols() int {
	if !m.ok {
		return 0
	}
	return m.Settings.ColWidth*8 + 7
}

func (m *MemoryBlock) Render() string {
	if !m.ok {
		return ""
	}
	w := m.Settings.ColWidth
	headings := []string{"ACTIVE", "INACTIVE", "CACHED", "FREE", "DIRTY", "W_BACK", "SWAP", "ZRAM"}

	var sb strings.Builder
	for i, h := range headings {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(format.Heading(h, w, m.Settings.Smart, false))
	}
	sb.WriteString(format.Newline(m.Settings.Smart))

	vals := []string{
		m.active.Format(w, 2),
		m.inactive.Format(w, 2),
		m.cached.Format(w, 2),
		m.free.Format(w, 2),
		m.dirty.Render(w, 2),
		m.writeback.Format(w, 2),
		m.swap.Format(w, 2),
		m.zram.Format(w, 2),
	}
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v)
	}
	sb.WriteString(format.Newline(m.Settings.Smart))
	sb.WriteString(fmt.Sprintf("%*s", m.Cols(), ""))
	sb.WriteString(format.Newline(m.Settings.Smart))
	return sb.String()
}
