//go:build linux

package blocks

import (
	"container/heap"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ja7ad/hitop/pkg/format"
	"github.com/ja7ad/hitop/pkg/procfs"
	"github.com/mattn/go-runewidth"
)

// TaskBlock walks /proc/*/task/*, ranks tasks by TaskSort, and renders
// the top max_tasks entries each tick.
type TaskBlock struct {
	Settings format.Settings

	entries map[int]*taskEntry
	order   []int // rendered tids this tick, in display order

	uptimeReader procfs.Reader
	lastUptime   float64
	lastReadAt   time.Time
}

type taskEntry struct {
	cached *procfs.CachedStat

	prevJiffies, curJiffies uint64
	prevUptime, curUptime   float64
	state                   byte
	cpuPct                  uint8
	stale                   bool
	seen                    bool

	comm    string
	cmdline string
}

// NewTaskBlock returns an empty task block.
func NewTaskBlock(s format.Settings) *TaskBlock {
	return &TaskBlock{Settings: s, entries: make(map[int]*taskEntry)}
}

// taskState maps a /proc stat state letter to the {S,R,D,Z,T,I,?} set
// the block reasons about; anything unrecognised degrades to '?'.
func taskState(b byte) byte {
	switch b {
	case 'S', 'R', 'D', 'Z', 'T':
		return b
	case 'I':
		return 'I'
	default:
		return '?'
	}
}

// sampledUptimeJiffies returns /proc/uptime's value converted to
// jiffies as of now. If the read fails, the last successful reading is
// extrapolated by the wall-clock time elapsed since it was taken.
func (tb *TaskBlock) sampledUptimeJiffies(now time.Time) float64 {
	secs, err := procfs.ReadUptimeSeconds()
	if err != nil {
		secs = tb.lastUptime
	} else {
		tb.lastUptime = secs
		tb.lastReadAt = now
	}
	elapsedMs := float64(now.Sub(tb.lastReadAt).Milliseconds())
	return secs*float64(procfs.ClockTicks()) + elapsedMs*float64(procfs.ClockTicks())/1000
}

func walkTaskDirs() []string {
	dirs, _ := filepath.Glob("/proc/[0-9]*/task/[0-9]*")
	return dirs
}

func parseTidFromPath(dir string) (int, bool) {
	tid, err := strconv.Atoi(filepath.Base(dir))
	if err != nil {
		return 0, false
	}
	return tid, true
}

func readCmdline(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.TrimRight(string(b), "\x00"), "\x00")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\x00")
}

// formatCmdline applies the argv0-vs-comm prefix rule, quotes args
// containing spaces (escaping embedded single quotes), and truncates
// to maxWidth display columns.
func formatCmdline(comm, cmdlineNul string, maxWidth int) string {
	args := strings.Split(cmdlineNul, "\x00")
	if len(args) == 1 && args[0] == "" {
		args = nil
	}

	var head string
	var rest []string
	if len(args) > 0 {
		base := filepath.Base(args[0])
		if strings.HasPrefix(base, comm) {
			head = base
		} else {
			head = fmt.Sprintf("(%s) %s", comm, base)
		}
		rest = args[1:]
	} else {
		head = fmt.Sprintf("(%s)", comm)
	}

	var sb strings.Builder
	sb.WriteString(head)
	for _, a := range rest {
		sb.WriteByte(' ')
		if strings.ContainsRune(a, ' ') {
			escaped := strings.ReplaceAll(a, "'", "\\'")
			sb.WriteByte('\'')
			sb.WriteString(escaped)
			sb.WriteByte('\'')
		} else {
			sb.WriteString(a)
		}
	}

	s := format.SanitizeUTF8(sb.String())
	return runewidth.Truncate(s, maxWidth, "")
}

// Update re-walks /proc/*/task/*, refreshing every entry's jiffy
// counters and computing this tick's CPU share.
func (tb *TaskBlock) Update(maxTasks int) {
	now := time.Now()
	uptimeJ := tb.sampledUptimeJiffies(now)

	seen := make(map[int]bool)
	liveFds := 0
	for _, e := range tb.entries {
		if e.cached != nil {
			liveFds++
		}
	}
	budget := procfs.FDBudget()

	for _, dir := range walkTaskDirs() {
		tid, ok := parseTidFromPath(dir)
		if !ok {
			continue
		}

		var raw string
		var err error
		e, existed := tb.entries[tid]
		if !existed {
			e = &taskEntry{}
			tb.entries[tid] = e
		}

		statPath := filepath.Join(dir, "stat")
		if e.cached != nil {
			raw, err = e.cached.Read()
		} else if liveFds < budget {
			if cs, cerr := procfs.OpenCachedStat(statPath); cerr == nil {
				e.cached = cs
				liveFds++
				raw, err = e.cached.Read()
			} else {
				raw, err = tb.uptimeReader.ReadFile(statPath)
			}
		} else {
			raw, err = tb.uptimeReader.ReadFile(statPath)
		}
		if err != nil {
			continue // ENOENT (task exited) or transient failure: skip
		}

		st, perr := procfs.ParseTaskStat(raw)
		if perr != nil {
			continue
		}

		seen[tid] = true
		e.seen = true
		e.state = taskState(st.State)

		// Adjust the tick's uptime sample by the wall time elapsed since
		// it was read, so each task's uptime matches when its stat was read.
		taskUptime := uptimeJ + float64(time.Since(now).Milliseconds())*float64(procfs.ClockTicks())/1000

		used := st.UTime + st.STime
		if !existed {
			e.prevJiffies = st.StartTime
			e.prevUptime = taskUptime
			e.curJiffies = used
			e.curUptime = taskUptime
			e.cpuPct = 0
		} else {
			e.prevJiffies, e.curJiffies = e.curJiffies, used
			e.prevUptime, e.curUptime = e.curUptime, taskUptime
			if e.prevUptime < e.curUptime && e.curJiffies >= e.prevJiffies {
				share := 100 * float64(e.curJiffies-e.prevJiffies) / (e.curUptime - e.prevUptime)
				if share < 0 {
					share = 0
				}
				if share > 255 {
					share = 255
				}
				e.cpuPct = uint8(share)
			}
		}

		comm := ""
		if b, rerr := os.ReadFile(filepath.Join(dir, "comm")); rerr == nil {
			comm = strings.TrimRight(string(b), "\n")
		}
		e.comm = comm
		e.cmdline = readCmdline(filepath.Join(dir, "cmdline"))
	}

	for tid, e := range tb.entries {
		if !seen[tid] {
			if e.cached != nil {
				e.cached.Close()
			}
			delete(tb.entries, tid)
		}
	}

	tb.order = tb.selectTop(maxTasks)
}

// TaskSort orders tasks for top-K selection: Uninterruptible ('D')
// dominates every other state, otherwise ties break on CPU%.
type TaskSort struct {
	tid   int
	state byte
	cpu   uint8
}

func (a TaskSort) less(b TaskSort) bool {
	aD := a.state == 'D'
	bD := b.state == 'D'
	if aD != bD {
		return !aD // a "less" (lower priority) when a is not D but b is
	}
	return a.cpu < b.cpu
}

type taskHeap []TaskSort

func (h taskHeap) Len() int            { return len(h) }
func (h taskHeap) Less(i, j int) bool  { return h[i].less(h[j]) } // min-heap by priority-ascending
func (h taskHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x interface{}) { *h = append(*h, x.(TaskSort)) }
func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// selectTop keeps the k highest-priority tasks using a bounded
// min-heap: anything below the current floor is dropped in O(log k)
// instead of sorting the full task list every tick.
func (tb *TaskBlock) selectTop(k int) []int {
	if k <= 0 {
		return nil
	}
	h := &taskHeap{}
	heap.Init(h)
	for tid, e := range tb.entries {
		if !e.seen {
			continue
		}
		ts := TaskSort{tid: tid, state: e.state, cpu: e.cpuPct}
		if h.Len() < k {
			heap.Push(h, ts)
			continue
		}
		if (*h)[0].less(ts) {
			heap.Pop(h)
			heap.Push(h, ts)
		}
	}

	out := make([]TaskSort, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(TaskSort)
	}

	tids := make([]int, 0, len(out))
	for _, ts := range out {
		if ts.state != 'D' && ts.cpu == 0 {
			break // sleeping-at-zero acts as a terminator once popped
		}
		tids = append(tids, ts.tid)
	}
	return tids
}

// Rows reports 1 + len(order): a header plus one line per rendered
// task, even when order is empty (the header always renders).
func (tb *TaskBlock) Rows() int {
	return 1 + len(tb.order)
}

// Cols reports the rendered width of the task block.
func (tb *TaskBlock) Cols() int {
	return tb.Settings.MaxCols
}

func (tb *TaskBlock) Render() string {
	w := tb.Settings.ColWidth
	var sb strings.Builder

	sb.WriteString(format.Heading("PID", 7, tb.Settings.Smart, false))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("S", 1, tb.Settings.Smart, false))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("CPU%", 4, tb.Settings.Smart, false))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("COMMAND", w, tb.Settings.Smart, true))
	sb.WriteString(format.Newline(tb.Settings.Smart))

	maxCmdWidth := tb.Settings.MaxCols - w - 8
	if maxCmdWidth < 0 {
		maxCmdWidth = 0
	}

	for _, tid := range tb.order {
		e, ok := tb.entries[tid]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%7d %c %3d%% %s", tid, e.state, e.cpuPct, formatCmdline(e.comm, e.cmdline, maxCmdWidth))
		sb.WriteString(format.Newline(tb.Settings.Smart))
	}
	return sb.String()
}
