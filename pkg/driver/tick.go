//go:build linux

// Package driver implements the fixed-order tick loop: probe terminal
// geometry, update every block in document order, compute the task
// block's row budget, render, and sleep out the remainder of the
// interval.
package driver

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"

	"github.com/ja7ad/hitop/pkg/blocks"
	"github.com/ja7ad/hitop/pkg/format"
	"github.com/ja7ad/hitop/pkg/layout"
)

// Driver owns the shared Settings, the fixed block set, and the
// buffered output stream, and runs the tick loop until the process is
// killed.
type Driver struct {
	Settings format.Settings

	mem     *blocks.MemoryBlock
	pres    *blocks.PressureBlock
	cpu     *blocks.CPUBlock
	net     *blocks.NetworkBlock
	bdev    *blocks.BlockDeviceBlock
	fs      *blocks.FilesystemBlock
	hwmon   *blocks.HwmonBlock
	task    *blocks.TaskBlock

	out *bufio.Writer
}

// New constructs a Driver with every stat block wired to the given
// settings.
func New(s format.Settings, w io.Writer) *Driver {
	return &Driver{
		Settings: s,
		mem:      &blocks.MemoryBlock{Settings: s},
		pres:     &blocks.PressureBlock{Settings: s},
		cpu:      blocks.NewCPUBlock(s),
		net:      blocks.NewNetworkBlock(s),
		bdev:     blocks.NewBlockDeviceBlock(s),
		fs:       &blocks.FilesystemBlock{Settings: s},
		hwmon:    blocks.NewHwmonBlock(s),
		task:     blocks.NewTaskBlock(s),
		out:      bufio.NewWriter(w),
	}
}

// Run executes the tick loop forever. It only returns on an
// unrecoverable write error; an invariant violation found when
// re-probing geometry exits the process instead.
func (d *Driver) Run() error {
	for {
		start := time.Now()

		if err := d.tick(); err != nil {
			return err
		}

		elapsed := time.Since(start)
		remaining := time.Duration(d.Settings.RefreshMS)*time.Millisecond - elapsed
		if remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (d *Driver) tick() error {
	io.WriteString(d.out, format.FrameStart(d.Settings.Smart))

	d.reprobeGeometry()
	d.rebindSettings()

	d.mem.Update()
	d.pres.Update()
	d.cpu.Update()
	d.net.Update()
	d.bdev.Update()
	d.fs.Update()
	d.hwmon.Update()

	maxTasks := d.taskBudget()
	d.task.Update(maxTasks)

	io.WriteString(d.out, d.mem.Render())
	io.WriteString(d.out, d.pres.Render())
	io.WriteString(d.out, layout.Merge(d.cpu, d.net, d.Settings.ColWidth, d.Settings.MaxCols))
	io.WriteString(d.out, layout.Merge(d.bdev, d.fs, d.Settings.ColWidth, d.Settings.MaxCols))
	io.WriteString(d.out, d.hwmon.Render())
	io.WriteString(d.out, d.task.Render())

	io.WriteString(d.out, format.FrameEnd(d.Settings.Smart))

	return d.out.Flush()
}

// taskBudget computes remaining_rows per spec §4.10/§4.12: max_rows
// minus every other block's row count and a fixed 2-row margin,
// clamped to a floor of 5.
func (d *Driver) taskBudget() int {
	mergedRows := func(a, b blocks.StatBlock) int {
		if a.Rows() == 0 {
			return b.Rows()
		}
		if b.Rows() == 0 {
			return a.Rows()
		}
		padded := a.Cols() + d.Settings.ColWidth - a.Cols()%(d.Settings.ColWidth+1)
		if padded+b.Cols() < d.Settings.MaxCols {
			if a.Rows() > b.Rows() {
				return a.Rows()
			}
			return b.Rows()
		}
		return a.Rows() + b.Rows()
	}

	used := d.mem.Rows() + d.pres.Rows() + mergedRows(d.cpu, d.net) + mergedRows(d.bdev, d.fs) + d.hwmon.Rows()
	remaining := d.Settings.MaxRows - used - 2
	if remaining < 5 {
		remaining = 5
	}
	return remaining
}

// reprobeGeometry re-reads terminal size via TIOCGWINSZ when any
// dimension is in auto mode, falling back to $LINES/$COLUMNS.
func (d *Driver) reprobeGeometry() {
	if !d.Settings.AutoMaxCols && !d.Settings.AutoMaxRows && !d.Settings.AutoColWidth {
		return
	}

	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		cols = envInt("COLUMNS", d.Settings.MaxCols)
		rows = envInt("LINES", d.Settings.MaxRows)
	}

	if d.Settings.AutoMaxCols {
		d.Settings.MaxCols = cols
	}
	if d.Settings.AutoMaxRows {
		d.Settings.MaxRows = rows
	}
	if d.Settings.AutoColWidth {
		w := d.Settings.MaxCols / 10
		if w < format.MinColWidth {
			w = format.MinColWidth
		}
		if w > 10 {
			w = 10
		}
		d.Settings.ColWidth = w
	}

	if err := d.Settings.Validate(); err != nil {
		slog.Error("invariant violation", "err", err)
		os.Exit(1)
	}
}

func envInt(name string, fallback int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// rebindSettings propagates the (possibly just re-probed) Settings to
// every block, so auto-resize takes effect on the very tick it was
// detected.
func (d *Driver) rebindSettings() {
	d.mem.Settings = d.Settings
	d.pres.Settings = d.Settings
	d.cpu.Settings = d.Settings
	d.net.Settings = d.Settings
	d.bdev.Settings = d.Settings
	d.fs.Settings = d.Settings
	d.hwmon.Settings = d.Settings
	d.task.Settings = d.Settings
}

