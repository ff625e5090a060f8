//go:build linux

package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ja7ad/hitop/pkg/driver"
	"github.com/ja7ad/hitop/pkg/format"
)

type cliFlags struct {
	colour      string
	columns     int
	rows        int
	columnWidth int
	refreshMS   int
}

func main() {
	if runtime.GOOS != "linux" {
		fatal("hitop only works by reading Linux-specific /proc and /sys interfaces")
	}

	var f cliFlags

	root := &cobra.Command{
		Use:   "hitop",
		Short: "Non-interactive Linux system monitor",
		Long: `hitop samples CPU, memory, network, block device, filesystem, pressure
and sensor state from /proc and /sys and renders one frame per tick to stdout.

* GitHub: https://github.com/ja7ad/hitop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}

	root.Flags().StringVarP(&f.colour, "colour", "c", "auto", `force colour output: "true", "false", or "auto" (derive from $TERM)`)
	root.Flags().IntVar(&f.columns, "columns", 0, "terminal column count (0 = probe)")
	root.Flags().IntVar(&f.rows, "rows", 0, "terminal row count (0 = probe)")
	root.Flags().IntVarP(&f.columnWidth, "column-width", "w", 0, "per-field column width (0 = derive from columns, clamped to [8,10])")
	root.Flags().IntVarP(&f.refreshMS, "refresh-interval", "i", 2000, "tick interval in milliseconds")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(f cliFlags) error {
	if f.refreshMS <= 0 {
		return fmt.Errorf("refresh-interval must be > 0")
	}

	settings, err := buildSettings(f)
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		fatal(err.Error())
	}

	d := driver.New(settings, os.Stdout)
	return d.Run()
}

// buildSettings resolves CLI flags against probed terminal geometry and
// environment fallbacks, per spec §6.
func buildSettings(f cliFlags) (format.Settings, error) {
	s := format.Settings{RefreshMS: uint64(f.refreshMS)}

	switch f.colour {
	case "true":
		s.Smart = true
	case "false":
		s.Smart = false
	case "auto":
		s.Smart = os.Getenv("TERM") != "dumb" && os.Getenv("TERM") != ""
	default:
		return s, fmt.Errorf("colour must be one of true, false, auto (got %q)", f.colour)
	}

	cols, rows := probeTerminalSize()

	s.MaxCols = f.columns
	s.AutoMaxCols = f.columns == 0
	if s.AutoMaxCols {
		s.MaxCols = cols
	}

	s.MaxRows = f.rows
	s.AutoMaxRows = f.rows == 0
	if s.AutoMaxRows {
		s.MaxRows = rows
	}

	s.ColWidth = f.columnWidth
	s.AutoColWidth = f.columnWidth == 0
	if s.AutoColWidth {
		w := s.MaxCols / 10
		if w < format.MinColWidth {
			w = format.MinColWidth
		}
		if w > 10 {
			w = 10
		}
		s.ColWidth = w
	}

	return s, nil
}

func probeTerminalSize() (cols, rows int) {
	if c, r, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return c, r
	}
	return envIntDefault("COLUMNS", 80), envIntDefault("LINES", 24)
}

func envIntDefault(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil || n <= 0 {
		return fallback
	}
	return n
}

// fatal logs an invariant-violation diagnostic and aborts, matching
// spec §7's "Invariant violation" error class.
func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
