//go:build linux

package blocks

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ja7ad/hitop/pkg/format"
)

// pressureResource names one of /proc/pressure/{cpu,memory,io} and the
// some/full column pair it feeds in the rendered grid.
type pressureResource struct {
	file             string
	someCol, fullCol int
}

var pressureResources = []pressureResource{
	{file: "cpu", someCol: 0, fullCol: 1},
	{file: "memory", someCol: 2, fullCol: 3},
	{file: "io", someCol: 4, fullCol: 5},
}

var pressureColHeadings = []string{"SOME_CPU", "FULL_CPU", "SOME_MEM", "FULL_MEM", "SOME_IO", "FULL_IO"}

// PressureBlock reads /proc/pressure/{cpu,memory,io} into a fixed 3x6
// grid: one row per avg window (avg10/avg60/avg300), one column per
// (resource, some|full) pair. A resource whose file can't be read
// leaves its two columns at zero; the block renders empty only when
// none of the three files are present (PSI unsupported by the kernel).
type PressureBlock struct {
	Settings format.Settings

	cells   [3][6]format.Percentage
	present bool
}

func newDefaultPressureCell() format.Threshold[format.Percentage] {
	return format.Threshold[format.Percentage]{Med: 1, High: 5, Crit: 10}
}

// parsePSILine parses one /proc/pressure/* line of form
// "some|full avg10=X avg60=Y avg300=Z total=T" and reports which
// column group it belongs to plus its three averages. ok is false for
// a line that is neither a "some" nor a "full" row.
func parsePSILine(line string) (kind string, avg10, avg60, avg300 float64, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", 0, 0, 0, false
	}
	switch fields[0] {
	case "some", "full":
		kind = fields[0]
	default:
		return "", 0, 0, 0, false
	}
	for _, tok := range fields[1:] {
		key, val, found := strings.Cut(tok, "=")
		if !found {
			continue
		}
		v, perr := strconv.ParseFloat(val, 64)
		if perr != nil {
			continue
		}
		switch key {
		case "avg10":
			avg10 = v
		case "avg60":
			avg60 = v
		case "avg300":
			avg300 = v
		}
	}
	return kind, avg10, avg60, avg300, true
}

// Update re-reads /proc/pressure/{cpu,memory,io}.
func (p *PressureBlock) Update() {
	p.cells = [3][6]format.Percentage{}
	p.present = false

	for _, res := range pressureResources {
		f, err := os.Open("/proc/pressure/" + res.file)
		if err != nil {
			continue
		}
		p.present = true
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			kind, avg10, avg60, avg300, ok := parsePSILine(sc.Text())
			if !ok {
				continue
			}
			col := res.someCol
			if kind == "full" {
				col = res.fullCol
			}
			p.cells[0][col] = format.Percentage(avg10)
			p.cells[1][col] = format.Percentage(avg60)
			p.cells[2][col] = format.Percentage(avg300)
		}
		f.Close()
	}
}

// Rows reports 4 (header + 3 avg rows) when any pressure file is
// present, 0 otherwise.
func (p *PressureBlock) Rows() int {
	if !p.present {
		return 0
	}
	return 4
}

// Cols reports the rendered width of the pressure grid: a label column
// plus 6 value columns.
func (p *PressureBlock) Cols() int {
	if !p.present {
		return 0
	}
	return p.Settings.ColWidth*7 + 6
}

func (p *PressureBlock) Render() string {
	if !p.present {
		return ""
	}
	w := p.Settings.ColWidth
	var sb strings.Builder

	sb.WriteString(format.Heading("PSI", w, p.Settings.Smart, false))
	for _, h := range pressureColHeadings {
		sb.WriteByte(' ')
		sb.WriteString(format.Heading(h, w, p.Settings.Smart, false))
	}
	sb.WriteString(format.Newline(p.Settings.Smart))

	avgLabels := []string{"avg10", "avg60", "avg300"}
	for i, label := range avgLabels {
		sb.WriteString(fmt.Sprintf("%*s", w, label))
		for _, v := range p.cells[i] {
			th := newDefaultPressureCell()
			th.Val = v
			th.Smart = p.Settings.Smart
			sb.WriteByte(' ')
			sb.WriteString(th.Render(w, 2))
		}
		sb.WriteString(format.Newline(p.Settings.Smart))
	}
	return sb.String()
}
