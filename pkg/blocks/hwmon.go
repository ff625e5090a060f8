//go:build linux

package blocks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ja7ad/hitop/pkg/format"
)

// HwmonBlock reads /sys/class/hwmon/hwmon* temperatures (and, for
// amdgpu chips, power/VRAM) plus an optional NVML GPU feed.
type HwmonBlock struct {
	Settings format.Settings

	GPU GPUSource

	chips []hwmonChip
	gpus  []GPUReading
}

type hwmonReading struct {
	label string
	temp  format.Celsius
}

type hwmonChip struct {
	name     string
	readings []hwmonReading

	isAMDGPU  bool
	power     format.Watts
	powerCap  format.Watts
	vramUsed  format.Bytes
	vramTotal format.Bytes
}

// NewHwmonBlock returns an empty hwmon block using the process-wide GPU
// source.
func NewHwmonBlock(s format.Settings) *HwmonBlock {
	return &HwmonBlock{Settings: s, GPU: NewGPUSource()}
}

func readTrimmed(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func readMilliAsFloat(path string) (float64, bool) {
	s, ok := readTrimmed(path)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func readChip(dir string) hwmonChip {
	name, _ := readTrimmed(filepath.Join(dir, "name"))
	chip := hwmonChip{name: name}

	for i := 1; ; i++ {
		milliC, ok := readMilliAsFloat(filepath.Join(dir, fmt.Sprintf("temp%d_input", i)))
		if !ok {
			break
		}
		label, ok := readTrimmed(filepath.Join(dir, fmt.Sprintf("temp%d_label", i)))
		if !ok || label == "" {
			label = fmt.Sprintf("Temp%d", i)
		}
		chip.readings = append(chip.readings, hwmonReading{label: label, temp: format.Celsius(milliC / 1000)})
	}

	if name == "amdgpu" {
		chip.isAMDGPU = true
		if uw, ok := readMilliAsFloat(filepath.Join(dir, "power1_average")); ok {
			chip.power = format.Watts(uw / 1_000_000)
		}
		if uw, ok := readMilliAsFloat(filepath.Join(dir, "power1_cap")); ok {
			chip.powerCap = format.Watts(uw / 1_000_000)
		}
		if v, ok := readMilliAsFloat(filepath.Join(dir, "device/mem_info_vram_used")); ok {
			chip.vramUsed = format.Bytes(v)
		}
		if v, ok := readMilliAsFloat(filepath.Join(dir, "device/mem_info_vram_total")); ok {
			chip.vramTotal = format.Bytes(v)
		}
	}

	return chip
}

// Update re-reads every /sys/class/hwmon/hwmon* chip and the optional
// NVML feed.
func (h *HwmonBlock) Update() {
	dirs, _ := filepath.Glob("/sys/class/hwmon/hwmon*")
	sort.Strings(dirs)

	chips := make([]hwmonChip, 0, len(dirs))
	for _, dir := range dirs {
		chips = append(chips, readChip(dir))
	}
	h.chips = chips

	h.gpus = nil
	if h.GPU != nil && h.GPU.Available() {
		if readings, err := h.GPU.Readings(); err == nil {
			h.gpus = readings
		}
	}
}

// renderedChips returns the chips that actually produce a line: a chip
// exposing no temp readings (fan/voltage-only chips, batteries, etc.)
// is skipped entirely, matching the original tool's behaviour.
func (h *HwmonBlock) renderedChips() []hwmonChip {
	out := make([]hwmonChip, 0, len(h.chips))
	for _, c := range h.chips {
		if len(c.readings) == 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// packSmall reports whether every rendered chip has <=3 readings, in
// which case two chips are packed per rendered row.
func (h *HwmonBlock) packSmall() bool {
	for _, c := range h.renderedChips() {
		if len(c.readings) > 3 {
			return false
		}
	}
	return true
}

// Rows computes the row count per spec §4.9: two chips per row (4
// cells each) when every chip has <=3 readings, else one chip per row
// wrapping at 7 readings; one additional row per GPU reading. Chips
// with no temp readings contribute no rows.
func (h *HwmonBlock) Rows() int {
	chips := h.renderedChips()
	if len(chips) == 0 && len(h.gpus) == 0 {
		return 0
	}
	rows := 0
	if h.packSmall() {
		rows = (len(chips) + 1) / 2
	} else {
		for _, c := range chips {
			y := len(c.readings)
			rows += (y + 6) / 7 // ceil(y/7)
		}
	}
	return rows + len(h.gpus)
}

// Cols reports the rendered width of the hwmon block.
func (h *HwmonBlock) Cols() int {
	if len(h.renderedChips()) == 0 && len(h.gpus) == 0 {
		return 0
	}
	return h.Settings.ColWidth*7 + 6
}

// writeChip appends one chip's name, readings, and (for amdgpu) power/
// VRAM cells to sb, wrapping to a continuation line every 7 readings.
// It does not itself emit a trailing newline.
func (h *HwmonBlock) writeChip(sb *strings.Builder, c hwmonChip) {
	w := h.Settings.ColWidth
	sb.WriteString(format.Heading(c.name, w, h.Settings.Smart, true))
	for i, r := range c.readings {
		if i > 0 && i%7 == 0 {
			sb.WriteString(format.Newline(h.Settings.Smart))
		}
		sb.WriteByte(' ')
		sb.WriteString(format.Heading(r.label, w, h.Settings.Smart, false))
		sb.WriteByte(':')
		sb.WriteString(r.temp.Format(w, 1))
	}
	if c.isAMDGPU {
		sb.WriteByte(' ')
		sb.WriteString(c.power.Format(w, 0))
		sb.WriteByte('/')
		sb.WriteString(c.powerCap.Format(w, 0))
		sb.WriteByte(' ')
		sb.WriteString(c.vramUsed.Format(w, 2))
		sb.WriteByte('/')
		sb.WriteString(c.vramTotal.Format(w, 2))
	}
}

func (h *HwmonBlock) Render() string {
	chips := h.renderedChips()
	if len(chips) == 0 && len(h.gpus) == 0 {
		return ""
	}
	var sb strings.Builder

	if h.packSmall() {
		for i := 0; i < len(chips); i += 2 {
			h.writeChip(&sb, chips[i])
			if i+1 < len(chips) {
				sb.WriteByte(' ')
				sb.WriteByte(' ')
				h.writeChip(&sb, chips[i+1])
			}
			sb.WriteString(format.Newline(h.Settings.Smart))
		}
	} else {
		for _, c := range chips {
			h.writeChip(&sb, c)
			sb.WriteString(format.Newline(h.Settings.Smart))
		}
	}

	for _, g := range h.gpus {
		w := h.Settings.ColWidth
		sb.WriteString(format.Heading(g.Name, w, h.Settings.Smart, true))
		sb.WriteByte(' ')
		sb.WriteString(format.Celsius(g.TempC).Format(w, 1))
		sb.WriteByte(' ')
		sb.WriteString(format.Percentage(g.MemUsedPct).Format(w, 2))
		sb.WriteByte(' ')
		sb.WriteString(format.Percentage(g.LoadPct).Format(w, 2))
		sb.WriteString(format.Newline(h.Settings.Smart))
	}
	return sb.String()
}
