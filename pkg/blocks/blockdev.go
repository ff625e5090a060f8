//go:build linux

package blocks

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ja7ad/hitop/pkg/format"
	"github.com/ja7ad/hitop/pkg/sample"
)

const sectorSize = 512

// BlockDeviceBlock tracks per-disk read/write byte rates and weighted
// request-time pressure from /proc/diskstats.
type BlockDeviceBlock struct {
	Settings format.Settings

	// ExcludePrefixes names device-name prefixes to skip entirely
	// (defaults to {"dm-", "loop"}), resolving spec.md §9's bind-mount/
	// LVM filtering open question as an explicit, caller-adjustable
	// policy rather than a hardcoded pair.
	ExcludePrefixes []string

	tracker *sample.Tracker[string, bdevEntry]
	names   []string
}

type bdevEntry struct {
	readBytes, writtenBytes sample.Pair
	weightedMs              sample.Pair
	fresh                   bool
}

// NewBlockDeviceBlock returns an empty block-device block with the
// default dm-/loop exclusion policy.
func NewBlockDeviceBlock(s format.Settings) *BlockDeviceBlock {
	return &BlockDeviceBlock{
		Settings:        s,
		ExcludePrefixes: []string{"dm-", "loop"},
		tracker:         sample.NewTracker[string, bdevEntry](),
	}
}

type diskStatLine struct {
	name           string
	sectorsRead    uint64
	sectorsWritten uint64
	weightedMs     uint64
}

func parseDiskStatsLine(line string) (diskStatLine, bool) {
	fields := strings.Fields(line)
	if len(fields) < 14 {
		return diskStatLine{}, false
	}
	name := fields[2]
	sectorsRead, err1 := strconv.ParseUint(fields[5], 10, 64)
	sectorsWritten, err2 := strconv.ParseUint(fields[9], 10, 64)
	weighted, err3 := strconv.ParseUint(fields[13], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return diskStatLine{}, false
	}
	return diskStatLine{name: name, sectorsRead: sectorsRead, sectorsWritten: sectorsWritten, weightedMs: weighted}, true
}

func (b *BlockDeviceBlock) excluded(name string) bool {
	for _, p := range b.ExcludePrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// isPartitionOf reports whether name looks like a partition of a device
// already seen: name ends in a digit and the map already contains name
// minus its trailing character.
func isPartitionOf(name string, seen map[string]bool) bool {
	if name == "" {
		return false
	}
	last := rune(name[len(name)-1])
	if !unicode.IsDigit(last) {
		return false
	}
	return seen[name[:len(name)-1]]
}

// Update re-reads /proc/diskstats, filtering excluded prefixes and
// partitions of an already-seen base device.
func (b *BlockDeviceBlock) Update() {
	f, err := os.Open("/proc/diskstats")
	if err != nil {
		return
	}
	defer f.Close()

	now := time.Now()
	seen := make(map[string]bool)
	b.tracker.Begin()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line, ok := parseDiskStatsLine(sc.Text())
		if !ok || b.excluded(line.name) {
			continue
		}
		if isPartitionOf(line.name, seen) {
			continue
		}
		seen[line.name] = true

		e, fresh := b.tracker.Observe(line.name)
		e.fresh = fresh
		e.readBytes.Observe(line.sectorsRead*sectorSize, now)
		e.writtenBytes.Observe(line.sectorsWritten*sectorSize, now)
		e.weightedMs.Observe(line.weightedMs, now)
	}
	f.Close()
	b.tracker.Sweep()
	b.names = b.tracker.Keys(func(a, c string) bool { return a < c })
}

// Rows reports 2+N when N devices are present, 0 otherwise.
func (b *BlockDeviceBlock) Rows() int {
	if len(b.names) == 0 {
		return 0
	}
	return 2 + len(b.names)
}

// Cols reports the rendered width of the block-device block.
func (b *BlockDeviceBlock) Cols() int {
	if len(b.names) == 0 {
		return 0
	}
	return b.Settings.ColWidth*4 + 3
}

func (b *BlockDeviceBlock) Render() string {
	if len(b.names) == 0 {
		return ""
	}
	w := b.Settings.ColWidth
	var sb strings.Builder

	sb.WriteString(format.Heading("DEVICE", w, b.Settings.Smart, true))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("READ/s", w, b.Settings.Smart, false))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("WRITE/s", w, b.Settings.Smart, false))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("PRESSURE", w, b.Settings.Smart, false))
	sb.WriteString(format.Newline(b.Settings.Smart))

	for _, name := range b.names {
		e, ok := b.tracker.Get(name)
		if !ok {
			continue
		}
		var readRate, writeRate format.Bytes
		pressure := format.Threshold[format.Percentage]{Med: 50, High: 80, Crit: 200, Smart: b.Settings.Smart}
		if !e.fresh && e.readBytes.ElapsedMs() > 0 {
			readRate = format.Bytes(sample.Rate(sample.SaturatingSub(e.readBytes.Cur, e.readBytes.Prev), e.readBytes.ElapsedMs()))
			writeRate = format.Bytes(sample.Rate(sample.SaturatingSub(e.writtenBytes.Cur, e.writtenBytes.Prev), e.writtenBytes.ElapsedMs()))
			dWtd := sample.SaturatingSub(e.weightedMs.Cur, e.weightedMs.Prev)
			pressure.Val = format.Percentage(100 * sample.Rate(dWtd, e.weightedMs.ElapsedMs()) / 1000)
		}
		sb.WriteString(fmt.Sprintf("%-*s", w, name))
		sb.WriteByte(' ')
		sb.WriteString(readRate.Format(w, 2))
		sb.WriteByte(' ')
		sb.WriteString(writeRate.Format(w, 2))
		sb.WriteByte(' ')
		sb.WriteString(pressure.Render(w, 2))
		sb.WriteString(format.Newline(b.Settings.Smart))
	}
	sb.WriteString(format.Newline(b.Settings.Smart))
	return sb.String()
}
