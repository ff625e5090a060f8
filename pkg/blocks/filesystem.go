//go:build linux

package blocks

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ja7ad/hitop/pkg/format"
	"golang.org/x/sys/unix"
)

// FilesystemBlock enumerates /proc/self/mountstats and reports
// size/used/avail per retained mountpoint via statfs.
type FilesystemBlock struct {
	Settings format.Settings

	mounts []fsMount
}

type fsMount struct {
	device, mountpoint string
}

var mountstatsLine = regexp.MustCompile(`^device (\S+) mounted on (\S+) with fstype (\S+)`)

func readMountstats() ([]fsMount, error) {
	f, err := os.Open("/proc/self/mountstats")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seen := make(map[string]bool)
	var out []fsMount
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		m := mountstatsLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		device, mountpoint := m[1], m[2]
		if !strings.HasPrefix(device, "/") {
			continue
		}
		if seen[device] {
			continue
		}
		seen[device] = true
		out = append(out, fsMount{device: device, mountpoint: mountpoint})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].mountpoint < out[j].mountpoint })
	return out, sc.Err()
}

// Update re-enumerates /proc/self/mountstats.
func (fsb *FilesystemBlock) Update() {
	mounts, err := readMountstats()
	if err != nil {
		fsb.mounts = nil
		return
	}
	fsb.mounts = mounts
}

// Rows reports 2+N when N filesystems are retained, 0 otherwise.
func (fsb *FilesystemBlock) Rows() int {
	if len(fsb.mounts) == 0 {
		return 0
	}
	return 2 + len(fsb.mounts)
}

// Cols reports the rendered width of the filesystem block.
func (fsb *FilesystemBlock) Cols() int {
	if len(fsb.mounts) == 0 {
		return 0
	}
	return fsb.Settings.ColWidth*4 + 3
}

func (fsb *FilesystemBlock) Render() string {
	if len(fsb.mounts) == 0 {
		return ""
	}
	w := fsb.Settings.ColWidth
	var sb strings.Builder

	sb.WriteString(format.Heading("FS", w, fsb.Settings.Smart, true))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("USED%", w, fsb.Settings.Smart, false))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("USED", w, fsb.Settings.Smart, false))
	sb.WriteByte(' ')
	sb.WriteString(format.Heading("AVAIL", w, fsb.Settings.Smart, false))
	sb.WriteString(format.Newline(fsb.Settings.Smart))

	for _, m := range fsb.mounts {
		var st unix.Statfs_t
		var size, avail format.Bytes
		var usedPct format.Threshold[format.Percentage]
		usedPct = format.Threshold[format.Percentage]{Med: 80, High: 90, Crit: 95, Smart: fsb.Settings.Smart}
		if err := unix.Statfs(m.mountpoint, &st); err == nil {
			size = format.Bytes(uint64(st.Blocks) * uint64(st.Frsize))
			avail = format.Bytes(uint64(st.Bavail) * uint64(st.Bsize))
			if size > 0 {
				used := size - avail
				usedPct.Val = format.Percentage(100 * float64(used) / float64(size))
			}
		}

		label := filepath.Base(m.mountpoint)
		if m.mountpoint == "/" {
			label = "/"
		}
		sb.WriteString(fmt.Sprintf("%-*s", w, label))
		sb.WriteByte(' ')
		sb.WriteString(usedPct.Render(w, 2))
		sb.WriteByte(' ')
		sb.WriteString((size - avail).Format(w, 2))
		sb.WriteByte(' ')
		sb.WriteString(avail.Format(w, 2))
		sb.WriteString(format.Newline(fsb.Settings.Smart))
	}
	sb.WriteString(format.Newline(fsb.Settings.Smart))
	return sb.String()
}
