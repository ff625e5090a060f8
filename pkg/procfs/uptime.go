//go:build linux

package procfs

import (
	"os"
	"strconv"
	"strings"
)

// ReadUptimeSeconds reads /proc/uptime and returns the first field:
// seconds since boot, as a float (the kernel reports two decimal
// digits).
func ReadUptimeSeconds() (float64, error) {
	b, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(b))
	if len(fields) == 0 {
		return 0, ErrShortFields
	}
	return strconv.ParseFloat(fields[0], 64)
}
