//go:build linux

// Package procfs provides the shared, low-overhead primitives every stat
// block uses to read /proc and /sys: clock-tick and page-size constants,
// buffer-reusing small-file reads, and the file-descriptor budget used by
// the task block's stat-file pool.
package procfs

import (
	"sync"

	sysconf "github.com/tklauser/go-sysconf"
)

var (
	clockTicksOnce sync.Once
	clockTicks     int64

	pageSizeOnce sync.Once
	pageSize     int64
)

// ClockTicks returns sysconf(_SC_CLK_TCK), the number of jiffies per
// second used to convert /proc/stat and /proc/<pid>/.../stat tick counts
// into seconds. Sampled once per process and cached: the spec treats it
// as a process-wide constant fixed at startup.
func ClockTicks() int64 {
	clockTicksOnce.Do(func() {
		v, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
		if err != nil || v <= 0 {
			v = 100
		}
		clockTicks = v
	})
	return clockTicks
}

// PageSize returns sysconf(_SC_PAGESIZE) in bytes, used to convert
// /proc/vmstat page counts into bytes.
func PageSize() int64 {
	pageSizeOnce.Do(func() {
		v, err := sysconf.Sysconf(sysconf.SC_PAGESIZE)
		if err != nil || v <= 0 {
			v = 4096
		}
		pageSize = v
	})
	return pageSize
}
