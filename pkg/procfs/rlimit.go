//go:build linux

package procfs

import (
	"sync"

	"golang.org/x/sys/unix"
)

var (
	fdBudgetOnce sync.Once
	fdBudget     int
)

// FDBudget returns RLIMIT_NOFILE - 10, sampled once at process start: the
// number of stat-file descriptors the task block's fd pool is allowed to
// keep open concurrently. The spec fixes this as a startup constant; a
// mid-run setrlimit is not observed.
func FDBudget() int {
	fdBudgetOnce.Do(func() {
		var rlim unix.Rlimit
		if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rlim); err != nil {
			fdBudget = 1024 - 10
			return
		}
		budget := int(rlim.Cur) - 10
		if budget < 0 {
			budget = 0
		}
		fdBudget = budget
	})
	return fdBudget
}
