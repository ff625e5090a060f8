//go:build linux

package procfs

import (
	"strconv"
	"strings"
)

// TaskStat is the subset of /proc/<pid>/task/<tid>/stat the task block
// needs: the scheduling state letter and the jiffy counters that feed
// its CPU-share computation.
type TaskStat struct {
	State        byte
	UTime, STime uint64
	StartTime    uint64
}

// ParseTaskStat parses the content of a task's stat file. The comm
// field sits between the first '(' and the last ')' and may itself
// contain spaces or parens, so it is located by its closing paren
// rather than split on whitespace.
func ParseTaskStat(line string) (TaskStat, error) {
	line = strings.TrimRight(line, "\n")
	i := strings.LastIndex(line, ") ")
	if i < 0 {
		return TaskStat{}, ErrMalformedStat
	}
	fields := strings.Fields(line[i+2:])
	if len(fields) == 0 {
		return TaskStat{}, ErrNoStatLine
	}

	state := fields[0][0]

	get := func(idx int) uint64 {
		if idx >= len(fields) {
			return 0
		}
		v, _ := strconv.ParseUint(fields[idx], 10, 64)
		return v
	}

	return TaskStat{
		State:     state,
		UTime:     get(11),
		STime:     get(12),
		StartTime: get(19),
	}, nil
}
