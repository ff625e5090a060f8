//go:build linux

package procfs

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// CPUTicks holds the jiffy counters tracked per logical CPU (and for the
// aggregate "cpu" line): the sum of the first five /proc/stat fields,
// kept individually so per-category usage can be derived.
type CPUTicks struct {
	User, Nice, System, IOWait, Idle uint64
	Total                            uint64
}

func parseCPUFields(fields []string) (CPUTicks, error) {
	if len(fields) < 5 {
		return CPUTicks{}, ErrShortFields
	}
	var vals [5]uint64
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseUint(fields[i], 10, 64)
		if err != nil {
			return CPUTicks{}, err
		}
		vals[i] = v
	}
	// /proc/stat field order is user, nice, system, idle, iowait, ...
	t := CPUTicks{User: vals[0], Nice: vals[1], System: vals[2], Idle: vals[3], IOWait: vals[4]}
	t.Total = t.User + t.Nice + t.System + t.IOWait + t.Idle
	return t, nil
}

// ReadCPUStat reads /proc/stat and returns the aggregate "cpu" line's
// ticks plus a map of per-core ticks keyed by logical CPU id, parsed
// from the "cpuN" lines.
func ReadCPUStat() (aggregate CPUTicks, perCore map[int]CPUTicks, err error) {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return CPUTicks{}, nil, err
	}
	defer f.Close()

	perCore = make(map[int]CPUTicks)
	haveAggregate := false

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "cpu") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		label := fields[0]
		if label == "cpu" {
			t, perr := parseCPUFields(fields[1:])
			if perr != nil {
				continue
			}
			aggregate = t
			haveAggregate = true
			continue
		}
		idStr := strings.TrimPrefix(label, "cpu")
		id, cerr := strconv.Atoi(idStr)
		if cerr != nil {
			continue
		}
		t, perr := parseCPUFields(fields[1:])
		if perr != nil {
			continue
		}
		perCore[id] = t
	}
	if err := sc.Err(); err != nil {
		return CPUTicks{}, nil, err
	}
	if !haveAggregate {
		return CPUTicks{}, nil, ErrNoCPULine
	}
	return aggregate, perCore, nil
}
