package procfs

import "errors"

var (
	// ErrNoCPULine indicates /proc/stat had no aggregate "cpu" line.
	ErrNoCPULine = errors.New("procfs: no cpu line")

	// ErrShortFields indicates a pseudo-file had fewer whitespace fields
	// than the parser needed.
	ErrShortFields = errors.New("procfs: short field list")

	// ErrNoStatLine indicates a /proc/<pid>/task/<tid>/stat line had no
	// fields after the comm field.
	ErrNoStatLine = errors.New("procfs: empty stat line")

	// ErrMalformedStat indicates the ") " separator that ends the comm
	// field could not be found.
	ErrMalformedStat = errors.New("procfs: malformed stat line")
)
