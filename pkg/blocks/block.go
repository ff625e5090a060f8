// Package blocks implements the eight independently-updated stat
// blocks: memory, pressure, cpu, network, blockdev, filesystem, hwmon
// and task. All but the task block satisfy StatBlock, so the layout
// engine and tick driver can compose them without knowing their
// internals; the task block's Update takes the row budget as an
// argument.
package blocks

// StatBlock is the capability every block exposes to the driver and
// layout engine. Blocks are composed statically (a fixed field in the
// driver), not through a plugin registry — there is no need for
// dynamic dispatch over the block set.
type StatBlock interface {
	// Update re-reads the block's sources and refreshes internal state.
	// I/O failure is swallowed; the block's previous state (or an empty
	// render) is kept.
	Update()

	// Rows reports the number of lines Render will produce. A block
	// with nothing to show reports 0, and Cols()==0 iff Rows()==0.
	Rows() int

	// Cols reports the rendered width in characters of the block's
	// widest line.
	Cols() int

	// Render returns the block's current frame content, newline
	// terminated per row.
	Render() string
}
