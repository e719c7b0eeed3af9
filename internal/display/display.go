// Package display formats walk results for the cmd/globwalk CLI. It
// replaces the teacher's internal/output package, which formatted
// matched lines of file content: the line-number, match-highlighting,
// count-only, and sequence-ordering machinery built for that have no
// analogue here, since a glob match is a whole path, not a position
// within a file. What survives is the teacher's shape — a Formatter
// interface, a writev-batched Writer, and lipgloss-based optional
// color — repurposed to print paths instead of lines.
package display

// Entry is one result to print: a path plus enough metadata to color
// and, if requested, annotate it. It is deliberately independent of
// both internal/walker and the root package's Result, so the CLI is
// the only place that adapts one into the other.
type Entry struct {
	Path          string
	IsDir         bool
	IsSymlink     bool
	WithFileTypes bool
}

// Formatter formats a single Entry into bytes for output. buf is a
// reusable buffer — implementations append to it and return the result,
// mirroring the teacher's Formatter contract so callers can pass
// buf[:0] across calls without reallocating.
type Formatter interface {
	Format(buf []byte, e Entry) []byte
}
