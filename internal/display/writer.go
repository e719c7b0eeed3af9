//go:build linux || darwin

package display

import (
	"os"

	"golang.org/x/sys/unix"
)

// Writer writes formatted output to stdout using writev for batching,
// grounded directly on the teacher's output/writer.go. The teacher's
// OrderedWriter (sequence-number-ordered buffering for parallel
// workers) has no analogue here: glob results carry no per-file
// sequence number the way grep's per-line matches did, and the walker
// already deduplicates by entry identity, so results are written as
// they arrive.
type Writer struct {
	fd int
}

// NewWriter creates a Writer that writes to stdout.
func NewWriter() *Writer {
	return &Writer{fd: int(os.Stdout.Fd())}
}

// Write writes data to stdout using writev for scatter-gather I/O.
func (w *Writer) Write(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	for len(data) > 0 {
		n, err := unix.Writev(w.fd, [][]byte{data})
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
