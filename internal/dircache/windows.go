//go:build windows

package dircache

import (
	"io/fs"
	"os"
)

// windowsBackend lists directories portably (no raw NtQueryDirectoryFile
// parsing here) and always treats names case-insensitively at the Cache
// layer, per spec.md §6: "Root comparisons on Windows are
// case-insensitive regardless of nocase" — New forces caseSensitive to
// false to honor that for the whole tree, not just roots.
type windowsBackend struct{}

// New returns a Cache backed by Windows directory syscalls. The
// caseSensitive argument is accepted for interface symmetry with the
// POSIX/Darwin constructors but is always downgraded to false.
func New(caseSensitive bool) *Cache {
	_ = caseSensitive
	return newCache(windowsBackend{}, false)
}

func (windowsBackend) lstat(fullpath string) (fs.FileMode, uint64, uint64, error) {
	fi, err := os.Lstat(fullpath)
	if err != nil {
		return 0, 0, 0, err
	}
	// Windows exposes no stable (dev, ino) pair through os.Lstat; the
	// cache falls back to fullpath-keyed identity, which is sufficient
	// since Resolve always interns by fullpath already.
	return fi.Mode(), 0, 0, nil
}

func (windowsBackend) readdirnames(fullpath string) ([]string, error) {
	return readdirnamesPortable(fullpath)
}
