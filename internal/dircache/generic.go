//go:build !linux && !darwin && !windows

package dircache

import (
	"io/fs"
	"os"
)

// genericBackend is a portable fallback (stdlib os.Lstat/Readdirnames)
// for BSD and other POSIX-ish platforms the pack didn't target
// explicitly. It behaves like the POSIX backend (case-sensitive by
// default).
type genericBackend struct{}

// New returns a Cache backed by the standard library's filesystem calls.
func New(caseSensitive bool) *Cache {
	return newCache(genericBackend{}, caseSensitive)
}

func (genericBackend) lstat(fullpath string) (fs.FileMode, uint64, uint64, error) {
	fi, err := os.Lstat(fullpath)
	if err != nil {
		return 0, 0, 0, err
	}
	return fi.Mode(), 0, 0, nil
}

func (genericBackend) readdirnames(fullpath string) ([]string, error) {
	return readdirnamesPortable(fullpath)
}
