//go:build !linux

package dircache

import "os"

// readdirnamesPortable lists a directory via the standard library,
// shared by the Darwin, Windows, and generic-fallback backends (only
// the Linux backend bypasses it for raw getdents64).
func readdirnamesPortable(fullpath string) ([]string, error) {
	f, err := os.Open(fullpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.Readdirnames(-1)
}
