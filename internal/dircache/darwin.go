//go:build darwin

package dircache

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// darwinBackend differs from the Linux backend only in how it lists a
// directory (os.ReadDir-portable rather than raw getdents64 — Darwin's
// getdirentries64 ABI isn't worth hand-parsing here) and in its default
// case-folding, per spec.md §9: "differ only in path separator handling,
// case-folding, and UNC/drive parsing."
type darwinBackend struct{}

// New returns a Cache backed by Darwin directory syscalls. HFS+/APFS
// are case-insensitive-but-preserving by default, so callers normally
// pass caseSensitive=false here unless the volume is a case-sensitive
// APFS variant.
func New(caseSensitive bool) *Cache {
	return newCache(darwinBackend{}, caseSensitive)
}

func (darwinBackend) lstat(fullpath string) (fs.FileMode, uint64, uint64, error) {
	var st unix.Stat_t
	if err := unix.Lstat(fullpath, &st); err != nil {
		return 0, 0, 0, err
	}
	return darwinModeToFS(st.Mode), uint64(st.Dev), st.Ino, nil
}

func (darwinBackend) readdirnames(fullpath string) ([]string, error) {
	return readdirnamesPortable(fullpath)
}

func darwinModeToFS(mode uint16) fs.FileMode {
	m := fs.FileMode(mode & 0o777)
	switch uint32(mode) & unix.S_IFMT {
	case unix.S_IFDIR:
		m |= fs.ModeDir
	case unix.S_IFLNK:
		m |= fs.ModeSymlink
	case unix.S_IFIFO:
		m |= fs.ModeNamedPipe
	case unix.S_IFSOCK:
		m |= fs.ModeSocket
	case unix.S_IFCHR:
		m |= fs.ModeCharDevice
	case unix.S_IFBLK:
		m |= fs.ModeDevice
	}
	return m
}
