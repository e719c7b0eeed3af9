//go:build linux

package dircache

import (
	"io/fs"
	"unsafe"

	"golang.org/x/sys/unix"
)

// linuxBackend reads directories with raw getdents64, grounded directly
// on the teacher's internal/walker/dirent.go parser — adapted here to
// return bare child names (stat is performed lazily per Entry, not
// eagerly per dirent, since the Processor only needs to know an entry
// exists, not its type, until match time).
type linuxBackend struct{}

// New returns a Cache backed by raw Linux directory-entry syscalls.
// caseSensitive should normally be true on Linux filesystems; pass false
// to match a case-insensitive mount (e.g. a mounted exFAT/NTFS volume).
func New(caseSensitive bool) *Cache {
	return newCache(linuxBackend{}, caseSensitive)
}

func (linuxBackend) lstat(fullpath string) (fs.FileMode, uint64, uint64, error) {
	var st unix.Stat_t
	if err := unix.Lstat(fullpath, &st); err != nil {
		return 0, 0, 0, err
	}
	return unixModeToFS(st.Mode), uint64(st.Dev), st.Ino, nil
}

func (linuxBackend) readdirnames(fullpath string) ([]string, error) {
	fd, err := unix.Open(fullpath, unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return nil, err
	}
	defer unix.Close(fd)

	var names []string
	buf := make([]byte, 32*1024)
	for {
		n, err := unix.Getdents(fd, buf)
		if err != nil {
			return names, err
		}
		if n == 0 {
			break
		}
		names = parseDirentNames(buf[:n], names)
	}
	return names, nil
}

// parseDirentNames parses raw getdents64 output, skipping "." and "..".
// Layout mirrors linux_dirent64 as in the teacher's dirent.go.
func parseDirentNames(buf []byte, dst []string) []string {
	offset := 0
	n := len(buf)
	for offset < n {
		if offset+19 > n {
			break
		}
		reclen := *(*uint16)(unsafe.Pointer(&buf[offset+16]))
		if reclen == 0 {
			break
		}
		nameStart := offset + 19
		nameEnd := offset + int(reclen)
		if nameEnd > n {
			nameEnd = n
		}
		nameBytes := buf[nameStart:nameEnd]
		nameLen := 0
		for nameLen < len(nameBytes) && nameBytes[nameLen] != 0 {
			nameLen++
		}
		name := string(nameBytes[:nameLen])
		if name != "." && name != ".." {
			dst = append(dst, name)
		}
		offset += int(reclen)
	}
	return dst
}

func unixModeToFS(mode uint32) fs.FileMode {
	m := fs.FileMode(mode & 0o777)
	switch mode & unix.S_IFMT {
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
