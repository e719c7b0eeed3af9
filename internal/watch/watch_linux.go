//go:build linux

// Package watch implements the optional cache-invalidation watcher
// SPEC_FULL.md's supplemented features describe: watching a set of root
// directories and invalidating a DirCache's memoized listings when they
// change, so a long-lived Cache (e.g. reused across repeated walks)
// degrades to re-reading changed directories instead of serving stale
// listings forever.
//
// Grounded directly on the teacher's internal/watch/watch.go raw
// inotify+epoll watcher, adapted from "read new log lines on file
// modify" to "invalidate a directory's cached listing on any change
// within it" — the per-file offset tracking and ReadNew are dropped
// since a glob walk only cares that a directory changed, not what
// changed within a regular file.
package watch

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/dl/globwalk/internal/dircache"
)

// CacheWatcher watches a set of directories and invalidates their
// listings in a Cache when the kernel reports a change.
type CacheWatcher struct {
	cache     *dircache.Cache
	inotifyFd int
	epollFd   int
	watches   map[int]string // wd -> watched directory path
	changed   chan string
}

// New creates a CacheWatcher bound to cache. Call Add for each directory
// worth watching, then Run to start invalidating.
func New(cache *dircache.Cache) (*CacheWatcher, error) {
	ifd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, fmt.Errorf("inotify_init1: %w", err)
	}

	efd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		unix.Close(ifd)
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}

	event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(ifd)}
	if err := unix.EpollCtl(efd, unix.EPOLL_CTL_ADD, ifd, &event); err != nil {
		unix.Close(efd)
		unix.Close(ifd)
		return nil, fmt.Errorf("epoll_ctl: %w", err)
	}

	return &CacheWatcher{
		cache:     cache,
		inotifyFd: ifd,
		epollFd:   efd,
		watches:   make(map[int]string),
		changed:   make(chan string, 16),
	}, nil
}

// Changed reports the watched directory each time it is invalidated.
// Sends are non-blocking: a caller not currently receiving misses
// intermediate notifications, but the Cache itself is never stale for
// longer than the next ListDir call.
func (w *CacheWatcher) Changed() <-chan string {
	return w.changed
}

// Add registers path (a directory) for invalidation watching.
func (w *CacheWatcher) Add(path string) error {
	mask := uint32(unix.IN_CREATE | unix.IN_DELETE | unix.IN_MOVED_TO | unix.IN_MOVED_FROM | unix.IN_ATTRIB)
	wd, err := unix.InotifyAddWatch(w.inotifyFd, path, mask)
	if err != nil {
		return fmt.Errorf("inotify_add_watch %s: %w", path, err)
	}
	w.watches[wd] = path
	return nil
}

// Run blocks, invalidating the Cache's listing for each watched
// directory as change events arrive, until ctx is cancelled or Close is
// called.
func (w *CacheWatcher) Run(ctx context.Context) error {
	buf := make([]byte, 4096)
	events := make([]unix.EpollEvent, 1)

	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := unix.EpollWait(w.epollFd, events, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("epoll_wait: %w", err)
		}
		if n == 0 {
			continue
		}

		nbytes, err := unix.Read(w.inotifyFd, buf)
		if err != nil {
			if err == unix.EAGAIN {
				continue
			}
			return fmt.Errorf("read inotify: %w", err)
		}
		w.invalidateFromEvents(buf[:nbytes])
	}
}

// inotify event header layout:
//
//	int32  wd       (offset 0)
//	uint32 mask     (offset 4)
//	uint32 cookie   (offset 8)
//	uint32 len      (offset 12)
//	char   name[]   (offset 16)
const inotifyEventSize = 16

func (w *CacheWatcher) invalidateFromEvents(buf []byte) {
	offset := 0
	for offset+inotifyEventSize <= len(buf) {
		wd := int32(le32(buf[offset:]))
		nameLen := int(le32(buf[offset+12:]))
		offset += inotifyEventSize + nameLen

		if dir, ok := w.watches[int(wd)]; ok {
			w.cache.Invalidate(dir)
			select {
			case w.changed <- dir:
			default:
			}
		}
	}
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// Close releases the watcher's file descriptors.
func (w *CacheWatcher) Close() error {
	unix.Close(w.epollFd)
	return unix.Close(w.inotifyFd)
}
