//go:build !linux

package watch

import (
	"context"

	"github.com/dl/globwalk/internal/dircache"
)

// CacheWatcher is a no-op fallback on platforms without an inotify-style
// change notification syscall. Run blocks until ctx is cancelled so
// callers don't need a platform switch of their own.
type CacheWatcher struct{}

// New returns a no-op CacheWatcher on this platform.
func New(cache *dircache.Cache) (*CacheWatcher, error) {
	return &CacheWatcher{}, nil
}

// Add is a no-op on this platform.
func (w *CacheWatcher) Add(path string) error { return nil }

// Changed never fires on this platform.
func (w *CacheWatcher) Changed() <-chan string { return nil }

// Run blocks until ctx is cancelled.
func (w *CacheWatcher) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Close is a no-op on this platform.
func (w *CacheWatcher) Close() error { return nil }
