package dircache

import (
	"context"
	"fmt"
	"io/fs"
	"sync"

	securejoin "github.com/cyphar/filepath-securejoin"
	"golang.org/x/sync/singleflight"
)

// backend supplies the platform-specific raw syscalls a Cache needs: a
// stat (for identity/type) and a directory listing. linux.go, darwin.go,
// and windows.go each provide one, per spec.md §9's three-backend split.
type backend interface {
	lstat(fullpath string) (mode fs.FileMode, dev, ino uint64, err error)
	readdirnames(fullpath string) ([]string, error)
}

// Cache is the DirCache implementation: it interns Entry handles by
// fullpath (so identity-based deduplication works), memoizes directory
// listings so a second walk over an unchanged tree costs fewer syscalls
// (spec.md §8 item 9), and de-duplicates concurrent in-flight reads of
// the same directory via singleflight — "a second requester for an
// in-flight read should await the same future" (spec.md §5).
type Cache struct {
	backend       backend
	caseSensitive bool

	mu       sync.RWMutex
	entries  map[string]*Entry
	listings map[string][]*Entry // fullpath -> cached children

	sf       singleflight.Group
	realpath map[string]*Entry // canonical realpath -> interned Entry
}

func newCache(b backend, caseSensitive bool) *Cache {
	return &Cache{
		backend:       b,
		caseSensitive: caseSensitive,
		entries:       make(map[string]*Entry),
		listings:      make(map[string][]*Entry),
		realpath:      make(map[string]*Entry),
	}
}

// CaseSensitive reports the backend's name-comparison convention.
func (c *Cache) CaseSensitive() bool { return c.caseSensitive }

func (c *Cache) intern(parent *Entry, name, fullpath string) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[fullpath]; ok {
		return e
	}
	e := &Entry{cache: c, name: name, parent: parent, fullpath: fullpath}
	c.entries[fullpath] = e
	return e
}

// CwdEntry returns the (unstatted) entry for a starting directory.
func (c *Cache) CwdEntry(cwd string) *Entry {
	return c.intern(nil, cwd, cwd)
}

// ResolveRoot jumps directly to an absolute root path (e.g. "/", "C:/",
// "//host/share/") without going through a parent join.
func (c *Cache) ResolveRoot(root string) *Entry {
	return c.intern(nil, root, root)
}

// Resolve returns the (possibly unstatted) child entry named `name`
// under parent, interning it so repeated resolution of the same path
// returns the identical handle.
func (c *Cache) Resolve(parent *Entry, name string) *Entry {
	full := joinPath(parent.fullpath, name)
	child := c.intern(parent, name, full)
	return child
}

// ListDir returns the (possibly cached) children of dir, synchronously.
// Filesystem errors are swallowed per spec.md §7: the directory is
// treated as empty and the error is not surfaced to the walker.
func (c *Cache) ListDir(ctx context.Context, dir *Entry) []*Entry {
	c.mu.RLock()
	if cached, ok := c.listings[dir.fullpath]; ok {
		c.mu.RUnlock()
		return cached
	}
	c.mu.RUnlock()

	v, _, _ := c.sf.Do(dir.fullpath, func() (any, error) {
		names, err := c.backend.readdirnames(dir.fullpath)
		if err != nil {
			c.mu.Lock()
			c.listings[dir.fullpath] = nil
			c.mu.Unlock()
			return []*Entry(nil), nil
		}
		children := make([]*Entry, 0, len(names))
		for _, n := range names {
			children = append(children, c.Resolve(dir, n))
		}
		c.mu.Lock()
		c.listings[dir.fullpath] = children
		c.mu.Unlock()
		return children, nil
	})
	_ = ctx
	return v.([]*Entry)
}

// Invalidate drops a directory's cached listing, forcing the next
// ListDir to re-read it. Used by the optional cache-invalidation watcher
// (see internal/watch.CacheWatcher).
func (c *Cache) Invalidate(fullpath string) {
	c.mu.Lock()
	delete(c.listings, fullpath)
	c.mu.Unlock()
}

// Realpath resolves an entry to its canonical target, following
// symlinks via filepath-securejoin, and interns the result so that two
// entries resolving to the same canonical path collapse to one handle.
// Returns (nil, false) if the entry cannot be resolved (broken link).
func (c *Cache) Realpath(e *Entry) (*Entry, bool) {
	e.ensureStat()
	if e.statErr != nil {
		return nil, false
	}
	if !e.IsSymbolicLink() {
		return e, true
	}

	root, unsafePath := splitForSecureJoin(e.fullpath)
	resolved, err := securejoin.SecureJoin(root, unsafePath)
	if err != nil {
		return nil, false
	}

	c.mu.Lock()
	if cached, ok := c.realpath[resolved]; ok {
		c.mu.Unlock()
		return cached, true
	}
	c.mu.Unlock()

	target := c.intern(nil, resolved, resolved)
	c.mu.Lock()
	c.realpath[resolved] = target
	c.mu.Unlock()
	return target, true
}

// splitForSecureJoin picks a root to resolve unsafePath within;
// SecureJoin treats root as a trust boundary which here is simply the
// filesystem root, since DirCache operates on real paths rather than a
// sandboxed tree.
func splitForSecureJoin(fullpath string) (root, unsafePath string) {
	return "/", fullpath
}

func (c *Cache) String() string {
	return fmt.Sprintf("dircache.Cache{entries=%d}", len(c.entries))
}
