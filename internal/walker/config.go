// Package walker implements the walk driver spec.md §4.4 describes: it
// consumes the planner's subwalk plan, performs cached directory reads
// (sequential or pooled-concurrent), applies per-entry match
// finalization, deduplicates results by DirEntry identity, and honors
// cancellation. It replaces the teacher's content-search walker
// (internal/walker/walker.go in the original gogrep) entirely — the
// directory-traversal skeleton and the worker-pool concurrency style are
// kept, but the payload is pattern matches rather than matched lines.
package walker

import (
	"fmt"

	"github.com/dl/globwalk/internal/dircache"
	"github.com/dl/globwalk/internal/ignore"
)

// defaultConcurrency is the backpressure cap spec.md §5 suggests for the
// asynchronous flavor's in-flight directory reads.
const defaultConcurrency = 64

// Config is the traversal-level configuration the walk driver consumes.
// It mirrors the subset of the public Config (see the root package)
// that affects match finalization rather than pattern compilation.
type Config struct {
	Dot           bool
	Follow        bool
	NoDir         bool
	Absolute      bool
	Mark          bool
	Realpath      bool
	WithFileTypes bool
	Concurrency   int
	CwdPath       string
}

// Walker drives a walk over a DirCache using a fixed configuration and
// ignore filter. Construct one per invocation; it is not reused across
// pattern sets with different options.
type Walker struct {
	cache   *dircache.Cache
	ignore  *ignore.Filter
	cfg     Config
	cwd     *dircache.Entry
	cwdPath string
}

// New validates cfg and returns a Walker bound to cache. absolute and
// withFileTypes are mutually exclusive per spec.md §4.4 and §7.
func New(cache *dircache.Cache, ignoreFilter *ignore.Filter, cfg Config) (*Walker, error) {
	if cfg.Absolute && cfg.WithFileTypes {
		return nil, fmt.Errorf("walker: absolute and withFileTypes are mutually exclusive")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return &Walker{
		cache:   cache,
		ignore:  ignoreFilter,
		cfg:     cfg,
		cwd:     cache.CwdEntry(cfg.CwdPath),
		cwdPath: cfg.CwdPath,
	}, nil
}

// Result is one finalized match: Path is set unless WithFileTypes is
// configured, in which case only Entry is meaningful.
type Result struct {
	Entry *dircache.Entry
	Path  string
}
