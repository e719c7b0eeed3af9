package walker

import (
	"context"
	"iter"
	"strings"
	"sync"

	"github.com/dl/globwalk/internal/dircache"
	"github.com/dl/globwalk/internal/globtoken"
	"github.com/dl/globwalk/internal/planner"
	"github.com/dl/globwalk/internal/walkcache"
)

// pendingRead pairs a directory slated for listing with the Processor
// whose SubWalks scheduled it, so its patterns can be recovered once the
// listing returns.
type pendingRead struct {
	parent *planner.Processor
	dir    *dircache.Entry
}

func (w *Walker) rootProcessor(patterns []*globtoken.Pattern) *planner.Processor {
	proc := planner.New(planner.Options{Dot: w.cfg.Dot, Follow: w.cfg.Follow}, w.cache, walkcache.New())
	items := make([]planner.WorkItem, len(patterns))
	for i, p := range patterns {
		items[i] = planner.WorkItem{Target: w.cwd, Pattern: p}
	}
	proc.Process(items)
	return proc
}

// stream runs the frontier loop of spec.md §4.4 and emits finalized
// results on the returned channel. concurrent selects pooled directory
// reads (the asynchronous flavor) over sequential ones (the synchronous
// flavor); both share identical planning and finalization logic, only
// the read strategy differs, per spec.md §9's "single backpressure-aware
// queue abstraction serves both."
func (w *Walker) stream(ctx context.Context, patterns []*globtoken.Pattern, concurrent bool) <-chan Result {
	out := make(chan Result, w.cfg.Concurrency)
	go func() {
		defer close(out)

		seen := make(map[dircache.Identity]struct{})
		level := []*planner.Processor{w.rootProcessor(patterns)}

		for {
			if ctx.Err() != nil {
				return
			}
			for _, proc := range level {
				for _, m := range proc.Matches() {
					if ctx.Err() != nil {
						return
					}
					res, ok := w.finalize(m, seen)
					if !ok {
						continue
					}
					select {
					case out <- res:
					case <-ctx.Done():
						return
					}
				}
			}

			var reads []pendingRead
			for _, proc := range level {
				for _, dir := range proc.SubwalkTargets() {
					reads = append(reads, pendingRead{parent: proc, dir: dir})
				}
			}
			if len(reads) == 0 {
				return
			}
			if ctx.Err() != nil {
				return
			}
			if concurrent {
				level = w.readLevelPooled(ctx, reads)
			} else {
				level = w.readLevelSequential(ctx, reads)
			}
		}
	}()
	return out
}

func (w *Walker) readLevelSequential(ctx context.Context, reads []pendingRead) []*planner.Processor {
	out := make([]*planner.Processor, 0, len(reads))
	for _, r := range reads {
		if ctx.Err() != nil {
			break
		}
		children := w.cache.ListDir(ctx, r.dir)
		out = append(out, r.parent.FilterEntries(r.dir, children))
	}
	return out
}

// readLevelPooled fans a level's directory reads out across a bounded
// worker pool, adapted from the teacher's scheduler.Run: a fixed set of
// goroutines drain a jobs channel and publish to a results channel that
// closes once every worker's WaitGroup slot returns.
func (w *Walker) readLevelPooled(ctx context.Context, reads []pendingRead) []*planner.Processor {
	workers := w.cfg.Concurrency
	if workers > len(reads) {
		workers = len(reads)
	}

	jobs := make(chan pendingRead)
	results := make(chan *planner.Processor, len(reads))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				if ctx.Err() != nil {
					continue
				}
				children := w.cache.ListDir(ctx, r.dir)
				results <- r.parent.FilterEntries(r.dir, children)
			}
		}()
	}

	go func() {
		for _, r := range reads {
			jobs <- r
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]*planner.Processor, 0, len(reads))
	for p := range results {
		out = append(out, p)
	}
	return out
}

// finalize applies spec.md §4.4's match-finalization pipeline to a
// single candidate, returning the Result to emit and whether it
// survived. seen is the whole-walk dedup set.
func (w *Walker) finalize(m planner.Match, seen map[dircache.Identity]struct{}) (Result, bool) {
	e := m.Entry

	if m.IfDir && !e.IsDir() {
		return Result{}, false
	}
	if w.cfg.NoDir && e.IsDir() {
		return Result{}, false
	}
	if w.cfg.Realpath {
		resolved, ok := w.cache.Realpath(e)
		if !ok {
			return Result{}, false
		}
		e = resolved
	}

	isDir := e.IsDir()
	rel := w.relPath(e)
	if w.ignore.Ignored(rel, isDir) {
		return Result{}, false
	}

	id := e.Identity()
	if _, dup := seen[id]; dup {
		return Result{}, false
	}
	seen[id] = struct{}{}

	if w.cfg.WithFileTypes {
		return Result{Entry: e}, true
	}

	path := rel
	if w.cfg.Absolute || m.Absolute {
		path = e.FullPath()
	}
	if w.cfg.Mark && isDir {
		path += "/"
	}
	return Result{Entry: e, Path: path}, true
}

func (w *Walker) relPath(e *dircache.Entry) string {
	full := e.FullPath()
	prefix := w.cwdPath
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if trimmed := strings.TrimPrefix(full, prefix); trimmed != full {
		return trimmed
	}
	if full == w.cwdPath {
		return "."
	}
	return full
}

// Walk is the synchronously returned list flavor: it drives the walk
// with sequential directory reads and collects every result before
// returning.
func (w *Walker) Walk(ctx context.Context, patterns []*globtoken.Pattern) []Result {
	var out []Result
	for r := range w.stream(ctx, patterns, false) {
		out = append(out, r)
	}
	return out
}

// StreamSync is the synchronous stream flavor: same sequential reads as
// Walk, but results are delivered incrementally on the returned channel.
func (w *Walker) StreamSync(ctx context.Context, patterns []*globtoken.Pattern) <-chan Result {
	return w.stream(ctx, patterns, false)
}

// StreamAsync is the asynchronous stream flavor: directory reads within
// a frontier level run concurrently, bounded by Config.Concurrency.
func (w *Walker) StreamAsync(ctx context.Context, patterns []*globtoken.Pattern) <-chan Result {
	return w.stream(ctx, patterns, true)
}

// Iter is the asynchronous iterator flavor, wrapping StreamAsync in a
// range-over-func iterator so callers can `for r := range w.Iter(...)`.
func (w *Walker) Iter(ctx context.Context, patterns []*globtoken.Pattern) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		for r := range w.StreamAsync(ctx, patterns) {
			if !yield(r) {
				return
			}
		}
	}
}

// Future is the promised-list flavor's handle: the walk runs
// immediately on its own goroutine and Wait blocks for the full result
// set. There is no error field — per spec.md §7 the only runtime
// failures (filesystem errors, unresolved realpaths, cancellation) are
// all swallowed locally or resolved as an empty/partial result, never
// surfaced here.
type Future struct {
	done    chan struct{}
	results []Result
}

// Wait blocks until the walk completes and returns its full result set.
func (f *Future) Wait() []Result {
	<-f.done
	return f.results
}

// WalkPromise is the promised-list flavor: it starts the walk (with
// pooled concurrent reads) immediately and returns a Future the caller
// can await later.
func (w *Walker) WalkPromise(ctx context.Context, patterns []*globtoken.Pattern) *Future {
	fut := &Future{done: make(chan struct{})}
	go func() {
		defer close(fut.done)
		for r := range w.stream(ctx, patterns, true) {
			fut.results = append(fut.results, r)
		}
	}()
	return fut
}
