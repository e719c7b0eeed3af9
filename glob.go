// Package globwalk is a shell-style filename globber: it expands one or
// more glob patterns (brace lists, extglobs, POSIX character classes,
// "**" globstars) against a real filesystem and returns every matching
// path exactly once. internal/globtoken and internal/compiler implement
// pattern compilation, internal/planner implements the pure expansion
// algorithm, internal/dircache adapts the algorithm to the real
// filesystem, and internal/walker drives the two together across the
// five public result flavors this package exposes.
package globwalk

import (
	"context"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/dl/globwalk/internal/compiler"
	"github.com/dl/globwalk/internal/dircache"
	"github.com/dl/globwalk/internal/globtoken"
	"github.com/dl/globwalk/internal/ignore"
	"github.com/dl/globwalk/internal/walker"
)

// DirEntry is the public, read-only view of a matched filesystem entry,
// populated when Config.WithFileTypes is set. It deliberately does not
// expose internal/dircache.Entry itself, keeping that type free to
// change shape without breaking callers.
type DirEntry struct {
	name    string
	path    string
	dir     bool
	symlink bool
}

// Name returns the entry's base name.
func (e DirEntry) Name() string { return e.name }

// Path returns the entry's full path.
func (e DirEntry) Path() string { return e.path }

// IsDir reports whether the entry is, or resolves through a symlink to,
// a directory.
func (e DirEntry) IsDir() bool { return e.dir }

// IsSymlink reports whether the entry itself is a symbolic link.
func (e DirEntry) IsSymlink() bool { return e.symlink }

// Result is one match. Path is populated unless WithFileTypes is set,
// in which case Entry carries the same information plus type metadata.
type Result struct {
	Path  string
	Entry DirEntry
}

func toResult(r walker.Result) Result {
	res := Result{Path: r.Path}
	if r.Entry != nil {
		res.Entry = DirEntry{
			name:    r.Entry.Name(),
			path:    r.Entry.FullPath(),
			dir:     r.Entry.IsDir(),
			symlink: r.Entry.IsSymbolicLink(),
		}
	}
	return res
}

// Globber compiles glob patterns against a fixed Config and drives
// walks over a shared DirCache. Construct one with New and reuse it
// across calls to amortize directory-listing caches; a fresh Config
// with different case-sensitivity or cwd semantics needs a fresh
// Globber.
type Globber struct {
	w           *walker.Walker
	compileOpts compiler.Options
	noBrace     bool
}

// New validates cfg and constructs a Globber. It builds (or adopts, via
// Config.DirCache) a DirCache, compiles the ignore pattern list, and
// wires both into a walker.Walker.
func New(cfg Config) (*Globber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	caseSensitive := !cfg.effectiveNoCase()
	cache := cfg.DirCache
	if cache == nil {
		cache = dircache.New(caseSensitive)
	}

	ignoreFilter, err := ignore.New(cfg.Ignore, caseSensitive)
	if err != nil {
		return nil, fmt.Errorf("globwalk: invalid ignore pattern: %w", err)
	}

	cwd := strings.TrimPrefix(cfg.Cwd, "file://")
	if cwd == "" {
		cwd, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("globwalk: resolve cwd: %w", err)
		}
	}

	w, err := walker.New(cache, ignoreFilter, walker.Config{
		Dot:           cfg.Dot,
		Follow:        cfg.Follow,
		NoDir:         cfg.NoDir,
		Absolute:      cfg.Absolute,
		Mark:          cfg.Mark,
		Realpath:      cfg.Realpath,
		WithFileTypes: cfg.WithFileTypes,
		Concurrency:   cfg.Concurrency,
		CwdPath:       cwd,
	})
	if err != nil {
		return nil, err
	}

	return &Globber{
		w: w,
		compileOpts: compiler.Options{
			NoBrace:              cfg.NoBrace,
			NoExt:                cfg.NoExt,
			NoGlobstar:           cfg.NoGlobstar,
			NoCase:               cfg.effectiveNoCase(),
			MatchBase:            cfg.MatchBase,
			WindowsPathsNoEscape: cfg.WindowsPathsNoEscape,
			Platform:             cfg.effectivePlatform(),
		},
		noBrace: cfg.NoBrace,
	}, nil
}

// compile expands and compiles every pattern string into the Pattern
// cursors the walker expects.
func (g *Globber) compile(patterns []string) ([]*globtoken.Pattern, error) {
	var out []*globtoken.Pattern
	for _, p := range patterns {
		expanded := []string{p}
		if !g.noBrace {
			expanded = compiler.ExpandBraces(p)
		}
		for _, e := range expanded {
			cp, err := compiler.Compile(e, g.compileOpts)
			if err != nil {
				return nil, fmt.Errorf("globwalk: compile %q: %w", e, err)
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

// Walk is the synchronously returned list flavor: it runs to completion
// and returns every match.
func (g *Globber) Walk(ctx context.Context, patterns ...string) ([]Result, error) {
	compiled, err := g.compile(patterns)
	if err != nil {
		return nil, err
	}
	raw := g.w.Walk(ctx, compiled)
	out := make([]Result, len(raw))
	for i, r := range raw {
		out[i] = toResult(r)
	}
	return out, nil
}

// StreamSync is the synchronous stream flavor: sequential directory
// reads, results delivered incrementally on the returned channel.
func (g *Globber) StreamSync(ctx context.Context, patterns ...string) (<-chan Result, error) {
	compiled, err := g.compile(patterns)
	if err != nil {
		return nil, err
	}
	return convert(g.w.StreamSync(ctx, compiled)), nil
}

// StreamAsync is the asynchronous stream flavor: directory reads within
// a frontier level run concurrently, bounded by Config.Concurrency.
func (g *Globber) StreamAsync(ctx context.Context, patterns ...string) (<-chan Result, error) {
	compiled, err := g.compile(patterns)
	if err != nil {
		return nil, err
	}
	return convert(g.w.StreamAsync(ctx, compiled)), nil
}

// Iter is the asynchronous iterator flavor, for `for r := range ...`.
func (g *Globber) Iter(ctx context.Context, patterns ...string) (iter.Seq[Result], error) {
	compiled, err := g.compile(patterns)
	if err != nil {
		return nil, err
	}
	inner := g.w.Iter(ctx, compiled)
	return func(yield func(Result) bool) {
		for r := range inner {
			if !yield(toResult(r)) {
				return
			}
		}
	}, nil
}

// Future is the promised-list flavor's handle. There is no error field:
// per spec.md §7 every runtime failure a walk can hit is either
// swallowed locally or resolved to an empty/partial result, never
// surfaced.
type Future struct {
	inner *walker.Future
}

// Wait blocks until the walk completes and returns every match.
func (f *Future) Wait() []Result {
	raw := f.inner.Wait()
	out := make([]Result, len(raw))
	for i, r := range raw {
		out[i] = toResult(r)
	}
	return out
}

// WalkPromise is the promised-list flavor: the walk starts immediately
// (with pooled concurrent reads) and Wait blocks for the result later.
func (g *Globber) WalkPromise(ctx context.Context, patterns ...string) (*Future, error) {
	compiled, err := g.compile(patterns)
	if err != nil {
		return nil, err
	}
	return &Future{inner: g.w.WalkPromise(ctx, compiled)}, nil
}

func convert(in <-chan walker.Result) <-chan Result {
	out := make(chan Result, cap(in))
	go func() {
		defer close(out)
		for r := range in {
			out <- toResult(r)
		}
	}()
	return out
}
