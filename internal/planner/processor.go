// Package planner implements the pure glob-expansion planner: folding
// literal prefixes, classifying each pattern cursor's head token, and
// turning a directory listing into matches and further subwalks. It has
// no I/O beyond the DirCache collaborator it is handed; the walk driver
// (package walker) owns concurrency, cancellation, and match emission.
package planner

import (
	"strings"

	"github.com/dl/globwalk/internal/dircache"
	"github.com/dl/globwalk/internal/globtoken"
	"github.com/dl/globwalk/internal/walkcache"
)

// Options mirrors the subset of the walk configuration the planner
// itself needs to make decisions: whether dotfiles participate in
// wildcard/globstar matches, and whether symlinks are always followed
// under '**'.
type Options struct {
	Dot    bool
	Follow bool
}

// WorkItem pairs a target directory with the pattern cursor to evaluate
// against it.
type WorkItem struct {
	Target  *dircache.Entry
	Pattern *globtoken.Pattern
}

// Processor is the per-step planner: it consumes work items (or, via
// FilterEntries, a directory listing) and accumulates matches and
// subwalks. A Processor instance is owned by a single step and is
// discarded once its results are harvested.
type Processor struct {
	opts      Options
	cache     *dircache.Cache
	walkCache *walkcache.Cache
	matches   *MatchRecord
	subwalks  *SubWalks
}

// New returns an empty Processor bound to the given DirCache and
// HasWalkedCache fork.
func New(opts Options, cache *dircache.Cache, wc *walkcache.Cache) *Processor {
	return &Processor{
		opts:      opts,
		cache:     cache,
		walkCache: wc,
		matches:   NewMatchRecord(),
		subwalks:  NewSubWalks(),
	}
}

// WalkCache returns this step's HasWalkedCache, for forking into the
// next step's Processor.
func (p *Processor) WalkCache() *walkcache.Cache { return p.walkCache }

// Matches returns this step's fully resolved matches.
func (p *Processor) Matches() []Match { return p.matches.Matches() }

// SubwalkTargets returns the directories this step wants read.
func (p *Processor) SubwalkTargets() []*dircache.Entry { return p.subwalks.Targets() }

// PatternsFor returns the patterns recorded against dir in this step.
func (p *Processor) PatternsFor(dir *dircache.Entry) []*globtoken.Pattern {
	return p.subwalks.PatternsFor(dir)
}

// Process runs the root-Processor work-item algorithm (spec.md §4.2)
// over every item.
func (p *Processor) Process(items []WorkItem) {
	for _, it := range items {
		p.processOne(it.Target, it.Pattern)
	}
}

func (p *Processor) processOne(target *dircache.Entry, pattern *globtoken.Pattern) {
	if p.walkCache.MarkWalked(target.FullPath(), pattern.GlobString()) {
		return
	}

	if root := pattern.Root(); root != "" {
		target = p.cache.ResolveRoot(root)
		rest := pattern.Rest()
		if rest == nil {
			p.matches.Add(target, true, false)
			return
		}
		pattern = rest
	}

	folded := false
	for pattern.Pattern().Kind == globtoken.Literal && pattern.HasMore() {
		tok := pattern.Pattern()
		child := p.cache.Resolve(target, tok.Lit)
		if child.IsUnknown() && tok.Lit != ".." {
			break
		}
		target = child
		pattern = pattern.Rest()
		folded = true
	}
	if folded && p.walkCache.MarkWalked(target.FullPath(), pattern.GlobString()) {
		return
	}

	p.classifyHead(target, pattern)
}

func (p *Processor) classifyHead(target *dircache.Entry, pattern *globtoken.Pattern) {
	tok := pattern.Pattern()
	rest := pattern.Rest()

	switch tok.Kind {
	case globtoken.Literal:
		if rest == nil {
			ifDir := tok.Lit == ".." || tok.Lit == "" || tok.Lit == "."
			p.matches.Add(p.cache.Resolve(target, tok.Lit), pattern.IsAbsolute(), ifDir)
			return
		}
		p.subwalks.Add(target, pattern)

	case globtoken.Globstar:
		p.planGlobstar(target, pattern, rest)

	case globtoken.Regexp:
		p.subwalks.Add(target, pattern)
	}
}

func (p *Processor) planGlobstar(target *dircache.Entry, pattern, rest *globtoken.Pattern) {
	if !target.IsSymbolicLink() || p.opts.Follow || pattern.CheckFollowGlobstar() {
		p.subwalks.Add(target, pattern)
	}

	if bareOrDotTail(rest) {
		p.matches.Add(target, pattern.IsAbsolute(), rest != nil)
	}

	if rest != nil && rest.Pattern().Kind == globtoken.Literal && rest.Pattern().Lit == ".." {
		tp := parentOrSelf(target)
		rr := rest.Rest()
		if rr == nil {
			p.matches.Add(tp, pattern.IsAbsolute(), true)
		} else if !p.walkCache.HasWalked(tp.FullPath(), rr.GlobString()) {
			p.subwalks.Add(tp, rr)
		}
	}
}

// bareOrDotTail reports whether rest is nil, or reduces to a trailing
// "" or "." with no further tokens — the two cases in which a bare '**'
// itself (rather than anything after it) is the match.
func bareOrDotTail(rest *globtoken.Pattern) bool {
	if rest == nil {
		return true
	}
	tok := rest.Pattern()
	return tok.Kind == globtoken.Literal && (tok.Lit == "" || tok.Lit == ".") && !rest.HasMore()
}

func parentOrSelf(e *dircache.Entry) *dircache.Entry {
	if p := e.Parent(); p != nil {
		return p
	}
	return e
}

// FilterEntries applies Processor.filterEntries (spec.md §4.3): given
// the children a directory read returned, and the patterns this step
// recorded against that directory, it produces a child Processor
// (forked HasWalkedCache) populated with the next level's matches and
// subwalks.
func (p *Processor) FilterEntries(dir *dircache.Entry, children []*dircache.Entry) *Processor {
	child := New(p.opts, p.cache, p.walkCache.Fork())
	for _, pattern := range p.subwalks.PatternsFor(dir) {
		for _, e := range children {
			child.dispatch(e, pattern)
		}
	}
	return child
}

func (p *Processor) dispatch(e *dircache.Entry, pattern *globtoken.Pattern) {
	switch pattern.Pattern().Kind {
	case globtoken.Globstar:
		p.testGlobstar(e, pattern)
	case globtoken.Regexp:
		p.testRegExp(e, pattern)
	case globtoken.Literal:
		p.testString(e, pattern)
	}
}

func (p *Processor) testString(e *dircache.Entry, pattern *globtoken.Pattern) {
	if !e.IsNamed(pattern.Pattern().Lit) {
		return
	}
	rest := pattern.Rest()
	if rest == nil {
		p.matches.Add(e, pattern.IsAbsolute(), false)
		return
	}
	p.subwalks.Add(e, rest)
}

func (p *Processor) testRegExp(e *dircache.Entry, pattern *globtoken.Pattern) {
	tok := pattern.Pattern()
	if !p.opts.Dot && !tok.AllowDot && strings.HasPrefix(e.Name(), ".") {
		return
	}
	if !tok.Re.MatchString(e.Name()) {
		return
	}
	rest := pattern.Rest()
	if rest == nil {
		p.matches.Add(e, pattern.IsAbsolute(), false)
		return
	}
	p.subwalks.Add(e, rest)
}

func (p *Processor) testGlobstar(e *dircache.Entry, pattern *globtoken.Pattern) {
	if !p.opts.Dot && strings.HasPrefix(e.Name(), ".") {
		return
	}

	rest := pattern.Rest()
	absolute := pattern.IsAbsolute()

	if rest == nil {
		p.matches.Add(e, absolute, false)
	}

	if e.CanReaddir() {
		switch {
		case !e.IsSymbolicLink() || p.opts.Follow:
			p.subwalks.Add(e, pattern)
		case rest != nil && pattern.CheckFollowGlobstar():
			p.subwalks.Add(e, rest)
		case pattern.MarkFollowGlobstar():
			p.subwalks.Add(e, pattern)
		}
	}

	if rest == nil {
		return
	}
	rtok := rest.Pattern()
	switch {
	case rtok.Kind == globtoken.Literal && rtok.Lit == "..":
		tp := parentOrSelf(e)
		rr := rest.Rest()
		if rr == nil {
			p.matches.Add(tp, absolute, true)
		} else {
			p.subwalks.Add(tp, rr)
		}
	case rtok.Kind == globtoken.Literal && rtok.Lit != "" && rtok.Lit != ".":
		p.testString(e, rest)
	case rtok.Kind == globtoken.Regexp:
		p.testRegExp(e, rest)
	}
}
