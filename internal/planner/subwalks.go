package planner

import (
	"github.com/dl/globwalk/internal/dircache"
	"github.com/dl/globwalk/internal/globtoken"
)

// SubWalks is the per-step multimap from a readable directory to the
// deduplicated-by-globString list of pattern cursors awaiting evaluation
// against its children.
type SubWalks struct {
	order []*dircache.Entry
	byDir map[*dircache.Entry][]*globtoken.Pattern
	seen  map[*dircache.Entry]map[string]struct{}
}

// NewSubWalks returns an empty SubWalks.
func NewSubWalks() *SubWalks {
	return &SubWalks{
		byDir: make(map[*dircache.Entry][]*globtoken.Pattern),
		seen:  make(map[*dircache.Entry]map[string]struct{}),
	}
}

// Add records pattern against dir, silently dropping the entry if dir
// cannot be read (a file, or a broken symlink) and deduplicating by
// globString within dir's list.
func (s *SubWalks) Add(dir *dircache.Entry, pattern *globtoken.Pattern) {
	if !dir.CanReaddir() {
		return
	}
	g := pattern.GlobString()
	seen, ok := s.seen[dir]
	if !ok {
		seen = make(map[string]struct{})
		s.seen[dir] = seen
	}
	if _, dup := seen[g]; dup {
		return
	}
	seen[g] = struct{}{}
	if _, ok := s.byDir[dir]; !ok {
		s.order = append(s.order, dir)
	}
	s.byDir[dir] = append(s.byDir[dir], pattern)
}

// Targets returns the set of directories to read, in first-seen order.
func (s *SubWalks) Targets() []*dircache.Entry {
	out := make([]*dircache.Entry, len(s.order))
	copy(out, s.order)
	return out
}

// PatternsFor returns the patterns recorded against dir.
func (s *SubWalks) PatternsFor(dir *dircache.Entry) []*globtoken.Pattern {
	return s.byDir[dir]
}
