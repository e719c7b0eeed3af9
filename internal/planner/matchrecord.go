package planner

import "github.com/dl/globwalk/internal/dircache"

// matchFlags is the two-bit record spec.md §3 describes for a candidate
// match: whether it must be returned as an absolute path, and whether it
// is only a match if the entry turns out to be a directory.
type matchFlags struct {
	Absolute bool
	IfDir    bool
}

// MatchRecord is a per-Processor-step set of candidate matches. Adding
// the same entry twice combines flags by AND — "new = new & old" per
// spec.md §3 — so absolute only survives if every path to this match
// requested it, and ifDir relaxes to false the moment any unconditional
// match arrives. This is deliberately the conservative, "relative,
// unconditional match" bias spec.md §9 calls out.
type MatchRecord struct {
	order   []*dircache.Entry
	records map[*dircache.Entry]matchFlags
}

// NewMatchRecord returns an empty MatchRecord.
func NewMatchRecord() *MatchRecord {
	return &MatchRecord{records: make(map[*dircache.Entry]matchFlags)}
}

// Add records a candidate match, merging with any existing record for
// the same entry.
func (m *MatchRecord) Add(e *dircache.Entry, absolute, ifDir bool) {
	existing, ok := m.records[e]
	if !ok {
		m.records[e] = matchFlags{Absolute: absolute, IfDir: ifDir}
		m.order = append(m.order, e)
		return
	}
	m.records[e] = matchFlags{
		Absolute: existing.Absolute && absolute,
		IfDir:    existing.IfDir && ifDir,
	}
}

// Match pairs an entry with its finalized flags.
type Match struct {
	Entry    *dircache.Entry
	Absolute bool
	IfDir    bool
}

// Matches returns every recorded match in insertion order.
func (m *MatchRecord) Matches() []Match {
	out := make([]Match, 0, len(m.order))
	for _, e := range m.order {
		f := m.records[e]
		out = append(out, Match{Entry: e, Absolute: f.Absolute, IfDir: f.IfDir})
	}
	return out
}
