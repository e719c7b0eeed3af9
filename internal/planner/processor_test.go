package planner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dl/globwalk/internal/compiler"
	"github.com/dl/globwalk/internal/dircache"
	"github.com/dl/globwalk/internal/globtoken"
	"github.com/dl/globwalk/internal/walkcache"
)

func compileAt(t *testing.T, pattern string) *globtoken.Pattern {
	t.Helper()
	p, err := compiler.Compile(pattern, compiler.Options{Platform: globtoken.PlatformPOSIX})
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return p
}

func matchNames(t *testing.T, matches []Match) []string {
	t.Helper()
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Entry.FullPath()
	}
	return out
}

func TestProcessLiteralNoRestEmitsMatch(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644)

	c := dircache.New(true)
	root := c.CwdEntry(dir)
	pattern := compileAt(t, "a.txt")

	proc := New(Options{}, c, walkcache.New())
	proc.Process([]WorkItem{{Target: root, Pattern: pattern}})

	matches := proc.Matches()
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Entry.FullPath() != filepath.Join(dir, "a.txt") {
		t.Fatalf("unexpected match: %s", matches[0].Entry.FullPath())
	}
	if matches[0].IfDir {
		t.Fatal("a plain literal match should not be ifDir")
	}
}

func TestProcessDotDotLiteralIsIfDir(t *testing.T) {
	dir := t.TempDir()
	c := dircache.New(true)
	root := c.CwdEntry(dir)
	pattern := compileAt(t, "..")

	proc := New(Options{}, c, walkcache.New())
	proc.Process([]WorkItem{{Target: root, Pattern: pattern}})

	matches := proc.Matches()
	if len(matches) != 1 || !matches[0].IfDir {
		t.Fatalf("expected a single ifDir match for '..', got %+v", matches)
	}
}

func TestProcessLiteralWithRestSchedulesSubwalk(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "sub"), 0755)
	os.WriteFile(filepath.Join(dir, "sub", "f.txt"), []byte("x"), 0644)

	c := dircache.New(true)
	root := c.CwdEntry(dir)
	pattern := compileAt(t, "sub/f.txt")

	proc := New(Options{}, c, walkcache.New())
	proc.Process([]WorkItem{{Target: root, Pattern: pattern}})

	targets := proc.SubwalkTargets()
	if len(targets) != 1 {
		t.Fatalf("expected exactly one subwalk target, got %d", len(targets))
	}
}

func TestProcessSingleSegmentLiteralMatchesWithoutRead(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "g.txt"), []byte("y"), 0644)

	c := dircache.New(true)
	root := c.CwdEntry(dir)
	pattern := compileAt(t, "f.txt")

	proc := New(Options{}, c, walkcache.New())
	proc.Process([]WorkItem{{Target: root, Pattern: pattern}})
	// "f.txt" has no rest, so it resolves without needing a directory
	// read; confirm the match landed directly.
	if len(proc.Matches()) != 1 {
		t.Fatalf("expected direct match for single-segment literal, got %d", len(proc.Matches()))
	}
}

func TestFilterEntriesGlobstarRecursesAndMatchesBareTail(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "sub"), 0755)
	os.WriteFile(filepath.Join(dir, "sub", "f.txt"), []byte("x"), 0644)

	c := dircache.New(true)
	root := c.CwdEntry(dir)
	pattern := compileAt(t, "**")

	proc := New(Options{}, c, walkcache.New())
	proc.Process([]WorkItem{{Target: root, Pattern: pattern}})

	// Bare "**" at the root matches the root itself (a bare trailing
	// '**' matches files too, so ifDir is false) and schedules a
	// subwalk of the root to recurse into "sub".
	if len(proc.Matches()) != 1 {
		t.Fatalf("expected root itself to match bare '**', got %+v", proc.Matches())
	}
	if len(proc.SubwalkTargets()) != 1 {
		t.Fatalf("expected root scheduled as a subwalk target, got %d", len(proc.SubwalkTargets()))
	}

	children := c.ListDir(context.Background(), root)
	child := proc.FilterEntries(root, children)

	names := matchNames(t, child.Matches())
	if len(names) != 1 || names[0] != filepath.Join(dir, "sub") {
		t.Fatalf("expected sub directory matched via bare globstar recursion, got %v", names)
	}
	if len(child.SubwalkTargets()) != 1 {
		t.Fatalf("expected globstar to reschedule itself under sub, got %d", len(child.SubwalkTargets()))
	}
}

func TestFilterEntriesGlobstarDotHiding(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, ".hidden"), 0755)
	os.Mkdir(filepath.Join(dir, "visible"), 0755)

	c := dircache.New(true)
	root := c.CwdEntry(dir)
	pattern := compileAt(t, "**")

	proc := New(Options{Dot: false}, c, walkcache.New())
	proc.Process([]WorkItem{{Target: root, Pattern: pattern}})

	children := c.ListDir(context.Background(), root)
	child := proc.FilterEntries(root, children)

	for _, m := range child.Matches() {
		if filepath.Base(m.Entry.FullPath()) == ".hidden" {
			t.Fatal("dot=false should hide dotfiles from globstar matches")
		}
	}
}

func TestFilterEntriesRegexpHead(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "b.log"), []byte("x"), 0644)

	c := dircache.New(true)
	root := c.CwdEntry(dir)
	pattern := compileAt(t, "*.txt")

	proc := New(Options{}, c, walkcache.New())
	proc.Process([]WorkItem{{Target: root, Pattern: pattern}})

	children := c.ListDir(context.Background(), root)
	child := proc.FilterEntries(root, children)

	names := matchNames(t, child.Matches())
	if len(names) != 1 || filepath.Base(names[0]) != "a.txt" {
		t.Fatalf("expected only a.txt to match *.txt, got %v", names)
	}
}

func TestFilterEntriesRegexpHeadDotGating(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, ".hidden.txt"), []byte("x"), 0644)

	c := dircache.New(true)
	root := c.CwdEntry(dir)

	t.Run("dot false hides dotfile from plain wildcard", func(t *testing.T) {
		pattern := compileAt(t, "*.txt")
		proc := New(Options{Dot: false}, c, walkcache.New())
		proc.Process([]WorkItem{{Target: root, Pattern: pattern}})
		children := c.ListDir(context.Background(), root)
		child := proc.FilterEntries(root, children)

		names := matchNames(t, child.Matches())
		if len(names) != 1 || filepath.Base(names[0]) != "a.txt" {
			t.Fatalf("dot:false should exclude .hidden.txt from '*.txt', got %v", names)
		}
	})

	t.Run("dot true includes dotfile", func(t *testing.T) {
		pattern := compileAt(t, "*.txt")
		proc := New(Options{Dot: true}, c, walkcache.New())
		proc.Process([]WorkItem{{Target: root, Pattern: pattern}})
		children := c.ListDir(context.Background(), root)
		child := proc.FilterEntries(root, children)

		names := matchNames(t, child.Matches())
		if len(names) != 2 {
			t.Fatalf("dot:true should include both files, got %v", names)
		}
	})

	t.Run("explicit dot-prefixed segment matches regardless of dot option", func(t *testing.T) {
		pattern := compileAt(t, ".*.txt")
		proc := New(Options{Dot: false}, c, walkcache.New())
		proc.Process([]WorkItem{{Target: root, Pattern: pattern}})
		children := c.ListDir(context.Background(), root)
		child := proc.FilterEntries(root, children)

		names := matchNames(t, child.Matches())
		if len(names) != 1 || filepath.Base(names[0]) != ".hidden.txt" {
			t.Fatalf("a literal dot-prefixed segment should still match .hidden.txt even with dot:false, got %v", names)
		}
	})
}

func TestMatchRecordMergesFlagsByAnd(t *testing.T) {
	dir := t.TempDir()
	c := dircache.New(true)
	root := c.CwdEntry(dir)

	mr := NewMatchRecord()
	mr.Add(root, true, false)
	mr.Add(root, false, true)

	got := mr.Matches()
	if len(got) != 1 {
		t.Fatalf("expected a single merged record, got %d", len(got))
	}
	if got[0].Absolute || got[0].IfDir {
		t.Fatalf("expected AND-merge to yield (false,false), got (%v,%v)", got[0].Absolute, got[0].IfDir)
	}
}

func TestSubWalksDropsUnreadableDirs(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0644)

	c := dircache.New(true)
	root := c.CwdEntry(dir)
	file := c.Resolve(root, "f.txt")
	pattern := compileAt(t, "x/y")

	sw := NewSubWalks()
	sw.Add(file, pattern)
	if len(sw.Targets()) != 0 {
		t.Fatal("SubWalks.Add must silently drop a target that cannot be read")
	}
}
