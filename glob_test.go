package globwalk

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dl/globwalk/internal/dircache"
)

func paths(t *testing.T, results []Result) []string {
	t.Helper()
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Path
	}
	sort.Strings(out)
	return out
}

func TestWalkExpandsBracesAcrossMultiplePatterns(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.js"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "a.ts"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "a.md"), []byte("x"), 0644)

	g, err := New(Config{Cwd: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := g.Walk(context.Background(), "*.{js,ts}")
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{"a.js", "a.ts"}
	gotPaths := paths(t, got)
	if len(gotPaths) != len(want) {
		t.Fatalf("got %v, want %v", gotPaths, want)
	}
	for i := range want {
		if gotPaths[i] != want[i] {
			t.Fatalf("got %v, want %v", gotPaths, want)
		}
	}
}

func TestValidateRejectsAbsoluteWithFileTypes(t *testing.T) {
	cfg := Config{Absolute: true, WithFileTypes: true}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject absolute+withFileTypes")
	}
}

func TestValidateRejectsMatchBaseWithNoGlobstar(t *testing.T) {
	cfg := Config{MatchBase: true, NoGlobstar: true}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject matchBase+noglobstar")
	}
}

func TestValidateRejectsMismatchedDirCaseSensitivity(t *testing.T) {
	noCase := false
	cfg := Config{NoCase: &noCase, DirCache: dircache.New(false)}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject a DirCache whose case-sensitivity disagrees with nocase")
	}
}

func TestWalkPromiseMatchesSyncResult(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644)

	g, err := New(Config{Cwd: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fut, err := g.WalkPromise(context.Background(), "*.txt")
	if err != nil {
		t.Fatalf("WalkPromise: %v", err)
	}
	got := fut.Wait()
	if len(got) != 1 || got[0].Path != "a.txt" {
		t.Fatalf("got %+v", got)
	}
}

func TestIterYieldsEveryResult(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0644)

	g, err := New(Config{Cwd: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	seq, err := g.Iter(context.Background(), "*.txt")
	if err != nil {
		t.Fatalf("Iter: %v", err)
	}
	count := 0
	for range seq {
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 results, got %d", count)
	}
}
