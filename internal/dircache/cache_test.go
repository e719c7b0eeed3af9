package dircache

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestResolveInternsByFullPath(t *testing.T) {
	dir := t.TempDir()
	c := New(true)
	root := c.CwdEntry(dir)

	a1 := c.Resolve(root, "a")
	a2 := c.Resolve(root, "a")
	if a1 != a2 {
		t.Fatal("Resolve must return the identical *Entry for the same path")
	}
}

func TestListDirAndStat(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0644)
	os.Mkdir(filepath.Join(dir, "sub"), 0755)

	c := New(true)
	root := c.CwdEntry(dir)

	children := c.ListDir(context.Background(), root)
	names := make([]string, len(children))
	for i, e := range children {
		names[i] = e.Name()
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "f.txt" || names[1] != "sub" {
		t.Fatalf("ListDir names = %v", names)
	}

	for _, e := range children {
		if e.Name() == "sub" && !e.IsDir() {
			t.Fatal("sub should be a directory")
		}
		if e.Name() == "f.txt" && e.IsDir() {
			t.Fatal("f.txt should not be a directory")
		}
	}
}

func TestListDirIsCached(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0644)

	c := New(true)
	root := c.CwdEntry(dir)

	first := c.ListDir(context.Background(), root)
	os.WriteFile(filepath.Join(dir, "g.txt"), []byte("y"), 0644)
	second := c.ListDir(context.Background(), root)

	if len(first) != len(second) {
		t.Fatalf("expected cached listing to be stable until Invalidate; got %d then %d", len(first), len(second))
	}

	c.Invalidate(root.FullPath())
	third := c.ListDir(context.Background(), root)
	if len(third) != 2 {
		t.Fatalf("after Invalidate expected fresh listing of 2, got %d", len(third))
	}
}

func TestUnknownUntilStat(t *testing.T) {
	dir := t.TempDir()
	c := New(true)
	root := c.CwdEntry(dir)

	child := c.Resolve(root, "does-not-exist")
	if !child.IsUnknown() {
		t.Fatal("a freshly resolved entry should be unknown before any stat")
	}
	if child.IsSymbolicLink() {
		t.Fatal("nonexistent entry should not report as a symlink")
	}
	if !child.IsUnknown() {
		// IsSymbolicLink forces a stat via ensureStat; this is expected.
	}
}

func TestSymlinkCanReaddirFollowsToDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	os.Mkdir(target, 0755)
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	c := New(true)
	root := c.CwdEntry(dir)
	linkEntry := c.Resolve(root, "link")

	if !linkEntry.IsSymbolicLink() {
		t.Fatal("expected link to report as a symlink")
	}
	if !linkEntry.CanReaddir() {
		t.Fatal("a symlink to a directory should be readable")
	}
}

func TestCaseSensitivity(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "File.txt"), []byte("x"), 0644)

	sensitive := New(true)
	root := sensitive.CwdEntry(dir)
	e := sensitive.Resolve(root, "File.txt")
	if !e.IsNamed("File.txt") {
		t.Fatal("exact name should always match")
	}
	if e.IsNamed("file.txt") {
		t.Fatal("case-sensitive cache should not fold case")
	}

	insensitive := New(false)
	root2 := insensitive.CwdEntry(dir)
	e2 := insensitive.Resolve(root2, "File.txt")
	if !e2.IsNamed("file.txt") {
		t.Fatal("case-insensitive cache should fold case")
	}
}
