package walkcache

import "testing"

func TestMarkWalkedDetectsRepeat(t *testing.T) {
	c := New()
	if c.MarkWalked("/a", "**/x") {
		t.Fatal("first mark should report not-already-walked")
	}
	if !c.MarkWalked("/a", "**/x") {
		t.Fatal("second mark of the same pair should report already-walked")
	}
	if c.MarkWalked("/a", "**/y") {
		t.Fatal("a different globString at the same dir is independent")
	}
}

func TestForkIsIndependent(t *testing.T) {
	parent := New()
	parent.MarkWalked("/a", "**/x")

	child := parent.Fork()
	if !child.HasWalked("/a", "**/x") {
		t.Fatal("fork should see pairs recorded before the fork")
	}

	child.MarkWalked("/b", "**/z")
	if parent.HasWalked("/b", "**/z") {
		t.Fatal("parent must not observe mutations made to the fork")
	}

	parent.MarkWalked("/c", "**/w")
	if child.HasWalked("/c", "**/w") {
		t.Fatal("fork must not observe mutations made to the parent after forking")
	}
}
