package globtoken

import "testing"

func lit(s string) Token { return Token{Kind: Literal, Lit: s} }

func TestNewNormalizesPosixRoot(t *testing.T) {
	tokens := []Token{lit(""), lit(""), lit("a"), lit("b")}
	parts := []string{"", "", "a", "b"}

	p := New(tokens, parts, PlatformPOSIX)

	if !p.IsAbsolute() {
		t.Fatal("expected absolute pattern")
	}
	if got := p.Root(); got != "/" {
		t.Fatalf("Root() = %q, want %q", got, "/")
	}
	if got := p.Pattern().Lit; got != "/" {
		t.Fatalf("Pattern().Lit = %q, want %q", got, "/")
	}
	r := p.Rest()
	if r == nil || r.Pattern().Lit != "a" {
		t.Fatalf("Rest() did not skip the dropped trailing-slash token")
	}
}

func TestNewCollapsesUNCRoot(t *testing.T) {
	tokens := []Token{lit(""), lit(""), lit("host"), lit("share"), lit("dir")}
	parts := []string{"", "", "host", "share", "dir"}

	p := New(tokens, parts, PlatformWindows)

	if !p.IsUNC() || !p.IsAbsolute() {
		t.Fatal("expected UNC absolute pattern")
	}
	if got := p.Root(); got != "//host/share/" {
		t.Fatalf("Root() = %q, want %q", got, "//host/share/")
	}
	r := p.Rest()
	if r == nil || r.Pattern().Lit != "dir" {
		t.Fatalf("Rest() after UNC root = %+v, want dir", r)
	}
}

func TestNewCollapsesDriveRoot(t *testing.T) {
	tokens := []Token{lit("C:"), lit(""), lit("dir")}
	parts := []string{"C:", "", "dir"}

	p := New(tokens, parts, PlatformWindows)

	if !p.IsDrive() || !p.IsAbsolute() {
		t.Fatal("expected drive absolute pattern")
	}
	if got := p.Root(); got != "C:/" {
		t.Fatalf("Root() = %q, want %q", got, "C:/")
	}
	r := p.Rest()
	if r == nil || r.Pattern().Lit != "dir" {
		t.Fatalf("Rest() after drive root = %+v, want dir", r)
	}
}

func TestRestIsMemoized(t *testing.T) {
	tokens := []Token{lit("a"), lit("b")}
	parts := []string{"a", "b"}
	p := New(tokens, parts, PlatformPOSIX)

	r1 := p.Rest()
	r2 := p.Rest()
	if r1 != r2 {
		t.Fatal("Rest() must memoize and return the same *Pattern")
	}
}

func TestFollowGlobstarOneShot(t *testing.T) {
	tokens := []Token{lit("a"), {Kind: Globstar}, lit("b")}
	parts := []string{"a", "**", "b"}
	root := New(tokens, parts, PlatformPOSIX)
	star := root.Rest() // index 1, the globstar

	if star.CheckFollowGlobstar() {
		// not consumed yet, should be eligible
	} else {
		t.Fatal("expected non-leading globstar to be eligible before consumption")
	}
	if !star.MarkFollowGlobstar() {
		t.Fatal("first MarkFollowGlobstar should succeed")
	}
	if star.MarkFollowGlobstar() {
		t.Fatal("second MarkFollowGlobstar should fail: one-shot bit already consumed")
	}
	if star.CheckFollowGlobstar() {
		t.Fatal("CheckFollowGlobstar should be false after the bit is consumed")
	}
}

func TestCheckFollowGlobstarFalseAtIndexZero(t *testing.T) {
	tokens := []Token{{Kind: Globstar}, lit("b")}
	parts := []string{"**", "b"}
	root := New(tokens, parts, PlatformPOSIX)

	if root.CheckFollowGlobstar() {
		t.Fatal("a leading ** (index 0) must never be follow-eligible")
	}
}

func TestHasMagicAndGlobString(t *testing.T) {
	tokens := []Token{lit("a"), {Kind: Globstar}, lit("b.txt")}
	parts := []string{"a", "**", "b.txt"}
	p := New(tokens, parts, PlatformPOSIX)

	if !p.HasMagic() {
		t.Fatal("expected HasMagic() true due to globstar")
	}
	if got := p.GlobString(); got != "a/**/b.txt" {
		t.Fatalf("GlobString() = %q", got)
	}
	tail := p.Rest().Rest()
	if tail.HasMagic() {
		t.Fatal("literal tail should not report magic")
	}
	if got := tail.GlobString(); got != "b.txt" {
		t.Fatalf("tail GlobString() = %q", got)
	}
}
