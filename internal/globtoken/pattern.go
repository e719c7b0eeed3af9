package globtoken

import "strings"

// Pattern is an immutable cursor over two parallel slices — compiled
// tokens and their original glob-string parts — plus a current index.
// Mutation is limited to the one-shot followGlobstar bit (see
// CheckFollowGlobstar/MarkFollowGlobstar); everything else about a
// Pattern value, once constructed, never changes.
type Pattern struct {
	tokens   []Token
	parts    []string
	index    int
	platform Platform

	isUNC      bool
	isDrive    bool
	isAbsolute bool

	followGlobstar bool
	restCache      *Pattern
	restSet        bool
}

// New builds the root cursor for a compiled pattern, applying root
// normalization at index 0 per spec: a UNC head collapses its first five
// tokens into one root token, a drive head becomes a single "C:/" token,
// a POSIX absolute head becomes "/", and a trailing empty token right
// after the root (a trailing slash) is dropped.
func New(tokens []Token, parts []string, platform Platform) *Pattern {
	tokens, parts, isUNC, isDrive, isAbsolute := normalizeRoot(tokens, parts, platform)
	return &Pattern{
		tokens:         tokens,
		parts:          parts,
		index:          0,
		platform:       platform,
		isUNC:          isUNC,
		isDrive:        isDrive,
		isAbsolute:     isAbsolute,
		followGlobstar: true,
	}
}

func normalizeRoot(tokens []Token, parts []string, platform Platform) ([]Token, []string, bool, bool, bool) {
	if len(tokens) == 0 {
		return tokens, parts, false, false, false
	}

	isUNCHead := platform == PlatformWindows &&
		len(tokens) >= 4 &&
		tokens[0].Kind == Literal && tokens[0].Lit == "" &&
		tokens[1].Kind == Literal && tokens[1].Lit == ""

	if isUNCHead {
		host, share := tokens[2].Lit, tokens[3].Lit
		root := Token{Kind: Literal, Lit: "//" + host + "/" + share + "/"}
		newTokens := append([]Token{root}, tokens[4:]...)
		newParts := append([]string{root.Lit}, parts[4:]...)
		newTokens, newParts = dropTrailingSlashToken(newTokens, newParts)
		return newTokens, newParts, true, false, true
	}

	isDriveHead := platform == PlatformWindows &&
		tokens[0].Kind == Literal && isDriveLetter(tokens[0].Lit)
	if isDriveHead {
		root := Token{Kind: Literal, Lit: tokens[0].Lit + "/"}
		newTokens := append([]Token{root}, tokens[1:]...)
		newParts := append([]string{root.Lit}, parts[1:]...)
		newTokens, newParts = dropTrailingSlashToken(newTokens, newParts)
		return newTokens, newParts, false, true, true
	}

	isPosixAbsolute := tokens[0].Kind == Literal && tokens[0].Lit == ""
	if isPosixAbsolute {
		root := Token{Kind: Literal, Lit: "/"}
		newTokens := append([]Token{root}, tokens[1:]...)
		newParts := append([]string{root.Lit}, parts[1:]...)
		newTokens, newParts = dropTrailingSlashToken(newTokens, newParts)
		return newTokens, newParts, false, false, true
	}

	return tokens, parts, false, false, false
}

func dropTrailingSlashToken(tokens []Token, parts []string) ([]Token, []string) {
	if len(tokens) >= 2 && tokens[1].Kind == Literal && tokens[1].Lit == "" {
		tokens = append(append([]Token{}, tokens[0]), tokens[2:]...)
		parts = append(append([]string{}, parts[0]), parts[2:]...)
	}
	return tokens, parts
}

func isDriveLetter(s string) bool {
	return len(s) == 2 && s[1] == ':' &&
		((s[0] >= 'A' && s[0] <= 'Z') || (s[0] >= 'a' && s[0] <= 'z'))
}

// Pattern returns the token at the cursor's current position. Calling it
// past the end of the token list is a programmer error.
func (p *Pattern) Pattern() Token {
	return p.tokens[p.index]
}

// HasMore reports whether Rest would return a non-nil cursor.
func (p *Pattern) HasMore() bool {
	return p.index+1 < len(p.tokens)
}

// Rest returns the cursor advanced by one token, or nil at the end of the
// sequence. The result is memoized: repeated calls return the identical
// *Pattern so that the one-shot followGlobstar bit on the child is
// observed consistently by every caller.
func (p *Pattern) Rest() *Pattern {
	if p.restSet {
		return p.restCache
	}
	p.restSet = true
	if !p.HasMore() {
		p.restCache = nil
		return nil
	}
	p.restCache = &Pattern{
		tokens:         p.tokens,
		parts:          p.parts,
		index:          p.index + 1,
		platform:       p.platform,
		isUNC:          p.isUNC,
		isDrive:        p.isDrive,
		isAbsolute:     p.isAbsolute,
		followGlobstar: true,
	}
	return p.restCache
}

// Root returns the root literal if this cursor is at index 0 and
// absolute; otherwise the empty string.
func (p *Pattern) Root() string {
	if p.index != 0 || !p.isAbsolute {
		return ""
	}
	return p.tokens[0].Lit
}

// IsUNC, IsDrive, and IsAbsolute report the root shape of the whole chain
// this cursor descends from; they are computed once at index 0 and
// propagate unchanged through Rest.
func (p *Pattern) IsUNC() bool      { return p.isUNC }
func (p *Pattern) IsDrive() bool    { return p.isDrive }
func (p *Pattern) IsAbsolute() bool { return p.isAbsolute }

// Index returns the cursor's position in the token sequence (for
// diagnostics and tests only).
func (p *Pattern) Index() int { return p.index }

// Platform returns the platform tag this cursor was compiled for.
func (p *Pattern) Platform() Platform { return p.platform }

// HasMagic reports whether any remaining token (from the current position
// onward) is non-literal.
func (p *Pattern) HasMagic() bool {
	for i := p.index; i < len(p.tokens); i++ {
		if p.tokens[i].Kind != Literal {
			return true
		}
	}
	return false
}

// GlobString returns the '/'-joined textual tail from the current
// position onward — a stable fingerprint for HasWalkedCache and for
// deduplicating SubWalks entries.
func (p *Pattern) GlobString() string {
	return strings.Join(p.parts[p.index:], "/")
}

// CheckFollowGlobstar reports whether this cursor is eligible to follow a
// symlink through a non-leading '**': it must not be at index 0, its
// current token must be Globstar, and the one-shot bit must still be set.
// It does not consume the bit; see MarkFollowGlobstar.
func (p *Pattern) CheckFollowGlobstar() bool {
	return p.index != 0 && p.tokens[p.index].Kind == Globstar && p.followGlobstar
}

// MarkFollowGlobstar consumes the one-shot bit, returning whether it was
// set beforehand. Subsequent calls on this same cursor return false.
func (p *Pattern) MarkFollowGlobstar() bool {
	if !p.followGlobstar {
		return false
	}
	p.followGlobstar = false
	return true
}
