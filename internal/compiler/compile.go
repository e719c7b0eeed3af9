// Package compiler implements the glob-pattern compiler front end that
// spec.md treats as an external, "assumed available" collaborator: it
// turns a glob string into the parallel (token, glob-part) slices that
// internal/globtoken.Pattern cursors over. It also implements the
// brace-expansion preprocessing spec.md likewise assumes is available.
package compiler

import (
	"fmt"
	"strings"

	"github.com/dl/globwalk/internal/globtoken"
)

// Options mirrors the subset of spec.md §6's configuration table that
// affects compilation (as opposed to traversal or match finalization).
type Options struct {
	NoBrace              bool
	NoExt                bool
	NoGlobstar           bool
	NoCase               bool
	MatchBase            bool
	WindowsPathsNoEscape bool
	Platform             globtoken.Platform
}

// Compile turns one glob string into a root Pattern cursor. Brace
// expansion is handled by the caller via ExpandBraces — Compile always
// produces exactly one Pattern per call, matching the §6 compiler
// contract of (tokenList, globPartList) for a single glob string.
func Compile(pattern string, opts Options) (*globtoken.Pattern, error) {
	if opts.MatchBase && !strings.ContainsRune(pattern, '/') {
		pattern = "**/" + pattern
	}

	segs := splitPath(pattern, opts)

	tokens := make([]globtoken.Token, len(segs))
	parts := make([]string, len(segs))
	for i, seg := range segs {
		parts[i] = seg
		tok, err := compileSegment(seg, opts)
		if err != nil {
			return nil, fmt.Errorf("glob segment %q: %w", seg, err)
		}
		tokens[i] = tok
	}

	return globtoken.New(tokens, parts, opts.Platform), nil
}

func compileSegment(seg string, opts Options) (globtoken.Token, error) {
	switch {
	case seg == "**" && !opts.NoGlobstar:
		return globtoken.Token{Kind: globtoken.Globstar}, nil
	case seg == "", seg == ".", seg == "..":
		return globtoken.Token{Kind: globtoken.Literal, Lit: seg}, nil
	case segmentIsLiteral(seg, opts.NoExt):
		return globtoken.Token{Kind: globtoken.Literal, Lit: seg}, nil
	default:
		re, err := compileSegmentRegexp(seg, opts.NoCase, opts.NoExt)
		if err != nil {
			return globtoken.Token{}, err
		}
		return globtoken.Token{Kind: globtoken.Regexp, Re: re, AllowDot: strings.HasPrefix(seg, ".")}, nil
	}
}

// splitPath breaks a glob string into path segments per platform rules:
// '/' is always a separator; on Windows, '\\' is also a separator unless
// WindowsPathsNoEscape is false (in which case backslash instead escapes
// the following character, per spec.md §6). Repeated separators coalesce
// except for a UNC double-slash prefix, whose two empty leading segments
// must survive for globtoken.New's root normalization to recognize.
func splitPath(pattern string, opts Options) []string {
	if opts.Platform == globtoken.PlatformWindows {
		pattern = normalizeWindowsEscapes(pattern, opts.WindowsPathsNoEscape)
		if strings.HasPrefix(pattern, "//") || strings.HasPrefix(pattern, "\\\\") {
			return splitUNC(pattern)
		}
	}

	segs := strings.Split(pattern, "/")
	out := make([]string, 0, len(segs))
	for i, s := range segs {
		if s == "" && i != 0 && i != len(segs)-1 {
			continue // coalesce interior repeated slashes
		}
		out = append(out, s)
	}
	// A trailing empty segment from a trailing slash is meaningful to
	// globtoken's root normalization only at index 1; elsewhere it is
	// noise from e.g. "a//" and is dropped.
	if len(out) > 2 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func splitUNC(pattern string) []string {
	// pattern starts with exactly two separator characters, already
	// normalized to '/'.
	rest := pattern[2:]
	segs := strings.Split(rest, "/")
	out := []string{"", ""}
	for _, s := range segs {
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func normalizeWindowsEscapes(pattern string, noEscape bool) string {
	if !noEscape {
		// Backslash escapes the following rune rather than separating
		// path segments; leave it alone and rely on '/' as the only
		// separator, per spec.md §6.
		return pattern
	}
	return strings.ReplaceAll(pattern, "\\", "/")
}
