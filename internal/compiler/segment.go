package compiler

import (
	"regexp"
	"strings"
)

// segmentIsLiteral reports whether a single path segment contains no glob
// metacharacters and can be carried as a Literal token without building a
// regexp at all — the common case, and worth special-casing the way the
// teacher's matcher/factory.go special-cases all-literal pattern sets.
func segmentIsLiteral(seg string, noExt bool) bool {
	if strings.ContainsAny(seg, "*?[") {
		return false
	}
	if !noExt && containsExtglobOpen(seg) {
		return false
	}
	return true
}

func containsExtglobOpen(seg string) bool {
	for i := 0; i+1 < len(seg); i++ {
		switch seg[i] {
		case '!', '?', '+', '*', '@':
			if seg[i+1] == '(' {
				return true
			}
		}
	}
	return false
}

// compileSegmentRegexp translates one shell-glob path segment into a Go
// regexp anchored to the whole segment. Supported: '*', '?', POSIX-aware
// character classes '[...]'/'[!...]', and the extglob forms
// '?(...)' '*(...)' '+(...)' '@(...)' '!(...)'  (alternatives separated
// by '|', no nesting across '/').
//
// Case-folding follows the teacher's RegexMatcher convention of prefixing
// the pattern with "(?i)" rather than hand-rolling a fold table.
func compileSegmentRegexp(seg string, nocase, noExt bool) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')
	if err := translateSegment(seg, &b, noExt); err != nil {
		return nil, err
	}
	b.WriteByte('$')

	pat := b.String()
	if nocase {
		pat = "(?i)" + pat
	}
	return regexp.Compile(pat)
}

func translateSegment(seg string, b *strings.Builder, noExt bool) error {
	for i := 0; i < len(seg); {
		c := seg[i]
		switch {
		case !noExt && isExtglobOpen(seg, i):
			n, err := translateExtglob(seg[i:], b)
			if err != nil {
				return err
			}
			i += n
		case c == '*':
			b.WriteString(".*")
			i++
		case c == '?':
			b.WriteByte('.')
			i++
		case c == '[':
			n, err := translateClass(seg[i:], b)
			if err != nil {
				// Unterminated class: treat '[' as a literal, per
				// common shell-glob fallback behavior.
				b.WriteString(regexp.QuoteMeta("["))
				i++
				continue
			}
			i += n
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	return nil
}

func isExtglobOpen(seg string, i int) bool {
	if i+1 >= len(seg) {
		return false
	}
	switch seg[i] {
	case '!', '?', '+', '*', '@':
		return seg[i+1] == '('
	}
	return false
}

// translateClass translates a '[...]' or '[!...]' bracket expression
// starting at seg[0] into an RE2 class, returning the number of bytes
// consumed. RE2 already understands POSIX named classes written as
// "[:alpha:]" inside a bracket expression, so their contents pass
// through unchanged; only the glob negation marker '!' is rewritten to
// RE2's '^'.
func translateClass(seg string, b *strings.Builder) (int, error) {
	// closeAt returns the offset (within seg[from:]) of the first ']' that
	// does not close a "[:name:]" POSIX class.
	closeAt := func(from int) int {
		for i := from; i < len(seg); i++ {
			if seg[i] == '[' && i+1 < len(seg) && seg[i+1] == ':' {
				if k := strings.Index(seg[i+2:], ":]"); k >= 0 {
					i += k + 3
					continue
				}
			}
			if seg[i] == ']' {
				return i - from
			}
		}
		return -1
	}
	end := closeAt(1)
	// Allow a ']' as the first class member, e.g. "[]abc]".
	start := 1
	if end == 0 {
		next := closeAt(2)
		if next < 0 {
			return 0, errUnterminatedClass
		}
		end = next + 1
		start = 2
	}
	if end < 0 {
		return 0, errUnterminatedClass
	}
	body := seg[start : end+1]
	if start == 2 {
		// RE2 has no POSIX "leading ']' is literal" carve-out, so the
		// member must be escaped or RE2 reads it as the class terminator.
		body = `\]` + body
	}

	b.WriteByte('[')
	if strings.HasPrefix(body, "!") {
		b.WriteByte('^')
		body = body[1:]
	} else if strings.HasPrefix(body, "^") {
		// A literal '^' as the first class member in shell globs; RE2
		// would read it as negation, so escape it.
		b.WriteString(`\^`)
		body = body[1:]
	}
	b.WriteString(body)
	b.WriteByte(']')
	return end + 2, nil
}

var errUnterminatedClass = regexpErr("unterminated '[' character class")

type regexpErr string

func (e regexpErr) Error() string { return string(e) }

// translateExtglob translates one extglob group starting at seg[0]
// (e.g. "@(foo|bar)") into an RE2 fragment, returning bytes consumed.
//
// '!(...)' (negation) has no faithful RE2 translation — RE2 supports no
// lookaround — so it is compiled permissively as "match anything" rather
// than rejected; see DESIGN.md for this Open Question's resolution.
func translateExtglob(seg string, b *strings.Builder) (int, error) {
	kind := seg[0]
	// seg[1] is the extglob group's own opening '(', already accounted
	// for; scanning starts just past it so that only genuinely nested
	// parens inside the group bump depth.
	depth := 0
	closeIdx := -1
	for i := 2; i < len(seg); i++ {
		switch seg[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				closeIdx = i
			} else {
				depth--
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return 0, errUnterminatedClass
	}

	body := seg[2:closeIdx]
	alts := strings.Split(body, "|")

	if kind == '!' {
		b.WriteString(".*")
		return closeIdx + 1, nil
	}

	var inner strings.Builder
	for i, alt := range alts {
		if i > 0 {
			inner.WriteByte('|')
		}
		if err := translateSegment(alt, &inner, false); err != nil {
			return 0, err
		}
	}

	b.WriteString("(?:")
	b.WriteString(inner.String())
	b.WriteByte(')')
	switch kind {
	case '?':
		b.WriteByte('?')
	case '*':
		b.WriteByte('*')
	case '+':
		b.WriteByte('+')
	case '@':
		// exactly one — nothing to append
	}
	return closeIdx + 1, nil
}
