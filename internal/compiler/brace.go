package compiler

import (
	"strconv"
	"strings"
)

// ExpandBraces performs brace-expansion preprocessing on a single glob
// string, returning one or more alternative glob strings with no
// remaining top-level '{...}' groups. It supports comma lists ({a,b,c})
// and numeric ranges ({1..3}), including an optional step ({1..10..2}).
//
// This mirrors the brace-expansion convention the teacher's own glob
// matcher used inline (internal/walker/walker.go's matchGlob), lifted out
// into its own preprocessing step per spec.md's component boundaries.
func ExpandBraces(pattern string) []string {
	i := strings.IndexByte(pattern, '{')
	if i < 0 {
		return []string{pattern}
	}
	j := matchingBrace(pattern, i)
	if j < 0 {
		return []string{pattern}
	}

	prefix, body, suffix := pattern[:i], pattern[i+1:j], pattern[j+1:]
	alts := splitBraceBody(body)
	if len(alts) <= 1 {
		// Not actually a list/range — treat the braces as literal text.
		return []string{pattern}
	}

	var out []string
	for _, alt := range alts {
		for _, expandedAlt := range ExpandBraces(alt) {
			for _, expandedSuffix := range ExpandBraces(suffix) {
				out = append(out, prefix+expandedAlt+expandedSuffix)
			}
		}
	}
	return out
}

// matchingBrace returns the index of the '}' matching the '{' at open,
// honoring nested braces, or -1 if unmatched.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitBraceBody expands a single {...} body into its alternatives: a
// numeric range if it matches "lo..hi" or "lo..hi..step", otherwise a
// comma-separated list, splitting only at depth 0 so nested braces in
// list items are preserved for recursive expansion.
func splitBraceBody(body string) []string {
	if alts, ok := numericRange(body); ok {
		return alts
	}

	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, body[start:])
	return parts
}

func numericRange(body string) ([]string, bool) {
	fields := strings.Split(body, "..")
	if len(fields) != 2 && len(fields) != 3 {
		return nil, false
	}
	lo, err1 := strconv.Atoi(fields[0])
	hi, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return nil, false
	}
	step := 1
	if len(fields) == 3 {
		s, err := strconv.Atoi(fields[2])
		if err != nil || s == 0 {
			return nil, false
		}
		step = s
		if step < 0 {
			step = -step
		}
	}

	width := 0
	if strings.HasPrefix(fields[0], "0") && len(fields[0]) > 1 {
		width = len(fields[0])
	}

	var out []string
	if lo <= hi {
		for v := lo; v <= hi; v += step {
			out = append(out, padInt(v, width))
		}
	} else {
		for v := lo; v >= hi; v -= step {
			out = append(out, padInt(v, width))
		}
	}
	return out, true
}

func padInt(v, width int) string {
	s := strconv.Itoa(v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for len(s) < width {
		s = "0" + s
	}
	if neg {
		s = "-" + s
	}
	return s
}
