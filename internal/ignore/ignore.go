// Package ignore implements the Ignore filter spec.md §4.5 describes: a
// flat, compiled set of glob-ignore patterns exposing a single
// ignored(entry) predicate. Unlike the teacher's per-directory
// .gitignore stack (internal/walker/gitignore.go in the original), this
// filter is built once from the caller-supplied ignore list and
// evaluated against every candidate match's path relative to the walk's
// cwd, regardless of the active directory.
package ignore

import (
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Filter is the compiled ignore predicate. A nil *Filter (or one built
// from zero patterns) ignores nothing.
type Filter struct {
	matcher       *gitignore.GitIgnore
	dirOnly       []string
	caseSensitive bool
}

// New compiles patterns into a Filter. Gitignore syntax already matches
// dotfile segments without special-casing, which is what gives the
// Ignore filter its "always dot:true" behavior per spec.md §4.4 — it
// needs no extra logic to reproduce.
func New(patterns []string, caseSensitive bool) (*Filter, error) {
	f := &Filter{caseSensitive: caseSensitive}
	if len(patterns) == 0 {
		return f, nil
	}
	m, err := gitignore.CompileIgnoreLines(patterns...)
	if err != nil {
		return nil, err
	}
	f.matcher = m
	for _, p := range patterns {
		if strings.HasSuffix(p, "/**") {
			f.dirOnly = append(f.dirOnly, strings.TrimSuffix(p, "/**"))
		}
	}
	return f, nil
}

// Ignored reports whether relPath (slash-separated, relative to the
// walk's cwd) should be excluded from results. isDir lets a pattern like
// "build/" match only directories, and lets a "prefix/**" pattern also
// match the prefix directory itself, not just its descendants.
func (f *Filter) Ignored(relPath string, isDir bool) bool {
	if f == nil || f.matcher == nil {
		return false
	}
	check := relPath
	if isDir && !strings.HasSuffix(check, "/") {
		check += "/"
	}
	if f.matcher.MatchesPath(check) {
		return true
	}
	if isDir {
		for _, d := range f.dirOnly {
			if f.pathEquals(relPath, d) {
				return true
			}
		}
	}
	return false
}

func (f *Filter) pathEquals(a, b string) bool {
	if f.caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}
