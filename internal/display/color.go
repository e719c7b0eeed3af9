package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the lipgloss styles used to color directory vs. file
// results, adapted from the teacher's output/color.go (which colored
// filenames, line numbers, and matched text instead).
type Styles struct {
	Dir     lipgloss.Style
	File    lipgloss.Style
	Symlink lipgloss.Style
}

// NewStyles returns the default color styles.
func NewStyles() Styles {
	return Styles{
		Dir:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true), // blue
		File:    lipgloss.NewStyle(),
		Symlink: lipgloss.NewStyle().Foreground(lipgloss.Color("6")), // cyan
	}
}

// NoStyles returns styles with no coloring.
func NoStyles() Styles {
	return Styles{
		Dir:     lipgloss.NewStyle(),
		File:    lipgloss.NewStyle(),
		Symlink: lipgloss.NewStyle(),
	}
}

// StdoutIsTerminal reports whether stdout is attached to a terminal,
// using go-isatty rather than the teacher's raw unix.IoctlGetTermios
// call so the check works across the platforms internal/dircache
// already supports (the teacher only ever ran on Linux).
func StdoutIsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
