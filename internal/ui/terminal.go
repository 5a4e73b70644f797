// Package ui holds terminal detection helpers shared by output code.
package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal and no width is configured.
const DefaultWidth = 80

// minWidth keeps wrapped help readable on absurdly narrow settings.
const minWidth = 40

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the column width for rendering to w. A positive override
// wins; otherwise the terminal width is used, falling back to DefaultWidth.
func Width(w io.Writer, override int) int {
	if override > 0 {
		return clamp(override)
	}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return clamp(cols)
		}
	}

	return DefaultWidth
}

func clamp(w int) int {
	if w < minWidth {
		return minWidth
	}
	return w
}
