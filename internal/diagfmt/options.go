// Package diagfmt renders diagnostic bags for terminals and tools.
package diagfmt

import (
	"path/filepath"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto uses a relative path when it is shorter.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	Width     uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}

func displayPath(path string, mode PathMode) string {
	if path == "" {
		return ""
	}
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeRelative, PathModeAuto:
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		wd, err := filepath.Abs(".")
		if err != nil {
			return path
		}
		rel, err := filepath.Rel(wd, abs)
		if err != nil {
			return path
		}
		if mode == PathModeAuto && len(rel) >= len(abs) {
			return abs
		}
		return rel
	}
	return path
}
