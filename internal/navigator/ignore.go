package navigator

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Ignore matches paths against glob patterns. A pattern without a path
// separator is matched against the base name, otherwise against the
// whole path.
type Ignore struct {
	names []glob.Glob
	paths []glob.Glob
}

// NewIgnore compiles patterns such as "*.txt" or "**/thumbs/*".
func NewIgnore(patterns []string) (*Ignore, error) {
	ig := &Ignore{}
	for _, p := range patterns {
		g, err := glob.Compile(p, filepath.Separator)
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", p, err)
		}
		if containsSeparator(p) {
			ig.paths = append(ig.paths, g)
		} else {
			ig.names = append(ig.names, g)
		}
	}
	return ig, nil
}

// Match reports whether path is ignored. A nil Ignore matches nothing.
func (ig *Ignore) Match(path string) bool {
	if ig == nil {
		return false
	}
	base := filepath.Base(path)
	for _, g := range ig.names {
		if g.Match(base) {
			return true
		}
	}
	for _, g := range ig.paths {
		if g.Match(path) {
			return true
		}
	}
	return false
}

func containsSeparator(p string) bool {
	for i := range len(p) {
		if p[i] == '/' || p[i] == filepath.Separator {
			return true
		}
	}
	return false
}
