// Package navigator keeps the ordered list of inputs and the selection
// cursor the viewer follows.
package navigator

import (
	"errors"
	"os"
)

// StdinPath is the entry that stands for image data read from stdin.
const StdinPath = "-"

// ErrEmpty is returned by Current when the list has no entries.
var ErrEmpty = errors.New("no inputs")

// Navigator is an ordered list of paths with a selection cursor.
//
// Mutations that change the selected entry raise a one-shot changed flag
// consumed by PollChanged. A relative move that crosses either end of the
// list sets the sticky wrapped flag.
//
// Navigator is not safe for concurrent use.
type Navigator struct {
	paths    []string
	cur      int
	lastMove int
	changed  bool
	wrapped  bool
	ignore   *Ignore
}

// New creates an empty navigator. ignore may be nil.
func New(ignore *Ignore) *Navigator {
	return &Navigator{ignore: ignore, lastMove: 1}
}

// Add appends path. A directory is expanded into its files in lexical
// order, descending into subdirectories only when recursive. Paths that
// cannot be inspected, and StdinPath, are appended as is.
func (n *Navigator) Add(path string, recursive bool) error {
	if path == StdinPath {
		n.append(path)
		return nil
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		n.append(path)
		return nil
	}

	files, err := Scan(path, recursive, n.ignore)
	if err != nil {
		return err
	}
	n.append(files...)
	return nil
}

func (n *Navigator) append(paths ...string) {
	if len(paths) == 0 {
		return
	}
	wasEmpty := len(n.paths) == 0
	n.paths = append(n.paths, paths...)
	if wasEmpty {
		n.cur = 0
		n.changed = true
	}
}

// Remove removes the first entry equal to path and reports whether one was
// found.
func (n *Navigator) Remove(path string) bool {
	return n.RemoveAt(n.Find(path))
}

// RemoveAt removes the entry at index i.
//
// Removing the selected entry selects the entry that took its place, or the
// previous one when the last move went backwards. Running off either end
// wraps around and sets the wrapped flag.
func (n *Navigator) RemoveAt(i int) bool {
	if i < 0 || i >= len(n.paths) {
		return false
	}
	n.paths = append(n.paths[:i], n.paths[i+1:]...)

	if len(n.paths) == 0 {
		n.cur = 0
		n.changed = false
		return true
	}

	switch {
	case i < n.cur:
		n.cur--
	case i == n.cur:
		if n.lastMove < 0 {
			n.cur--
		}
		if n.cur < 0 {
			n.cur = len(n.paths) - 1
			n.wrapped = true
		} else if n.cur >= len(n.paths) {
			n.cur = 0
			n.wrapped = true
		}
		n.changed = true
	}
	return true
}

// SelectRelative moves the cursor by delta, wrapping around the list.
func (n *Navigator) SelectRelative(delta int) {
	size := len(n.paths)
	if size == 0 {
		return
	}
	switch {
	case delta > 0:
		n.lastMove = 1
	case delta < 0:
		n.lastMove = -1
	}

	next := n.cur + delta
	if next < 0 || next >= size {
		n.wrapped = true
	}
	n.setCursor(((next % size) + size) % size)
}

// SelectAbsolute selects entry index. Negative values count from the end,
// so -1 is the last entry. Out-of-range values are clamped.
func (n *Navigator) SelectAbsolute(index int) {
	size := len(n.paths)
	if size == 0 {
		return
	}
	if index < 0 {
		index += size
	}
	n.setCursor(min(max(index, 0), size-1))
}

func (n *Navigator) setCursor(i int) {
	if i != n.cur {
		n.cur = i
		n.changed = true
	}
}

// PollChanged reports whether the selection changed since the last call.
// It never reports a change on an empty list.
func (n *Navigator) PollChanged() bool {
	changed := n.changed && len(n.paths) > 0
	n.changed = false
	return changed
}

// Selection returns the selected path, or "" when the list is empty.
func (n *Navigator) Selection() string {
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[n.cur]
}

// Current returns the selected path, or ErrEmpty.
func (n *Navigator) Current() (string, error) {
	if len(n.paths) == 0 {
		return "", ErrEmpty
	}
	return n.paths[n.cur], nil
}

// Index returns the selection index. It is 0 when the list is empty.
func (n *Navigator) Index() int { return n.cur }

func (n *Navigator) Len() int { return len(n.paths) }

// At returns the entry at index i, or "" when out of range.
func (n *Navigator) At(i int) string {
	if i < 0 || i >= len(n.paths) {
		return ""
	}
	return n.paths[i]
}

// Find returns the index of the first entry equal to path, or -1.
func (n *Navigator) Find(path string) int {
	for i, p := range n.paths {
		if p == path {
			return i
		}
	}
	return -1
}

// Paths returns a copy of the entries.
func (n *Navigator) Paths() []string {
	out := make([]string, len(n.paths))
	copy(out, n.paths)
	return out
}

// Wrapped reports whether a move has crossed the end of the list.
func (n *Navigator) Wrapped() bool { return n.wrapped }
