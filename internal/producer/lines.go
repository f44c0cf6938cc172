// Package producer holds background sources of paths for the viewer.
package producer

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/llehouerou/glimpse/internal/bridge"
)

// Lines posts one path per non-empty line read from r.
type Lines struct {
	name      string
	r         io.Reader
	recursive bool
}

// NewLines creates a producer reading paths from r. Directories in the
// stream are expanded recursively when recursive is set.
func NewLines(name string, r io.Reader, recursive bool) *Lines {
	return &Lines{name: name, r: r, recursive: recursive}
}

func (l *Lines) Name() string { return l.name }

// Run reads until EOF or ctx is done. A read blocked on the underlying
// reader is not interrupted.
func (l *Lines) Run(ctx context.Context, post func(bridge.Message)) error {
	scanner := bufio.NewScanner(l.r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := strings.TrimSpace(scanner.Text())
		if path == "" {
			continue
		}
		post(bridge.NewPath{Path: path, Recursive: l.recursive})
	}
	return scanner.Err()
}
