package navigator

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// Walk calls fn for each file under root in lexical order. Hidden entries
// and entries matched by ignore are skipped. Subdirectories are only
// entered when recursive. The walk stops early when ctx is canceled.
func Walk(ctx context.Context, root string, recursive bool, ignore *Ignore, fn func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == root {
			return err
		}
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries, continue walking
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") || ignore.Match(path) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if !recursive {
				return fs.SkipDir
			}
			return nil
		}

		fn(path)
		return nil
	})
}

// Scan returns the files Walk would visit.
func Scan(root string, recursive bool, ignore *Ignore) ([]string, error) {
	var files []string
	err := Walk(context.Background(), root, recursive, ignore, func(path string) {
		files = append(files, path)
	})
	return files, err
}
