package producer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/glimpse/internal/bridge"
	"github.com/llehouerou/glimpse/internal/errmsg"
	"github.com/llehouerou/glimpse/internal/navigator"
)

// DefaultSettle is how long a new file must stay quiet before it is posted.
const DefaultSettle = 250 * time.Millisecond

// Watch posts files created in a set of directories. A file is posted once,
// after writes to it have settled.
type Watch struct {
	dirs   []string
	ignore *navigator.Ignore
	log    logrus.FieldLogger
	settle time.Duration
}

// NewWatch creates a watcher over dirs. ignore may be nil.
func NewWatch(dirs []string, ignore *navigator.Ignore, log logrus.FieldLogger) *Watch {
	return &Watch{dirs: dirs, ignore: ignore, log: log, settle: DefaultSettle}
}

// SetSettle overrides the quiet period.
func (w *Watch) SetSettle(d time.Duration) { w.settle = d }

func (w *Watch) Name() string { return "watch" }

// Run watches until ctx is done.
func (w *Watch) Run(ctx context.Context, post func(bridge.Message)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.log.WithField("directory", dir).Info("watching directory")
	}

	ready := make(chan string)
	pending := make(map[string]*time.Timer)
	seen := make(map[string]bool)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			path := event.Name
			if seen[path] || !w.wanted(path) {
				continue
			}
			if t, ok := pending[path]; ok {
				// A fired timer is already delivering the path.
				if t.Stop() {
					t.Reset(w.settle)
				}
				continue
			}
			pending[path] = time.AfterFunc(w.settle, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			delete(pending, path)
			if seen[path] {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				continue
			}
			seen[path] = true
			post(bridge.NewPath{Path: path})

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn(errmsg.Format(errmsg.OpWatch, err))
		}
	}
}

func (w *Watch) wanted(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") || w.ignore.Match(path) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
