package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/glimpse/internal/viewer"
)

// SceneMsg carries a scene from the viewer to the program.
type SceneMsg struct {
	Scene viewer.Scene
}

// Renderer hands viewer scenes to the bubbletea program. Draw keeps only
// the latest scene, so a busy program never blocks the viewer loop.
type Renderer struct {
	mu     sync.Mutex
	width  int
	height int
	latest *viewer.Scene
	notify chan struct{}
}

var _ viewer.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer with no surface yet.
func NewRenderer() *Renderer {
	return &Renderer{notify: make(chan struct{}, 1)}
}

// Attach forwards scenes to send until ctx is done.
func (r *Renderer) Attach(ctx context.Context, send func(tea.Msg)) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.notify:
			}
			r.mu.Lock()
			s := r.latest
			r.latest = nil
			r.mu.Unlock()
			if s != nil {
				send(SceneMsg{Scene: *s})
			}
		}
	}()
}

func (r *Renderer) Draw(scene viewer.Scene) {
	r.mu.Lock()
	r.latest = &scene
	r.mu.Unlock()
	select {
	case r.notify <- struct{}{}:
	default:
	}
}

// Size returns the image area in pixels.
func (r *Renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *Renderer) setSize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
}
