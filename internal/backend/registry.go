package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/llehouerou/glimpse/internal/source"
)

// Registry is an ordered set of backends. The most recently installed
// backend is tried first.
type Registry struct {
	mu       sync.RWMutex
	backends []Backend
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Install registers a backend ahead of all previously installed ones.
func (r *Registry) Install(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends = append([]Backend{b}, r.backends...)
}

// Backends returns the backends in trial order.
func (r *Registry) Backends() []Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Backend, len(r.backends))
	copy(out, r.backends)
	return out
}

// Resolve opens the input with the first backend that accepts it.
//
// Backends whose capability does not cover the input kind are skipped.
// ErrUnsupported moves on to the next backend; any other error stops the
// search.
func (r *Registry) Resolve(in Input) (source.Source, Backend, error) {
	backends := r.Backends()
	if len(backends) == 0 {
		return nil, nil, ErrNoBackends
	}

	for _, b := range backends {
		if !b.Capability().Accepts(in) {
			continue
		}
		src, err := open(b, in)
		if errors.Is(err, ErrUnsupported) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: open %s: %w", b.Info().Name, in.Name, err)
		}
		return src, b, nil
	}
	return nil, nil, fmt.Errorf("%s: %w", in.Name, ErrUnsupported)
}

func open(b Backend, in Input) (source.Source, error) {
	if in.IsMemory() {
		return b.OpenMemory(in.Data)
	}
	return b.OpenPath(in.Path)
}
