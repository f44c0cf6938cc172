package source

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/glimpse/internal/bitmap"
)

// Loader is the decoder a backend plugs into a Session.
type Loader interface {
	LoadFirst() (*bitmap.Bitmap, time.Duration, error)
	Close()
}

// FrameLoader is a Loader for multi-frame formats.
type FrameLoader interface {
	Loader
	LoadNext() (*bitmap.Bitmap, time.Duration, error)
}

// Session implements the Source lifecycle around a Loader.
//
// Lifecycle:
//
//	Created ──LoadFirstFrame──▶ Loading ──▶ Ready | Failed
//	Ready ──LoadNextFrame──▶ Loading ──▶ Ready | Failed
//	any ──Free──▶ Freed
//
// Load calls and Free are serialized by mu, so Free issued from another
// goroutine waits for an outstanding load to return.
type Session struct {
	id     string
	name   string
	loader Loader
	// origin is the value handed to callers, so results compare equal to
	// what the backend returned.
	origin Source

	mu    sync.Mutex
	cb    Callback
	state atomic.Int32
}

// AnimatedSession is a Session whose loader can step through frames.
type AnimatedSession struct {
	*Session
	frames FrameLoader
}

// New wraps a loader. The returned Source is Animated when the loader is a
// FrameLoader.
func New(name string, l Loader) Source {
	s := &Session{
		id:     uuid.NewString(),
		name:   name,
		loader: l,
	}
	if fl, ok := l.(FrameLoader); ok {
		a := &AnimatedSession{Session: s, frames: fl}
		s.origin = a
		return a
	}
	s.origin = s
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Name() string { return s.name }

func (s *Session) State() State { return State(s.state.Load()) }

func (s *Session) SetCallback(cb Callback) {
	s.mu.Lock()
	s.cb = cb
	s.mu.Unlock()
}

func (s *Session) LoadFirstFrame() {
	s.load(Created, s.loader.LoadFirst)
}

// LoadNextFrame is a no-op unless the previous frame was delivered.
func (a *AnimatedSession) LoadNextFrame() {
	a.load(Ready, a.frames.LoadNext)
}

func (s *Session) load(from State, fn func() (*bitmap.Bitmap, time.Duration, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State() != from {
		return
	}
	s.state.Store(int32(Loading))

	bmp, frameTime, err := fn()
	if err != nil {
		bmp.Free()
		s.state.Store(int32(Failed))
		s.emit(Result{
			Source: s.origin,
			Err:    fmt.Errorf("%w: %s: %w", ErrDecode, s.name, err),
		})
		return
	}

	s.state.Store(int32(Ready))
	s.emit(Result{Source: s.origin, Bitmap: bmp, FrameTime: frameTime})
}

func (s *Session) emit(r Result) {
	if s.cb == nil {
		r.Bitmap.Free()
		return
	}
	s.cb(r)
}

func (s *Session) Free() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State() == Freed {
		return
	}
	s.state.Store(int32(Freed))
	s.loader.Close()
}
