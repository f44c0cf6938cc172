// Package source defines the decode-session contract shared by backends and
// the viewer loop.
package source

import (
	"errors"
	"time"

	"github.com/llehouerou/glimpse/internal/bitmap"
)

// ErrDecode marks a backend that accepted an input but failed to decode it.
var ErrDecode = errors.New("decode failed")

// Result is delivered once per load call.
type Result struct {
	Source    Source
	Bitmap    *bitmap.Bitmap // nil when Err is set
	FrameTime time.Duration  // 0 for still images
	Err       error
}

// Callback receives load results. It is invoked from the goroutine that ran
// the load, so it must not block.
type Callback func(Result)

// Source is one decode session bound to one input.
type Source interface {
	// ID is a session identifier for logs.
	ID() string
	// Name is the input the session was opened for.
	Name() string
	SetCallback(cb Callback)
	// LoadFirstFrame decodes the first frame and reports it through the
	// callback. Intended to run on a background goroutine.
	LoadFirstFrame()
	// Free releases decoder resources. Safe from any goroutine; waits for an
	// outstanding load call to return.
	Free()
	State() State
}

// Animated is implemented by sources that can produce further frames.
type Animated interface {
	Source
	// LoadNextFrame decodes the frame after the one last delivered.
	LoadNextFrame()
}

// State is the lifecycle position of a session. Superseded and freeing are
// tracked by the viewer: a source is superseded once it is no longer
// current, and freeing once its Free has been dispatched.
type State int32

const (
	Created State = iota
	Loading
	Ready
	Failed
	Freed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Loading:
		return "Loading"
	case Ready:
		return "Ready"
	case Failed:
		return "Failed"
	case Freed:
		return "Freed"
	default:
		return "Unknown"
	}
}

// Verify sessions implement the contracts at compile time.
var (
	_ Source   = (*Session)(nil)
	_ Animated = (*AnimatedSession)(nil)
)
