package bridge

import (
	"time"

	"github.com/llehouerou/glimpse/internal/bitmap"
	"github.com/llehouerou/glimpse/internal/source"
)

// Message is anything posted to the viewer loop.
type Message any

// Releaser is implemented by messages that own resources which must be
// freed when the message is dropped.
type Releaser interface {
	Release()
}

// FrameReady carries a decoded frame from a source.
type FrameReady struct {
	Origin    source.Source
	Bitmap    *bitmap.Bitmap
	FrameTime time.Duration
}

// Release frees the frame.
func (m FrameReady) Release() { m.Bitmap.Free() }

// DecodeFailed reports that a source could not decode its input.
type DecodeFailed struct {
	Origin source.Source
	Err    error
}

// NewPath is a path discovered by a producer.
type NewPath struct {
	Path      string
	Recursive bool
}

// ProducerDone is posted once when a producer has no more paths.
type ProducerDone struct {
	Name string
	Err  error
}

// Command is user input forwarded by the presentation layer.
type Command struct {
	Action string
	Args   []string
}

// Resize reports a new render surface size in pixels.
type Resize struct {
	Width  int
	Height int
}

// FromResult converts a source callback result into a message.
func FromResult(r source.Result) Message {
	if r.Err != nil {
		return DecodeFailed{Origin: r.Source, Err: r.Err}
	}
	return FrameReady{Origin: r.Source, Bitmap: r.Bitmap, FrameTime: r.FrameTime}
}

// Verify payload-owning messages at compile time.
var _ Releaser = FrameReady{}
