// Package bitmap holds fully decoded raster frames.
package bitmap

import (
	"image"
	"sync/atomic"
)

// Bitmap is a decoded frame ready for display.
//
// A Bitmap has a single owner at a time. Whoever drops it (display
// replaced, stale message discarded, queue closed) must call Free.
type Bitmap struct {
	img    image.Image
	width  int
	height int
	freed  atomic.Bool
	onFree func()
}

// New wraps a decoded image.
func New(img image.Image) *Bitmap {
	b := img.Bounds()
	return &Bitmap{img: img, width: b.Dx(), height: b.Dy()}
}

// NewWithRelease wraps a decoded image and runs release once when the
// bitmap is freed.
func NewWithRelease(img image.Image, release func()) *Bitmap {
	bmp := New(img)
	bmp.onFree = release
	return bmp
}

// Image returns the underlying image, or nil once freed.
func (b *Bitmap) Image() image.Image {
	if b == nil || b.freed.Load() {
		return nil
	}
	return b.img
}

func (b *Bitmap) Width() int { return b.width }

func (b *Bitmap) Height() int { return b.height }

// Free releases the pixel data. Safe to call more than once and on nil.
func (b *Bitmap) Free() {
	if b == nil {
		return
	}
	if !b.freed.CompareAndSwap(false, true) {
		return
	}
	b.img = nil
	if b.onFree != nil {
		b.onFree()
	}
}

// Freed reports whether Free has been called.
func (b *Bitmap) Freed() bool {
	return b != nil && b.freed.Load()
}
