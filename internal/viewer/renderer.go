package viewer

import "image"

// Renderer presents scenes. Draw is called from the viewer goroutine and
// must not block on it.
type Renderer interface {
	Draw(scene Scene)
	// Size returns the render surface size in pixels.
	Size() (width, height int)
}

// Scene is everything needed to draw one frame of the viewer.
type Scene struct {
	// Image is nil when nothing is displayed.
	Image image.Image
	Scale float64
	X, Y  int
	Title string
	// Overlay is empty when the overlay is hidden.
	Overlay string
	Loading bool
	Empty   bool
}
