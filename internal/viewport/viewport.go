// Package viewport maps an image onto the render surface: scale, offset
// and the playing flag for animations.
package viewport

const (
	minScale = 0.1
	maxScale = 100.0
	// zoomStep is the scale change per zoom unit, relative to the window
	// width over the image width.
	zoomStep = 0.04
)

// Viewport tracks how the displayed image is placed in the window.
//
// Manual zooming or panning locks the viewport so that a window resize
// keeps the user's placement instead of refitting the image.
type Viewport struct {
	scale   float64
	x, y    int
	winW    int
	winH    int
	redraw  bool
	playing bool
	locked  bool
}

// New creates a viewport at scale 1 with playback enabled.
func New() *Viewport {
	return &Viewport{scale: 1, playing: true}
}

// SetWindowSize records the render surface size in pixels.
func (v *Viewport) SetWindowSize(w, h int) {
	if w == v.winW && h == v.winH {
		return
	}
	v.winW, v.winH = w, h
	v.redraw = true
}

func (v *Viewport) WindowSize() (int, int) { return v.winW, v.winH }

func (v *Viewport) Scale() float64 { return v.scale }

// Offset returns the position of the image's top-left corner.
func (v *Viewport) Offset() (int, int) { return v.x, v.y }

func (v *Viewport) Locked() bool { return v.locked }

func (v *Viewport) Playing() bool { return v.playing }

func (v *Viewport) SetPlaying(playing bool) { v.playing = playing }

func (v *Viewport) TogglePlaying() { v.playing = !v.playing }

// SetRedraw marks the viewport dirty.
func (v *Viewport) SetRedraw() { v.redraw = true }

// NeedsRedraw reports and clears the dirty flag.
func (v *Viewport) NeedsRedraw() bool {
	r := v.redraw
	v.redraw = false
	return r
}

// ScaleToActual shows the image at its native size, centered.
func (v *Viewport) ScaleToActual(imgW, imgH int) {
	v.scale = 1
	v.redraw = true
	v.locked = true
	v.Center(imgW, imgH)
}

// ScaleToWindow fits the image inside the window keeping its aspect ratio,
// centered.
func (v *Viewport) ScaleToWindow(imgW, imgH int) {
	if imgW <= 0 || imgH <= 0 || v.winW <= 0 || v.winH <= 0 {
		return
	}
	windowAspect := float64(v.winW) / float64(v.winH)
	imageAspect := float64(imgW) / float64(imgH)

	if windowAspect > imageAspect {
		v.scale = float64(v.winH) / float64(imgH)
	} else {
		v.scale = float64(v.winW) / float64(imgW)
	}

	v.Center(imgW, imgH)
	v.locked = false
}

// Rescale applies a scaling mode to an image of the given size.
func (v *Viewport) Rescale(mode ScalingMode, imgW, imgH int) {
	if mode == ScalingNone ||
		(mode == ScalingShrink && v.winW > imgW && v.winH > imgH) {
		v.ScaleToActual(imgW, imgH)
		return
	}
	v.ScaleToWindow(imgW, imgH)
}

// Center centers the image at the current scale.
func (v *Viewport) Center(imgW, imgH int) {
	v.x = int((float64(v.winW) - float64(imgW)*v.scale) / 2)
	v.y = int((float64(v.winH) - float64(imgH)*v.scale) / 2)
	v.locked = true
	v.redraw = true
}

// Top centers the image horizontally and aligns it with the top edge.
func (v *Viewport) Top(imgW int) {
	v.x = int((float64(v.winW) - float64(imgW)*v.scale) / 2)
	v.y = 0
	v.locked = true
	v.redraw = true
}

// Bottom centers the image horizontally and aligns it with the bottom edge.
func (v *Viewport) Bottom(imgW, imgH int) {
	v.x = int((float64(v.winW) - float64(imgW)*v.scale) / 2)
	v.y = int(float64(v.winH) - float64(imgH)*v.scale)
	v.locked = true
	v.redraw = true
}

// Move pans by dx, dy. The image may leave the window but never by more
// than its own size.
func (v *Viewport) Move(dx, dy, imgW, imgH int) {
	v.x += dx
	v.y += dy
	v.redraw = true
	v.locked = true

	w := int(float64(imgW) * v.scale)
	h := int(float64(imgH) * v.scale)
	v.x = min(max(v.x, -w), v.winW)
	v.y = min(max(v.y, -h), v.winH)
}

// Zoom changes the scale by amount steps around the image center.
// Positive amounts zoom in.
func (v *Viewport) Zoom(imgW, imgH, amount int) {
	if imgW <= 0 || imgH <= 0 {
		return
	}
	prev := v.scale

	x := int(v.scale * float64(imgW) / 2)
	y := int(v.scale * float64(imgH) / 2)

	scaledW := int(float64(imgW) * v.scale)
	scaledH := int(float64(imgH) * v.scale)
	icX := v.x + scaledW/2
	icY := v.y + scaledH/2
	wcX := v.winW / 2
	wcY := v.winH / 2

	v.scale += zoomStep * float64(v.winW) * float64(amount) / float64(imgW)
	v.scale = min(max(v.scale, minScale), maxScale)

	// While the image is smaller than the window, zoom around the window
	// center instead, pulling an off-center image back when zooming out.
	if v.scale < prev {
		if scaledW < v.winW {
			x = scaledW/2 - (icX-wcX)*2
		}
		if scaledH < v.winH {
			y = scaledH/2 - (icY-wcY)*2
		}
	} else {
		if scaledW < v.winW {
			x = scaledW / 2
		}
		if scaledH < v.winH {
			y = scaledH / 2
		}
	}

	ratio := v.scale / prev
	v.x = int(float64(v.x) + (float64(x) - float64(x)*ratio))
	v.y = int(float64(v.y) + (float64(y) - float64(y)*ratio))

	v.redraw = true
	v.locked = true
}

// Update refits the image after a window change unless the user has taken
// manual control.
func (v *Viewport) Update(imgW, imgH int) {
	v.redraw = true
	if v.locked {
		return
	}
	v.ScaleToWindow(imgW, imgH)
}
