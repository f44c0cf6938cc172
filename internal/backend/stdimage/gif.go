package stdimage

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/gif"
	"time"

	"github.com/llehouerou/glimpse/internal/bitmap"
)

const (
	// Delays at or below this are treated as unset.
	minFrameDelay     = 20 * time.Millisecond
	defaultFrameDelay = 100 * time.Millisecond
)

var errNoFrames = errors.New("gif has no frames")

// gifLoader composites GIF frames onto a persistent canvas, honouring each
// frame's disposal method.
type gifLoader struct {
	read func() ([]byte, error)

	g        *gif.GIF
	canvas   *image.RGBA
	saved    *image.RGBA
	index    int
	prevRect image.Rectangle
	prevDisp byte
}

func (l *gifLoader) LoadFirst() (*bitmap.Bitmap, time.Duration, error) {
	data, err := l.read()
	if err != nil {
		return nil, 0, err
	}
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	if len(g.Image) == 0 {
		return nil, 0, errNoFrames
	}
	l.g = g

	width, height := g.Config.Width, g.Config.Height
	if width == 0 || height == 0 {
		b := g.Image[0].Bounds()
		width, height = b.Max.X, b.Max.Y
	}
	l.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
	l.index = 0

	bmp := l.render()
	if len(g.Image) == 1 {
		return bmp, 0, nil
	}
	return bmp, l.delay(0), nil
}

func (l *gifLoader) LoadNext() (*bitmap.Bitmap, time.Duration, error) {
	if l.g == nil {
		return nil, 0, errNoFrames
	}
	l.dispose()
	l.index++
	if l.index >= len(l.g.Image) {
		l.index = 0
		draw.Draw(l.canvas, l.canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)
	}
	bmp := l.render()
	return bmp, l.delay(l.index), nil
}

// render draws the current frame and returns a copy of the canvas.
func (l *gifLoader) render() *bitmap.Bitmap {
	frame := l.g.Image[l.index]
	disp := l.disposal(l.index)
	if disp == gif.DisposalPrevious {
		l.saved = cloneRGBA(l.canvas)
	}
	draw.Draw(l.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	l.prevRect = frame.Bounds()
	l.prevDisp = disp
	return bitmap.New(cloneRGBA(l.canvas))
}

// dispose applies the disposal method of the frame last rendered.
func (l *gifLoader) dispose() {
	switch l.prevDisp {
	case gif.DisposalBackground:
		draw.Draw(l.canvas, l.prevRect, image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		if l.saved != nil {
			draw.Draw(l.canvas, l.canvas.Bounds(), l.saved, image.Point{}, draw.Src)
		}
	}
}

func (l *gifLoader) disposal(i int) byte {
	if i < len(l.g.Disposal) {
		return l.g.Disposal[i]
	}
	return gif.DisposalNone
}

func (l *gifLoader) delay(i int) time.Duration {
	if i >= len(l.g.Delay) {
		return defaultFrameDelay
	}
	d := time.Duration(l.g.Delay[i]) * 10 * time.Millisecond
	if d < minFrameDelay {
		return defaultFrameDelay
	}
	return d
}

func (l *gifLoader) Close() {
	l.read = nil
	l.g = nil
	l.canvas = nil
	l.saved = nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
