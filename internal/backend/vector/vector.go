// Package vector rasterises SVG documents.
package vector

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/llehouerou/glimpse/internal/backend"
	"github.com/llehouerou/glimpse/internal/bitmap"
	"github.com/llehouerou/glimpse/internal/source"
)

const (
	// MaxEdge bounds the longer side of the rasterised image.
	MaxEdge = 4096
	// fallbackEdge is used when the document has no usable viewBox.
	fallbackEdge = 512
)

var errEmptyCanvas = errors.New("svg has an empty canvas")

// Backend opens SVG inputs.
type Backend struct{}

// New creates the backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Info() backend.Info {
	return backend.Info{
		Name:        "vector",
		Description: "SVG rasterised with oksvg and rasterx",
		Website:     "https://github.com/srwiley/oksvg",
		License:     "BSD-3-Clause",
	}
}

func (b *Backend) Capability() backend.Capability {
	return backend.Both
}

func (b *Backend) OpenPath(path string) (source.Source, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect format: %w", err)
	}
	if !mtype.Is("image/svg+xml") {
		return nil, backend.ErrUnsupported
	}
	return source.New(path, &loader{read: func() ([]byte, error) {
		return os.ReadFile(path)
	}}), nil
}

func (b *Backend) OpenMemory(data []byte) (source.Source, error) {
	if !mimetype.Detect(data).Is("image/svg+xml") {
		return nil, backend.ErrUnsupported
	}
	return source.New("-", &loader{read: func() ([]byte, error) {
		return data, nil
	}}), nil
}

type loader struct {
	read func() ([]byte, error)
}

func (l *loader) LoadFirst() (*bitmap.Bitmap, time.Duration, error) {
	data, err := l.read()
	if err != nil {
		return nil, 0, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, 0, err
	}

	w, h := canvasSize(icon.ViewBox.W, icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, 0, errEmptyCanvas
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	return bitmap.New(img), 0, nil
}

func (l *loader) Close() {
	l.read = nil
}

// canvasSize picks the raster size for a viewBox, keeping the aspect ratio
// and capping the longer edge at MaxEdge.
func canvasSize(vw, vh float64) (int, int) {
	if vw <= 0 || vh <= 0 {
		return fallbackEdge, fallbackEdge
	}
	longer := max(vw, vh)
	if longer > MaxEdge {
		scale := MaxEdge / longer
		vw *= scale
		vh *= scale
	}
	return max(int(vw+0.5), 1), max(int(vh+0.5), 1)
}

// Verify interface compliance at compile time.
var _ backend.Backend = (*Backend)(nil)
