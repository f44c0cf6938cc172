// Package stdimage decodes raster formats with the Go image packages.
package stdimage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"github.com/llehouerou/glimpse/internal/backend"
	"github.com/llehouerou/glimpse/internal/bitmap"
	"github.com/llehouerou/glimpse/internal/source"
)

const (
	mimeGIF  = "image/gif"
	mimeJPEG = "image/jpeg"
)

var supported = []string{
	"image/png",
	mimeJPEG,
	mimeGIF,
	"image/bmp",
	"image/tiff",
	"image/webp",
}

// Backend opens PNG, JPEG, GIF, BMP, TIFF and WebP inputs.
type Backend struct{}

// New creates the backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Info() backend.Info {
	return backend.Info{
		Name:        "stdimage",
		Description: "PNG, JPEG, GIF, BMP, TIFF and WebP via the Go image packages",
		Website:     "https://pkg.go.dev/image",
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
	kind, ok := match(mtype)
	if !ok {
		return nil, backend.ErrUnsupported
	}
	read := func() ([]byte, error) { return os.ReadFile(path) }
	return newSource(path, kind, read), nil
}

func (b *Backend) OpenMemory(data []byte) (source.Source, error) {
	kind, ok := match(mimetype.Detect(data))
	if !ok {
		return nil, backend.ErrUnsupported
	}
	read := func() ([]byte, error) { return data, nil }
	return newSource("-", kind, read), nil
}

func match(mtype *mimetype.MIME) (string, bool) {
	for _, m := range supported {
		if mtype.Is(m) {
			return m, true
		}
	}
	return "", false
}

func newSource(name, kind string, read func() ([]byte, error)) source.Source {
	if kind == mimeGIF {
		return source.New(name, &gifLoader{read: read})
	}
	return source.New(name, &stillLoader{read: read, jpeg: kind == mimeJPEG})
}

// stillLoader decodes single-frame formats.
type stillLoader struct {
	read func() ([]byte, error)
	jpeg bool
}

func (l *stillLoader) LoadFirst() (*bitmap.Bitmap, time.Duration, error) {
	data, err := l.read()
	if err != nil {
		return nil, 0, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	if l.jpeg {
		img = applyOrientation(img, readOrientation(data))
	}
	return bitmap.New(img), 0, nil
}

func (l *stillLoader) Close() {
	l.read = nil
}

// Verify interface compliance at compile time.
var _ backend.Backend = (*Backend)(nil)
