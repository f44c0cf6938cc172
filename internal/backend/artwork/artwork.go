// Package artwork shows the cover art embedded in audio files.
package artwork

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gabriel-vasile/mimetype"

	"github.com/llehouerou/glimpse/internal/backend"
	"github.com/llehouerou/glimpse/internal/bitmap"
	"github.com/llehouerou/glimpse/internal/source"
)

// ErrNoArtwork is returned when an audio file carries no cover art.
var ErrNoArtwork = errors.New("no cover art")

// Backend opens audio files (MP3, FLAC, M4A, OGG) and decodes their cover art.
type Backend struct{}

// New creates the backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Info() backend.Info {
	return backend.Info{
		Name:        "artwork",
		Description: "cover art embedded in MP3, FLAC, M4A and OGG files",
		Website:     "https://github.com/dhowden/tag",
		License:     "BSD-2-Clause",
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
	if !isAudio(mtype) {
		return nil, backend.ErrUnsupported
	}
	return source.New(path, &loader{path: path}), nil
}

func (b *Backend) OpenMemory(data []byte) (source.Source, error) {
	if !isAudio(mimetype.Detect(data)) {
		return nil, backend.ErrUnsupported
	}
	return source.New("-", &loader{data: data}), nil
}

func isAudio(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "audio/") {
			return true
		}
	}
	return false
}

// loader reads cover art from a path or a buffer.
type loader struct {
	path string
	data []byte
}

func (l *loader) LoadFirst() (*bitmap.Bitmap, time.Duration, error) {
	var (
		art []byte
		err error
	)
	if l.data != nil {
		art, _, err = embeddedArt(bytes.NewReader(l.data))
	} else {
		art, _, err = ExtractCoverArt(l.path)
	}
	if err != nil {
		return nil, 0, err
	}
	if art == nil {
		return nil, 0, ErrNoArtwork
	}

	img, _, err := image.Decode(bytes.NewReader(art))
	if err != nil {
		return nil, 0, fmt.Errorf("decode cover: %w", err)
	}
	return bitmap.New(img), 0, nil
}

func (l *loader) Close() {
	l.data = nil
}

// ExtractCoverArt reads cover art for an audio file.
// It first tries the embedded picture, then looks for common cover image
// files in the same directory (cover.jpg, folder.jpg, album.png...).
// Returns nil data when nothing is found.
func ExtractCoverArt(path string) (data []byte, mimeType string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	data, mimeType, err = embeddedArt(f)
	f.Close()
	if err != nil {
		return nil, "", err
	}
	if data != nil {
		return data, mimeType, nil
	}
	return findFolderArt(path)
}

func embeddedArt(r io.ReadSeeker) (data []byte, mimeType string, err error) {
	m, err := tag.ReadFrom(r)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	pic := m.Picture()
	if pic == nil {
		return nil, "", nil
	}
	return pic.Data, pic.MIMEType, nil
}

// Verify interface compliance at compile time.
var _ backend.Backend = (*Backend)(nil)
