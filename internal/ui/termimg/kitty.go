package termimg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"

	// Max base64 bytes per escape sequence chunk
	chunkSize = 4096
)

// Kitty implements Protocol with the Kitty graphics protocol. Images are
// transmitted once and placed by ID.
type Kitty struct {
	cellW, cellH int
}

// NewKitty creates a Kitty protocol using the terminal's cell size.
func NewKitty() *Kitty {
	w, h := getCellSize()
	return &Kitty{cellW: w, cellH: h}
}

func (k *Kitty) Name() string { return "kitty" }

func (k *Kitty) CellSize() (width, height int) { return k.cellW, k.cellH }

func (k *Kitty) Prepare(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return TransmitPNG(buf.Bytes(), id), nil
}

// Place uses a fixed placement ID (1) so that a new placement replaces
// the previous one without leaving ghost images.
func (k *Kitty) Place(id uint32, row, col, width, height int) string {
	// a=p: place image, p=1: fixed placement ID
	// c=cols, r=rows: size in cells, C=1: don't move cursor
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, width, height, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// Hide clears the placements of an image, keeping its data.
func (k *Kitty) Hide(id uint32) string {
	// a=d: delete, d=i: placements of the image ID only
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}

// Delete removes a transmitted image and all its placements.
func (k *Kitty) Delete(id uint32) string {
	// d=I: as d=i, and free the image data
	return fmt.Sprintf("%sa=d,d=I,i=%d,q=2;%s", escStart, id, escEnd)
}

// TransmitPNG returns the chunked commands sending PNG data to terminal
// memory without displaying it.
func TransmitPNG(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	// a=t: transmit only, f=100: PNG, i=ID, q=2: suppress responses
	var sb strings.Builder
	for i := 0; i < len(encoded) || i == 0; i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String()
}
