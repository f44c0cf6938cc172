package termimg

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-sixel"
)

// placeCounter makes every Place output unique, so that the renderer never
// skips re-sending sixel data when only surrounding text changed.
var placeCounter uint64

// Sixel implements Protocol with Sixel graphics. Place emits the whole
// encoded image each time.
type Sixel struct {
	mu     sync.RWMutex
	images map[uint32]string // encoded data by image ID
	cellW  int
	cellH  int
}

// NewSixel creates a Sixel protocol using the terminal's cell size.
func NewSixel() *Sixel {
	w, h := getCellSize()
	return newSixel(w, h)
}

func newSixel(cellW, cellH int) *Sixel {
	return &Sixel{images: make(map[uint32]string), cellW: cellW, cellH: cellH}
}

func (s *Sixel) Name() string { return "sixel" }

func (s *Sixel) CellSize() (width, height int) { return s.cellW, s.cellH }

func (s *Sixel) Prepare(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Dither = true

	if err := enc.Encode(img); err != nil {
		return "", fmt.Errorf("encode sixel: %w", err)
	}

	s.mu.Lock()
	s.images[id] = buf.String()
	s.mu.Unlock()

	return "", nil
}

func (s *Sixel) Place(id uint32, row, col, _, _ int) string {
	s.mu.RLock()
	data, ok := s.images[id]
	s.mu.RUnlock()
	if !ok {
		return ""
	}

	// Save cursor, move, emit, restore; the no-op SGR carries the counter.
	seq := atomic.AddUint64(&placeCounter, 1)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	sb.WriteString(data)
	fmt.Fprintf(&sb, "\x1b[u\x1b[%dm\x1b[0m", seq%255+1)
	return sb.String()
}

// Hide is a no-op: sixel output is part of the text grid and is simply
// drawn over.
func (s *Sixel) Hide(uint32) string { return "" }

func (s *Sixel) Delete(id uint32) string {
	s.mu.Lock()
	delete(s.images, id)
	s.mu.Unlock()
	return ""
}
