package termimg

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"
)

// Blocks draws images with "▀" characters, two pixels per cell, using
// truecolor foreground for the top pixel and background for the bottom.
type Blocks struct {
	mu     sync.RWMutex
	images map[uint32][]string // rendered lines by image ID
}

// NewBlocks creates the half-block fallback protocol.
func NewBlocks() *Blocks {
	return &Blocks{images: make(map[uint32][]string)}
}

func (b *Blocks) Name() string { return "blocks" }

// CellSize is one pixel wide and two tall.
func (b *Blocks) CellSize() (width, height int) { return 1, 2 }

func (b *Blocks) Prepare(img image.Image, id uint32) (string, error) {
	bounds := img.Bounds()
	lines := make([]string, 0, (bounds.Dy()+1)/2)

	var sb strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		sb.Reset()
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := img.At(x, y)
			bottom := color.Color(color.Black)
			if y+1 < bounds.Max.Y {
				bottom = img.At(x, y+1)
			}
			tr, tg, tb := rgb8(top)
			br, bg, bb := rgb8(bottom)
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		sb.WriteString("\x1b[0m")
		lines = append(lines, sb.String())
	}

	b.mu.Lock()
	b.images[id] = lines
	b.mu.Unlock()
	return "", nil
}

func (b *Blocks) Place(id uint32, row, col, _, height int) string {
	b.mu.RLock()
	lines, ok := b.images[id]
	b.mu.RUnlock()
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\x1b[s")
	for i, line := range lines {
		if i >= height {
			break
		}
		fmt.Fprintf(&sb, "\x1b[%d;%dH%s", row+i, col, line)
	}
	sb.WriteString("\x1b[u")
	return sb.String()
}

func (b *Blocks) Hide(uint32) string { return "" }

func (b *Blocks) Delete(id uint32) string {
	b.mu.Lock()
	delete(b.images, id)
	b.mu.Unlock()
	return ""
}

func rgb8(c color.Color) (r, g, b uint8) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	// Blend transparent pixels onto black.
	a := uint32(n.A)
	return uint8(uint32(n.R) * a / 0xff), uint8(uint32(n.G) * a / 0xff), uint8(uint32(n.B) * a / 0xff)
}
