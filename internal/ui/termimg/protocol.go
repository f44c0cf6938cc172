// Package termimg draws images in the terminal with the Kitty or Sixel
// graphics protocols, or with coloured half blocks when neither exists.
package termimg

import "image"

// Protocol abstracts the terminal image display protocol.
type Protocol interface {
	// Name returns the config name of the protocol.
	Name() string

	// Prepare encodes the image and returns any one-time terminal command.
	// Kitty: transmits to terminal memory, returns escape sequences.
	// Sixel and blocks: encode and cache internally, return empty string.
	Prepare(img image.Image, id uint32) (string, error)

	// Place returns the escape sequence to display the image at (row, col),
	// 1-based, sized width x height cells.
	Place(id uint32, row, col, width, height int) string

	// Hide removes the image from the screen but keeps it for a later Place.
	Hide(id uint32) string

	// Delete returns the escape sequence to remove the image for good.
	Delete(id uint32) string

	// CellSize returns the pixel size of one terminal cell.
	CellSize() (width, height int)
}

// PixelSize returns the pixel dimensions of an area of cells.
func PixelSize(p Protocol, widthCells, heightCells int) (width, height int) {
	cw, ch := p.CellSize()
	return max(widthCells, 0) * cw, max(heightCells, 0) * ch
}

// Cell size assumed when the terminal does not report one.
const (
	defaultCellW = 8
	defaultCellH = 16
)
