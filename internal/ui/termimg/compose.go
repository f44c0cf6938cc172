package termimg

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/nfnt/resize"
)

// checkSize is the edge of one checkerboard square in pixels.
const checkSize = 16

var (
	checkLight = color.RGBA{0x99, 0x99, 0x99, 0xff}
	checkDark  = color.RGBA{0x66, 0x66, 0x66, 0xff}
)

// Background fills the canvas behind the image.
type Background struct {
	// Checks selects a checkerboard instead of Color.
	Checks bool
	Color  color.Color
}

// Interpolation returns the resize filter for an upscaling method name.
func Interpolation(method string) resize.InterpolationFunction {
	if method == "nearest_neighbour" {
		return resize.NearestNeighbor
	}
	return resize.Bilinear
}

// Compose draws img scaled by scale with its top-left corner at (x, y) on a
// width x height canvas. Only the visible part of img is resampled.
func Compose(img image.Image, scale float64, x, y, width, height int,
	bg Background, interp resize.InterpolationFunction,
) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	fill(canvas, bg)

	if img == nil || scale <= 0 {
		return canvas
	}

	b := img.Bounds()
	placed := image.Rect(x, y,
		x+int(math.Round(float64(b.Dx())*scale)),
		y+int(math.Round(float64(b.Dy())*scale)))
	visible := placed.Intersect(canvas.Bounds())
	if visible.Empty() {
		return canvas
	}

	// Source rectangle covering the visible area, in image coordinates.
	src := image.Rect(
		b.Min.X+int(math.Floor(float64(visible.Min.X-x)/scale)),
		b.Min.Y+int(math.Floor(float64(visible.Min.Y-y)/scale)),
		b.Min.X+int(math.Ceil(float64(visible.Max.X-x)/scale)),
		b.Min.Y+int(math.Ceil(float64(visible.Max.Y-y)/scale)),
	).Intersect(b)
	if src.Empty() {
		return canvas
	}

	scaled := resize.Resize(uint(visible.Dx()), uint(visible.Dy()), crop(img, src), interp) //nolint:gosec // visible is non-empty
	draw.Draw(canvas, visible, scaled, scaled.Bounds().Min, draw.Over)
	return canvas
}

func fill(canvas *image.RGBA, bg Background) {
	if !bg.Checks {
		c := bg.Color
		if c == nil {
			c = color.Black
		}
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
		return
	}

	b := canvas.Bounds()
	for cy := b.Min.Y; cy < b.Max.Y; cy += checkSize {
		for cx := b.Min.X; cx < b.Max.X; cx += checkSize {
			c := checkLight
			if (cx/checkSize+cy/checkSize)%2 == 1 {
				c = checkDark
			}
			r := image.Rect(cx, cy, cx+checkSize, cy+checkSize).Intersect(b)
			draw.Draw(canvas, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func crop(img image.Image, r image.Rectangle) image.Image {
	if r == img.Bounds() {
		return img
	}
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}
