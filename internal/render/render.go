// Package render draws palettes as PNG images: a grid of swatches for any
// palette, or a canvas of dots for a palette with coordinates.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
	"tools.zach/dev/hexbot"
)

// SwatchesPerRow is the widest a swatch grid gets before wrapping.
const SwatchesPerRow = 16

var (
	// ErrNoCoordinates is returned by [Dots] for a palette without positions.
	ErrNoCoordinates = errors.New("palette has no coordinates")

	// ErrEmptyPalette is returned for a palette with no colors.
	ErrEmptyPalette = errors.New("palette has no colors")
)

// Background fills the canvas behind dots.
var Background = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// ///////////////////////////////////////////////
// Swatches
// ///////////////////////////////////////////////

// Swatches draws one cell×cell square per color in response order, left to
// right, wrapping after [SwatchesPerRow].
func Swatches(h *hexbot.Hexbot, cell int) (*image.NRGBA, error) {
	if cell <= 0 {
		return nil, fmt.Errorf("swatch size must be > 0, got %d", cell)
	}
	n := h.Len()
	if n == 0 {
		return nil, ErrEmptyPalette
	}
	cols := min(n, SwatchesPerRow)
	rows := (n + cols - 1) / cols

	img := imaging.New(cols*cell, rows*cell, color.Transparent)
	for i, d := range h.All() {
		r := image.Rect(0, 0, cell, cell).Add(image.Pt((i%cols)*cell, (i/cols)*cell))
		draw.Draw(img, r, image.NewUniform(d.Color.Clamped()), image.Point{}, draw.Src)
	}
	return img, nil
}

// ///////////////////////////////////////////////
// Dots
// ///////////////////////////////////////////////

// Dots plots each color as a filled circle at its coordinates. The canvas
// matches bounds when present, otherwise the extent of the coordinates. A
// canvas whose longer edge exceeds maxCanvas is scaled down to fit, radius
// unchanged.
func Dots(h *hexbot.Hexbot, bounds hexbot.WidthHeight, radius, maxCanvas int) (*image.NRGBA, error) {
	if !h.HasCoordinates() {
		return nil, ErrNoCoordinates
	}
	if radius <= 0 {
		return nil, fmt.Errorf("dot radius must be > 0, got %d", radius)
	}
	if maxCanvas <= 0 {
		return nil, fmt.Errorf("max canvas must be > 0, got %d", maxCanvas)
	}

	w, ht := extent(h, bounds)
	scale := 1.0
	if edge := max(w, ht); edge > maxCanvas {
		scale = float64(maxCanvas) / float64(edge)
	}
	cw := max(1, int(float64(w)*scale))
	ch := max(1, int(float64(ht)*scale))

	img := imaging.New(cw, ch, Background)
	for _, d := range h.All() {
		cx := int(float64(d.Coordinates.X) * scale)
		cy := int(float64(d.Coordinates.Y) * scale)
		fillCircle(img, cx, cy, radius, d.Color.Clamped())
	}
	return img, nil
}

// extent returns the canvas size for h: bounds when present, else one past
// the largest coordinate on each axis.
func extent(h *hexbot.Hexbot, bounds hexbot.WidthHeight) (int, int) {
	if c, ok := bounds.Coordinates(); ok {
		return c.X, c.Y
	}
	w, ht := 1, 1
	for _, d := range h.All() {
		w = max(w, d.Coordinates.X+1)
		ht = max(ht, d.Coordinates.Y+1)
	}
	return w, ht
}

// fillCircle paints a disc of radius r centred on (cx, cy), clipped to img.
func fillCircle(img *image.NRGBA, cx, cy, r int, c color.Color) {
	b := img.Bounds()
	for y := max(b.Min.Y, cy-r); y <= min(b.Max.Y-1, cy+r); y++ {
		for x := max(b.Min.X, cx-r); x <= min(b.Max.X-1, cx+r); x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, c)
			}
		}
	}
}

// ///////////////////////////////////////////////
// Output
// ///////////////////////////////////////////////

// Scale enlarges img by an integer factor with nearest-neighbour sampling,
// keeping swatch edges sharp. factor 1 returns img unchanged.
func Scale(img image.Image, factor int) (image.Image, error) {
	if factor < 1 {
		return nil, fmt.Errorf("scale must be >= 1, got %d", factor)
	}
	if factor == 1 {
		return img, nil
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*factor, b.Dy()*factor, imaging.NearestNeighbor), nil
}

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Save writes img to path. The format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
