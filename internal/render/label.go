package render

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"tools.zach/dev/hexbot"
)

// labelFace draws swatch labels. It is compiled in, so labels need no font
// files.
var labelFace = basicfont.Face7x13

// MinLabelCell is the smallest swatch that fits a "#RRGGBB" label.
var MinLabelCell = font.MeasureString(labelFace, "#000000").Ceil() + 4

// LabelSwatches writes each color's hex code centred on its swatch in an
// image produced by [Swatches] with the same cell size. Text is black on
// light colors and white on dark ones.
func LabelSwatches(img *image.NRGBA, h *hexbot.Hexbot, cell int) error {
	if cell < MinLabelCell {
		return fmt.Errorf("swatch size %d too small for labels, need %d", cell, MinLabelCell)
	}
	cols := min(h.Len(), SwatchesPerRow)
	for i, d := range h.All() {
		drawCentered(img, image.Rect(0, 0, cell, cell).Add(image.Pt((i%cols)*cell, (i/cols)*cell)), d.Hex(), textColor(d.Color))
	}
	return nil
}

// drawCentered draws s in the middle of r.
func drawCentered(img *image.NRGBA, r image.Rectangle, s string, c colorful.Color) {
	b, _ := font.BoundString(labelFace, s)
	w := (b.Max.X - b.Min.X).Ceil()
	ht := (b.Max.Y - b.Min.Y).Ceil()
	x := r.Min.X + (r.Dx()-w)/2 - b.Min.X.Floor()
	y := r.Min.Y + (r.Dy()-ht)/2 - b.Min.Y.Floor()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c.Clamped()),
		Face: labelFace,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textColor picks black or white, whichever reads better on bg.
func textColor(bg colorful.Color) colorful.Color {
	if l, _, _ := bg.Clamped().Lab(); l > 0.6 {
		return colorful.Color{}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}
