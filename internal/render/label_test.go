package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestTextColor(t *testing.T) {
	tests := []struct {
		bg   string
		want colorful.Color
	}{
		{"#000000", colorful.Color{R: 1, G: 1, B: 1}},
		{"#8B0045", colorful.Color{R: 1, G: 1, B: 1}},
		{"#FFFFFF", colorful.Color{}},
		{"#FFFF00", colorful.Color{}},
	}

	for _, tt := range tests {
		t.Run(tt.bg, func(t *testing.T) {
			bg, err := colorful.Hex(tt.bg)
			if err != nil {
				t.Fatal(err)
			}
			if got := textColor(bg); got != tt.want {
				t.Errorf("textColor(%s) = %v, want %v", tt.bg, got, tt.want)
			}
		})
	}
}

func TestLabelSwatches(t *testing.T) {
	h := decode(t, `{"colors":[{"value":"#000000"},{"value":"#FFFFFF"}]}`)
	cell := 64
	img, err := Swatches(h, cell)
	if err != nil {
		t.Fatalf("Swatches: %v", err)
	}
	if err := LabelSwatches(img, h, cell); err != nil {
		t.Fatalf("LabelSwatches: %v", err)
	}

	white := color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black := color.NRGBA{A: 0xFF}
	tests := []struct {
		name string
		cell image.Rectangle
		bg   color.NRGBA
		text color.NRGBA
	}{
		{"dark swatch", image.Rect(0, 0, cell, cell), black, white},
		{"light swatch", image.Rect(cell, 0, 2*cell, cell), white, black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.NRGBAAt(tt.cell.Min.X, tt.cell.Min.Y); got != tt.bg {
				t.Errorf("corner = %v, want background %v", got, tt.bg)
			}
			textPixels := 0
			for y := tt.cell.Min.Y; y < tt.cell.Max.Y; y++ {
				for x := tt.cell.Min.X; x < tt.cell.Max.X; x++ {
					if img.NRGBAAt(x, y) == tt.text {
						textPixels++
					}
				}
			}
			if textPixels == 0 {
				t.Error("no label drawn")
			}
		})
	}
}

func TestLabelSwatches_CellTooSmall(t *testing.T) {
	h := decode(t, colors(1))
	img, err := Swatches(h, MinLabelCell-1)
	if err != nil {
		t.Fatalf("Swatches: %v", err)
	}
	if err := LabelSwatches(img, h, MinLabelCell-1); err == nil {
		t.Error("LabelSwatches() error = nil, want too small")
	}
}
