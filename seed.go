package hexbot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxSeedColors is the largest number of colors a seed may carry.
const MaxSeedColors = 10

// maxColor is the largest 24-bit RGB value.
const maxColor = 0xFFFFFF

// Seed is a list of colors the service bases its output on, kept in the
// wire encoding: uppercase 6-digit hex codes joined by commas. The zero
// value is absent.
type Seed struct {
	encoded string
	n       int
}

// NewSeed validates colors and encodes them in order. It fails with
// [ErrEmptySeed] for no colors, [ErrTooManyColors] for more than
// [MaxSeedColors], and [ErrInvalidColor] for a color outside
// [0x000000, 0xFFFFFF].
func NewSeed(colors ...int) (Seed, error) {
	if len(colors) == 0 {
		return Seed{}, &SeedError{Kind: ErrEmptySeed, Index: -1}
	}
	if len(colors) > MaxSeedColors {
		return Seed{}, &SeedError{Kind: ErrTooManyColors, Index: -1}
	}
	var b strings.Builder
	b.Grow(len(colors) * 7)
	for i, c := range colors {
		if !validColor(c) {
			return Seed{}, &SeedError{Kind: ErrInvalidColor, Index: i, Value: c}
		}
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%06X", c)
	}
	return Seed{encoded: b.String(), n: len(colors)}, nil
}

// SeedFromColors builds a seed from color-model values. Colors outside the
// RGB gamut are clamped first.
func SeedFromColors(colors ...colorful.Color) (Seed, error) {
	ints := make([]int, len(colors))
	for i, c := range colors {
		ints[i] = colorInt(c.Clamped())
	}
	return NewSeed(ints...)
}

// ParseSeed decodes a comma-separated list of 6-digit hex colors, each with
// an optional leading "#", in either case. It is the inverse of
// [Seed.String] and enforces the same limits as [NewSeed].
func ParseSeed(s string) (Seed, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Seed{}, &SeedError{Kind: ErrEmptySeed, Index: -1}
	}
	parts := strings.Split(s, ",")
	colors := make([]int, len(parts))
	for i, p := range parts {
		c, ok := parseHex6(p)
		if !ok {
			return Seed{}, &SeedError{Kind: ErrInvalidColor, Index: i, Text: p}
		}
		colors[i] = c
	}
	return NewSeed(colors...)
}

// NoSeed returns a seed that is left out of the request.
func NoSeed() Seed { return Seed{} }

// Add appends color to the seed, initializing it if absent. On failure the
// seed is left as it was.
func (s *Seed) Add(color int) error {
	if !validColor(color) {
		return &SeedError{Kind: ErrInvalidColor, Index: s.n, Value: color}
	}
	if s.n >= MaxSeedColors {
		return &SeedError{Kind: ErrTooManyColors, Index: -1}
	}
	code := fmt.Sprintf("%06X", color)
	if s.n == 0 {
		s.encoded = code
	} else {
		s.encoded += "," + code
	}
	s.n++
	return nil
}

// Present reports whether the seed holds any colors.
func (s Seed) Present() bool { return s.n > 0 }

// Len returns the number of colors in the seed.
func (s Seed) Len() int { return s.n }

// Colors decodes the seed back into its colors, in order.
func (s Seed) Colors() []int {
	if s.n == 0 {
		return nil
	}
	out := make([]int, 0, s.n)
	for _, p := range strings.Split(s.encoded, ",") {
		c, _ := parseHex6(p)
		out = append(out, c)
	}
	return out
}

// String returns the wire encoding, or "" when absent.
func (s Seed) String() string { return s.encoded }

func validColor(c int) bool {
	return 0 <= c && c <= maxColor
}

// parseHex6 parses "RRGGBB" or "#RRGGBB".
func parseHex6(s string) (int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// colorInt packs a color into 0xRRGGBB.
func colorInt(c colorful.Color) int {
	r, g, b := c.RGB255()
	return int(r)<<16 | int(g)<<8 | int(b)
}
