package hexbot

import (
	"encoding/json"
	"iter"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Hexbot is a decoded response: a non-empty, ordered list of dots that
// either all carry coordinates or all lack them. It is read-only; accessors
// return copies.
type Hexbot struct {
	dots []Dot
}

// wireResponse covers every reply shape of the service: a color list, or a
// message or error text when the request was refused.
type wireResponse struct {
	Colors  []Dot  `json:"colors"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Decode parses a response payload. A reply that carries a message or
// error instead of colors yields a [*ServiceError]; anything else that is
// not a valid color list yields a [*DecodeError]. Nothing is returned on
// failure.
func Decode(data []byte) (*Hexbot, error) {
	var w wireResponse
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(w.Colors) == 0 {
		switch {
		case w.Error != "":
			return nil, &ServiceError{Message: w.Error}
		case w.Message != "":
			return nil, &ServiceError{Message: w.Message}
		}
		return nil, &DecodeError{Err: ErrNoColors}
	}
	withCoords := w.Colors[0].HasCoordinates()
	for _, d := range w.Colors[1:] {
		if d.HasCoordinates() != withCoords {
			return nil, &DecodeError{Err: ErrMixedCoordinates}
		}
	}
	return &Hexbot{dots: w.Colors}, nil
}

// Len returns the number of dots; at least 1 for a decoded response and 0
// for the zero value.
func (h *Hexbot) Len() int { return len(h.dots) }

// HasCoordinates reports whether the dots carry coordinates. The zero value
// has none.
func (h *Hexbot) HasCoordinates() bool {
	return len(h.dots) > 0 && h.dots[0].HasCoordinates()
}

// ColorAt returns the color of dot i.
func (h *Hexbot) ColorAt(i int) (colorful.Color, bool) {
	if i < 0 || i >= len(h.dots) {
		return colorful.Color{}, false
	}
	return h.dots[i].Color, true
}

// DotAt returns dot i.
func (h *Hexbot) DotAt(i int) (Dot, bool) {
	if i < 0 || i >= len(h.dots) {
		return Dot{}, false
	}
	return h.dots[i].clone(), true
}

// All yields the dots with their index in response order. The sequence can
// be ranged over any number of times.
func (h *Hexbot) All() iter.Seq2[int, Dot] {
	return func(yield func(int, Dot) bool) {
		for i, d := range h.dots {
			if !yield(i, d.clone()) {
				return
			}
		}
	}
}

// Dots returns a copy of all dots.
func (h *Hexbot) Dots() []Dot {
	out := make([]Dot, len(h.dots))
	for i, d := range h.dots {
		out[i] = d.clone()
	}
	return out
}

// String formats the response as "[#RRGGBB, #RRGGBB, ...]", each entry
// suffixed with "-(x|y)" when coordinates are present.
func (h *Hexbot) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range h.dots {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.String())
	}
	b.WriteByte(']')
	return b.String()
}

// MarshalJSON encodes the response in the service's wire format, so the
// output can be passed to [Decode] again.
func (h *Hexbot) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireResponse{Colors: h.dots})
}

// UnmarshalJSON decodes a response with the rules of [Decode].
func (h *Hexbot) UnmarshalJSON(data []byte) error {
	d, err := Decode(data)
	if err != nil {
		return err
	}
	h.dots = d.dots
	return nil
}
