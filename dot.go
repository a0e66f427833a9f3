package hexbot

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Dot is one color of a response, with the position the service assigned
// to it when a [WidthHeight] limit was requested.
type Dot struct {
	Color       colorful.Color
	Coordinates *Coordinates
}

// wireDot is the JSON shape of a dot.
type wireDot struct {
	Value       string       `json:"value"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// HasCoordinates reports whether the dot carries a position.
func (d Dot) HasCoordinates() bool { return d.Coordinates != nil }

// Hex returns the color as "#RRGGBB" in uppercase.
func (d Dot) Hex() string { return strings.ToUpper(d.Color.Hex()) }

// String formats the dot as "#RRGGBB" or "#RRGGBB-(x|y)".
func (d Dot) String() string {
	if d.Coordinates == nil {
		return d.Hex()
	}
	return d.Hex() + "-" + d.Coordinates.String()
}

// MarshalJSON encodes the dot in the service's wire format.
func (d Dot) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireDot{Value: d.Hex(), Coordinates: d.Coordinates})
}

// UnmarshalJSON decodes a dot from the service's wire format.
func (d *Dot) UnmarshalJSON(data []byte) error {
	var w wireDot
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Value == "" {
		return ErrMissingColorValue
	}
	c, err := parseColor(w.Value)
	if err != nil {
		return err
	}
	d.Color = c
	d.Coordinates = w.Coordinates
	return nil
}

// clone returns a copy of d that shares no memory with it.
func (d Dot) clone() Dot {
	if d.Coordinates != nil {
		c := *d.Coordinates
		d.Coordinates = &c
	}
	return d
}

// parseColor accepts "#RRGGBB" or "RRGGBB" in either case.
func parseColor(s string) (colorful.Color, error) {
	if _, ok := parseHex6(s); !ok {
		return colorful.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return colorful.Hex("#" + strings.TrimPrefix(strings.TrimSpace(s), "#"))
}
