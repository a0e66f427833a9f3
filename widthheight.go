package hexbot

import "fmt"

// WidthHeight limits the coordinates the service assigns to each dot.
// Width and height are always sent together and validated together; the
// zero value sends neither and the reply carries no coordinates.
type WidthHeight struct {
	width, height Bounded
}

// NewWidthHeight validates both dimensions against [DimensionRange]. A
// failure on either one rejects the whole limit; the returned
// [*RangeError] names the first dimension that failed.
func NewWidthHeight(width, height int) (WidthHeight, error) {
	w, err := NewBounded(width, DimensionRange)
	if err != nil {
		return WidthHeight{}, renamed(err, "width")
	}
	h, err := NewBounded(height, DimensionRange)
	if err != nil {
		return WidthHeight{}, renamed(err, "height")
	}
	return WidthHeight{width: w, height: h}, nil
}

// WidthHeightFromCoordinates builds a limit from a single coordinate pair,
// x being the width and y the height. Validation is that of [NewWidthHeight].
func WidthHeightFromCoordinates(c Coordinates) (WidthHeight, error) {
	return NewWidthHeight(c.X, c.Y)
}

// NoWidthHeight returns a limit that is left out of the request.
func NoWidthHeight() WidthHeight { return WidthHeight{} }

// MinWidthHeight returns the smallest accepted limit in both dimensions.
func MinWidthHeight() WidthHeight {
	d := Bounded{value: DimensionRange.Min, present: true}
	return WidthHeight{width: d, height: d}
}

// MaxWidthHeight returns the largest accepted limit in both dimensions.
func MaxWidthHeight() WidthHeight {
	d := Bounded{value: DimensionRange.Max, present: true}
	return WidthHeight{width: d, height: d}
}

// Present reports whether the limit is set.
func (wh WidthHeight) Present() bool { return wh.width.Present() }

// Width returns the width bound, absent when the limit is not set.
func (wh WidthHeight) Width() Bounded { return wh.width }

// Height returns the height bound, absent when the limit is not set.
func (wh WidthHeight) Height() Bounded { return wh.height }

// Coordinates returns the limit as a pair (width, height).
func (wh WidthHeight) Coordinates() (Coordinates, bool) {
	if !wh.Present() {
		return Coordinates{}, false
	}
	w, _ := wh.width.Value()
	h, _ := wh.height.Value()
	return Coordinates{X: w, Y: h}, true
}

// String formats the limit as "width:W,height:H", or "" when not set.
func (wh WidthHeight) String() string {
	if !wh.Present() {
		return ""
	}
	return fmt.Sprintf("width:%s,height:%s", wh.width, wh.height)
}

// renamed relabels a dimension [RangeError] with the dimension it applies to.
func renamed(err error, param string) error {
	if re, ok := err.(*RangeError); ok {
		cp := *re
		cp.Param = param
		return &cp
	}
	return err
}
