package hexbot

import "fmt"

// Coordinates is a position on the canvas the service spreads dots over.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the component-wise sum of c and o.
func (c Coordinates) Add(o Coordinates) Coordinates {
	return Coordinates{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the component-wise difference c - o.
func (c Coordinates) Sub(o Coordinates) Coordinates {
	return Coordinates{X: c.X - o.X, Y: c.Y - o.Y}
}

// String formats c as "(x|y)".
func (c Coordinates) String() string {
	return fmt.Sprintf("(%d|%d)", c.X, c.Y)
}
