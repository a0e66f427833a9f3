package hexbot

import "strconv"

// Range is a closed interval of accepted values for one query parameter.
type Range struct {
	// Name is used in [RangeError] messages.
	Name     string
	Min, Max int
}

// Contains reports whether v lies in [r.Min, r.Max].
func (r Range) Contains(v int) bool {
	return r.Min <= v && v <= r.Max
}

// Parameter ranges accepted by the service.
var (
	CountRange     = Range{Name: "count", Min: 1, Max: 1000}
	DimensionRange = Range{Name: "dimension", Min: 10, Max: 100_000}
)

// ///////////////////////////////////////////////
// Bounded
// ///////////////////////////////////////////////

// Bounded is an optional integer known to be inside the range it was built
// with. The zero value is absent.
type Bounded struct {
	value   int
	present bool
}

// NewBounded returns a present Bounded holding v, or a [*RangeError] when v
// is outside r.
func NewBounded(v int, r Range) (Bounded, error) {
	if !r.Contains(v) {
		return Bounded{}, &RangeError{Param: r.Name, Value: v, Min: r.Min, Max: r.Max}
	}
	return Bounded{value: v, present: true}, nil
}

// Absent returns a Bounded that holds no value.
func Absent() Bounded { return Bounded{} }

// Present reports whether b holds a value.
func (b Bounded) Present() bool { return b.present }

// Value returns the held value and whether one is present.
func (b Bounded) Value() (int, bool) { return b.value, b.present }

// String returns the decimal value, or "" when absent.
func (b Bounded) String() string {
	if !b.present {
		return ""
	}
	return strconv.Itoa(b.value)
}

// ///////////////////////////////////////////////
// Count
// ///////////////////////////////////////////////

// Count is the number of colors to request. The zero value omits the
// parameter and the service returns a single color.
type Count struct {
	Bounded
}

// NewCount validates n against [CountRange].
func NewCount(n int) (Count, error) {
	b, err := NewBounded(n, CountRange)
	if err != nil {
		return Count{}, err
	}
	return Count{b}, nil
}

// NoCount returns a Count that is left out of the request.
func NoCount() Count { return Count{} }

// MinCount returns the smallest accepted count.
func MinCount() Count { return Count{Bounded{value: CountRange.Min, present: true}} }

// MaxCount returns the largest accepted count.
func MaxCount() Count { return Count{Bounded{value: CountRange.Max, present: true}} }
