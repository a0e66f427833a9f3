package hexbot

import (
	"errors"
	"fmt"
)

// ///////////////////////////////////////////////
// Validation Errors
// ///////////////////////////////////////////////

// RangeError reports a query parameter outside its accepted range.
type RangeError struct {
	// Param names the rejected parameter ("count", "width" or "height").
	Param string
	// Value is the rejected value.
	Value int
	// Min and Max are the inclusive bounds Value had to satisfy.
	Min, Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("hexbot: %s %d out of range [%d, %d]", e.Param, e.Value, e.Min, e.Max)
}

// Seed error kinds. A [*SeedError] matches exactly one of these with [errors.Is].
var (
	ErrEmptySeed     = errors.New("hexbot: seed has no colors")
	ErrTooManyColors = errors.New("hexbot: seed has more than 10 colors")
	ErrInvalidColor  = errors.New("hexbot: seed color out of range")
)

// SeedError reports why a seed could not be built or extended.
type SeedError struct {
	// Kind is ErrEmptySeed, ErrTooManyColors or ErrInvalidColor.
	Kind error
	// Index is the position of the offending color, or -1 when the error
	// concerns the seed as a whole.
	Index int
	// Value is the offending color for ErrInvalidColor.
	Value int
	// Text is the unparsable input when the color came from a string.
	Text string
}

func (e *SeedError) Error() string {
	switch {
	case e.Kind != ErrInvalidColor:
		return e.Kind.Error()
	case e.Text != "":
		return fmt.Sprintf("%v: index %d, %q is not a 6-digit hex color", e.Kind, e.Index, e.Text)
	default:
		return fmt.Sprintf("%v: index %d, value %#x", e.Kind, e.Index, e.Value)
	}
}

// Is reports whether target is the error kind of e.
func (e *SeedError) Is(target error) bool {
	return target == e.Kind
}

// ///////////////////////////////////////////////
// Response Errors
// ///////////////////////////////////////////////

// Decode failure causes, wrapped by [*DecodeError].
var (
	ErrNoColors          = errors.New("response contains no colors")
	ErrMixedCoordinates  = errors.New("response mixes dots with and without coordinates")
	ErrMissingColorValue = errors.New("dot has no color value")
)

// TransportError wraps a failure of the [Transport] that fetched a response.
type TransportError struct {
	// URL is the request URL.
	URL string
	// Err is the underlying transport failure.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("hexbot: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response payload that does not match the schema or
// violates a response invariant.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "hexbot: decode response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ServiceError is returned when the service answers with a message or error
// object instead of colors.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return "hexbot: service error: " + e.Message
}
