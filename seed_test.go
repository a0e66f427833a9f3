package hexbot

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedErrors(t *testing.T) {
	eleven := make([]int, 11)
	for i := range eleven {
		eleven[i] = 0x123456
	}
	tests := []struct {
		name   string
		colors []int
		want   error
	}{
		{"empty", nil, ErrEmptySeed},
		{"too many", eleven, ErrTooManyColors},
		{"negative", []int{-1}, ErrInvalidColor},
		{"above 24 bits", []int{0x1000000}, ErrInvalidColor},
		{"second color invalid", []int{0xFFFFFF, 0x1000000}, ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSeed(tt.colors...)
			require.ErrorIs(t, err, tt.want)
			assert.False(t, s.Present())
			for _, other := range []error{ErrEmptySeed, ErrTooManyColors, ErrInvalidColor} {
				if other != tt.want {
					assert.False(t, errors.Is(err, other), "%v should not match %v", err, other)
				}
			}
		})
	}
}

func TestNewSeedEncoding(t *testing.T) {
	s, err := NewSeed(0x8B0000, 0x8B008B)
	require.NoError(t, err)
	assert.Equal(t, "8B0000,8B008B", s.String())
	assert.Equal(t, 2, s.Len())

	s, err = NewSeed(0x000000, 0xFFFFFF, 0x00000A)
	require.NoError(t, err)
	assert.Equal(t, "000000,FFFFFF,00000A", s.String())
}

func TestNewSeedTen(t *testing.T) {
	colors := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	s, err := NewSeed(colors...)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Len())
	assert.Equal(t, colors, s.Colors())
}

func TestInvalidColorError(t *testing.T) {
	_, err := NewSeed(0x111111, -5)
	var se *SeedError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Index)
	assert.Equal(t, -5, se.Value)
}

// ///////////////////////////////////////////////
// Add
// ///////////////////////////////////////////////

func TestSeedAdd(t *testing.T) {
	s, err := NewSeed(0x111100, 0xFFFF00, 0xFFA500)
	require.NoError(t, err)
	require.NoError(t, s.Add(0xAA00AA))
	assert.Equal(t, "111100,FFFF00,FFA500,AA00AA", s.String())
	assert.Equal(t, 4, s.Len())
}

func TestSeedAddToAbsent(t *testing.T) {
	var s Seed
	require.NoError(t, s.Add(0x00FF00))
	assert.True(t, s.Present())
	assert.Equal(t, "00FF00", s.String())

	s = NoSeed()
	require.NoError(t, s.Add(0xABCDEF))
	assert.Equal(t, "ABCDEF", s.String())
}

func TestSeedAddAtomic(t *testing.T) {
	s, err := NewSeed(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	require.NoError(t, err)
	before := s

	err = s.Add(0x123456)
	require.ErrorIs(t, err, ErrTooManyColors)
	assert.Equal(t, before, s)
	assert.Equal(t, before.String(), s.String())

	small, err := NewSeed(0x010203)
	require.NoError(t, err)
	err = small.Add(0x1000000)
	require.ErrorIs(t, err, ErrInvalidColor)
	assert.Equal(t, "010203", small.String())
	assert.Equal(t, 1, small.Len())
}

func TestSeedAddUpToTen(t *testing.T) {
	var s Seed
	for i := range MaxSeedColors {
		require.NoError(t, s.Add(i))
	}
	assert.Equal(t, MaxSeedColors, s.Len())
	assert.ErrorIs(t, s.Add(0), ErrTooManyColors)
}

// ///////////////////////////////////////////////
// Parse / round trip
// ///////////////////////////////////////////////

func TestParseSeedRoundTrip(t *testing.T) {
	colors := []int{0x8B0000, 0x00FF7F, 0x000001, 0xFFFFFF}
	s, err := NewSeed(colors...)
	require.NoError(t, err)

	parsed, err := ParseSeed(s.String())
	require.NoError(t, err)
	assert.Equal(t, colors, parsed.Colors())
	assert.Equal(t, s, parsed)
}

func TestParseSeedForms(t *testing.T) {
	s, err := ParseSeed(" #8b0000, 8B008B ")
	require.NoError(t, err)
	assert.Equal(t, "8B0000,8B008B", s.String())
}

func TestParseSeedErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptySeed},
		{"   ", ErrEmptySeed},
		{"FFF", ErrInvalidColor},
		{"GGGGGG", ErrInvalidColor},
		{"FFFFFF,", ErrInvalidColor},
		{"+FFFFF", ErrInvalidColor},
		{"1,2", ErrInvalidColor},
		{"000000,000000,000000,000000,000000,000000,000000,000000,000000,000000,000000", ErrTooManyColors},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseSeed(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSeedFromColors(t *testing.T) {
	red, err := colorful.Hex("#8b0000")
	require.NoError(t, err)
	s, err := SeedFromColors(red, colorful.Color{R: 1, G: 1, B: 1})
	require.NoError(t, err)
	assert.Equal(t, "8B0000,FFFFFF", s.String())

	_, err = SeedFromColors()
	assert.ErrorIs(t, err, ErrEmptySeed)
}

func TestNoSeed(t *testing.T) {
	s := NoSeed()
	assert.False(t, s.Present())
	assert.Equal(t, "", s.String())
	assert.Nil(t, s.Colors())
}
