package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorFor(t *testing.T) {
	tests := []struct {
		year     int
		expected Color
	}{
		{2013, ColorBlue},
		{2017, ColorRed},
		{2020, ColorYellow},
		{2025, ColorTeal},
		{2012, ColorGray},
		{2026, ColorGray},
		{0, ColorGray},
		{-1, ColorGray},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ColorFor(tt.year), "year %d", tt.year)
	}
}

func TestColorFor_PaletteIsDistinct(t *testing.T) {
	seen := make(map[Color]int)
	for y := FirstPaletteYear; y <= LastPaletteYear; y++ {
		c := ColorFor(y)
		assert.NotEqual(t, ColorGray, c, "year %d should have a palette color", y)
		if prev, ok := seen[c]; ok {
			t.Errorf("years %d and %d share color %s", prev, y, c)
		}
		seen[c] = y
	}
	assert.Len(t, seen, LastPaletteYear-FirstPaletteYear+1)
}

func TestRadiusFor(t *testing.T) {
	tests := []struct {
		name     string
		acres    float64
		expected float64
	}{
		{"zero clamps to min", 0, MinRadius},
		{"tiny fire", 0.5, MinRadius},
		{"100 acres", 100, 2.0},
		{"mid range", 2500, 10.0},
		{"exactly max", 10000, 20.0},
		{"huge fire clamps to max", 400000, MaxRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RadiusFor(tt.acres), 1e-9)
		})
	}
}

func TestRadiusFor_BoundedAndMonotonic(t *testing.T) {
	prev := RadiusFor(0)
	for a := 0.0; a <= 20000; a += 7.5 {
		r := RadiusFor(a)
		assert.GreaterOrEqual(t, r, MinRadius)
		assert.LessOrEqual(t, r, MaxRadius)
		assert.GreaterOrEqual(t, r, prev, "radius decreased at %v acres", a)
		prev = r
	}
}

func TestRawRadius(t *testing.T) {
	assert.Equal(t, 0.0, RawRadius(0))
	assert.InDelta(t, 2.0, RawRadius(100), 1e-9)
	assert.InDelta(t, math.Sqrt(400000)/5, RawRadius(400000), 1e-9)
	assert.InDelta(t, math.Sqrt(0.25)/5, RawRadius(0.25), 1e-9)
}
