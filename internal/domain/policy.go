package domain

import "math"

// Color is a named CSS color used for markers of one year.
type Color string

const (
	ColorBlue    Color = "blue"
	ColorGreen   Color = "green"
	ColorOrange  Color = "orange"
	ColorPurple  Color = "purple"
	ColorRed     Color = "red"
	ColorBrown   Color = "brown"
	ColorPink    Color = "pink"
	ColorYellow  Color = "yellow"
	ColorCyan    Color = "cyan"
	ColorMagenta Color = "magenta"
	ColorLime    Color = "lime"
	ColorNavy    Color = "navy"
	ColorTeal    Color = "teal"

	// ColorGray is used for every year outside the palette.
	ColorGray Color = "gray"
)

// Palette bounds: ColorFor has a distinct color for each year in
// [FirstPaletteYear, LastPaletteYear].
const (
	FirstPaletteYear = 2013
	LastPaletteYear  = 2025
)

// ColorFor maps an incident year to its marker color.
func ColorFor(year int) Color {
	switch year {
	case 2013:
		return ColorBlue
	case 2014:
		return ColorGreen
	case 2015:
		return ColorOrange
	case 2016:
		return ColorPurple
	case 2017:
		return ColorRed
	case 2018:
		return ColorBrown
	case 2019:
		return ColorPink
	case 2020:
		return ColorYellow
	case 2021:
		return ColorCyan
	case 2022:
		return ColorMagenta
	case 2023:
		return ColorLime
	case 2024:
		return ColorNavy
	case 2025:
		return ColorTeal
	default:
		return ColorGray
	}
}

// Radius bounds for static markers, in pixels.
const (
	MinRadius = 2.0
	MaxRadius = 20.0
)

// RawRadius is sqrt(acres)/5. The square root compresses burn sizes spanning
// five orders of magnitude into a comparable marker scale.
func RawRadius(acres float64) float64 {
	if acres <= 0 {
		return 0
	}
	return math.Sqrt(acres) / 5
}

// RadiusFor returns RawRadius clamped to [MinRadius, MaxRadius].
func RadiusFor(acres float64) float64 {
	return math.Max(MinRadius, math.Min(RawRadius(acres), MaxRadius))
}
