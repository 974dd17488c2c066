package imaging

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
//
// RGBColor is a comparable value type and can be used as a map key.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSVColor represents a color in HSV (Hue, Saturation, Value) color space.
//
// Saturation and value are scaled to the same 0-255 range as the RGB channels
// so that thresholds can be expressed in channel units:
//   - H: 0-360 degrees (0=red, 120=green, 240=blue); 0 for achromatic colors
//   - S: 0-255 (0=gray, 255=fully saturated)
//   - V: 0-255 (0=black, 255=full brightness)
type HSVColor struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// RGBFromColor converts any color.Color to 8-bit RGB, discarding alpha.
//
// For 16-bit colors, values are scaled down by right-shifting 8 bits.
func RGBFromColor(c color.Color) RGBColor {
	r, g, b, _ := c.RGBA()
	return RGBColor{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// HSV converts the color to HSV space.
//
// Each channel is normalized to 0-1 and the hexagonal hue is computed from
// the per-channel distances to the maximum (rc, gc, bc), wrapped into [0, 1)
// and scaled to degrees. Saturation and value are rescaled to 0-255.
//
// A hue of exactly 40 degrees, such as (45,33,9), compares equal to 40.
func (c RGBColor) HSV() HSVColor {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	v := maxc
	if maxc == minc {
		return HSVColor{H: 0, S: 0, V: v * 255}
	}

	span := maxc - minc
	s := span / maxc
	rc := (maxc - r) / span
	gc := (maxc - g) / span
	bc := (maxc - b) / span

	var h float64
	switch {
	case r == maxc:
		h = bc - gc
	case g == maxc:
		h = 2.0 + rc - bc
	default:
		h = 4.0 + gc - rc
	}
	h = math.Mod(h/6.0, 1.0)
	if h < 0 {
		h += 1.0
	}

	return HSVColor{H: h * 360, S: s * 255, V: v * 255}
}

// Hex returns the color formatted as "#rrggbb".
func (c RGBColor) Hex() string {
	return c.toColorful().Hex()
}

// RGBA implements color.Color so an RGBColor can be drawn directly.
func (c RGBColor) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

func (c RGBColor) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
