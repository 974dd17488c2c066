package cube

import (
	"github.com/ironsheep/cubeface/internal/imaging"
)

// ReferenceColor anchors a label to a canonical RGB value.
type ReferenceColor struct {
	Label Label
	RGB   imaging.RGBColor
}

// Palette is the ordered reference table used by the distance fallback.
// Entries are evaluated in order and the first one wins a tie.
type Palette [len(Labels)]ReferenceColor

// DefaultPalette returns the reference colors of a standard sticker set.
func DefaultPalette() Palette {
	return Palette{
		{Label: Orange, RGB: imaging.RGBColor{R: 232, G: 112, B: 0}},
		{Label: Red, RGB: imaging.RGBColor{R: 220, G: 66, B: 47}},
		{Label: Yellow, RGB: imaging.RGBColor{R: 245, G: 180, B: 0}},
		{Label: White, RGB: imaging.RGBColor{R: 243, G: 243, B: 243}},
		{Label: Blue, RGB: imaging.RGBColor{R: 61, G: 129, B: 246}},
		{Label: Green, RGB: imaging.RGBColor{R: 0, G: 157, B: 84}},
	}
}

// Lookup returns the reference RGB for a label.
func (p Palette) Lookup(l Label) (imaging.RGBColor, bool) {
	for _, ref := range p {
		if ref.Label == l {
			return ref.RGB, true
		}
	}
	return imaging.RGBColor{}, false
}

// With returns a copy of the palette with the entry for l replaced.
// The evaluation order is unchanged.
func (p Palette) With(l Label, rgb imaging.RGBColor) Palette {
	for i := range p {
		if p[i].Label == l {
			p[i].RGB = rgb
		}
	}
	return p
}

// DefaultHueWeight scales the hue term of the fallback distance.
const DefaultHueWeight = 0.5

// Settings carries every tunable used by the detector. A Settings value is
// copied into each component that needs it and never mutated afterwards.
type Settings struct {
	Palette     Palette
	Enhancement imaging.Enhancement
	HueWeight   float64
}

// DefaultSettings returns the built-in palette, enhancement factors and hue
// weight.
func DefaultSettings() Settings {
	return Settings{
		Palette:     DefaultPalette(),
		Enhancement: imaging.DefaultEnhancement(),
		HueWeight:   DefaultHueWeight,
	}
}
