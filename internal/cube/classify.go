package cube

import (
	"math"

	"github.com/ironsheep/cubeface/internal/imaging"
)

// Hue override windows, in degrees and 0-255 channel units.
const (
	orangeHueMin        = 20.0
	orangeHueMax        = 40.0
	orangeSaturationMin = 200.0
	yellowHueMax        = 60.0
	yellowValueMin      = 200.0
)

// Classifier maps a dominant color to one of the six labels.
type Classifier struct {
	palette   Palette
	hueWeight float64
}

// NewClassifier builds a classifier over the given palette.
func NewClassifier(palette Palette, hueWeight float64) *Classifier {
	return &Classifier{palette: palette, hueWeight: hueWeight}
}

// Classify returns the label for rgb. It never fails.
//
// Two hue overrides are tried first:
//   - hue in [20, 40] with saturation above 200 is orange
//   - otherwise hue in (40, 60] with value above 200 is yellow
//
// Everything else goes to the palette entry with the smallest
//
//	euclidean RGB distance + hueWeight * |hue - reference hue|
//
// The hue difference is taken without wrapping around 360, so hues near 0
// and near 360 are far apart.
func (c *Classifier) Classify(rgb imaging.RGBColor) Label {
	hsv := rgb.HSV()

	if hsv.H >= orangeHueMin && hsv.H <= orangeHueMax && hsv.S > orangeSaturationMin {
		return Orange
	}
	if hsv.H > orangeHueMax && hsv.H <= yellowHueMax && hsv.V > yellowValueMin {
		return Yellow
	}

	return c.nearest(rgb, hsv.H)
}

func (c *Classifier) nearest(rgb imaging.RGBColor, hue float64) Label {
	best := c.palette[0].Label
	bestDist := math.Inf(1)

	for _, ref := range c.palette {
		dist := rgbDistance(rgb, ref.RGB) + c.hueWeight*math.Abs(hue-ref.RGB.HSV().H)
		if dist < bestDist {
			bestDist = dist
			best = ref.Label
		}
	}

	return best
}

func rgbDistance(a, b imaging.RGBColor) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
