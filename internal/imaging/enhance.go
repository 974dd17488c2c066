package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
)

// Enhancement holds the lighting normalization factors applied before a face
// is analyzed. A factor of 1.0 leaves the image unchanged.
type Enhancement struct {
	// Contrast scales the spread of every channel around the image's mean
	// gray level.
	Contrast float64 `json:"contrast" yaml:"contrast"`

	// Brightness multiplies every channel.
	Brightness float64 `json:"brightness" yaml:"brightness"`
}

// DefaultEnhancement returns the factors used for cube photographs:
// contrast 1.5 followed by brightness 1.2.
func DefaultEnhancement() Enhancement {
	return Enhancement{Contrast: 1.5, Brightness: 1.2}
}

// Enhance returns a new image with contrast and then brightness adjusted.
//
// # Algorithm
//
//  1. Contrast: the mean gray level m of the whole image is computed from the
//     ITU-R 601-2 luma of every pixel and rounded to an integer. Each channel c
//     becomes m + Contrast*(c - m).
//  2. Brightness: each channel c becomes Brightness*c.
//
// Both steps clamp to 0-255 and truncate toward zero. The source image is not
// modified. Alpha is passed through unchanged.
func Enhance(img image.Image, e Enhancement) *image.RGBA {
	mean := float64(meanGray(img))
	lookup := make([]uint8, 256)
	for i := range lookup {
		lookup[i] = clampChannel(mean + e.Contrast*(float64(i)-mean))
	}

	contrasted := adjust.Apply(img, func(c color.RGBA) color.RGBA {
		return color.RGBA{R: lookup[c.R], G: lookup[c.G], B: lookup[c.B], A: c.A}
	})

	return adjust.Brightness(contrasted, e.Brightness-1)
}

// meanGray returns the rounded mean luma of img.
func meanGray(img image.Image) int {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	if n == 0 {
		return 0
	}

	var sum uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum += uint64(luma(RGBFromColor(img.At(x, y))))
		}
	}

	return int(float64(sum)/float64(n) + 0.5)
}

// luma converts a color to 8-bit gray using fixed-point ITU-R 601-2 weights
// (0.299*R + 0.587*G + 0.114*B).
func luma(c RGBColor) uint8 {
	return uint8((uint32(c.R)*19595 + uint32(c.G)*38470 + uint32(c.B)*7471 + 0x8000) >> 16)
}

func clampChannel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
