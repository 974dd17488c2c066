package imaging

import (
	"errors"
	"fmt"
	"image"
)

// ErrEmptyRegion is returned when a region covers no pixels.
var ErrEmptyRegion = errors.New("region contains no pixels")

// DominantColor returns the exact RGB value that occurs most often in a region.
//
// Parameters:
//   - img: The source image to analyze.
//   - region: The rectangle to scan, clipped to the image bounds.
//
// Returns:
//   - RGBColor: The most frequent color. Colors are compared exactly, without
//     quantization or averaging.
//   - error: ErrEmptyRegion if the clipped region has no pixels.
//
// # Tie-Breaking
//
// Pixels are scanned left to right, top to bottom. When several colors share
// the highest count, the one seen first in that scan wins, so the result is
// deterministic for a given image.
func DominantColor(img image.Image, region Region) (RGBColor, error) {
	rect := region.Rect().Intersect(img.Bounds())
	if region.Area() == 0 || rect.Empty() {
		return RGBColor{}, fmt.Errorf("%w: (%d,%d)-(%d,%d)",
			ErrEmptyRegion, region.X1, region.Y1, region.X2, region.Y2)
	}

	counts := make(map[RGBColor]int)
	order := make([]RGBColor, 0, 16)

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := pixelAt(img, x, y)
			if _, seen := counts[c]; !seen {
				order = append(order, c)
			}
			counts[c]++
		}
	}

	best := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}

	return best, nil
}

// pixelAt reads one pixel as 8-bit RGB, reading the pixel buffer directly for
// the image types produced by Load and Enhance.
func pixelAt(img image.Image, x, y int) RGBColor {
	switch m := img.(type) {
	case *image.RGBA:
		i := m.PixOffset(x, y)
		return RGBColor{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2]}
	case *image.NRGBA:
		i := m.PixOffset(x, y)
		return RGBColor{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2]}
	default:
		return RGBFromColor(img.At(x, y))
	}
}
