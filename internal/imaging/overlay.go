package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// OverlayResult contains the image with the partition grid drawn on it.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Cells       Grid   `json:"cells"`
}

// PartitionOverlay outlines the nine cells that Partition produces for img.
//
// Each cell border is drawn in gridColorHex (default semi-transparent red) and
// labeled with its "row,col" index. Pixels in the strip Partition drops are
// left untouched, which makes that strip visible next to the last cell.
func PartitionOverlay(img image.Image, showLabels bool, gridColorHex string) (*OverlayResult, error) {
	bounds := img.Bounds()

	cells, err := Partition(bounds)
	if err != nil {
		return nil, err
	}

	gridColor, err := parseHexColor(gridColorHex)
	if err != nil {
		gridColor = color.RGBA{255, 0, 0, 128}
	}

	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	for i, row := range cells {
		for j, cell := range row {
			drawOutline(result, cell, gridColor)
			if showLabels {
				drawCellLabel(result, cell, i, j)
			}
		}
	}

	encoded, err := encodePNG(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &OverlayResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		Cells:       cells,
	}, nil
}

// drawOutline draws the inside border of a region.
func drawOutline(img *image.RGBA, r Region, c color.RGBA) {
	for x := r.X1; x < r.X2; x++ {
		img.Set(x, r.Y1, c)
		img.Set(x, r.Y2-1, c)
	}
	for y := r.Y1; y < r.Y2; y++ {
		img.Set(r.X1, y, c)
		img.Set(r.X2-1, y, c)
	}
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is
// optional. Without an alpha byte the color is opaque.
func parseHexColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")

	alpha := uint8(255)
	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: want 6 or 8 digits", hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

// cellGlyphs is a 3x5 bitmap font for the characters of a "row,col" cell
// label. Each row is three bits, most significant bit leftmost.
var cellGlyphs = map[rune][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	',': {0b000, 0b000, 0b000, 0b010, 0b010},
}

const (
	glyphAdvance = 4 // 3 pixels plus 1 spacing
	labelMargin  = 2
)

var (
	labelForeground = color.RGBA{255, 255, 255, 255}
	labelBackground = color.RGBA{0, 0, 0, 180}
)

// drawCellLabel writes "row,col" in the top-left corner of cell on a dark
// backing box. Pixels outside the image are skipped.
func drawCellLabel(img *image.RGBA, cell Region, row, col int) {
	text := fmt.Sprintf("%d,%d", row, col)
	x0, y0 := cell.X1+labelMargin, cell.Y1+labelMargin
	box := image.Rect(x0-1, y0-1, x0+len(text)*glyphAdvance, y0+7).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(labelBackground), image.Point{}, draw.Src)

	for i, ch := range text {
		glyph := cellGlyphs[ch]
		for gy, bits := range glyph {
			for gx := 0; gx < 3; gx++ {
				if bits&(0b100>>gx) == 0 {
					continue
				}
				p := image.Pt(x0+i*glyphAdvance+gx, y0+gy)
				if p.In(img.Bounds()) {
					img.SetRGBA(p.X, p.Y, labelForeground)
				}
			}
		}
	}
}
