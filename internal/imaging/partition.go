package imaging

import (
	"errors"
	"fmt"
	"image"
)

// GridSize is the number of rows and columns a cube face is divided into.
const GridSize = 3

// ErrDegenerateImage is returned when an image is too small to give every
// grid cell at least one pixel.
var ErrDegenerateImage = errors.New("image is smaller than 3x3 pixels")

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//   - Width = X2 - X1, Height = Y2 - Y1
type Region struct {
	X1 int `json:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2"` // Bottom edge Y coordinate (exclusive)
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Area returns the number of pixels covered by the region.
func (r Region) Area() int {
	if r.X2 <= r.X1 || r.Y2 <= r.Y1 {
		return 0
	}
	return (r.X2 - r.X1) * (r.Y2 - r.Y1)
}

// Grid is a 3x3 matrix of regions indexed [row][column].
type Grid [GridSize][GridSize]Region

// Partition splits an image into a fixed 3x3 grid of equal cells.
//
// The cell size is width/3 by height/3 using integer division. Cell (i, j),
// row i and column j, covers:
//
//	X1 = j*stepX, X2 = (j+1)*stepX
//	Y1 = i*stepY, Y2 = (i+1)*stepY
//
// When width or height is not a multiple of 3 the leftover strip on the right
// or bottom edge belongs to no cell, so the last column ends at 3*stepX rather
// than at width.
//
// Returned regions share the coordinate space of bounds.
//
// # Errors
//
//   - Returns ErrDegenerateImage if width or height is less than 3
func Partition(bounds image.Rectangle) (Grid, error) {
	width, height := bounds.Dx(), bounds.Dy()
	if width < GridSize || height < GridSize {
		return Grid{}, fmt.Errorf("%w: got %dx%d", ErrDegenerateImage, width, height)
	}

	stepX := width / GridSize
	stepY := height / GridSize

	var grid Grid
	for i := 0; i < GridSize; i++ {
		for j := 0; j < GridSize; j++ {
			grid[i][j] = Region{
				X1: bounds.Min.X + j*stepX,
				Y1: bounds.Min.Y + i*stepY,
				X2: bounds.Min.X + (j+1)*stepX,
				Y2: bounds.Min.Y + (i+1)*stepY,
			}
		}
	}

	return grid, nil
}
