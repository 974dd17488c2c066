// Package imaging provides the pixel-level steps of cube face analysis.
//
// This package loads photographs, normalizes their lighting, splits them into
// a 3x3 grid and finds the most frequent color in each cell. It also renders
// debugging views of that grid. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// Every function is stateless and returns new images, so operations can run
// concurrently on different images or on the same image.
//
// # Color Representation
//
//   - RGB: 8-bit components (0-255), alpha discarded
//   - HSV: Hue (0-360), Saturation (0-255), Value (0-255)
//   - Hex: "#rrggbb"
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Files that cannot be opened or decoded (*LoadError)
//   - Images smaller than 3x3 pixels (ErrDegenerateImage)
//   - Regions with no pixels (ErrEmptyRegion)
//   - Crop regions outside image bounds
package imaging
