package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// LoadError reports that an image path could not be opened or decoded.
//
// The path is kept separately from the cause so callers can build their own
// user-facing message. Use errors.As to detect it:
//
//	var loadErr *imaging.LoadError
//	if errors.As(err, &loadErr) {
//	    // report loadErr.Path
//	}
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads an image from disk and returns it as an opaque RGB image.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, GIF, BMP, TIFF and WebP.
//
// Returns:
//   - *image.NRGBA: The decoded image with a zero origin and every alpha value
//     forced to 255, so each pixel holds plain 8-bit RGB samples.
//   - error: A *LoadError if the file does not exist, cannot be read, or is not
//     a decodable image.
//
// Images are never cached; every call reads the file again.
func Load(path string) (*image.NRGBA, error) {
	if path == "" {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("image path cannot be empty")}
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return ToRGB(img), nil
}

// ToRGB copies img into a zero-origin NRGBA image and drops the alpha channel.
//
// Alpha is discarded rather than composited, matching how an RGB conversion of
// a transparent image keeps the stored color samples.
func ToRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions loads an image and reports its width and height.
func GetDimensions(path string) (*DimensionsResult, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
