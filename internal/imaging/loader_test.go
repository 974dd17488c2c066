package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestLoad(t *testing.T) {
	imgPath := createTestImage(t, 100, 80, color.NRGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	img, err := Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x80", bounds.Dx(), bounds.Dy())
	}
	if bounds.Min != (image.Point{}) {
		t.Errorf("expected zero origin, got %v", bounds.Min)
	}

	if got := pixelAt(img, 50, 40); got != (RGBColor{255, 0, 0}) {
		t.Errorf("pixel: got %+v, want red", got)
	}
}

func TestLoad_DropsAlpha(t *testing.T) {
	imgPath := createTestImage(t, 10, 10, color.NRGBA{40, 80, 120, 100})
	defer os.Remove(imgPath)

	img, err := Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	c := img.NRGBAAt(5, 5)
	if c.A != 255 {
		t.Errorf("alpha: got %d, want 255", c.A)
	}
	if c.R != 40 || c.G != 80 || c.B != 120 {
		t.Errorf("RGB: got (%d,%d,%d), want (40,80,120)", c.R, c.G, c.B)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	_, err := Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Fatal("Load should fail for non-existent file")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Path != "/nonexistent/path/to/image.png" {
		t.Errorf("Path: got %s", loadErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected error to wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
}

func TestLoad_InvalidImage(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "invalid-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.WriteString("not an image")
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	_, err = Load(tmpFile.Name())
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("Load should fail with *LoadError for invalid image data, got %v", err)
	}
}

func TestToRGB_ZeroOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 7, 15, 17))
	for y := 7; y < 17; y++ {
		for x := 5; x < 15; x++ {
			src.Set(x, y, color.RGBA{1, 2, 3, 255})
		}
	}

	dst := ToRGB(src)
	if dst.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Errorf("bounds: got %v, want (0,0)-(10,10)", dst.Bounds())
	}
	if got := pixelAt(dst, 0, 0); got != (RGBColor{1, 2, 3}) {
		t.Errorf("pixel: got %+v", got)
	}
}

func TestGetDimensions(t *testing.T) {
	imgPath := createTestImage(t, 300, 200, color.NRGBA{100, 100, 100, 255})
	defer os.Remove(imgPath)

	dims, err := GetDimensions(imgPath)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}

	if dims.Width != 300 {
		t.Errorf("Width: got %d, want 300", dims.Width)
	}
	if dims.Height != 200 {
		t.Errorf("Height: got %d, want 200", dims.Height)
	}
}

func TestGetDimensions_NonExistent(t *testing.T) {
	_, err := GetDimensions("/nonexistent/image.png")
	if err == nil {
		t.Error("GetDimensions should fail for non-existent file")
	}
}
