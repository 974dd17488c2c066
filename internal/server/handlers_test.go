package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/ironsheep/cubeface/internal/cube"
	"github.com/ironsheep/cubeface/internal/imaging"
)

var (
	faceWhite  = color.RGBA{243, 243, 243, 255}
	faceRed    = color.RGBA{220, 66, 47, 255}
	faceBlue   = color.RGBA{61, 129, 246, 255}
	faceGreen  = color.RGBA{0, 157, 84, 255}
	faceYellow = color.RGBA{245, 180, 0, 255}
	faceOrange = color.RGBA{232, 112, 0, 255}
)

// writeImage encodes img as PNG in a temp file and returns its path.
func writeImage(t *testing.T, img image.Image) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "handler-test-*.png")
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

// createTestImageFile creates a solid-color test image file and returns its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeImage(t, img)
}

// createFaceFile renders a 9x9 cube face with 3x3 pixel cells.
func createFaceFile(t *testing.T) string {
	t.Helper()

	cells := [3][3]color.RGBA{
		{faceWhite, faceRed, faceBlue},
		{faceGreen, faceYellow, faceOrange},
		{faceBlue, faceWhite, faceRed},
	}
	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			img.Set(x, y, cells[y/3][x/3])
		}
	}
	return writeImage(t, img)
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}
	return b
}

func TestHandleDetectFace(t *testing.T) {
	path := createFaceFile(t)
	defer os.Remove(path)

	s := newTestServer()
	result, err := s.handleDetectFace(mustJSON(t, map[string]interface{}{"path": path}))
	if err != nil {
		t.Fatalf("handleDetectFace failed: %v", err)
	}

	res, ok := result.(*detectFaceResult)
	if !ok {
		t.Fatalf("unexpected result type %T", result)
	}

	want := cube.FaceGrid{
		{cube.White, cube.Red, cube.Blue},
		{cube.Green, cube.Yellow, cube.Orange},
		{cube.Blue, cube.White, cube.Red},
	}
	if res.Face != want {
		t.Errorf("face: got %v, want %v", res.Face.Rows(), want.Rows())
	}
}

func TestHandleDetectFace_Missing(t *testing.T) {
	s := newTestServer()
	_, err := s.handleDetectFace(mustJSON(t, map[string]interface{}{"path": "/nonexistent/face.png"}))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestHandleDetectFaces(t *testing.T) {
	good := createFaceFile(t)
	defer os.Remove(good)

	s := newTestServer()
	result, err := s.handleDetectFaces(mustJSON(t, map[string]interface{}{
		"paths": []string{good, "/nonexistent/face.png"},
	}))
	if err != nil {
		t.Fatalf("handleDetectFaces failed: %v", err)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("failed to encode results: %v", err)
	}
	text := string(encoded)
	first := strings.Index(text, `"Image 1"`)
	second := strings.Index(text, `"Image 2"`)
	if first < 0 || second < 0 || first > second {
		t.Fatalf("results not keyed in order: %s", text)
	}
	if !strings.Contains(text, "Error opening image file: /nonexistent/face.png") {
		t.Errorf("missing load error entry: %s", text)
	}
}

func TestHandleDetectFaces_Empty(t *testing.T) {
	s := newTestServer()
	_, err := s.handleDetectFaces(mustJSON(t, map[string]interface{}{"paths": []string{}}))
	if err == nil {
		t.Fatal("expected error for empty paths")
	}
	if err.Error() != cube.EmptyInputMessage {
		t.Errorf("error: got %q, want %q", err.Error(), cube.EmptyInputMessage)
	}
}

func TestHandleClassifyColor(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		want    cube.Label
		wantErr bool
	}{
		{"red", 255, 0, 0, cube.Red, false},
		{"orange", 255, 140, 0, cube.Orange, false},
		{"yellow", 255, 255, 0, cube.Yellow, false},
		{"white", 200, 200, 200, cube.White, false},
		{"blue", 20, 60, 200, cube.Blue, false},
		{"green", 0, 200, 0, cube.Green, false},
		{"out of range", 256, 0, 0, 0, true},
		{"negative", 0, -1, 0, 0, true},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleClassifyColor(mustJSON(t, map[string]int{"r": tt.r, "g": tt.g, "b": tt.b}))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("handleClassifyColor failed: %v", err)
			}

			report := result.(*ColorReport)
			if report.Label != tt.want {
				t.Errorf("label: got %s, want %s", report.Label, tt.want)
			}
		})
	}
}

func TestHandleImageDimensions(t *testing.T) {
	path := createTestImageFile(t, 120, 45, faceWhite)
	defer os.Remove(path)

	s := newTestServer()
	result, err := s.handleImageDimensions(mustJSON(t, map[string]interface{}{"path": path}))
	if err != nil {
		t.Fatalf("handleImageDimensions failed: %v", err)
	}

	dims := result.(*imaging.DimensionsResult)
	if dims.Width != 120 || dims.Height != 45 {
		t.Errorf("got %dx%d, want 120x45", dims.Width, dims.Height)
	}
}

func TestHandleDominantColor(t *testing.T) {
	path := createTestImageFile(t, 12, 12, faceRed)
	defer os.Remove(path)

	s := newTestServer()

	t.Run("raw", func(t *testing.T) {
		result, err := s.handleDominantColor(mustJSON(t, map[string]interface{}{
			"path":    path,
			"enhance": false,
		}))
		if err != nil {
			t.Fatalf("handleDominantColor failed: %v", err)
		}

		report := result.(*ColorReport)
		want := imaging.RGBColor{R: 220, G: 66, B: 47}
		if report.RGB != want {
			t.Errorf("rgb: got %+v, want %+v", report.RGB, want)
		}
		if report.Hex != "#dc422f" {
			t.Errorf("hex: got %s, want #dc422f", report.Hex)
		}
		if report.Label != cube.Red {
			t.Errorf("label: got %s, want red", report.Label)
		}
	})

	t.Run("enhanced region", func(t *testing.T) {
		result, err := s.handleDominantColor(mustJSON(t, map[string]interface{}{
			"path":   path,
			"region": map[string]int{"x1": 0, "y1": 0, "x2": 4, "y2": 4},
		}))
		if err != nil {
			t.Fatalf("handleDominantColor failed: %v", err)
		}

		report := result.(*ColorReport)
		if report.RGB.R != 255 {
			t.Errorf("expected brightened red channel, got %+v", report.RGB)
		}
		if report.Label != cube.Red {
			t.Errorf("label: got %s, want red", report.Label)
		}
	})

	t.Run("empty region", func(t *testing.T) {
		_, err := s.handleDominantColor(mustJSON(t, map[string]interface{}{
			"path":   path,
			"region": map[string]int{"x1": 4, "y1": 4, "x2": 4, "y2": 8},
		}))
		if err == nil {
			t.Error("expected error for empty region")
		}
	})
}

func TestHandleCropCell(t *testing.T) {
	path := createFaceFile(t)
	defer os.Remove(path)

	s := newTestServer()

	tests := []struct {
		name       string
		args       map[string]interface{}
		wantWidth  int
		wantHeight int
		wantErr    bool
	}{
		{"default scale", map[string]interface{}{"path": path, "row": 1, "col": 2}, 3, 3, false},
		{"scaled", map[string]interface{}{"path": path, "row": 0, "col": 0, "scale": 4.0}, 12, 12, false},
		{"row out of range", map[string]interface{}{"path": path, "row": 3, "col": 0}, 0, 0, true},
		{"negative col", map[string]interface{}{"path": path, "row": 0, "col": -1}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := s.handleCropCell(mustJSON(t, tt.args))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("handleCropCell failed: %v", err)
			}

			crop := result.(*imaging.CropResult)
			if crop.Width != tt.wantWidth || crop.Height != tt.wantHeight {
				t.Errorf("got %dx%d, want %dx%d", crop.Width, crop.Height, tt.wantWidth, tt.wantHeight)
			}
			if crop.MimeType != "image/png" {
				t.Errorf("mime type: got %s", crop.MimeType)
			}
		})
	}
}

func TestHandleGridOverlay(t *testing.T) {
	path := createTestImageFile(t, 31, 20, faceWhite)
	defer os.Remove(path)

	s := newTestServer()
	result, err := s.handleGridOverlay(mustJSON(t, map[string]interface{}{"path": path}))
	if err != nil {
		t.Fatalf("handleGridOverlay failed: %v", err)
	}

	overlay := result.(*imaging.OverlayResult)
	if overlay.Width != 31 || overlay.Height != 20 {
		t.Errorf("got %dx%d, want 31x20", overlay.Width, overlay.Height)
	}
	if overlay.ImageBase64 == "" {
		t.Error("overlay image is empty")
	}
	if got := overlay.Cells[2][2]; got.X2 != 30 || got.Y2 != 18 {
		t.Errorf("last cell: got %+v, want X2=30 Y2=18", got)
	}
}

func TestHandleToolsCall(t *testing.T) {
	s := newTestServer()

	t.Run("success", func(t *testing.T) {
		params := mustJSON(t, map[string]interface{}{
			"name":      "cube_classify_color",
			"arguments": map[string]int{"r": 0, "g": 157, "b": 84},
		})
		resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: "tools/call", Params: params})
		if resp.Error != nil {
			t.Fatalf("unexpected error: %+v", resp.Error)
		}

		result := resp.Result.(map[string]interface{})
		content := result["content"].([]map[string]interface{})
		text := content[0]["text"].(string)

		var report ColorReport
		if err := json.Unmarshal([]byte(text), &report); err != nil {
			t.Fatalf("failed to decode tool result: %v", err)
		}
		if report.Label != cube.Green {
			t.Errorf("label: got %s, want green", report.Label)
		}
	})

	t.Run("invalid params", func(t *testing.T) {
		resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 8, Method: "tools/call", Params: json.RawMessage(`"nope"`)})
		if resp.Error == nil || resp.Error.Code != -32602 {
			t.Errorf("expected -32602, got %+v", resp.Error)
		}
	})

	t.Run("tool failure", func(t *testing.T) {
		params := mustJSON(t, map[string]interface{}{
			"name":      "cube_detect_face",
			"arguments": map[string]string{"path": "/nonexistent/face.png"},
		})
		resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 9, Method: "tools/call", Params: params})
		if resp.Error == nil || resp.Error.Code != -32000 {
			t.Errorf("expected -32000, got %+v", resp.Error)
		}
	})
}

func TestToolResponse_EncodeFailure(t *testing.T) {
	s := newTestServer()

	// A result with neither a face nor an error cannot be encoded.
	resp := s.toolResponse(3, "cube_detect_faces", cube.Results{{}})
	if resp.Error == nil {
		t.Fatalf("expected error response, got result %+v", resp.Result)
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
	if resp.Result != nil {
		t.Errorf("error response carries a result: %+v", resp.Result)
	}
}

func TestToolResponse_Success(t *testing.T) {
	s := newTestServer()

	face := cube.FaceGrid{}
	resp := s.toolResponse(4, "cube_detect_faces", cube.Results{{Face: &face}})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}

	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	text := content[0]["text"].(string)
	if !strings.Contains(text, `"Image 1"`) || !strings.Contains(text, `"orange"`) {
		t.Errorf("unexpected text payload: %s", text)
	}
}
