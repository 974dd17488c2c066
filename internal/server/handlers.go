package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/cubeface/internal/cube"
	"github.com/ironsheep/cubeface/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "cube_detect_face").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return s.toolResponse(req.ID, params.Name, result)
}

// toolResponse wraps a tool result in MCP text content. A result that cannot
// be encoded becomes a -32000 error rather than an empty payload.
func (s *Server) toolResponse(id interface{}, tool string, result interface{}) *MCPResponse {
	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		s.logger.Error("failed to encode tool result", "tool", tool, "error", err)
		return s.errorResponse(id, -32000, "Tool execution failed", fmt.Sprintf("failed to encode result: %v", err))
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": string(text),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Face Detection
	case "cube_detect_face":
		return s.handleDetectFace(args)
	case "cube_detect_faces":
		return s.handleDetectFaces(args)
	case "cube_classify_color":
		return s.handleClassifyColor(args)

	// Inspection
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_dominant_color":
		return s.handleDominantColor(args)
	case "cube_crop_cell":
		return s.handleCropCell(args)
	case "cube_grid_overlay":
		return s.handleGridOverlay(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// === Face Detection Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

type detectFaceResult struct {
	Face cube.FaceGrid `json:"face"`
}

func (s *Server) handleDetectFace(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	face, err := s.detector.DetectFace(a.Path)
	if err != nil {
		return nil, err
	}
	return &detectFaceResult{Face: face}, nil
}

type detectFacesArgs struct {
	Paths []string `json:"paths"`
}

func (s *Server) handleDetectFaces(args json.RawMessage) (interface{}, error) {
	var a detectFacesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	results, err := s.runner.Run(a.Paths)
	if errors.Is(err, cube.ErrEmptyInput) {
		return nil, errors.New(cube.EmptyInputMessage)
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

type classifyColorArgs struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// ColorReport describes one color and the label it classifies to.
type ColorReport struct {
	RGB   imaging.RGBColor `json:"rgb"`
	Hex   string           `json:"hex"`
	HSV   imaging.HSVColor `json:"hsv"`
	Label cube.Label       `json:"label"`
}

func (s *Server) report(rgb imaging.RGBColor) *ColorReport {
	return &ColorReport{
		RGB:   rgb,
		Hex:   rgb.Hex(),
		HSV:   rgb.HSV(),
		Label: s.detector.Classifier().Classify(rgb),
	}
}

func (s *Server) handleClassifyColor(args json.RawMessage) (interface{}, error) {
	var a classifyColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	for _, v := range []int{a.R, a.G, a.B} {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("channel value %d out of range 0-255", v)
		}
	}
	return s.report(imaging.RGBColor{R: uint8(a.R), G: uint8(a.G), B: uint8(a.B)}), nil
}

// === Inspection Handlers ===

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(a.Path)
}

type regionArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type dominantColorArgs struct {
	Path    string      `json:"path"`
	Region  *regionArgs `json:"region"`
	Enhance *bool       `json:"enhance"`
}

// loadForAnalysis loads path and applies the detector's enhancement unless
// enhance is explicitly false.
func (s *Server) loadForAnalysis(path string, enhance *bool) (image.Image, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	if enhance != nil && !*enhance {
		return img, nil
	}
	return imaging.Enhance(img, s.detector.Settings().Enhancement), nil
}

func (s *Server) handleDominantColor(args json.RawMessage) (interface{}, error) {
	var a dominantColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadForAnalysis(a.Path, a.Enhance)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	region := imaging.Region{X1: b.Min.X, Y1: b.Min.Y, X2: b.Max.X, Y2: b.Max.Y}
	if a.Region != nil {
		region = imaging.Region{X1: a.Region.X1, Y1: a.Region.Y1, X2: a.Region.X2, Y2: a.Region.Y2}
	}

	rgb, err := imaging.DominantColor(img, region)
	if err != nil {
		return nil, err
	}
	return s.report(rgb), nil
}

type cropCellArgs struct {
	Path    string  `json:"path"`
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	Scale   float64 `json:"scale"`
	Enhance *bool   `json:"enhance"`
}

func (s *Server) handleCropCell(args json.RawMessage) (interface{}, error) {
	var a cropCellArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Row < 0 || a.Row >= imaging.GridSize || a.Col < 0 || a.Col >= imaging.GridSize {
		return nil, fmt.Errorf("cell (%d,%d) outside the 3x3 grid", a.Row, a.Col)
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	img, err := s.loadForAnalysis(a.Path, a.Enhance)
	if err != nil {
		return nil, err
	}
	cells, err := imaging.Partition(img.Bounds())
	if err != nil {
		return nil, err
	}
	return imaging.CropRegion(img, cells[a.Row][a.Col], a.Scale)
}

type gridOverlayArgs struct {
	Path       string `json:"path"`
	ShowLabels *bool  `json:"show_labels"`
	GridColor  string `json:"grid_color"`
}

func (s *Server) handleGridOverlay(args json.RawMessage) (interface{}, error) {
	var a gridOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	showLabels := true
	if a.ShowLabels != nil {
		showLabels = *a.ShowLabels
	}
	if a.GridColor == "" {
		a.GridColor = "#FF000080"
	}

	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.PartitionOverlay(img, showLabels, a.GridColor)
}
