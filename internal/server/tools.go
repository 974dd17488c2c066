package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func enhanceProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Apply the contrast and brightness boost used by face detection (default true)",
		"default":     true,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Face Detection
		{
			Name:        "cube_detect_face",
			Description: "Classify the nine facelet colors of a photographed cube face. Returns a 3x3 row-major grid of color names (orange, red, yellow, white, blue, green).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cube_detect_faces",
			Description: "Classify several face photographs at once. Returns an object keyed \"Image 1\", \"Image 2\", ... holding either a 3x3 grid or {\"error\": message} per image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the image files, in output order",
					},
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "cube_classify_color",
			Description: "Classify a single RGB color into one of the six cube colors and report its HSV values.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"r": map[string]interface{}{"type": "integer", "description": "Red (0-255)"},
					"g": map[string]interface{}{"type": "integer", "description": "Green (0-255)"},
					"b": map[string]interface{}{"type": "integer", "description": "Blue (0-255)"},
				},
				"required": []string{"r", "g", "b"},
			},
		},

		// Inspection
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dominant_color",
			Description: "Return the most frequent exact color in an image or region, with its cube color classification.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"description": "Optional region to analyze. If omitted, analyzes entire image.",
					},
					"enhance": enhanceProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cube_crop_cell",
			Description: "Crop one of the nine grid cells used for face detection and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"row":  map[string]interface{}{"type": "integer", "description": "Cell row (0-2)"},
					"col":  map[string]interface{}{"type": "integer", "description": "Cell column (0-2)"},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor for output (default 1.0)",
						"default":     1.0,
					},
					"enhance": enhanceProperty(),
				},
				"required": []string{"path", "row", "col"},
			},
		},
		{
			Name:        "cube_grid_overlay",
			Description: "Return the image with the 3x3 detection grid drawn on it. Pixels outside every cell are left unmarked.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"show_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to label each cell with its row,col index",
						"default":     true,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as hex (default #FF000080 - semi-transparent red)",
						"default":     "#FF000080",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
