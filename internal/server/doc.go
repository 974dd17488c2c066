// Package server implements the MCP (Model Context Protocol) server for cube
// face detection.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Face Detection:
//   - cube_detect_face: Classify the nine facelets of one photo
//   - cube_detect_faces: Classify a batch of photos, one result per image
//   - cube_classify_color: Classify a single RGB value
//
// Inspection:
//   - image_dimensions: Get width and height
//   - image_dominant_color: Most frequent exact color in a region
//   - cube_crop_cell: Extract one grid cell as PNG
//   - cube_grid_overlay: Draw the detection grid on the image
//
// # Error Codes
//
//   - -32601: Method not found
//   - -32602: Invalid params
//   - -32000: Tool execution failed (details in error data)
//
// Images are read from disk on every call; nothing is cached between requests.
package server
