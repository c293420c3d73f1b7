// Package server implements the MCP (Model Context Protocol) server that
// exposes text location, cleanup and OCR as tools.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Text Location:
//   - text_bounding_rect: Rectangle around the text nearest a point
//   - text_extract_block: Cleaned image of that text, optionally OCRed
//   - text_extract_bubble: Cleaned image of the text enclosed around a point
//
// Whole Image:
//   - text_erase_furigana: Binarize and strip ruby text between lines
//   - text_ocr_image: Clean up and OCR the whole image
//
// Coordinates in arguments and results are source image pixels. Results also
// carry the rectangle in the scaled raster the pipeline worked on.
//
// # Configuration
//
// Preprocessing and OCR defaults come from a config.File. Tool arguments
// override scale_factor, vertical, remove_furigana, lookahead, lookbehind,
// search_radius and language per call. Configured replacements are applied
// to every OCR result after line break handling.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// text_bounding_rect reports found=false instead of an error when no text is
// near the point.
//
// # Usage
//
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("create server")
//	}
//	defer srv.Close()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal().Err(err).Msg("server error")
//	}
package server
