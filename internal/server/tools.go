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

// pipelineProperties returns the optional preprocessing overrides shared by
// the text tools. Omitted values fall back to the server configuration.
func pipelineProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"vertical": map[string]interface{}{
			"type":        "boolean",
			"description": "Text reads top to bottom in columns (Japanese/Chinese vertical writing)",
		},
		"remove_furigana": map[string]interface{}{
			"type":        "boolean",
			"description": "Erase furigana (ruby text) running alongside the main text lines",
		},
		"scale_factor": map[string]interface{}{
			"type":        "number",
			"description": "Upscale factor applied before binarization, clamped to [0.71, 5.0]. Default 3.5",
		},
	}
}

// pointProperties adds the click point and text line search settings.
func pointProperties() map[string]interface{} {
	props := pipelineProperties()
	props["x"] = map[string]interface{}{
		"type":        "integer",
		"description": "X coordinate of the click point (0-based, source pixels)",
	}
	props["y"] = map[string]interface{}{
		"type":        "integer",
		"description": "Y coordinate of the click point (0-based, source pixels)",
	}
	props["lookahead"] = map[string]interface{}{
		"type":        "integer",
		"description": "Widest gap in source pixels bridged in the reading direction. Default 14",
	}
	props["lookbehind"] = map[string]interface{}{
		"type":        "integer",
		"description": "Widest gap in source pixels bridged against the reading direction. Default 14",
	}
	props["search_radius"] = map[string]interface{}{
		"type":        "integer",
		"description": "How far from the click point to look for text, in source pixels. Default 30",
	}
	return props
}

// ocrProperties adds the OCR switch and language to props.
func ocrProperties(props map[string]interface{}) map[string]interface{} {
	props["ocr"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Also run Tesseract OCR on the cleaned text",
		"default":     false,
	}
	props["language"] = languageProperty()
	return props
}

func languageProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Tesseract language code (e.g., 'eng', 'jpn', 'chi_sim'). Default from configuration",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	ocrImage := pipelineProperties()
	ocrImage["language"] = languageProperty()
	ocrImage["trim"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Clip the processed image to its text before OCR",
		"default":     true,
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
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

		// Text Location
		{
			Name:        "text_bounding_rect",
			Description: "Find the tightest rectangle around the line or block of text nearest a point. Returns the rectangle in source pixels and whether any text was found.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pointProperties(),
				"required":   []string{"path", "x", "y"},
			},
		},
		{
			Name:        "text_extract_block",
			Description: "Extract the text nearest a point as a cleaned black-on-white PNG (base64) plus the matching crop of the source image, optionally with OCR text. Use this to read a single line or column of text in a screenshot.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": ocrProperties(pointProperties()),
				"required":   []string{"path", "x", "y"},
			},
		},
		{
			Name:        "text_extract_bubble",
			Description: "Extract the text enclosed by the shape around a point, such as a comic speech bubble, as a cleaned PNG (base64) plus the source crop, optionally with OCR text.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": ocrProperties(pointProperties()),
				"required":   []string{"path", "x", "y"},
			},
		},

		// Whole Image
		{
			Name:        "text_erase_furigana",
			Description: "Binarize a whole image and erase furigana between the main text lines. Returns the cleaned PNG (base64), the number of text lines and the detected spans.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pipelineProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "text_ocr_image",
			Description: "Clean up a whole image and read it with Tesseract OCR. Returns the post-processed text, the raw OCR output and line boxes.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": ocrImage,
				"required":   []string{"path"},
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
