package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GSam/Capture2Text/internal/furigana"
	"github.com/GSam/Capture2Text/internal/geom"
	"github.com/GSam/Capture2Text/internal/imaging"
	"github.com/GSam/Capture2Text/internal/ocr"
	"github.com/GSam/Capture2Text/internal/preprocess"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "text_extract_block").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		log.Warn().Str("tool", params.Name).Dur("duration", time.Since(start)).Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	log.Debug().Str("tool", params.Name).Dur("duration", time.Since(start)).Msg("tool call")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Text Location
	case "text_bounding_rect":
		return s.handleTextBoundingRect(args)
	case "text_extract_block":
		return s.handleTextExtractBlock(ctx, args)
	case "text_extract_bubble":
		return s.handleTextExtractBubble(ctx, args)

	// Whole Image
	case "text_erase_furigana":
		return s.handleTextEraseFurigana(args)
	case "text_ocr_image":
		return s.handleTextOCRImage(ctx, args)

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

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments. Missing arguments decode as an empty
// object.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Shared Arguments ===

// pipelineArgs overrides the configured preprocessing settings. Nil fields
// keep the configured value.
type pipelineArgs struct {
	Path           string   `json:"path"`
	Vertical       *bool    `json:"vertical"`
	RemoveFurigana *bool    `json:"remove_furigana"`
	ScaleFactor    *float64 `json:"scale_factor"`
	Lookahead      *int     `json:"lookahead"`
	Lookbehind     *int     `json:"lookbehind"`
	SearchRadius   *int     `json:"search_radius"`
}

// pointArgs adds a click point in source image pixels.
type pointArgs struct {
	pipelineArgs
	X int `json:"x"`
	Y int `json:"y"`
}

// ocrArgs selects whether and how extracted text is read.
type ocrArgs struct {
	OCR      bool   `json:"ocr"`
	Language string `json:"language"`
}

func (s *Server) preprocessOptions(a pipelineArgs) (preprocess.Options, error) {
	opts := s.cfg.PreprocessOptions()
	if a.Vertical != nil {
		opts.Vertical = *a.Vertical
	}
	if a.RemoveFurigana != nil {
		opts.RemoveFurigana = *a.RemoveFurigana
	}
	if a.ScaleFactor != nil {
		if *a.ScaleFactor <= 0 {
			return opts, fmt.Errorf("scale_factor must be positive, got %v", *a.ScaleFactor)
		}
		opts.Scale = *a.ScaleFactor
	}
	for _, d := range []struct {
		name string
		v    *int
		dst  *int
	}{
		{"lookahead", a.Lookahead, &opts.Lookahead},
		{"lookbehind", a.Lookbehind, &opts.Lookbehind},
		{"search_radius", a.SearchRadius, &opts.SearchRadius},
	} {
		if d.v == nil {
			continue
		}
		if *d.v < 0 {
			return opts, fmt.Errorf("%s must not be negative, got %d", d.name, *d.v)
		}
		*d.dst = *d.v
	}
	opts.Scale = preprocess.ClampScale(opts.Scale)
	return opts, nil
}

// loadPoint loads the image and checks that the click point lies inside it.
func (s *Server) loadPoint(a pointArgs) (image.Image, geom.Point, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, geom.Point{}, err
	}
	b := img.Bounds()
	pt := geom.Point{X: a.X, Y: a.Y}
	if !(geom.Rect{W: b.Dx(), H: b.Dy()}).Contains(pt) {
		return nil, geom.Point{}, fmt.Errorf("point %v outside image %dx%d", pt, b.Dx(), b.Dy())
	}
	return img, pt, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Text Location Handlers ===

// BoundingRectResult is the text_bounding_rect result.
type BoundingRectResult struct {
	Found       bool      `json:"found"`
	Rect        geom.Rect `json:"rect"`
	ScaledRect  geom.Rect `json:"scaled_rect"`
	ScaleFactor float64   `json:"scale_factor"`
	TextLines   int       `json:"text_lines"`
	Inverted    bool      `json:"dark_background"`
}

func (s *Server) handleTextBoundingRect(args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.preprocessOptions(a.pipelineArgs)
	if err != nil {
		return nil, err
	}
	img, pt, err := s.loadPoint(a)
	if err != nil {
		return nil, err
	}

	block, err := preprocess.ExtractTextBlock(img, pt, opts)
	if errors.Is(err, preprocess.ErrRectTooSmall) || errors.Is(err, preprocess.ErrNoForeground) {
		return &BoundingRectResult{ScaleFactor: opts.Scale}, nil
	}
	if err != nil {
		return nil, err
	}

	return &BoundingRectResult{
		Found:       true,
		Rect:        block.Bounds,
		ScaledRect:  block.ScaledBounds,
		ScaleFactor: opts.Scale,
		TextLines:   block.TextLines,
		Inverted:    block.Inverted,
	}, nil
}

// BlockResult is the result of the extraction tools.
type BlockResult struct {
	Bounds       geom.Rect             `json:"bounds"`
	ScaledBounds geom.Rect             `json:"scaled_bounds"`
	TextLines    int                   `json:"text_lines"`
	SingleLine   bool                  `json:"single_line"`
	Inverted     bool                  `json:"dark_background"`
	Image        *imaging.EncodedImage `json:"image"`
	Source       *imaging.EncodedImage `json:"source,omitempty"`
	OCR          *OCRResult            `json:"ocr,omitempty"`
}

// OCRResult is recognized text after post-processing.
type OCRResult struct {
	Text     string     `json:"text"`
	Raw      string     `json:"raw"`
	Language string     `json:"language"`
	Lines    []ocr.Line `json:"lines"`
}

type extractArgs struct {
	pointArgs
	ocrArgs
}

func (s *Server) handleTextExtractBlock(ctx context.Context, args json.RawMessage) (interface{}, error) {
	return s.extract(ctx, args, preprocess.ExtractTextBlock)
}

func (s *Server) handleTextExtractBubble(ctx context.Context, args json.RawMessage) (interface{}, error) {
	return s.extract(ctx, args, preprocess.ExtractBubbleText)
}

type extractFunc func(image.Image, geom.Point, preprocess.Options) (*preprocess.Block, error)

func (s *Server) extract(ctx context.Context, args json.RawMessage, fn extractFunc) (interface{}, error) {
	var a extractArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.preprocessOptions(a.pipelineArgs)
	if err != nil {
		return nil, err
	}
	img, pt, err := s.loadPoint(a.pointArgs)
	if err != nil {
		return nil, err
	}

	block, err := fn(img, pt, opts)
	if err != nil {
		return nil, err
	}
	res, err := s.blockResult(ctx, block, opts, a.ocrArgs)
	if err != nil {
		return nil, err
	}
	if res.Source, err = sourceCrop(img, block.Bounds); err != nil {
		return nil, err
	}
	return res, nil
}

// sourceCrop encodes the source pixels under r, or returns nil when r lies
// outside img.
func sourceCrop(img image.Image, r geom.Rect) (*imaging.EncodedImage, error) {
	b := img.Bounds()
	r = r.Intersect(geom.Rect{W: b.Dx(), H: b.Dy()})
	if r.Empty() {
		return nil, nil
	}
	crop, err := imaging.CropRegion(img, r)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(crop)
}

func (s *Server) blockResult(ctx context.Context, block *preprocess.Block, opts preprocess.Options, o ocrArgs) (*BlockResult, error) {
	cleaned := block.Binary.ToImage()
	encoded, err := imaging.EncodePNG(cleaned)
	if err != nil {
		return nil, err
	}

	res := &BlockResult{
		Bounds:       block.Bounds,
		ScaledBounds: block.ScaledBounds,
		TextLines:    block.TextLines,
		SingleLine:   block.SingleLine,
		Inverted:     block.Inverted,
		Image:        encoded,
	}
	if !o.OCR {
		return res, nil
	}

	res.OCR, err = s.recognize(ctx, cleaned, opts.Vertical, block.SingleLine, o.Language)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// recognize runs OCR on a cleaned image and post-processes the text.
func (s *Server) recognize(ctx context.Context, img image.Image, vertical, singleLine bool, language string) (*OCRResult, error) {
	opts := s.cfg.OCROptions()
	opts.Vertical = vertical
	opts.SingleLine = singleLine
	if language != "" {
		opts.Language = language
	}

	raw, err := s.ocr.Recognize(ctx, img, opts)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	text := ocr.PostProcess(raw.Text, ocr.PostOptions{
		Language:       opts.Language,
		KeepLineBreaks: s.cfg.OCR.KeepLineBreaks,
		Rules:          s.rules,
	})
	log.Debug().Str("language", raw.Language).Int("lines", len(raw.Lines)).
		Str("text", text).Msg("recognized")

	return &OCRResult{
		Text:     text,
		Raw:      raw.Text,
		Language: raw.Language,
		Lines:    raw.Lines,
	}, nil
}

// === Whole Image Handlers ===

// EraseFuriganaResult is the text_erase_furigana result.
type EraseFuriganaResult struct {
	TextLines   int                   `json:"text_lines"`
	Spans       []furigana.Span       `json:"spans"`
	Major       []furigana.Span       `json:"major"`
	ScaleFactor float64               `json:"scale_factor"`
	Image       *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleTextEraseFurigana(args json.RawMessage) (interface{}, error) {
	var a pipelineArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.preprocessOptions(a)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	bin := imaging.Binarize(img, imaging.BinarizeOptions{
		Scale:  opts.Scale,
		Invert: imaging.IsDarkBorder(img),
	})

	axis := furigana.Horizontal
	if opts.Vertical {
		axis = furigana.Vertical
	}
	res, err := furigana.Erase(bin, opts.Scale, axis)
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNG(bin.ToImage())
	if err != nil {
		return nil, err
	}

	return &EraseFuriganaResult{
		TextLines:   res.TextLines,
		Spans:       res.Spans,
		Major:       res.Major,
		ScaleFactor: opts.Scale,
		Image:       encoded,
	}, nil
}

type ocrImageArgs struct {
	pipelineArgs
	Language string `json:"language"`
	Trim     *bool  `json:"trim"`
}

func (s *Server) handleTextOCRImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ocrImageArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.preprocessOptions(a.pipelineArgs)
	if err != nil {
		return nil, err
	}
	opts.Trim = a.Trim == nil || *a.Trim

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	block, err := preprocess.ProcessImage(img, opts)
	if err != nil {
		return nil, err
	}
	return s.blockResult(ctx, block, opts, ocrArgs{OCR: true, Language: a.Language})
}
