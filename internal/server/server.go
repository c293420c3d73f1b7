package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/GSam/Capture2Text/internal/config"
	"github.com/GSam/Capture2Text/internal/imaging"
	"github.com/GSam/Capture2Text/internal/ocr"
)

// Name identifies the server in the initialize handshake.
const Name = "capture2text-mcp"

// Version is set at build time with -ldflags "-X ...server.Version=...".
var Version = "0.1.0"

// recognizer reads text from a cleaned image. *ocr.Engine implements it.
type recognizer interface {
	Recognize(ctx context.Context, img image.Image, opts ocr.Options) (*ocr.Result, error)
	Close() error
}

// Server handles MCP protocol communication
type Server struct {
	cache  *imaging.ImageCache
	ocr    recognizer
	cfg    config.File
	rules  []ocr.Rule
	stdin  io.Reader
	stdout io.Writer
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server using cfg for tool defaults and the OCR engine.
func New(cfg config.File) (*Server, error) {
	rules, err := ocr.CompileRules(cfg.Replacements)
	if err != nil {
		return nil, fmt.Errorf("compile replacements: %w", err)
	}
	return &Server{
		cache:  imaging.NewImageCache(),
		ocr:    ocr.NewEngine(cfg.OCR.Tessdata),
		cfg:    cfg,
		rules:  rules,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}, nil
}

// Close releases the OCR engine.
func (s *Server) Close() error {
	return s.ocr.Close()
}

// Run reads requests from stdin and writes responses to stdout until stdin
// closes or ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.serve(ctx, s.stdin, s.stdout)
}

func (s *Server) serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Warn().Err(err).Msg("failed to parse request")
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Error().Err(err).Msg("failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	log.Debug().Str("method", req.Method).Interface("id", req.ID).Msg("request")

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    Name,
				"version": Version,
			},
		},
	}
}
