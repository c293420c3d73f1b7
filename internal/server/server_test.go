package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"strings"
	"testing"

	"github.com/GSam/Capture2Text/internal/config"
	"github.com/GSam/Capture2Text/internal/ocr"
)

// fakeRecognizer records the options of each call and returns a fixed text.
type fakeRecognizer struct {
	text   string
	err    error
	calls  []ocr.Options
	closed bool
}

func (f *fakeRecognizer) Recognize(_ context.Context, img image.Image, opts ocr.Options) (*ocr.Result, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ocr.ErrEmptyImage
	}
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return nil, f.err
	}
	return &ocr.Result{Text: f.text, Lines: []ocr.Line{}, Language: opts.Language}, nil
}

func (f *fakeRecognizer) Close() error {
	f.closed = true
	return nil
}

// newTestServer returns a server with default configuration and a fake OCR
// engine.
func newTestServer(t *testing.T) (*Server, *fakeRecognizer) {
	t.Helper()

	s, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	fake := &fakeRecognizer{text: "HELLO\nWORLD\n"}
	s.ocr = fake
	return s, fake
}

func TestNew(t *testing.T) {
	s, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.cache == nil {
		t.Fatal("New() did not initialize cache")
	}
	if s.ocr == nil {
		t.Fatal("New() did not initialize OCR engine")
	}
}

func TestNew_InvalidReplacement(t *testing.T) {
	cfg := config.Default()
	cfg.Replacements = []ocr.Replacement{{From: "["}}

	if _, err := New(cfg); err == nil {
		t.Error("New should fail for an invalid replacement pattern")
	}
}

func TestClose(t *testing.T) {
	s, fake := newTestServer(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !fake.closed {
		t.Error("Close should close the OCR engine")
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}

			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestMCPResponse_WithError(t *testing.T) {
	resp := MCPResponse{
		JSONRPC: "2.0",
		ID:      1,
		Error: &MCPError{
			Code:    -32601,
			Message: "Method not found",
		},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if strings.Contains(string(data), `"result"`) {
		t.Errorf("error response should omit result: %s", data)
	}

	var decoded MCPResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if decoded.Error == nil || decoded.Error.Code != -32601 {
		t.Errorf("Error: got %+v", decoded.Error)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s, _ := newTestServer(t)
	req := &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"}

	resp := s.handleRequest(context.Background(), req)
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	info, ok := result["serverInfo"].(map[string]interface{})
	if !ok || info["name"] != Name {
		t.Errorf("serverInfo: got %v", result["serverInfo"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s, _ := newTestServer(t)
	req := &MCPRequest{JSONRPC: "2.0", ID: "ping-1", Method: "ping"}

	resp := s.handleRequest(context.Background(), req)
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ID != "ping-1" {
		t.Errorf("ID: got %v, want ping-1", resp.ID)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s, _ := newTestServer(t)
	req := &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"}

	resp := s.handleRequest(context.Background(), req)
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a []Tool")
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("got %d tools", len(tools))
	}
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s, _ := newTestServer(t)
	req := &MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"}

	if resp := s.handleRequest(context.Background(), req); resp != nil {
		t.Errorf("notification should not get a response: %+v", resp)
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	req := &MCPRequest{JSONRPC: "2.0", ID: 7, Method: "resources/list"}

	resp := s.handleRequest(context.Background(), req)
	if resp == nil || resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("Code: got %d, want -32601", resp.Error.Code)
	}
}

func TestServe(t *testing.T) {
	s, _ := newTestServer(t)

	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	}, "\n")

	var out bytes.Buffer
	if err := s.serve(context.Background(), strings.NewReader(in), &out); err != nil {
		t.Fatalf("serve failed: %v", err)
	}

	dec := json.NewDecoder(&out)
	var ids []interface{}
	for dec.More() {
		var resp MCPResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("bad response: %v", err)
		}
		ids = append(ids, resp.ID)
	}
	if len(ids) != 2 || ids[0] != float64(1) || ids[1] != float64(2) {
		t.Errorf("response ids: got %v, want [1 2]", ids)
	}
}

func TestServe_Canceled(t *testing.T) {
	s, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := s.serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)
	if err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("no response expected after cancel, got %q", out.String())
	}
}
