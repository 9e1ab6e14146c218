// ABOUTME: MCP-compatible HTTP server exposing the music tool catalog to LLM clients.
// ABOUTME: Normalizes JSON-RPC, legacy verb, and bare tool-call envelopes onto one dispatch path.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/2389/sonic-gateway/internal/tools"
)

// protocolVersion is the MCP protocol version advertised in initialize
// responses. Fixed for compatibility with lenient callers.
const protocolVersion = "2024-11-05"

// Server identity reported by initialize and the root descriptor.
const (
	serverName    = "sonic-gateway"
	serverVersion = "1.0.0"
)

// MaxRequestBodySize is the maximum allowed size for request bodies (1MB).
const MaxRequestBodySize = 1 << 20

// JSON-RPC 2.0 types

// JSONRPCRequest represents a JSON-RPC 2.0 request. The extra fields cover
// the legacy verb envelope and the bare tool-call shape so one parse
// classifies every request kind.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`

	// Legacy verb envelope
	Verb     string `json:"verb,omitempty"`
	ToolName string `json:"tool_name,omitempty"`

	// Bare tool-call shape
	Name string `json:"name,omitempty"`

	Arguments map[string]any `json:"arguments,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Standard JSON-RPC error codes
const (
	JSONRPCParseError     = -32700
	JSONRPCMethodNotFound = -32601
	JSONRPCInternalError  = -32603
)

// MCPToolInfo represents an MCP tool definition.
type MCPToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// MCPCallToolParams are the params for tools/call.
type MCPCallToolParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// MCPContent represents content in a tool result.
type MCPContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MCPCallToolResult is the result for tools/call.
type MCPCallToolResult struct {
	Content []MCPContent `json:"content"`
}

// LegacyToolParameter is one parameter entry in the legacy discovery response.
type LegacyToolParameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// LegacyToolInfo is one tool entry in the legacy discovery response.
type LegacyToolInfo struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Parameters  []LegacyToolParameter `json:"parameters"`
}

// LegacyResponse is the legacy verb envelope response body.
type LegacyResponse struct {
	Tools  []LegacyToolInfo `json:"tools,omitempty"`
	Result string           `json:"result,omitempty"`
}

// Server handles MCP requests against a fixed tool catalog.
type Server struct {
	catalog *tools.Registry
	logger  *slog.Logger
}

// NewServer creates the MCP server.
func NewServer(catalog *tools.Registry, logger *slog.Logger) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{catalog: catalog, logger: logger}, nil
}

// RegisterRoutes mounts the MCP endpoints on the given ServeMux. One
// canonical handler per RPC method, mounted under every alias path.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/{$}", s.handleRoot)
	mux.HandleFunc("/initialize", s.handleInitialize)
	mux.HandleFunc("POST /tools/list", s.handleToolsList)
	mux.HandleFunc("POST /tools/call", s.handleToolsCall)
	mux.HandleFunc("POST /mcp", s.handleLegacy)
	mux.HandleFunc("POST /mcp/initialize", s.handleInitialize)
	mux.HandleFunc("POST /mcp/tools/list", s.handleToolsList)
	mux.HandleFunc("POST /mcp/tools/call", s.handleToolsCall)
}

// readBody reads and parses the request body. A nil request with a nil
// error means the body was absent or unparseable; callers decide whether
// that is fatal for their envelope.
func readBody(r *http.Request) (*JSONRPCRequest, []byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		return nil, nil, err
	}
	if int64(len(body)) > MaxRequestBodySize {
		return nil, body, errors.New("request body too large")
	}

	var req JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, body, err
	}
	return &req, body, nil
}

// handleRoot serves the server descriptor. POST bodies are sniffed for a
// JSON-RPC method and redispatched; anything unrecognizable falls back to
// the descriptor, matching how discovery probes expect to be treated.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		req, _, err := readBody(r)
		if err == nil && req != nil {
			switch req.Method {
			case "initialize":
				s.writeInitializeResult(w, req.ID)
				return
			case "tools/list":
				s.writeToolsList(w, req.ID)
				return
			case "tools/call":
				s.dispatchToolsCall(r.Context(), w, req)
				return
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":     serverName,
		"version":  serverVersion,
		"protocol": "mcp",
		"endpoints": map[string]string{
			"initialize": "/initialize",
			"tools/list": "/tools/list",
			"tools/call": "/tools/call",
			"player":     "/player",
			"stream":     "/stream/{song_id}",
		},
	})
}

// handleInitialize answers the MCP handshake. Always succeeds with the
// fixed protocol version and server identity, echoing the request id.
// Lenient callers send all sorts of initialize bodies.
func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var id json.RawMessage
	if req, _, err := readBody(r); err == nil && req != nil {
		id = req.ID
	}
	s.writeInitializeResult(w, id)
}

func (s *Server) writeInitializeResult(w http.ResponseWriter, id json.RawMessage) {
	s.sendJSONRPCResult(w, id, map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    serverName,
			"version": serverVersion,
		},
	})
}

// handleToolsList returns the advertised schema for every catalog entry.
func (s *Server) handleToolsList(w http.ResponseWriter, r *http.Request) {
	var id json.RawMessage
	if req, _, err := readBody(r); err == nil && req != nil {
		id = req.ID
	}
	s.writeToolsList(w, id)
}

func (s *Server) writeToolsList(w http.ResponseWriter, id json.RawMessage) {
	list := s.catalog.List()
	infos := make([]MCPToolInfo, len(list))
	for i, t := range list {
		infos[i] = MCPToolInfo{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema(),
		}
	}

	s.logger.Debug("tools/list", "count", len(infos))
	s.sendJSONRPCResult(w, id, map[string]any{"tools": infos})
}

// handleToolsCall invokes a tool. Accepts the JSON-RPC shape and the bare
// {name, arguments} shape; every outcome is HTTP 200 with a JSON-RPC body.
func (s *Server) handleToolsCall(w http.ResponseWriter, r *http.Request) {
	req, _, err := readBody(r)
	if err != nil || req == nil {
		s.sendJSONRPCError(w, nil, JSONRPCParseError, "Parse error")
		return
	}
	s.dispatchToolsCall(r.Context(), w, req)
}

// dispatchToolsCall normalizes the two tool-call shapes to (name, arguments)
// and runs the invocation pipeline.
func (s *Server) dispatchToolsCall(ctx context.Context, w http.ResponseWriter, req *JSONRPCRequest) {
	toolName := req.Name
	arguments := req.Arguments

	if req.Method == "tools/call" && len(req.Params) > 0 {
		var params MCPCallToolParams
		if err := json.Unmarshal(req.Params, &params); err == nil {
			toolName = params.Name
			arguments = params.Arguments
		}
	}

	tool, ok := s.catalog.Resolve(toolName)
	if !ok {
		s.sendJSONRPCError(w, req.ID, JSONRPCMethodNotFound, fmt.Sprintf("Tool %s not found", toolName))
		return
	}

	text, err := s.invoke(ctx, tool, arguments)
	if err != nil {
		s.sendJSONRPCError(w, req.ID, JSONRPCInternalError, fmt.Sprintf("Error executing tool: %v", err))
		return
	}

	s.sendJSONRPCResult(w, req.ID, MCPCallToolResult{
		Content: []MCPContent{{Type: "text", Text: text}},
	})
}

// invoke filters arguments against the tool's declared parameters and runs
// the handler. A handler error here is genuinely unexpected; tools report
// their own upstream failures as result text.
func (s *Server) invoke(ctx context.Context, tool *tools.Tool, arguments map[string]any) (string, error) {
	requestID := uuid.New().String()
	filtered := tool.FilterArgs(arguments)

	s.logger.Debug("tools/call",
		"tool_name", tool.Name,
		"request_id", requestID,
	)

	text, err := tool.Handler(ctx, filtered)
	if err != nil {
		s.logger.Warn("tool execution failed",
			"tool_name", tool.Name,
			"request_id", requestID,
			"error", err,
		)
		return "", err
	}

	s.logger.Debug("tools/call complete",
		"tool_name", tool.Name,
		"request_id", requestID,
	)
	return text, nil
}

// handleLegacy is the combined /mcp endpoint: JSON-RPC shape, legacy verb
// shape, or rejection. This is the only path where transport-level problems
// surface as HTTP statuses.
func (s *Server) handleLegacy(w http.ResponseWriter, r *http.Request) {
	req, _, err := readBody(r)
	if err != nil || req == nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// JSON-RPC 2.0 shape
	if req.JSONRPC != "" && req.Method != "" {
		switch req.Method {
		case "initialize":
			s.writeInitializeResult(w, req.ID)
			return
		case "tools/list":
			s.writeToolsList(w, req.ID)
			return
		case "tools/call":
			s.dispatchToolsCall(r.Context(), w, req)
			return
		}
	}

	// Legacy verb shape
	if req.Verb != "" {
		switch req.Verb {
		case "discovery":
			writeJSON(w, http.StatusOK, LegacyResponse{Tools: s.legacyToolList()})
		case "execute":
			s.handleLegacyExecute(r.Context(), w, req)
		default:
			http.Error(w, fmt.Sprintf("Invalid verb: %s", req.Verb), http.StatusBadRequest)
		}
		return
	}

	http.Error(w, "Invalid request format", http.StatusUnprocessableEntity)
}

func (s *Server) handleLegacyExecute(ctx context.Context, w http.ResponseWriter, req *JSONRPCRequest) {
	tool, ok := s.catalog.Resolve(req.ToolName)
	if !ok {
		http.Error(w, fmt.Sprintf("Tool %s not found", req.ToolName), http.StatusBadRequest)
		return
	}

	text, err := s.invoke(ctx, tool, req.Arguments)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, LegacyResponse{Result: text})
}

func (s *Server) legacyToolList() []LegacyToolInfo {
	list := s.catalog.List()
	infos := make([]LegacyToolInfo, len(list))
	for i, t := range list {
		params := make([]LegacyToolParameter, len(t.Params))
		for j, p := range t.Params {
			params[j] = LegacyToolParameter{Name: p.Name, Type: p.Type}
		}
		infos[i] = LegacyToolInfo{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  params,
		}
	}
	return infos
}

// sendJSONRPCResult sends a successful JSON-RPC response.
func (s *Server) sendJSONRPCResult(w http.ResponseWriter, id json.RawMessage, result any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      normalizeID(id),
		Result:  result,
	}
	writeJSON(w, http.StatusOK, resp)
}

// sendJSONRPCError sends a JSON-RPC error response. Always HTTP 200; the
// error lives in the body.
func (s *Server) sendJSONRPCError(w http.ResponseWriter, id json.RawMessage, code int, message string) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      normalizeID(id),
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	}
	writeJSON(w, http.StatusOK, resp)
}

// normalizeID maps an absent request id to explicit JSON null so the
// response always carries the id field.
func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
