// Package server exposes the tool registry over JSON-RPC 2.0, either on
// stdio with Content-Length framing or over HTTP.
package server

import (
	"context"
	"encoding/json"

	"worklens/internal/tools"
)

const (
	serverName    = "worklens"
	serverVersion = "0.1.0"
)

type jsonrpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type jsonrpcResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      any           `json:"id,omitempty"`
	Result  any           `json:"result,omitempty"`
	Error   *jsonrpcError `json:"error,omitempty"`
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func makeResult(id any, result any) jsonrpcResponse {
	return jsonrpcResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func makeError(id any, code int, msg string) jsonrpcResponse {
	return jsonrpcResponse{JSONRPC: "2.0", ID: id, Error: &jsonrpcError{Code: code, Message: msg}}
}

// dispatch routes one JSON-RPC request to the registry and builds the
// response. Tool failures surface as tool content, not protocol errors.
func dispatch(ctx context.Context, reg *tools.Registry, req *jsonrpcRequest) jsonrpcResponse {
	switch req.Method {
	case "initialize":
		result := map[string]any{
			"serverInfo":   map[string]any{"name": serverName, "version": serverVersion},
			"capabilities": map[string]any{"tools": map[string]any{"list": true, "call": true}},
		}
		return makeResult(req.ID, result)

	case "ping":
		return makeResult(req.ID, map[string]any{})

	case "tools/list":
		return makeResult(req.ID, map[string]any{"tools": reg.Definitions()})

	case "tools/call":
		var p toolsCallParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return makeError(req.ID, -32602, "Invalid params")
			}
		}
		content := reg.Call(ctx, p.Name, p.Arguments)
		return makeResult(req.ID, map[string]any{"content": content})
	}

	return makeError(req.ID, -32601, "Method not found: "+req.Method)
}
