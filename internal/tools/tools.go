// Package tools exposes gateway operations to a tool-calling client. Each
// tool carries a JSON schema; arguments are validated against it before
// the handler runs.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"worklens/internal/contextutil"
)

// ContentPart is one piece of a tool result.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Definition describes a tool to the calling client.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Handler executes a tool call with already-validated arguments.
type Handler func(ctx context.Context, args map[string]any) ([]ContentPart, error)

// Tool pairs a definition with its handler.
type Tool struct {
	Definition Definition
	Handler    Handler
}

// Registry holds the registered tools in registration order.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering the same name twice replaces the
// handler but keeps the original position.
func (r *Registry) Register(t Tool) {
	if _, ok := r.tools[t.Definition.Name]; !ok {
		r.order = append(r.order, t.Definition.Name)
	}
	r.tools[t.Definition.Name] = t
}

// Definitions returns all tool definitions in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition)
	}
	return defs
}

// Call validates the arguments against the tool's schema and runs the
// handler. Failures of any kind come back as error content parts; Call
// itself never fails the transport.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) []ContentPart {
	logger := contextutil.LoggerFromContext(ctx)

	tool, ok := r.tools[name]
	if !ok {
		return errorContent(fmt.Sprintf("Unknown tool: %s", name))
	}
	if args == nil {
		args = map[string]any{}
	}

	if tool.Definition.InputSchema != nil {
		result, err := gojsonschema.Validate(
			gojsonschema.NewGoLoader(tool.Definition.InputSchema),
			gojsonschema.NewGoLoader(args),
		)
		if err != nil {
			logger.ErrorContext(ctx, "schema validation failed", "tool", name, "error", err)
			return errorContent(fmt.Sprintf("Invalid arguments for %s: %v", name, err))
		}
		if !result.Valid() {
			var problems []string
			for _, desc := range result.Errors() {
				problems = append(problems, desc.String())
			}
			return errorContent(fmt.Sprintf("Invalid arguments for %s: %s", name, strings.Join(problems, "; ")))
		}
	}

	content, err := tool.Handler(ctx, args)
	if err != nil {
		logger.ErrorContext(ctx, "tool call failed", "tool", name, "error", err)
		return errorContent(fmt.Sprintf("Tool %s failed: %v", name, err))
	}
	return content
}

func errorContent(msg string) []ContentPart {
	return []ContentPart{{Type: "text", Text: msg}}
}

// Helpers for reading validated argument maps.

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}
