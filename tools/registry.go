package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courselens/courselens/ai"
)

// Registry holds the tools available to the generator, preserving
// registration order for declarations.
type Registry struct {
	order  []string
	byName map[string]Tool
	logger *slog.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Tool),
		logger: slog.Default().With("component", "tool-registry"),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) error {
	name := tool.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTool, name)
	}
	r.order = append(r.order, name)
	r.byName[name] = tool
	return nil
}

// Declarations returns the tool definitions to pass to the generator, in
// registration order.
func (r *Registry) Declarations() []ai.ToolDefinition {
	defs := make([]ai.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		tool := r.byName[name]
		defs = append(defs, ai.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return defs
}

// Dispatch routes a model tool call to the registered tool.
// Returns ErrUnknownTool if no tool carries the requested name.
func (r *Registry) Dispatch(ctx context.Context, call ai.ToolCall) (*Result, error) {
	tool, ok := r.byName[call.Name]
	if !ok {
		r.logger.Warn("model requested unregistered tool", "tool", call.Name)
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
	}

	r.logger.Debug("dispatching tool call", "tool", call.Name, "callID", call.ID)
	return tool.Invoke(ctx, call.Arguments)
}
