package tools

import (
	"context"

	"github.com/courselens/courselens/core"
)

// Result is the outcome of one tool invocation. Text is what the model
// sees; Sources is the provenance surfaced to the end user alongside the
// final answer.
type Result struct {
	Text    string
	Sources []core.Source
}

// Tool is a capability the generator can request during answer generation.
// Implementations must be stateless with respect to invocations: all
// output travels in the returned Result.
type Tool interface {
	// Name returns the identifier the model uses to request this tool.
	Name() string

	// Description tells the model when to use this tool.
	Description() string

	// Parameters returns the JSON Schema of the arguments object.
	Parameters() map[string]any

	// Invoke runs the tool with the model's raw JSON arguments.
	Invoke(ctx context.Context, arguments string) (*Result, error)
}
