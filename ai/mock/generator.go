package mock

import (
	"context"
	"sync"

	"github.com/courselens/courselens/ai"
)

// GenerateCall records the arguments of one Generate invocation.
type GenerateCall struct {
	System   string
	Messages []ai.Message
	Tools    []ai.ToolDefinition
}

// Generator is a mock implementation of ai.Generator for testing.
// By default it returns a fixed text completion; set GenerateFunc to
// script tool calls or multi-step behavior.
type Generator struct {
	// GenerateFunc overrides the default behavior when set.
	GenerateFunc func(ctx context.Context, system string, messages []ai.Message, tools []ai.ToolDefinition) (*ai.Completion, error)

	mu    sync.Mutex
	calls []GenerateCall
}

// NewGenerator creates a new mock generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate records the call and returns a canned completion, or delegates
// to GenerateFunc if set.
func (g *Generator) Generate(ctx context.Context, system string, messages []ai.Message, tools []ai.ToolDefinition) (*ai.Completion, error) {
	g.mu.Lock()
	g.calls = append(g.calls, GenerateCall{
		System:   system,
		Messages: messages,
		Tools:    tools,
	})
	g.mu.Unlock()

	if g.GenerateFunc != nil {
		return g.GenerateFunc(ctx, system, messages, tools)
	}
	return &ai.Completion{Text: "mock answer"}, nil
}

// CallCount returns the number of Generate invocations.
func (g *Generator) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// Calls returns a copy of all recorded invocations.
func (g *Generator) Calls() []GenerateCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]GenerateCall, len(g.calls))
	copy(out, g.calls)
	return out
}

// Reset clears recorded calls.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = nil
}
