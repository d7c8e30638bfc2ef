package generate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courselens/courselens/ai"
	"github.com/courselens/courselens/core"
	"github.com/courselens/courselens/tools"
)

// phase tracks the response protocol. Transitions are strictly forward;
// phaseDone is reached after at most two provider calls.
type phase int

const (
	phaseAwaitingFirst phase = iota
	phaseToolRequested
	phaseToolExecuted
	phaseAwaitingFinal
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseAwaitingFirst:
		return "awaiting-first"
	case phaseToolRequested:
		return "tool-requested"
	case phaseToolExecuted:
		return "tool-executed"
	case phaseAwaitingFinal:
		return "awaiting-final"
	case phaseDone:
		return "done"
	}
	return "unknown"
}

// Answer is the final product of one generation round.
type Answer struct {
	Text    string
	Sources []core.Source
}

// Orchestrator runs the bounded tool-use protocol against a generator.
type Orchestrator struct {
	generator ai.Generator
	registry  *tools.Registry
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a new generation orchestrator.
func NewOrchestrator(generator ai.Generator, registry *tools.Registry, opts ...Option) (*Orchestrator, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	o := &Orchestrator{
		generator: generator,
		registry:  registry,
		logger:    slog.Default().With("component", "generation-orchestrator"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// round is the mutable state of one response.
type round struct {
	phase    phase
	system   string
	messages []ai.Message
	sources  []core.Source
}

func (o *Orchestrator) advance(r *round, next phase) {
	o.logger.Debug("response state", "from", r.phase, "to", next)
	r.phase = next
}

// Respond answers the question, consulting the registered tools at most
// once. history is the rendered prior conversation, empty for a fresh
// session; it travels in the system prompt, not the message list.
func (o *Orchestrator) Respond(ctx context.Context, question, history string) (*Answer, error) {
	r := &round{
		phase:  phaseAwaitingFirst,
		system: buildSystemPrompt(history),
		messages: []ai.Message{
			{Role: ai.RoleUser, Content: question},
		},
	}

	completion, err := o.generator.Generate(ctx, r.system, r.messages, o.registry.Declarations())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if !completion.RequestsTools() {
		o.advance(r, phaseDone)
		return &Answer{Text: completion.Text}, nil
	}
	o.advance(r, phaseToolRequested)

	o.executeTools(ctx, r, completion)
	o.advance(r, phaseToolExecuted)

	// Final call carries no tool declarations; the round is over.
	o.advance(r, phaseAwaitingFinal)
	completion, err = o.generator.Generate(ctx, r.system, r.messages, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if completion.RequestsTools() {
		// No budget left; take whatever text came with the request.
		o.logger.Warn("model requested tools on final call, ignoring",
			"requested", len(completion.ToolCalls))
	}
	o.advance(r, phaseDone)

	return &Answer{
		Text:    completion.Text,
		Sources: r.sources,
	}, nil
}

// executeTools echoes the assistant turn and answers every requested
// call. A call without a matching tool-result turn would invalidate the
// follow-up request, so dispatch failures are answered in-band.
func (o *Orchestrator) executeTools(ctx context.Context, r *round, completion *ai.Completion) {
	r.messages = append(r.messages, ai.Message{
		Role:      ai.RoleAssistant,
		Content:   completion.Text,
		ToolCalls: completion.ToolCalls,
	})

	for _, call := range completion.ToolCalls {
		var content string
		result, err := o.registry.Dispatch(ctx, call)
		if err != nil {
			o.logger.Warn("tool dispatch failed", "tool", call.Name, "err", err)
			content = fmt.Sprintf("Tool execution failed: %v. Answer with what you know and note that course search was unavailable.", err)
		} else {
			content = result.Text
			r.sources = append(r.sources, result.Sources...)
		}

		r.messages = append(r.messages, ai.Message{
			Role:       ai.RoleTool,
			Content:    content,
			ToolCallID: call.ID,
			ToolName:   call.Name,
		})
	}
}
