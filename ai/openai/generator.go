package openai

import (
	"context"
	"log/slog"

	"github.com/courselens/courselens/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client      llms.Model
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.GeneratorHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.GeneratorModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client:      client,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		logger:      slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Generate sends the conversation to the model and returns its completion,
// including any tool call requests the model produced.
func (g *Generator) Generate(ctx context.Context, system string, messages []ai.Message, tools []ai.ToolDefinition) (*ai.Completion, error) {
	content := make([]llms.MessageContent, 0, len(messages)+1)
	if system != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	for _, msg := range messages {
		content = append(content, toMessageContent(msg))
	}

	opts := []llms.CallOption{
		llms.WithTemperature(g.temperature),
		llms.WithMaxTokens(g.maxTokens),
	}
	if len(tools) > 0 {
		opts = append(opts, llms.WithTools(toTools(tools)))
	}

	response, err := g.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		g.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		g.logger.Warn("no choices returned from model")
		return &ai.Completion{}, nil
	}

	choice := response.Choices[0]
	completion := &ai.Completion{Text: choice.Content}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		completion.ToolCalls = append(completion.ToolCalls, ai.ToolCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: tc.FunctionCall.Arguments,
		})
	}

	g.logger.Debug("generated completion",
		"textLength", len(completion.Text),
		"toolCalls", len(completion.ToolCalls))

	return completion, nil
}

// toMessageContent converts one conversation turn to the langchaingo form.
func toMessageContent(msg ai.Message) llms.MessageContent {
	switch msg.Role {
	case ai.RoleAssistant:
		mc := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if msg.Content != "" {
			mc.Parts = append(mc.Parts, llms.TextPart(msg.Content))
		}
		for _, tc := range msg.ToolCalls {
			mc.Parts = append(mc.Parts, llms.ToolCall{
				ID:   tc.ID,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		return mc
	case ai.RoleTool:
		return llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{
				llms.ToolCallResponse{
					ToolCallID: msg.ToolCallID,
					Name:       msg.ToolName,
					Content:    msg.Content,
				},
			},
		}
	default:
		return llms.TextParts(llms.ChatMessageTypeHuman, msg.Content)
	}
}

// toTools converts capability declarations to the langchaingo form.
func toTools(tools []ai.ToolDefinition) []llms.Tool {
	out := make([]llms.Tool, len(tools))
	for i, t := range tools {
		out[i] = llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}
	return out
}
