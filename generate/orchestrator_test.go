package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/courselens/courselens/ai"
	"github.com/courselens/courselens/ai/mock"
	"github.com/courselens/courselens/core"
	"github.com/courselens/courselens/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTool is a minimal Tool for protocol tests.
type scriptedTool struct {
	name    string
	invoke  func(ctx context.Context, arguments string) (*tools.Result, error)
	invoked int
}

func (s *scriptedTool) Name() string               { return s.name }
func (s *scriptedTool) Description() string        { return "scripted test tool" }
func (s *scriptedTool) Parameters() map[string]any { return map[string]any{"type": "object"} }
func (s *scriptedTool) Invoke(ctx context.Context, arguments string) (*tools.Result, error) {
	s.invoked++
	return s.invoke(ctx, arguments)
}

func intPtr(n int) *int {
	return &n
}

func newRegistry(t *testing.T, tool tools.Tool) *tools.Registry {
	t.Helper()
	registry := tools.NewRegistry()
	require.NoError(t, registry.Register(tool))
	return registry
}

func searchResult() *tools.Result {
	return &tools.Result{
		Text: "[Python 101 - Lesson 1]\nContent about loops",
		Sources: []core.Source{
			{CourseTitle: "Python 101", LessonNumber: intPtr(1)},
		},
	}
}

func toolRequest(id string) *ai.Completion {
	return &ai.Completion{
		ToolCalls: []ai.ToolCall{
			{ID: id, Name: "search_course_content", Arguments: `{"query":"loops"}`},
		},
	}
}

func TestNewOrchestrator(t *testing.T) {
	registry := tools.NewRegistry()

	t.Run("RequiresGenerator", func(t *testing.T) {
		_, err := NewOrchestrator(nil, registry)
		assert.ErrorIs(t, err, ErrGeneratorRequired)
	})

	t.Run("RequiresRegistry", func(t *testing.T) {
		_, err := NewOrchestrator(mock.NewGenerator(), nil)
		assert.ErrorIs(t, err, ErrRegistryRequired)
	})
}

func TestRespondWithoutToolUse(t *testing.T) {
	ctx := context.Background()

	tool := &scriptedTool{name: "search_course_content", invoke: func(context.Context, string) (*tools.Result, error) {
		return searchResult(), nil
	}}
	registry := newRegistry(t, tool)

	generator := mock.NewGenerator()
	generator.GenerateFunc = func(ctx context.Context, system string, messages []ai.Message, defs []ai.ToolDefinition) (*ai.Completion, error) {
		return &ai.Completion{Text: "Direct answer."}, nil
	}

	orchestrator, err := NewOrchestrator(generator, registry)
	require.NoError(t, err)

	answer, err := orchestrator.Respond(ctx, "What is Python?", "")
	require.NoError(t, err)

	assert.Equal(t, "Direct answer.", answer.Text)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, 1, generator.CallCount())
	assert.Zero(t, tool.invoked)
}

func TestRespondWithToolUse(t *testing.T) {
	ctx := context.Background()

	tool := &scriptedTool{name: "search_course_content", invoke: func(context.Context, string) (*tools.Result, error) {
		return searchResult(), nil
	}}
	registry := newRegistry(t, tool)

	generator := mock.NewGenerator()
	generator.GenerateFunc = func(ctx context.Context, system string, messages []ai.Message, defs []ai.ToolDefinition) (*ai.Completion, error) {
		if generator.CallCount() == 1 {
			return toolRequest("call_1"), nil
		}
		return &ai.Completion{Text: "Final answer."}, nil
	}

	orchestrator, err := NewOrchestrator(generator, registry)
	require.NoError(t, err)

	answer, err := orchestrator.Respond(ctx, "Tell me about loops", "")
	require.NoError(t, err)

	assert.Equal(t, "Final answer.", answer.Text)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "Python 101 - Lesson 1", answer.Sources[0].Label())
	assert.Equal(t, 1, tool.invoked)
	assert.Equal(t, 2, generator.CallCount())

	calls := generator.Calls()

	// First call offers declarations, second call must not.
	require.Len(t, calls[0].Tools, 1)
	assert.Empty(t, calls[1].Tools)

	// Second call carries the tool-result turn with the matching call ID.
	var toolTurn *ai.Message
	for i := range calls[1].Messages {
		if calls[1].Messages[i].Role == ai.RoleTool {
			toolTurn = &calls[1].Messages[i]
		}
	}
	require.NotNil(t, toolTurn)
	assert.Equal(t, "call_1", toolTurn.ToolCallID)
	assert.Contains(t, toolTurn.Content, "[Python 101 - Lesson 1]")
}

func TestRespondNeverExceedsTwoCalls(t *testing.T) {
	ctx := context.Background()

	tool := &scriptedTool{name: "search_course_content", invoke: func(context.Context, string) (*tools.Result, error) {
		return searchResult(), nil
	}}
	registry := newRegistry(t, tool)

	// The model requests tools on every call it possibly can.
	generator := mock.NewGenerator()
	generator.GenerateFunc = func(ctx context.Context, system string, messages []ai.Message, defs []ai.ToolDefinition) (*ai.Completion, error) {
		completion := toolRequest("call_n")
		completion.Text = "Partial text."
		return completion, nil
	}

	orchestrator, err := NewOrchestrator(generator, registry)
	require.NoError(t, err)

	answer, err := orchestrator.Respond(ctx, "Keep searching", "")
	require.NoError(t, err)

	// Second-round request is ignored; its text is the final answer.
	assert.Equal(t, "Partial text.", answer.Text)
	assert.Equal(t, 2, generator.CallCount())
	assert.Equal(t, 1, tool.invoked)
}

func TestRespondToolFailureDegradesAnswer(t *testing.T) {
	ctx := context.Background()

	tool := &scriptedTool{name: "search_course_content", invoke: func(context.Context, string) (*tools.Result, error) {
		return nil, errors.New("index unavailable")
	}}
	registry := newRegistry(t, tool)

	generator := mock.NewGenerator()
	generator.GenerateFunc = func(ctx context.Context, system string, messages []ai.Message, defs []ai.ToolDefinition) (*ai.Completion, error) {
		if generator.CallCount() == 1 {
			return toolRequest("call_1"), nil
		}
		return &ai.Completion{Text: "Degraded answer."}, nil
	}

	orchestrator, err := NewOrchestrator(generator, registry)
	require.NoError(t, err)

	answer, err := orchestrator.Respond(ctx, "Tell me about loops", "")
	require.NoError(t, err)

	assert.Equal(t, "Degraded answer.", answer.Text)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, 2, generator.CallCount())

	// The failure is delivered to the model as a tool-result turn.
	calls := generator.Calls()
	var toolTurn *ai.Message
	for i := range calls[1].Messages {
		if calls[1].Messages[i].Role == ai.RoleTool {
			toolTurn = &calls[1].Messages[i]
		}
	}
	require.NotNil(t, toolTurn)
	assert.Contains(t, toolTurn.Content, "Tool execution failed")
}

func TestRespondFirstCallErrorFails(t *testing.T) {
	ctx := context.Background()

	registry := newRegistry(t, &scriptedTool{name: "search_course_content", invoke: func(context.Context, string) (*tools.Result, error) {
		return searchResult(), nil
	}})

	generator := mock.NewGenerator()
	generator.GenerateFunc = func(ctx context.Context, system string, messages []ai.Message, defs []ai.ToolDefinition) (*ai.Completion, error) {
		return nil, errors.New("provider down")
	}

	orchestrator, err := NewOrchestrator(generator, registry)
	require.NoError(t, err)

	_, err = orchestrator.Respond(ctx, "anything", "")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestRespondHistoryInSystemPrompt(t *testing.T) {
	ctx := context.Background()

	registry := newRegistry(t, &scriptedTool{name: "search_course_content", invoke: func(context.Context, string) (*tools.Result, error) {
		return searchResult(), nil
	}})

	generator := mock.NewGenerator()
	orchestrator, err := NewOrchestrator(generator, registry)
	require.NoError(t, err)

	history := "User: What is Python?\nAssistant: A language."
	_, err = orchestrator.Respond(ctx, "Tell me more", history)
	require.NoError(t, err)

	calls := generator.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].System, "Previous conversation:")
	assert.Contains(t, calls[0].System, "User: What is Python?")

	// User question stays out of the system prompt and in the messages.
	require.Len(t, calls[0].Messages, 1)
	assert.Equal(t, ai.RoleUser, calls[0].Messages[0].Role)
	assert.Equal(t, "Tell me more", calls[0].Messages[0].Content)
	assert.False(t, strings.Contains(calls[0].System, "Tell me more"))
}
