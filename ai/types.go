package ai

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one turn of a model conversation. Assistant messages may carry
// tool call requests; tool messages carry the result of executing one.
type Message struct {
	Role    Role
	Content string

	// ToolCalls holds the calls requested by an assistant message.
	ToolCalls []ToolCall

	// ToolCallID and ToolName link a tool-role message back to the
	// assistant's request it answers.
	ToolCallID string
	ToolName   string
}

// ToolCall is a model's request to execute a named capability.
// Arguments is the raw JSON object the model produced.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolDefinition declares a capability to the model: a name, a natural
// language description, and a JSON-schema parameter object.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Completion is the model's response to a Generate call. When ToolCalls is
// non-empty the model is asking for capability execution before answering.
type Completion struct {
	Text      string
	ToolCalls []ToolCall
}

// RequestsTools reports whether the completion asks for any tool execution.
func (c *Completion) RequestsTools() bool {
	return len(c.ToolCalls) > 0
}
