package llm

// Roles used in conversation messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a single message in a conversation.
type Message struct {
	Role      string     `json:"role"`                 // "system", "user", "assistant", "tool"
	Content   string     `json:"content"`              // The message content
	ToolCalls []ToolCall `json:"tool_calls,omitempty"` // Tool invocations requested by the assistant
	ToolName  string     `json:"tool_name,omitempty"`  // Name of the tool a "tool" message answers

	// ToolCallID pairs a "tool" message with the ToolCall.ID it answers.
	// Not part of the Ollama wire format.
	ToolCallID string `json:"-"`
}

// NewMessage creates a plain text message for the given role.
func NewMessage(role, content string) Message {
	return Message{Role: role, Content: content}
}
