package llm

// ToolChoiceNone lists the tools for context but forbids calling them.
const ToolChoiceNone = "none"

// ChatRequest is a chat completion request in Ollama's /api/chat shape.
// Providers with other wire formats convert from it.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Tools    []Tool    `json:"tools,omitempty"`
	Stream   *bool     `json:"stream,omitempty"`  // Ollama streams unless told otherwise
	Options  *Options  `json:"options,omitempty"` // sampling and length parameters

	// ToolChoice is "" (model decides) or ToolChoiceNone. Not part of the
	// Ollama wire format.
	ToolChoice string `json:"-"`
}

// ToolsDisabled reports whether the model must answer without calling a tool.
func (r *ChatRequest) ToolsDisabled() bool {
	return r.ToolChoice == ToolChoiceNone
}
