package llm

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Tool describes a function the model may call.
type Tool struct {
	Type     string       `json:"type"` // always "function"
	Function ToolFunction `json:"function"`
}

// ToolFunction is the callable part of a Tool.
type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"` // JSON schema of the arguments object
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID       string           `json:"id,omitempty"` // Provider-assigned call id, when the provider has one
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction carries the called function name and its raw arguments.
// Arguments is either a JSON object or a JSON string holding an encoded object,
// depending on the upstream provider.
type ToolCallFunction struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// NewFunctionTool builds a function Tool from a name, description and JSON schema.
func NewFunctionTool(name, description string, parameters json.RawMessage) Tool {
	return Tool{
		Type: "function",
		Function: ToolFunction{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// ArgumentsObject normalizes the call arguments to a JSON object. Providers
// following the OpenAI convention send the object encoded inside a JSON
// string; Ollama sends the object itself. Empty arguments become "{}".
func (f ToolCallFunction) ArgumentsObject() (json.RawMessage, error) {
	if len(f.Arguments) == 0 {
		return json.RawMessage("{}"), nil
	}

	parsed := gjson.ParseBytes(f.Arguments)
	if parsed.Type == gjson.String {
		parsed = gjson.Parse(parsed.Str)
	}
	if parsed.Type == gjson.Null && parsed.Raw == "" {
		return json.RawMessage("{}"), nil
	}
	if !parsed.IsObject() {
		return nil, fmt.Errorf("tool %q arguments are not a JSON object", f.Name)
	}

	return json.RawMessage(parsed.Raw), nil
}

// ArgumentsMap decodes the normalized arguments into a map.
func (f ToolCallFunction) ArgumentsMap() (map[string]any, error) {
	raw, err := f.ArgumentsObject()
	if err != nil {
		return nil, err
	}

	args := map[string]any{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("decode tool %q arguments: %w", f.Name, err)
	}
	return args, nil
}
