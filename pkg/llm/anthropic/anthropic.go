// Package anthropic implements llm.Provider on top of the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/papercomputeco/wayfinder/pkg/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = anthropic.ModelClaude3_7SonnetLatest

const defaultMaxTokens = 1024

// Provider sends chat requests to Anthropic.
type Provider struct {
	client anthropic.Client
	model  anthropic.Model
	logger *zap.Logger
}

// New creates an Anthropic provider. An empty apiKey falls back to the
// ANTHROPIC_API_KEY environment variable read by the SDK.
func New(apiKey, model string, logger *zap.Logger) *Provider {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	m := DefaultModel
	if model != "" {
		m = anthropic.Model(model)
	}

	return &Provider{
		client: anthropic.NewClient(opts...),
		model:  m,
		logger: logger,
	}
}

// Name implements llm.Provider.
func (p *Provider) Name() string { return "anthropic" }

// Chat implements llm.Provider.
func (p *Provider) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	system, messages, err := toMessageParams(req.Messages)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: int64(req.Options.MaxTokens(defaultMaxTokens)),
		Messages:  messages,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if len(req.Tools) > 0 {
		params.Tools = toToolParams(req.Tools)
		if req.ToolsDisabled() {
			params.ToolChoice = anthropic.ToolChoiceUnionParam{OfNone: &anthropic.ToolChoiceNoneParam{}}
		}
	} else if hasToolTraffic(req.Messages) {
		// Anthropic rejects tool_use and tool_result blocks without tool definitions.
		return nil, fmt.Errorf("anthropic request carries tool calls but no tool definitions")
	}

	p.logger.Debug("sending request to anthropic",
		zap.String("model", string(p.model)),
		zap.Int("message_count", len(messages)),
		zap.Int("tool_count", len(req.Tools)),
	)

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic messages request failed: %w", err)
	}

	resp := &llm.ChatResponse{
		Model:           string(msg.Model),
		DoneReason:      string(msg.StopReason),
		Done:            true,
		Message:         llm.Message{Role: llm.RoleAssistant},
		PromptEvalCount: int(msg.Usage.InputTokens),
		EvalCount:       int(msg.Usage.OutputTokens),
	}

	var text []string
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			text = append(text, v.Text)
		case anthropic.ToolUseBlock:
			resp.Message.ToolCalls = append(resp.Message.ToolCalls, llm.ToolCall{
				ID: v.ID,
				Function: llm.ToolCallFunction{
					Name:      v.Name,
					Arguments: json.RawMessage(v.JSON.Input.Raw()),
				},
			})
		}
	}
	resp.Message.Content = strings.Join(text, "\n")

	return resp, nil
}

// toMessageParams converts the conversation. Tool results travel as user
// messages holding tool_result blocks, paired by call id.
func toMessageParams(messages []llm.Message) (string, []anthropic.MessageParam, error) {
	var system []string
	out := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, msg.Content)

		case llm.RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))

		case llm.RoleAssistant:
			blocks := []anthropic.ContentBlockParamUnion{}
			if msg.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				args, err := call.Function.ArgumentsMap()
				if err != nil {
					return "", nil, err
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(call.ID, args, call.Function.Name))
			}
			if len(blocks) > 0 {
				out = append(out, anthropic.NewAssistantMessage(blocks...))
			}

		case llm.RoleTool:
			out = append(out, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(msg.ToolCallID, msg.Content, false),
			))

		default:
			return "", nil, fmt.Errorf("unsupported message role %q", msg.Role)
		}
	}

	return strings.Join(system, "\n\n"), out, nil
}

func hasToolTraffic(messages []llm.Message) bool {
	for _, msg := range messages {
		if msg.Role == llm.RoleTool || len(msg.ToolCalls) > 0 {
			return true
		}
	}
	return false
}

func toToolParams(tools []llm.Tool) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		schema := gjson.ParseBytes(t.Function.Parameters)

		var properties map[string]any
		if props := schema.Get("properties"); props.Exists() {
			_ = json.Unmarshal([]byte(props.Raw), &properties)
		}
		var required []string
		for _, r := range schema.Get("required").Array() {
			required = append(required, r.String())
		}

		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Function.Name,
			Description: anthropic.String(t.Function.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: properties,
				Required:   required,
			},
		}})
	}
	return out
}
