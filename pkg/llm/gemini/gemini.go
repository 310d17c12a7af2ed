// Package gemini implements llm.Provider on top of the Google GenAI SDK.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/papercomputeco/wayfinder/pkg/llm"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Provider sends chat requests to Gemini.
type Provider struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// New creates a Gemini provider.
func New(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Provider{client: client, model: model, logger: logger}, nil
}

// Name implements llm.Provider.
func (p *Provider) Name() string { return "gemini" }

// Chat implements llm.Provider.
func (p *Provider) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	system, contents, err := toContents(req.Messages)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if len(req.Tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: toDeclarations(req.Tools)}}
		if req.ToolsDisabled() {
			config.ToolConfig = &genai.ToolConfig{
				FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingConfigModeNone},
			}
		}
	}
	if req.Options != nil && req.Options.Temperature != nil {
		t := float32(*req.Options.Temperature)
		config.Temperature = &t
	}

	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	p.logger.Debug("sending request to gemini",
		zap.String("model", model),
		zap.Int("content_count", len(contents)),
		zap.Int("tool_count", len(req.Tools)),
	)

	result, err := p.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}

	resp := &llm.ChatResponse{
		Model: model,
		Done:  true,
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: result.Text(),
		},
	}
	if result.UsageMetadata != nil {
		resp.PromptEvalCount = int(result.UsageMetadata.PromptTokenCount)
		resp.EvalCount = int(result.UsageMetadata.CandidatesTokenCount)
	}

	for _, call := range result.FunctionCalls() {
		args, err := json.Marshal(call.Args)
		if err != nil {
			return nil, fmt.Errorf("marshal function call args: %w", err)
		}
		resp.Message.ToolCalls = append(resp.Message.ToolCalls, llm.ToolCall{
			ID:       call.ID,
			Function: llm.ToolCallFunction{Name: call.Name, Arguments: args},
		})
	}

	return resp, nil
}

// toContents splits out system messages and converts the rest to GenAI contents.
func toContents(messages []llm.Message) (string, []*genai.Content, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			system = append(system, msg.Content)

		case llm.RoleUser:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))

		case llm.RoleAssistant:
			parts := []*genai.Part{}
			if msg.Content != "" {
				parts = append(parts, genai.NewPartFromText(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				args, err := call.Function.ArgumentsMap()
				if err != nil {
					return "", nil, err
				}
				parts = append(parts, genai.NewPartFromFunctionCall(call.Function.Name, args))
			}
			if len(parts) > 0 {
				contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
			}

		case llm.RoleTool:
			response := map[string]any{}
			if err := json.Unmarshal([]byte(msg.Content), &response); err != nil {
				// Non-object tool output is wrapped so Gemini still gets a struct.
				response = map[string]any{"output": msg.Content}
			}
			part := genai.NewPartFromFunctionResponse(msg.ToolName, response)
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser))

		default:
			return "", nil, fmt.Errorf("unsupported message role %q", msg.Role)
		}
	}

	return strings.Join(system, "\n\n"), contents, nil
}

func toDeclarations(tools []llm.Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:                 t.Function.Name,
			Description:          t.Function.Description,
			ParametersJsonSchema: t.Function.Parameters,
		})
	}
	return decls
}
