// Package assistant turns a chat turn into LLM calls, executing Google Maps
// tools when the model asks for them.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/papercomputeco/wayfinder/pkg/llm"
	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// Result is what one chat turn produces for the client.
type Result struct {
	Response string       `json:"response"`
	Places   []maps.Place `json:"places"`   // nil unless search_places ran successfully
	MapData  []maps.Route `json:"map_data"` // nil unless get_directions ran successfully
}

// ToolResult is the payload handed back to the model after a tool runs.
type ToolResult struct {
	Success bool         `json:"success"`
	Places  []maps.Place `json:"places,omitempty"`
	Count   *int         `json:"count,omitempty"`
	Routes  []maps.Route `json:"routes,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Assistant runs chat turns against a provider and a maps client.
type Assistant struct {
	provider llm.Provider
	maps     maps.Client
	model    string
	options  *llm.Options
	logger   *zap.Logger
}

// New creates an Assistant.
func New(provider llm.Provider, mapsClient maps.Client, model string, options *llm.Options, logger *zap.Logger) *Assistant {
	return &Assistant{
		provider: provider,
		maps:     mapsClient,
		model:    model,
		options:  options,
		logger:   logger,
	}
}

// Chat answers message given the prior history. userLocation is "lat,lng" or empty.
//
// The first completion offers the tools. When the model calls one, the tool
// runs, the call and its result are appended, and a second completion
// with tool calls disabled produces the final answer.
func (a *Assistant) Chat(ctx context.Context, message string, history []llm.Message, userLocation string) (*Result, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.NewMessage(llm.RoleSystem, systemPrompt(userLocation)))
	for _, m := range history {
		messages = append(messages, llm.NewMessage(m.Role, m.Content))
	}
	messages = append(messages, llm.NewMessage(llm.RoleUser, message))

	first, err := a.provider.Chat(ctx, &llm.ChatRequest{
		Model:    a.model,
		Messages: messages,
		Tools:    Tools(),
		Options:  a.options,
	})
	if err != nil {
		return nil, fmt.Errorf("first completion: %w", err)
	}
	a.logUsage("first", first)

	if !first.HasToolCalls() {
		return &Result{Response: first.Message.Content}, nil
	}

	result := &Result{}
	messages = append(messages, llm.Message{
		Role:      llm.RoleAssistant,
		Content:   first.Message.Content,
		ToolCalls: first.Message.ToolCalls,
	})

	for _, call := range first.Message.ToolCalls {
		out := a.ExecuteTool(ctx, call.Function, userLocation)

		a.logger.Info("tool executed",
			zap.String("tool", call.Function.Name),
			zap.Bool("success", out.Success),
			zap.String("error", out.Error),
		)

		if out.Success {
			switch call.Function.Name {
			case ToolSearchPlaces:
				result.Places = out.Places
			case ToolGetDirections:
				result.MapData = out.Routes
			}
		}

		payload, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("marshal tool result: %w", err)
		}
		messages = append(messages, llm.Message{
			Role:       llm.RoleTool,
			Content:    string(payload),
			ToolName:   call.Function.Name,
			ToolCallID: call.ID,
		})
	}

	// The tools stay listed because the history now holds tool calls, but
	// the answer pass may not call them again.
	second, err := a.provider.Chat(ctx, &llm.ChatRequest{
		Model:      a.model,
		Messages:   messages,
		Tools:      Tools(),
		ToolChoice: llm.ToolChoiceNone,
		Options:    a.options,
	})
	if err != nil {
		return nil, fmt.Errorf("second completion: %w", err)
	}
	a.logUsage("second", second)

	result.Response = second.Message.Content
	return result, nil
}

func (a *Assistant) logUsage(pass string, resp *llm.ChatResponse) {
	a.logger.Debug("completion finished",
		zap.String("pass", pass),
		zap.String("model", resp.Model),
		zap.String("done_reason", resp.DoneReason),
		zap.Int("prompt_tokens", resp.PromptEvalCount),
		zap.Int("completion_tokens", resp.EvalCount),
		zap.Int("tool_calls", len(resp.Message.ToolCalls)),
	)
}

// ExecuteTool runs one tool call. Failures are reported inside the result so
// the model can explain them; they never abort the turn.
func (a *Assistant) ExecuteTool(ctx context.Context, call llm.ToolCallFunction, userLocation string) ToolResult {
	raw, err := call.ArgumentsObject()
	if err != nil {
		return ToolResult{Success: false, Error: err.Error()}
	}

	switch call.Name {
	case ToolSearchPlaces:
		var args SearchPlacesArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return ToolResult{Success: false, Error: "invalid arguments: " + err.Error()}
		}
		return a.searchPlaces(ctx, args, userLocation)

	case ToolGetDirections:
		var args GetDirectionsArgs
		if err := json.Unmarshal(raw, &args); err != nil {
			return ToolResult{Success: false, Error: "invalid arguments: " + err.Error()}
		}
		return a.getDirections(ctx, args, userLocation)
	}

	return ToolResult{Success: false, Error: "Unknown function"}
}

func (a *Assistant) searchPlaces(ctx context.Context, args SearchPlacesArgs, userLocation string) ToolResult {
	location := args.Location
	if location == "" || location == currentLocation {
		location = userLocation
	}

	radius := args.Radius
	if radius <= 0 {
		radius = maps.DefaultRadius
	}

	places, err := a.maps.SearchPlaces(ctx, maps.PlaceQuery{
		Query:     args.Query,
		Location:  location,
		Radius:    radius,
		PlaceType: args.PlaceType,
	})
	if err != nil {
		a.logger.Error("place search failed", zap.String("query", args.Query), zap.Error(err))
		return ToolResult{Success: false, Error: err.Error()}
	}

	count := len(places)
	if len(places) > maxPlaces {
		places = places[:maxPlaces]
	}
	return ToolResult{Success: true, Places: places, Count: &count}
}

func (a *Assistant) getDirections(ctx context.Context, args GetDirectionsArgs, userLocation string) ToolResult {
	origin := args.Origin
	if origin == currentLocation && userLocation != "" {
		origin = userLocation
	}

	mode := args.Mode
	if mode == "" {
		mode = maps.ModeDriving
	}

	routes, err := a.maps.Directions(ctx, maps.DirectionsQuery{
		Origin:       origin,
		Destination:  args.Destination,
		Mode:         mode,
		Alternatives: true,
	})
	if err != nil {
		a.logger.Error("directions lookup failed",
			zap.String("origin", origin),
			zap.String("destination", args.Destination),
			zap.Error(err),
		)
		return ToolResult{Success: false, Error: err.Error()}
	}

	return ToolResult{Success: true, Routes: routes}
}
