// Package ollama implements llm.Provider against an Ollama-compatible /api/chat endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/wayfinder/pkg/llm"
)

// DefaultBaseURL is the address of a local Ollama daemon.
const DefaultBaseURL = "http://localhost:11434"

// Provider talks to Ollama's native chat API.
type Provider struct {
	baseURL    string
	apiKey     string
	logger     *zap.Logger
	httpClient *http.Client
}

// New creates an Ollama provider. An empty baseURL selects DefaultBaseURL.
// A trailing "/v1" (OpenAI-compatible prefix) is stripped so both styles of
// base URL reach the native endpoint.
func New(baseURL, apiKey string, logger *zap.Logger) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/v1")

	return &Provider{
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			// Local models can be slow, especially on first load
			Timeout: 5 * time.Minute,
		},
	}
}

// Name implements llm.Provider.
func (p *Provider) Name() string { return "ollama" }

// Chat forwards a non-streaming request to the upstream.
func (p *Provider) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	// Ensure non-streaming
	streaming := false
	req.Stream = &streaming

	// Ollama has no tool_choice; leaving the tools out has the same effect.
	if req.ToolsDisabled() {
		stripped := *req
		stripped.Tools = nil
		req = &stripped
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	upstreamURL := p.baseURL + "/api/chat"
	p.logger.Debug("forwarding request to upstream",
		zap.String("url", upstreamURL),
		zap.Int("body_size", len(reqBody)),
		zap.Int("tool_count", len(req.Tools)),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, upstreamURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned %d: %s", httpResp.StatusCode, string(body))
	}

	var resp llm.ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &resp, nil
}
