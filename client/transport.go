package client

//go:generate mockgen -destination=./clientmock/transport.go -package=clientmock -source=transport.go Transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message             string    `json:"message"`
	ConversationHistory []Message `json:"conversation_history"`
	UserLocation        *string   `json:"user_location"`
}

// ChatResponse is the reply of POST /api/chat.
type ChatResponse struct {
	Response string       `json:"response"`
	Places   []maps.Place `json:"places,omitempty"`
	MapData  []maps.Route `json:"map_data,omitempty"`
}

// DirectionsRequest is the body of POST /api/directions.
type DirectionsRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"`
}

// DirectionsResponse is the reply of POST /api/directions.
type DirectionsResponse struct {
	Success bool         `json:"success"`
	Routes  []maps.Route `json:"routes"`
}

// Config is the reply of GET /api/config.
type Config struct {
	GoogleMapsAPIKey string `json:"google_maps_api_key"`
}

// Transport is the client's view of the backend. Each call is a single
// request; nothing is retried.
type Transport interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Directions(ctx context.Context, req DirectionsRequest) (*DirectionsResponse, error)
	FetchConfig(ctx context.Context) (*Config, error)
	Geocode(ctx context.Context, address string) (*maps.GeocodeResult, error)
}

// TransportError is returned when the backend is unreachable or answers
// with a non-2xx status.
type TransportError struct {
	Op         string // "chat", "directions", ...
	StatusCode int    // zero when no response arrived
	Message    string // backend error text, if any
	Err        error  // underlying network error, if any
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPTransport talks to a wayfinder server over HTTP.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPTransport creates a transport for the server at baseURL.
func NewHTTPTransport(baseURL string, logger *zap.Logger) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			// Chat turns wait on two model completions.
			Timeout: 5 * time.Minute,
		},
		logger: logger,
	}
}

// Chat sends one chat turn.
func (t *HTTPTransport) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.ConversationHistory == nil {
		req.ConversationHistory = []Message{}
	}

	var resp ChatResponse
	if err := t.do(ctx, "chat", http.MethodPost, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Directions requests routes between two places.
func (t *HTTPTransport) Directions(ctx context.Context, req DirectionsRequest) (*DirectionsResponse, error) {
	if req.Mode == "" {
		req.Mode = maps.ModeDriving
	}

	var resp DirectionsResponse
	if err := t.do(ctx, "directions", http.MethodPost, "/api/directions", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchConfig loads the client configuration.
func (t *HTTPTransport) FetchConfig(ctx context.Context) (*Config, error) {
	var resp Config
	if err := t.do(ctx, "config", http.MethodGet, "/api/config", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Geocode resolves an address through the backend.
func (t *HTTPTransport) Geocode(ctx context.Context, address string) (*maps.GeocodeResult, error) {
	var resp struct {
		Success bool                `json:"success"`
		Result  *maps.GeocodeResult `json:"result"`
	}
	path := "/api/geocode?" + url.Values{"address": {address}}.Encode()
	if err := t.do(ctx, "geocode", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, &TransportError{Op: "geocode", StatusCode: http.StatusOK, Message: "empty result"}
	}
	return resp.Result, nil
}

func (t *HTTPTransport) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	t.logger.Debug("backend request", zap.String("op", op), zap.String("url", httpReq.URL.String()))

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return &TransportError{Op: op, StatusCode: httpResp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(respBody, &errResp)
		return &TransportError{Op: op, StatusCode: httpResp.StatusCode, Message: errResp.Error}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{Op: op, StatusCode: httpResp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
