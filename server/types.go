package server

import (
	"github.com/papercomputeco/wayfinder/pkg/llm"
	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// maxSearchResults caps /api/places/search results.
const maxSearchResults = 10

// ChatMessage is one prior turn sent by the client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message             string        `json:"message"`
	ConversationHistory []ChatMessage `json:"conversation_history"`
	UserLocation        *string       `json:"user_location"`
}

// history converts the client history to LLM messages.
func (r *ChatRequest) history() []llm.Message {
	out := make([]llm.Message, 0, len(r.ConversationHistory))
	for _, m := range r.ConversationHistory {
		out = append(out, llm.NewMessage(m.Role, m.Content))
	}
	return out
}

// PlaceSearchRequest is the body of POST /api/places/search.
type PlaceSearchRequest struct {
	Query     string `json:"query"`
	Location  string `json:"location,omitempty"`
	Radius    int    `json:"radius,omitempty"`
	PlaceType string `json:"place_type,omitempty"`
}

// PlaceSearchResponse is returned by POST /api/places/search.
type PlaceSearchResponse struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Results []maps.Place `json:"results"`
}

// PlaceDetailsResponse is returned by GET /api/places/:id.
type PlaceDetailsResponse struct {
	Success bool        `json:"success"`
	Result  *maps.Place `json:"result"`
}

// DirectionsRequest is the body of POST /api/directions.
type DirectionsRequest struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Mode         string `json:"mode,omitempty"`
	Alternatives *bool  `json:"alternatives,omitempty"`
}

// DirectionsResponse is returned by POST /api/directions.
type DirectionsResponse struct {
	Success bool         `json:"success"`
	Routes  []maps.Route `json:"routes"`
}

// GeocodeResponse is returned by GET /api/geocode.
type GeocodeResponse struct {
	Success bool                `json:"success"`
	Result  *maps.GeocodeResult `json:"result"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status               string `json:"status"`
	GoogleMapsConfigured bool   `json:"google_maps_configured"`
	LLMConfigured        bool   `json:"llm_configured"`
	LLMProvider          string `json:"llm_provider"`
}

// ConfigResponse is returned by GET /api/config.
type ConfigResponse struct {
	GoogleMapsAPIKey string `json:"google_maps_api_key"`
}
