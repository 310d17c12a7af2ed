package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/wayfinder/pkg/assistant"
	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// mcpVersion is reported to MCP clients during initialization.
const mcpVersion = "v1.0.0"

// SearchPlacesInput is the MCP input of search_places.
type SearchPlacesInput struct {
	Query     string `json:"query" jsonschema:"what to look for, e.g. coffee shops"`
	Location  string `json:"location,omitempty" jsonschema:"an address or lat,lng to search around"`
	Radius    int    `json:"radius,omitempty" jsonschema:"search radius in meters, default 5000"`
	PlaceType string `json:"place_type,omitempty" jsonschema:"one of restaurant, cafe, bar, store, park, museum"`
}

// SearchPlacesOutput is the MCP output of search_places.
type SearchPlacesOutput struct {
	Count  int          `json:"count"`
	Places []maps.Place `json:"places"`
}

// GetDirectionsInput is the MCP input of get_directions.
type GetDirectionsInput struct {
	Origin      string `json:"origin" jsonschema:"starting address or lat,lng"`
	Destination string `json:"destination" jsonschema:"destination address or place name"`
	Mode        string `json:"mode,omitempty" jsonschema:"one of driving, walking, bicycling, transit"`
}

// GetDirectionsOutput is the MCP output of get_directions.
type GetDirectionsOutput struct {
	Routes []maps.Route `json:"routes"`
}

// mcpHandler serves the maps tools over streamable HTTP. Each call resolves
// the maps client of the current config.
func (s *Server) mcpHandler() http.Handler {
	server := mcp.NewServer(&mcp.Implementation{Name: "wayfinder", Version: mcpVersion}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        assistant.ToolSearchPlaces,
		Description: "Search Google Maps for places, restaurants or points of interest.",
	}, s.mcpSearchPlaces)

	mcp.AddTool(server, &mcp.Tool{
		Name:        assistant.ToolGetDirections,
		Description: "Get Google Maps directions between two locations.",
	}, s.mcpGetDirections)

	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless:    true,
		JSONResponse: true,
	})
}

func (s *Server) mcpSearchPlaces(ctx context.Context, _ *mcp.CallToolRequest, in SearchPlacesInput) (*mcp.CallToolResult, SearchPlacesOutput, error) {
	radius := in.Radius
	if radius <= 0 {
		radius = maps.DefaultRadius
	}

	places, err := s.services().maps.SearchPlaces(ctx, maps.PlaceQuery{
		Query:     in.Query,
		Location:  in.Location,
		Radius:    radius,
		PlaceType: in.PlaceType,
	})
	if err != nil {
		s.logger.Error("mcp search_places failed", zap.String("query", in.Query), zap.Error(err))
		return nil, SearchPlacesOutput{}, fmt.Errorf("search places: %w", err)
	}

	count := len(places)
	if len(places) > maxSearchResults {
		places = places[:maxSearchResults]
	}
	if places == nil {
		places = []maps.Place{}
	}
	return nil, SearchPlacesOutput{Count: count, Places: places}, nil
}

func (s *Server) mcpGetDirections(ctx context.Context, _ *mcp.CallToolRequest, in GetDirectionsInput) (*mcp.CallToolResult, GetDirectionsOutput, error) {
	mode := in.Mode
	if mode == "" {
		mode = maps.ModeDriving
	}

	routes, err := s.services().maps.Directions(ctx, maps.DirectionsQuery{
		Origin:       in.Origin,
		Destination:  in.Destination,
		Mode:         mode,
		Alternatives: true,
	})
	if err != nil {
		s.logger.Error("mcp get_directions failed",
			zap.String("origin", in.Origin),
			zap.String("destination", in.Destination),
			zap.Error(err),
		)
		return nil, GetDirectionsOutput{}, fmt.Errorf("get directions: %w", err)
	}
	if routes == nil {
		routes = []maps.Route{}
	}
	return nil, GetDirectionsOutput{Routes: routes}, nil
}
