package assistant

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/papercomputeco/wayfinder/pkg/llm"
)

// Tool names the model may call.
const (
	ToolSearchPlaces  = "search_places"
	ToolGetDirections = "get_directions"
)

// currentLocation is the placeholder the model uses for the user's position.
const currentLocation = "current location"

// maxPlaces caps how many search results reach the model and the client.
const maxPlaces = 5

// SearchPlacesArgs are the arguments of search_places.
type SearchPlacesArgs struct {
	Query     string `json:"query" jsonschema_description:"What to look for, e.g. 'Italian restaurants' or 'coffee shops near me'."`
	Location  string `json:"location,omitempty" jsonschema_description:"Where to search: an address or 'current location'."`
	Radius    int    `json:"radius,omitempty" jsonschema:"default=5000" jsonschema_description:"Search radius in meters (default 5000)."`
	PlaceType string `json:"place_type,omitempty" jsonschema:"enum=restaurant,enum=cafe,enum=bar,enum=store,enum=park,enum=museum" jsonschema_description:"Kind of place to restrict results to."`
}

// GetDirectionsArgs are the arguments of get_directions.
type GetDirectionsArgs struct {
	Origin      string `json:"origin" jsonschema_description:"Starting point: an address or 'current location'."`
	Destination string `json:"destination" jsonschema_description:"Destination address or place name."`
	Mode        string `json:"mode,omitempty" jsonschema:"enum=driving,enum=walking,enum=bicycling,enum=transit,default=driving" jsonschema_description:"Travel mode."`
}

// Tools returns the function definitions offered to the model.
func Tools() []llm.Tool {
	return []llm.Tool{
		llm.NewFunctionTool(
			ToolSearchPlaces,
			"Search for places, restaurants or points of interest. Use it whenever the user asks for recommendations or locations.",
			generateSchema[SearchPlacesArgs](),
		),
		llm.NewFunctionTool(
			ToolGetDirections,
			"Get directions between two locations. Use it when the user asks how to get somewhere.",
			generateSchema[GetDirectionsArgs](),
		),
	}
}

// generateSchema derives an inline JSON schema from a Go struct.
func generateSchema[T any]() json.RawMessage {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		Anonymous:                 true,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}

	var v T
	schema := reflector.Reflect(v)
	schema.Version = ""

	data, err := json.Marshal(schema)
	if err != nil {
		panic("failed to marshal tool schema: " + err.Error())
	}
	return data
}
