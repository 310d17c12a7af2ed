package maps

//go:generate mockgen -destination=./mapsmock/client.go -package=mapsmock -source=client.go Client

import (
	"context"
	"errors"
)

// DefaultRadius is the search radius in meters when none is given.
const DefaultRadius = 5000

// ErrNotFound is returned when the API has no result for a lookup.
var ErrNotFound = errors.New("maps: not found")

// ErrNotConfigured is returned by every call when no API key is set.
var ErrNotConfigured = errors.New("maps: google maps API key not configured")

// PlaceQuery is a text search.
type PlaceQuery struct {
	Query     string `json:"query"`
	Location  string `json:"location,omitempty"` // "lat,lng" or a free-form address
	Radius    int    `json:"radius,omitempty"`
	PlaceType string `json:"place_type,omitempty"`
}

// DirectionsQuery is a route lookup.
type DirectionsQuery struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	Mode         string `json:"mode,omitempty"`
	Alternatives bool   `json:"alternatives"`
}

// Client is the contract for the maps backend.
type Client interface {
	// SearchPlaces runs a text search and returns results in API order.
	SearchPlaces(ctx context.Context, q PlaceQuery) ([]Place, error)

	// PlaceDetails fetches one place by id. Returns ErrNotFound for unknown ids.
	PlaceDetails(ctx context.Context, placeID string) (*Place, error)

	// Directions returns the candidate routes, possibly none.
	Directions(ctx context.Context, q DirectionsQuery) ([]Route, error)

	// Geocode resolves an address. Returns ErrNotFound when nothing matches.
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)

	// ReverseGeocode resolves coordinates to an address.
	ReverseGeocode(ctx context.Context, at LatLng) (*GeocodeResult, error)
}

// Unconfigured is a Client used when no API key exists.
type Unconfigured struct{}

func (Unconfigured) SearchPlaces(context.Context, PlaceQuery) ([]Place, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) PlaceDetails(context.Context, string) (*Place, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) Directions(context.Context, DirectionsQuery) ([]Route, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) Geocode(context.Context, string) (*GeocodeResult, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) ReverseGeocode(context.Context, LatLng) (*GeocodeResult, error) {
	return nil, ErrNotConfigured
}
