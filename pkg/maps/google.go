package maps

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	gmaps "googlemaps.github.io/maps"
)

// Google is a Client backed by the Google Maps web services.
type Google struct {
	client *gmaps.Client
	logger *zap.Logger
}

// NewGoogle creates a Google client. Extra options (e.g. gmaps.WithBaseURL)
// are passed through to the underlying SDK.
func NewGoogle(apiKey string, logger *zap.Logger, opts ...gmaps.ClientOption) (*Google, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	c, err := gmaps.NewClient(append([]gmaps.ClientOption{gmaps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create google maps client: %w", err)
	}

	return &Google{client: c, logger: logger}, nil
}

// SearchPlaces implements Client.
func (g *Google) SearchPlaces(ctx context.Context, q PlaceQuery) ([]Place, error) {
	radius := q.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}

	req := &gmaps.TextSearchRequest{
		Query:  q.Query,
		Radius: uint(radius),
	}

	if q.Location != "" {
		at, err := g.resolveLocation(ctx, q.Location)
		if err != nil {
			// Search unanchored rather than failing the whole lookup.
			g.logger.Warn("could not resolve search location",
				zap.String("location", q.Location),
				zap.Error(err),
			)
		} else {
			req.Location = &gmaps.LatLng{Lat: at.Lat, Lng: at.Lng}
		}
	}

	if q.PlaceType != "" {
		pt, err := gmaps.ParsePlaceType(q.PlaceType)
		if err != nil {
			return nil, fmt.Errorf("invalid place type %q: %w", q.PlaceType, err)
		}
		req.Type = pt
	}

	resp, err := g.client.TextSearch(ctx, req)
	if err != nil {
		if isZeroResults(err) {
			return []Place{}, nil
		}
		return nil, fmt.Errorf("text search: %w", err)
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, placeFromSearchResult(r))
	}
	return places, nil
}

// PlaceDetails implements Client.
func (g *Google) PlaceDetails(ctx context.Context, placeID string) (*Place, error) {
	r, err := g.client.PlaceDetails(ctx, &gmaps.PlaceDetailsRequest{PlaceID: placeID})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("place details: %w", err)
	}

	p := placeFromDetails(r)
	return &p, nil
}

// Directions implements Client.
func (g *Google) Directions(ctx context.Context, q DirectionsQuery) ([]Route, error) {
	mode := q.Mode
	if mode == "" {
		mode = ModeDriving
	}
	if !ValidMode(mode) {
		return nil, fmt.Errorf("invalid travel mode %q", mode)
	}

	routes, _, err := g.client.Directions(ctx, &gmaps.DirectionsRequest{
		Origin:       q.Origin,
		Destination:  q.Destination,
		Mode:         gmaps.Mode(mode),
		Alternatives: q.Alternatives,
	})
	if err != nil {
		if isZeroResults(err) || isNotFound(err) {
			return []Route{}, nil
		}
		return nil, fmt.Errorf("directions: %w", err)
	}

	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeFromSDK(r))
	}
	return out, nil
}

// Geocode implements Client.
func (g *Google) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	results, err := g.client.Geocode(ctx, &gmaps.GeocodingRequest{Address: address})
	if err != nil {
		if isZeroResults(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	return geocodeFromSDK(results[0]), nil
}

// ReverseGeocode implements Client.
func (g *Google) ReverseGeocode(ctx context.Context, at LatLng) (*GeocodeResult, error) {
	results, err := g.client.ReverseGeocode(ctx, &gmaps.GeocodingRequest{
		LatLng: &gmaps.LatLng{Lat: at.Lat, Lng: at.Lng},
	})
	if err != nil {
		if isZeroResults(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	return geocodeFromSDK(results[0]), nil
}

// resolveLocation accepts "lat,lng" or an address.
func (g *Google) resolveLocation(ctx context.Context, location string) (LatLng, error) {
	if at, err := ParseLatLng(location); err == nil {
		return at, nil
	}

	res, err := g.Geocode(ctx, location)
	if err != nil {
		return LatLng{}, err
	}
	return res.Location, nil
}

// The SDK reports API statuses as errors of the form "maps: STATUS - message".
func isZeroResults(err error) bool {
	return strings.Contains(err.Error(), "ZERO_RESULTS")
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "NOT_FOUND") || strings.Contains(err.Error(), "INVALID_REQUEST")
}
