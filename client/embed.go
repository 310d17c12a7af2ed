package client

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/papercomputeco/wayfinder/pkg/maps"
)

const (
	embedBaseURL = "https://www.google.com/maps/embed/v1/"
	placeZoom    = "14"
	markerSep    = "|"
)

// ErrNoCoordinates means nothing in the input can be placed on a map.
var ErrNoCoordinates = errors.New("no usable coordinates")

// MapKind tells which embed endpoint a MapView uses.
type MapKind string

const (
	MapPlace      MapKind = "place"
	MapDirections MapKind = "directions"
)

// MapView is a map embed ready to display.
type MapView struct {
	Kind MapKind
	URL  string

	// Markers is every place coordinate joined by "|", whether or not URL uses it.
	Markers string

	// Summary is the route line shown under a directions map.
	Summary string
}

// MarkerParam joins the coordinates of every located place with "|",
// e.g. "1,2|3,4". Places without coordinates are skipped.
func MarkerParam(places []PlaceView) string {
	parts := make([]string, 0, len(places))
	for _, p := range places {
		if p.Location != nil {
			parts = append(parts, p.Location.String())
		}
	}
	return strings.Join(parts, markerSep)
}

// PlaceMap builds a place embed centered on the first located place. With
// multiMarker the embed query carries every marker instead.
func PlaceMap(apiKey string, places []PlaceView, multiMarker bool) (MapView, error) {
	var first *maps.LatLng
	for _, p := range places {
		if p.Location != nil {
			first = p.Location
			break
		}
	}
	if first == nil {
		return MapView{}, ErrNoCoordinates
	}

	markers := MarkerParam(places)
	q := first.String()
	if multiMarker {
		// Coordinates are query-safe; the separator is not.
		q = strings.ReplaceAll(markers, markerSep, url.QueryEscape(markerSep))
	}

	return MapView{
		Kind:    MapPlace,
		URL:     embedBaseURL + "place?key=" + url.QueryEscape(apiKey) + "&q=" + q + "&zoom=" + placeZoom,
		Markers: markers,
	}, nil
}

// DirectionsMap builds a directions embed from the first leg of route.
func DirectionsMap(apiKey string, route maps.Route, mode string) (MapView, error) {
	if len(route.Legs) == 0 {
		return MapView{}, ErrNoCoordinates
	}
	leg := route.Legs[0]
	if leg.StartLocation == nil || leg.EndLocation == nil {
		return MapView{}, ErrNoCoordinates
	}
	if mode == "" {
		mode = maps.ModeDriving
	}

	// Coordinates are digits, dots, signs and commas, all safe in a query.
	u := embedBaseURL + "directions?key=" + url.QueryEscape(apiKey) +
		"&origin=" + leg.StartLocation.String() +
		"&destination=" + leg.EndLocation.String() +
		"&mode=" + url.QueryEscape(mode)

	return MapView{
		Kind:    MapDirections,
		URL:     u,
		Summary: RouteSummary(leg),
	}, nil
}

// RouteSummary is the one-line description of a leg, using the backend's
// localized text as is.
func RouteSummary(leg maps.Leg) string {
	return fmt.Sprintf("🚗 Route: %s, approximately %s", leg.Distance.Text, leg.Duration.Text)
}
