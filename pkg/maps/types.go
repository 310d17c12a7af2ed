// Package maps wraps the Google Maps Places, Directions and Geocoding APIs and
// defines the JSON records the backend hands to chat clients.
package maps

import (
	"strconv"
)

// LatLng is a coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the pair as "lat,lng" without trailing zeros.
func (l LatLng) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// Geometry holds a place location.
type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
}

// OpeningHours holds the opening state of a place.
type OpeningHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}

// Place is a Places API result. Every field may be missing.
type Place struct {
	PlaceID              string        `json:"place_id,omitempty"`
	Name                 string        `json:"name,omitempty"`
	Rating               *float64      `json:"rating,omitempty"`
	UserRatingsTotal     int           `json:"user_ratings_total,omitempty"`
	FormattedAddress     string        `json:"formatted_address,omitempty"`
	Vicinity             string        `json:"vicinity,omitempty"`
	OpeningHours         *OpeningHours `json:"opening_hours,omitempty"`
	Geometry             *Geometry     `json:"geometry,omitempty"`
	Types                []string      `json:"types,omitempty"`
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
	Website              string        `json:"website,omitempty"`
}

// TextValue is a localized text plus its numeric value (seconds or meters).
type TextValue struct {
	Text  string `json:"text"`
	Value int64  `json:"value"`
}

// Leg is one origin-to-destination stretch of a route.
type Leg struct {
	StartLocation *LatLng   `json:"start_location,omitempty"`
	EndLocation   *LatLng   `json:"end_location,omitempty"`
	StartAddress  string    `json:"start_address,omitempty"`
	EndAddress    string    `json:"end_address,omitempty"`
	Duration      TextValue `json:"duration"`
	Distance      TextValue `json:"distance"`
}

// Route is a Directions API route.
type Route struct {
	Summary    string   `json:"summary,omitempty"`
	Legs       []Leg    `json:"legs"`
	Warnings   []string `json:"warnings,omitempty"`
	Copyrights string   `json:"copyrights,omitempty"`
}

// GeocodeResult is a forward or reverse geocoding match.
type GeocodeResult struct {
	PlaceID          string `json:"place_id,omitempty"`
	FormattedAddress string `json:"formatted_address"`
	Location         LatLng `json:"location"`
}

// Travel modes accepted by Directions.
const (
	ModeDriving   = "driving"
	ModeWalking   = "walking"
	ModeBicycling = "bicycling"
	ModeTransit   = "transit"
)

// ValidMode reports whether mode is a known travel mode.
func ValidMode(mode string) bool {
	switch mode {
	case ModeDriving, ModeWalking, ModeBicycling, ModeTransit:
		return true
	}
	return false
}

// PlaceTypes lists the place_type values the assistant may filter on.
var PlaceTypes = []string{"restaurant", "cafe", "bar", "store", "park", "museum"}
