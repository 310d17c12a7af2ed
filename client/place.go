package client

import (
	"strconv"

	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// Placeholders for missing place fields.
const (
	NoName    = "N/A"
	NoAddress = "Address not available"
)

// PlaceView is a Place with every fallback already applied.
type PlaceView struct {
	PlaceID  string
	Name     string
	Address  string
	Rating   *float64     // nil hides the rating line
	OpenNow  *bool        // nil hides the open/closed line
	Location *maps.LatLng // nil never yields a marker
}

// NewPlaceView resolves the display fields of p.
func NewPlaceView(p maps.Place) PlaceView {
	v := PlaceView{
		PlaceID: p.PlaceID,
		Name:    p.Name,
		Address: p.FormattedAddress,
		Rating:  p.Rating,
	}
	if v.Name == "" {
		v.Name = NoName
	}
	if v.Address == "" {
		v.Address = p.Vicinity
	}
	if v.Address == "" {
		v.Address = NoAddress
	}
	if p.OpeningHours != nil {
		v.OpenNow = p.OpeningHours.OpenNow
	}
	if p.Geometry != nil && p.Geometry.Location != nil {
		at := *p.Geometry.Location
		v.Location = &at
	}
	return v
}

// NewPlaceViews resolves places keeping their order.
func NewPlaceViews(places []maps.Place) []PlaceView {
	views := make([]PlaceView, 0, len(places))
	for _, p := range places {
		views = append(views, NewPlaceView(p))
	}
	return views
}

// CardLines are the lines of a place card, top to bottom.
func (v PlaceView) CardLines() []string {
	lines := []string{v.Name}
	if v.Rating != nil {
		lines = append(lines, "⭐ "+strconv.FormatFloat(*v.Rating, 'f', -1, 64))
	}
	lines = append(lines, v.Address)
	if v.OpenNow != nil {
		if *v.OpenNow {
			lines = append(lines, "🟢 Open now")
		} else {
			lines = append(lines, "🔴 Closed")
		}
	}
	return lines
}
