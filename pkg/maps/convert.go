package maps

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	gmaps "googlemaps.github.io/maps"
)

// ParseLatLng parses "lat,lng".
func ParseLatLng(s string) (LatLng, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return LatLng{}, fmt.Errorf("invalid coordinates %q: want \"lat,lng\"", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return LatLng{}, fmt.Errorf("coordinates %q out of range", s)
	}

	return LatLng{Lat: lat, Lng: lng}, nil
}

func placeFromSearchResult(r gmaps.PlacesSearchResult) Place {
	p := Place{
		PlaceID:          r.PlaceID,
		Name:             r.Name,
		UserRatingsTotal: r.UserRatingsTotal,
		FormattedAddress: r.FormattedAddress,
		Vicinity:         r.Vicinity,
		Types:            r.Types,
		Geometry:         geometryFromSDK(r.Geometry.Location),
		OpeningHours:     openingHoursFromSDK(r.OpeningHours),
	}
	if r.Rating > 0 {
		p.Rating = ratingFromSDK(r.Rating)
	}
	return p
}

func placeFromDetails(r gmaps.PlaceDetailsResult) Place {
	p := Place{
		PlaceID:              r.PlaceID,
		Name:                 r.Name,
		FormattedAddress:     r.FormattedAddress,
		Vicinity:             r.Vicinity,
		Types:                r.Types,
		FormattedPhoneNumber: r.FormattedPhoneNumber,
		Website:              r.Website,
		Geometry:             geometryFromSDK(r.Geometry.Location),
		OpeningHours:         openingHoursFromSDK(r.OpeningHours),
	}
	if r.Rating > 0 {
		p.Rating = ratingFromSDK(r.Rating)
	}
	return p
}

// ratingFromSDK widens the SDK's float32 rating, keeping one decimal so 4.3
// does not become 4.300000190734863.
func ratingFromSDK(r float32) *float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(float64(r), 'f', 1, 32), 64)
	return &v
}

func geometryFromSDK(l gmaps.LatLng) *Geometry {
	if l.Lat == 0 && l.Lng == 0 {
		return nil
	}
	return &Geometry{Location: &LatLng{Lat: l.Lat, Lng: l.Lng}}
}

func openingHoursFromSDK(h *gmaps.OpeningHours) *OpeningHours {
	if h == nil || h.OpenNow == nil {
		return nil
	}
	open := *h.OpenNow
	return &OpeningHours{OpenNow: &open}
}

func routeFromSDK(r gmaps.Route) Route {
	out := Route{
		Summary:    r.Summary,
		Warnings:   r.Warnings,
		Copyrights: r.Copyrights,
		Legs:       make([]Leg, 0, len(r.Legs)),
	}

	for _, l := range r.Legs {
		if l == nil {
			continue
		}
		start := LatLng{Lat: l.StartLocation.Lat, Lng: l.StartLocation.Lng}
		end := LatLng{Lat: l.EndLocation.Lat, Lng: l.EndLocation.Lng}
		out.Legs = append(out.Legs, Leg{
			StartLocation: &start,
			EndLocation:   &end,
			StartAddress:  l.StartAddress,
			EndAddress:    l.EndAddress,
			Duration: TextValue{
				Text:  FormatDuration(l.Duration),
				Value: int64(l.Duration / time.Second),
			},
			Distance: TextValue{
				Text:  l.Distance.HumanReadable,
				Value: int64(l.Distance.Meters),
			},
		})
	}
	return out
}

func geocodeFromSDK(r gmaps.GeocodingResult) *GeocodeResult {
	return &GeocodeResult{
		PlaceID:          r.PlaceID,
		FormattedAddress: r.FormattedAddress,
		Location:         LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
	}
}

// FormatDuration renders d the way the Directions API words durations:
// "1 min", "12 mins", "1 hour 5 mins", "2 days 3 hours". Seconds round to the
// nearest minute, with a floor of one minute.
func FormatDuration(d time.Duration) string {
	mins := int64((d + 30*time.Second) / time.Minute)
	if mins < 1 {
		mins = 1
	}

	days := mins / (24 * 60)
	hours := (mins % (24 * 60)) / 60
	rest := mins % 60

	switch {
	case days > 0:
		if hours == 0 {
			return plural(days, "day")
		}
		return plural(days, "day") + " " + plural(hours, "hour")
	case hours > 0:
		if rest == 0 {
			return plural(hours, "hour")
		}
		return plural(hours, "hour") + " " + plural(rest, "min")
	default:
		return plural(rest, "min")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.FormatInt(n, 10) + " " + unit + "s"
}
