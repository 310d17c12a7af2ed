package client_test

import (
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/wayfinder/client"
	"github.com/papercomputeco/wayfinder/pkg/maps"
)

func located(lat, lng float64) client.PlaceView {
	return client.PlaceView{Name: "p", Address: "a", Location: &maps.LatLng{Lat: lat, Lng: lng}}
}

var _ = Describe("Embeds", func() {
	Describe("MarkerParam", func() {
		It("pipe-joins located places", func() {
			Expect(client.MarkerParam([]client.PlaceView{located(1, 2), located(3, 4)})).To(Equal("1,2|3,4"))
		})

		It("skips places without coordinates", func() {
			places := []client.PlaceView{{Name: "nowhere"}, located(1, 2)}
			Expect(client.MarkerParam(places)).To(Equal("1,2"))
		})
	})

	Describe("PlaceMap", func() {
		places := []client.PlaceView{{Name: "nowhere"}, located(1, 2), located(3, 4)}

		It("centers on the first located place", func() {
			view, err := client.PlaceMap("KEY", places, false)

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Kind).To(Equal(client.MapPlace))
			Expect(view.URL).To(Equal("https://www.google.com/maps/embed/v1/place?key=KEY&q=1,2&zoom=14"))
			Expect(view.Markers).To(Equal("1,2|3,4"))
		})

		It("passes every marker through when enabled", func() {
			view, err := client.PlaceMap("KEY", places, true)

			Expect(err).NotTo(HaveOccurred())
			Expect(view.URL).To(Equal("https://www.google.com/maps/embed/v1/place?key=KEY&q=1,2%7C3,4&zoom=14"))
			Expect(view.Markers).To(Equal("1,2|3,4"))

			u, err := url.Parse(view.URL)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Query().Get("q")).To(Equal("1,2|3,4"))
			Expect(u.Query().Get("zoom")).To(Equal("14"))
		})

		It("fails without coordinates", func() {
			_, err := client.PlaceMap("KEY", []client.PlaceView{{Name: "nowhere"}}, false)
			Expect(err).To(MatchError(client.ErrNoCoordinates))
		})
	})

	Describe("DirectionsMap", func() {
		route := maps.Route{Legs: []maps.Leg{{
			StartLocation: &maps.LatLng{Lat: 40.7, Lng: -74},
			EndLocation:   &maps.LatLng{Lat: 40.78, Lng: -73.97},
			Duration:      maps.TextValue{Text: "12 mins", Value: 720},
			Distance:      maps.TextValue{Text: "3.1 km", Value: 3100},
		}}}

		It("builds the directions embed from the first leg", func() {
			view, err := client.DirectionsMap("KEY", route, "walking")

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Kind).To(Equal(client.MapDirections))
			Expect(view.URL).To(Equal("https://www.google.com/maps/embed/v1/directions?key=KEY&origin=40.7,-74&destination=40.78,-73.97&mode=walking"))
			Expect(view.Summary).To(Equal("🚗 Route: 3.1 km, approximately 12 mins"))
		})

		It("defaults to driving", func() {
			view, err := client.DirectionsMap("KEY", route, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(view.URL).To(HaveSuffix("&mode=driving"))
		})

		It("fails without legs or leg coordinates", func() {
			_, err := client.DirectionsMap("KEY", maps.Route{}, "")
			Expect(err).To(MatchError(client.ErrNoCoordinates))

			_, err = client.DirectionsMap("KEY", maps.Route{Legs: []maps.Leg{{}}}, "")
			Expect(err).To(MatchError(client.ErrNoCoordinates))
		})
	})
})
