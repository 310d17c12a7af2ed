package maps

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gmaps "googlemaps.github.io/maps"
)

var _ = Describe("Conversion", func() {
	Describe("FormatDuration", func() {
		DescribeTable("words durations like the Directions API",
			func(d time.Duration, want string) {
				Expect(FormatDuration(d)).To(Equal(want))
			},
			Entry("sub-minute floors to one", 10*time.Second, "1 min"),
			Entry("single minute", 61*time.Second, "1 min"),
			Entry("rounds to nearest minute", 11*time.Minute+40*time.Second, "12 mins"),
			Entry("whole hour", time.Hour, "1 hour"),
			Entry("hours and minutes", 2*time.Hour+5*time.Minute, "2 hours 5 mins"),
			Entry("days and hours", 26*time.Hour, "1 day 2 hours"),
			Entry("whole days", 48*time.Hour, "2 days"),
		)
	})

	Describe("ParseLatLng", func() {
		It("parses a comma separated pair", func() {
			at, err := ParseLatLng("40.7128, -74.006")
			Expect(err).NotTo(HaveOccurred())
			Expect(at).To(Equal(LatLng{Lat: 40.7128, Lng: -74.006}))
		})

		It("rejects addresses", func() {
			_, err := ParseLatLng("Main Street, Springfield")
			Expect(err).To(HaveOccurred())
		})

		It("rejects out of range values", func() {
			_, err := ParseLatLng("91,0")
			Expect(err).To(HaveOccurred())
		})

		It("round-trips through String", func() {
			at := LatLng{Lat: 1, Lng: 2.5}
			Expect(at.String()).To(Equal("1,2.5"))

			parsed, err := ParseLatLng(at.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(at))
		})
	})

	Describe("placeFromSearchResult", func() {
		It("keeps optional fields absent when the API omits them", func() {
			p := placeFromSearchResult(gmaps.PlacesSearchResult{Name: "Cafe"})

			Expect(p.Name).To(Equal("Cafe"))
			Expect(p.Rating).To(BeNil())
			Expect(p.OpeningHours).To(BeNil())
			Expect(p.Geometry).To(BeNil())
		})

		It("copies rating, opening state and coordinates", func() {
			open := true
			r := gmaps.PlacesSearchResult{
				Name:             "Cafe",
				Rating:           4.3,
				FormattedAddress: "1 Main St",
				OpeningHours:     &gmaps.OpeningHours{OpenNow: &open},
			}
			r.Geometry.Location = gmaps.LatLng{Lat: 1, Lng: 2}

			p := placeFromSearchResult(r)

			Expect(*p.Rating).To(Equal(4.3))
			Expect(*p.OpeningHours.OpenNow).To(BeTrue())
			Expect(*p.Geometry.Location).To(Equal(LatLng{Lat: 1, Lng: 2}))
			Expect(p.FormattedAddress).To(Equal("1 Main St"))
		})
	})

	Describe("routeFromSDK", func() {
		It("renders leg duration text and keeps distance text verbatim", func() {
			leg := &gmaps.Leg{
				StartLocation: gmaps.LatLng{Lat: 1, Lng: 2},
				EndLocation:   gmaps.LatLng{Lat: 3, Lng: 4},
				Duration:      12 * time.Minute,
			}
			leg.Distance.HumanReadable = "3.1 km"
			leg.Distance.Meters = 3100

			r := routeFromSDK(gmaps.Route{Summary: "A1", Legs: []*gmaps.Leg{leg, nil}})

			Expect(r.Legs).To(HaveLen(1))
			Expect(r.Legs[0].Duration).To(Equal(TextValue{Text: "12 mins", Value: 720}))
			Expect(r.Legs[0].Distance).To(Equal(TextValue{Text: "3.1 km", Value: 3100}))
			Expect(*r.Legs[0].StartLocation).To(Equal(LatLng{Lat: 1, Lng: 2}))
		})
	})

	Describe("Place JSON", func() {
		It("omits absent optional fields", func() {
			data, err := json.Marshal(Place{Name: "Cafe"})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(`{"name":"Cafe"}`))
		})
	})
})
