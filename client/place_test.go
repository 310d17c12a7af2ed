package client_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/wayfinder/client"
	"github.com/papercomputeco/wayfinder/pkg/maps"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("PlaceView", func() {
	It("applies fallbacks for an empty place", func() {
		v := client.NewPlaceView(maps.Place{})

		Expect(v.Name).To(Equal("N/A"))
		Expect(v.Address).To(Equal("Address not available"))
		Expect(v.Rating).To(BeNil())
		Expect(v.OpenNow).To(BeNil())
		Expect(v.Location).To(BeNil())
	})

	It("prefers formatted_address over vicinity", func() {
		v := client.NewPlaceView(maps.Place{FormattedAddress: "1 Main St", Vicinity: "Main St"})
		Expect(v.Address).To(Equal("1 Main St"))

		v = client.NewPlaceView(maps.Place{Vicinity: "Main St"})
		Expect(v.Address).To(Equal("Main St"))
	})

	It("takes coordinates from the geometry", func() {
		v := client.NewPlaceView(maps.Place{Geometry: &maps.Geometry{Location: &maps.LatLng{Lat: 1, Lng: 2}}})
		Expect(v.Location).To(Equal(&maps.LatLng{Lat: 1, Lng: 2}))

		v = client.NewPlaceView(maps.Place{Geometry: &maps.Geometry{}})
		Expect(v.Location).To(BeNil())
	})

	Describe("CardLines", func() {
		It("omits the rating line when there is no rating", func() {
			lines := client.NewPlaceView(maps.Place{Name: "Cafe"}).CardLines()

			Expect(lines).To(Equal([]string{"Cafe", "Address not available"}))
			for _, line := range lines {
				Expect(line).NotTo(ContainSubstring("⭐"))
			}
		})

		It("shows the rating when present", func() {
			lines := client.NewPlaceView(maps.Place{Name: "Cafe", Rating: ptr(4.5)}).CardLines()
			Expect(lines).To(ContainElement("⭐ 4.5"))
		})

		It("shows the open state only when known", func() {
			open := client.NewPlaceView(maps.Place{OpeningHours: &maps.OpeningHours{OpenNow: ptr(true)}}).CardLines()
			closed := client.NewPlaceView(maps.Place{OpeningHours: &maps.OpeningHours{OpenNow: ptr(false)}}).CardLines()
			unknown := client.NewPlaceView(maps.Place{OpeningHours: &maps.OpeningHours{}}).CardLines()

			Expect(open).To(ContainElement("🟢 Open now"))
			Expect(closed).To(ContainElement("🔴 Closed"))
			Expect(unknown).To(HaveLen(2))
		})
	})

	It("keeps input order without dedup", func() {
		views := client.NewPlaceViews([]maps.Place{{Name: "B"}, {Name: "A"}, {Name: "B"}})

		Expect(views).To(HaveLen(3))
		Expect(views[0].Name).To(Equal("B"))
		Expect(views[1].Name).To(Equal("A"))
		Expect(views[2].Name).To(Equal("B"))
	})
})
