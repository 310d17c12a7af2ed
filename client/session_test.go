package client_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/wayfinder/client"
	"github.com/papercomputeco/wayfinder/pkg/maps"
)

var _ = Describe("Session", func() {
	var session *client.Session

	BeforeEach(func() {
		session = client.NewSession()
	})

	It("starts empty with driving mode and no location", func() {
		Expect(session.Len()).To(Equal(0))
		Expect(session.Snapshot()).To(BeEmpty())
		Expect(session.Mode()).To(Equal(maps.ModeDriving))
		Expect(session.APIKey()).To(BeEmpty())
		Expect(session.ID()).To(HaveLen(36))

		_, ok := session.Location()
		Expect(ok).To(BeFalse())
	})

	It("keeps messages in append order", func() {
		session.Append(client.RoleUser, "a")
		session.Append(client.RoleAssistant, "b")
		session.Append(client.RoleUser, "a")

		Expect(session.Snapshot()).To(Equal([]client.Message{
			{Role: client.RoleUser, Content: "a"},
			{Role: client.RoleAssistant, Content: "b"},
			{Role: client.RoleUser, Content: "a"},
		}))
	})

	It("returns snapshots that do not alias the log", func() {
		session.Append(client.RoleUser, "original")
		snap := session.Snapshot()
		snap[0].Content = "changed"

		Expect(session.Snapshot()[0].Content).To(Equal("original"))
	})

	It("stores the location", func() {
		session.SetLocation(maps.LatLng{Lat: 1, Lng: 2})

		at, ok := session.Location()
		Expect(ok).To(BeTrue())
		Expect(at.String()).To(Equal("1,2"))
	})
})
