package client_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/wayfinder/client"
	"github.com/papercomputeco/wayfinder/pkg/maps"
)

var _ = Describe("TextPresenter", func() {
	var (
		out       *bytes.Buffer
		presenter *client.TextPresenter
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		presenter = client.NewTextPresenter(out)
	})

	It("labels messages by role", func() {
		presenter.RenderMessage(client.Message{Role: client.RoleUser, Content: "hi"})
		presenter.RenderMessage(client.Message{Role: client.RoleAssistant, Content: "hello"})

		Expect(out.String()).To(Equal("You: hi\n\nAssistant: hello\n\n"))
	})

	It("numbers place cards in order", func() {
		rating := 4.5
		presenter.RenderPlaceList(client.NewPlaceViews([]maps.Place{
			{Name: "First", Rating: &rating, Vicinity: "Elm St"},
			{},
		}))

		text := out.String()
		Expect(text).To(ContainSubstring("Found 2 places"))
		Expect(text).To(ContainSubstring("[1] First\n      ⭐ 4.5\n      Elm St\n"))
		Expect(text).To(ContainSubstring("[2] N/A\n      Address not available\n"))
	})

	It("prints map URLs and notices", func() {
		presenter.RenderMap(client.MapView{URL: "https://example.test/map"})
		presenter.Notify("need location")

		Expect(out.String()).To(ContainSubstring("https://example.test/map"))
		Expect(out.String()).To(ContainSubstring("! need location"))
	})
})
