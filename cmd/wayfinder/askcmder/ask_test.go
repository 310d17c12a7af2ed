package askcmder

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/wayfinder/cmd/wayfinder/cliconfig"
)

var _ = Describe("Ask Command", func() {
	var (
		backend *httptest.Server
		chat    http.HandlerFunc
		out     *bytes.Buffer
	)

	BeforeEach(func() {
		chat = nil
		out = &bytes.Buffer{}

		mux := http.NewServeMux()
		mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"google_maps_api_key":"KEY"}`))
		})
		mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
			chat(w, r)
		})
		backend = httptest.NewServer(mux)
	})

	AfterEach(func() {
		backend.Close()
	})

	execute := func(args ...string) error {
		root := &cobra.Command{Use: "wayfinder", SilenceUsage: true, SilenceErrors: true}
		cliconfig.AddPersistentFlags(root)
		root.AddCommand(NewAskCmd())
		root.SetOut(out)
		root.SetErr(io.Discard)
		root.SetArgs(append([]string{"ask", "--backend", backend.URL}, args...))
		return root.ExecuteContext(context.Background())
	}

	It("prints the answer, the place cards and a place map", func() {
		chat = func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			var req map[string]any
			Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
			Expect(req).To(HaveKeyWithValue("message", "coffee nearby"))
			Expect(req).To(HaveKeyWithValue("user_location", "37.7749,-122.4194"))

			_, _ = w.Write([]byte(`{
				"response": "Try Blue Bottle.",
				"places": [{
					"name": "Blue Bottle",
					"rating": 4.6,
					"vicinity": "66 Mint St",
					"opening_hours": {"open_now": true},
					"geometry": {"location": {"lat": 37.7825, "lng": -122.4073}}
				}]
			}`))
		}

		Expect(execute("--location", "37.7749,-122.4194", "coffee", "nearby")).To(Succeed())

		printed := out.String()
		Expect(printed).To(ContainSubstring("You: coffee nearby"))
		Expect(printed).To(ContainSubstring("Assistant: Try Blue Bottle."))
		Expect(printed).To(ContainSubstring("[1] Blue Bottle"))
		Expect(printed).To(ContainSubstring("⭐ 4.6"))
		Expect(printed).To(ContainSubstring("66 Mint St"))
		Expect(printed).To(ContainSubstring("https://www.google.com/maps/embed/v1/place?key=KEY&q=37.7825,-122.4073&zoom=14"))
	})

	It("sends a null location when none is configured", func() {
		chat = func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			var req map[string]any
			Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
			Expect(req).To(HaveKeyWithValue("user_location", BeNil()))
			_, _ = w.Write([]byte(`{"response":"Where are you?"}`))
		}

		Expect(execute("museums")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Assistant: Where are you?"))
	})

	It("prints the apology and fails when the backend errors", func() {
		chat = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"chat processing error: boom"}`))
		}

		err := execute("hello")
		Expect(err).To(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("Sorry, I encountered an error. Please try again."))
	})

	It("requires a message", func() {
		Expect(execute()).To(HaveOccurred())
	})
})
