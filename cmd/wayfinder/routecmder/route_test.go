package routecmder

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

	"github.com/papercomputeco/wayfinder/client"
	"github.com/papercomputeco/wayfinder/cmd/wayfinder/cliconfig"
)

const routeJSON = `{
	"success": true,
	"routes": [{
		"summary": "Market St",
		"legs": [{
			"start_location": {"lat": 37.7955, "lng": -122.3937},
			"end_location": {"lat": 37.8024, "lng": -122.4058},
			"duration": {"text": "18 mins", "value": 1080},
			"distance": {"text": "1.4 km", "value": 1400}
		}]
	}]
}`

var _ = Describe("Route Command", func() {
	var (
		backend    *httptest.Server
		directions http.HandlerFunc
		out        *bytes.Buffer
	)

	BeforeEach(func() {
		directions = nil
		out = &bytes.Buffer{}

		mux := http.NewServeMux()
		mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"google_maps_api_key":"KEY"}`))
		})
		mux.HandleFunc("/api/directions", func(w http.ResponseWriter, r *http.Request) {
			directions(w, r)
		})
		backend = httptest.NewServer(mux)
	})

	AfterEach(func() {
		backend.Close()
	})

	execute := func(args ...string) error {
		root := &cobra.Command{Use: "wayfinder", SilenceUsage: true, SilenceErrors: true}
		cliconfig.AddPersistentFlags(root)
		root.AddCommand(NewRouteCmd())
		root.SetOut(out)
		root.SetErr(io.Discard)
		root.SetArgs(append([]string{"route", "--backend", backend.URL}, args...))
		return root.ExecuteContext(context.Background())
	}

	It("prints the directions map and the route summary", func() {
		directions = func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			var req client.DirectionsRequest
			Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
			Expect(req.Origin).To(Equal("Ferry Building"))
			Expect(req.Destination).To(Equal("Coit Tower"))
			Expect(req.Mode).To(Equal("walking"))
			_, _ = w.Write([]byte(routeJSON))
		}

		Expect(execute("Ferry Building", "Coit Tower", "--mode", "walking")).To(Succeed())

		printed := out.String()
		Expect(printed).To(ContainSubstring("https://www.google.com/maps/embed/v1/directions?key=KEY&origin=37.7955,-122.3937&destination=37.8024,-122.4058&mode=walking"))
		Expect(printed).To(ContainSubstring("🚗 Route: 1.4 km, approximately 18 mins"))
	})

	It("uses the configured location as origin when only a destination is given", func() {
		directions = func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			var req client.DirectionsRequest
			Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
			Expect(req.Origin).To(Equal("37.7955,-122.3937"))
			Expect(req.Mode).To(Equal("driving"))
			_, _ = w.Write([]byte(routeJSON))
		}

		Expect(execute("--location", "37.7955,-122.3937", "Coit Tower")).To(Succeed())
	})

	It("fails without an origin or a location", func() {
		err := execute("Coit Tower")
		Expect(err).To(MatchError(client.ErrNoLocation))
	})

	It("reports when no route exists", func() {
		directions = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"no route found"}`))
		}

		err := execute("Here", "Atlantis")
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown travel modes", func() {
		Expect(execute("A", "B", "--mode", "teleport")).To(MatchError(ContainSubstring("unknown travel mode")))
	})
})
