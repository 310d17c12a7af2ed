package client_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/papercomputeco/wayfinder/client"
	"github.com/papercomputeco/wayfinder/client/clientmock"
	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// recorder is a Presenter that remembers every call.
type recorder struct {
	mu       sync.Mutex
	messages []client.Message
	lists    [][]client.PlaceView
	mapViews []client.MapView
	notices  []string
	busy     []bool
}

func (r *recorder) RenderMessage(m client.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

func (r *recorder) RenderPlaceList(places []client.PlaceView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists = append(r.lists, places)
}

func (r *recorder) RenderMap(view client.MapView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mapViews = append(r.mapViews, view)
}

func (r *recorder) Notify(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, text)
}

func (r *recorder) SetBusy(busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.busy = append(r.busy, busy)
}

var sampleRoute = maps.Route{Legs: []maps.Leg{{
	StartLocation: &maps.LatLng{Lat: 1, Lng: 2},
	EndLocation:   &maps.LatLng{Lat: 3, Lng: 4},
	Duration:      maps.TextValue{Text: "12 mins"},
	Distance:      maps.TextValue{Text: "3.1 km"},
}}}

var _ = Describe("Controller", func() {
	var (
		ctx        context.Context
		ctrl       *gomock.Controller
		transport  *clientmock.MockTransport
		session    *client.Session
		presenter  *recorder
		controller *client.Controller
	)

	BeforeEach(func() {
		ctx = context.Background()
		ctrl = gomock.NewController(GinkgoT())
		transport = clientmock.NewMockTransport(ctrl)
		session = client.NewSession()
		session.SetAPIKey("KEY")
		presenter = &recorder{}
		controller = client.NewController(session, transport, client.NoLocator{}, presenter, zap.NewNop())
	})

	Describe("Start", func() {
		It("stores the API key and location", func() {
			session = client.NewSession()
			controller = client.NewController(session, transport, client.StaticLocator{At: maps.LatLng{Lat: 5, Lng: 6}}, presenter, zap.NewNop())
			transport.EXPECT().FetchConfig(gomock.Any()).Return(&client.Config{GoogleMapsAPIKey: "fetched"}, nil)

			controller.Start(ctx)

			Expect(session.APIKey()).To(Equal("fetched"))
			at, ok := session.Location()
			Expect(ok).To(BeTrue())
			Expect(at).To(Equal(maps.LatLng{Lat: 5, Lng: 6}))
		})

		It("carries on when config and location fail", func() {
			session = client.NewSession()
			controller = client.NewController(session, transport, client.NoLocator{}, presenter, zap.NewNop())
			transport.EXPECT().FetchConfig(gomock.Any()).Return(nil, &client.TransportError{Op: "config", StatusCode: 500})

			controller.Start(ctx)

			Expect(session.APIKey()).To(BeEmpty())
			_, ok := session.Location()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Send", func() {
		It("grows history by two messages per successful turn in alternating order", func() {
			transport.EXPECT().Chat(gomock.Any(), gomock.Any()).
				Return(&client.ChatResponse{Response: "ok"}, nil).Times(3)

			for i := 0; i < 3; i++ {
				Expect(controller.Send(ctx, "hello")).To(Succeed())
				Expect(session.Len()).To(Equal(2 * (i + 1)))
			}

			for i, m := range session.Snapshot() {
				if i%2 == 0 {
					Expect(m.Role).To(Equal(client.RoleUser))
				} else {
					Expect(m.Role).To(Equal(client.RoleAssistant))
				}
			}
		})

		It("sends the history from before the turn and the location", func() {
			session.SetLocation(maps.LatLng{Lat: 40.7, Lng: -74})
			session.Append(client.RoleUser, "earlier")
			session.Append(client.RoleAssistant, "reply")

			transport.EXPECT().Chat(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, req client.ChatRequest) (*client.ChatResponse, error) {
					Expect(req.Message).To(Equal("next"))
					Expect(req.ConversationHistory).To(HaveLen(2))
					Expect(req.UserLocation).NotTo(BeNil())
					Expect(*req.UserLocation).To(Equal("40.7,-74"))
					return &client.ChatResponse{Response: "sure"}, nil
				})

			Expect(controller.Send(ctx, "next")).To(Succeed())
		})

		It("leaves history alone and apologizes when the backend fails", func() {
			transport.EXPECT().Chat(gomock.Any(), gomock.Any()).
				Return(nil, &client.TransportError{Op: "chat", StatusCode: 500})

			err := controller.Send(ctx, "hello")

			var terr *client.TransportError
			Expect(errors.As(err, &terr)).To(BeTrue())
			Expect(session.Len()).To(Equal(0))
			Expect(presenter.messages).To(Equal([]client.Message{
				{Role: client.RoleUser, Content: "hello"},
				{Role: client.RoleAssistant, Content: client.ChatFailedMessage},
			}))
			Expect(presenter.busy).To(Equal([]bool{true, false}))
		})

		It("turns away a second send while one is in flight", func() {
			entered := make(chan struct{})
			release := make(chan struct{})
			transport.EXPECT().Chat(gomock.Any(), gomock.Any()).DoAndReturn(
				func(context.Context, client.ChatRequest) (*client.ChatResponse, error) {
					close(entered)
					<-release
					return &client.ChatResponse{Response: "done"}, nil
				}).Times(1)

			done := make(chan error, 1)
			go func() { done <- controller.Send(ctx, "first") }()

			Eventually(entered).Should(BeClosed())
			Expect(controller.Send(ctx, "second")).To(MatchError(client.ErrBusy))

			close(release)
			Eventually(done).Should(Receive(BeNil()))
			Expect(session.Len()).To(Equal(2))
		})

		It("rejects blank input without calling the backend", func() {
			Expect(controller.Send(ctx, "   ")).To(MatchError(client.ErrEmptyMessage))
			Expect(presenter.messages).To(BeEmpty())
		})

		It("renders places and a single-marker map", func() {
			transport.EXPECT().Chat(gomock.Any(), gomock.Any()).Return(&client.ChatResponse{
				Response: "Two cafes.",
				Places: []maps.Place{
					{Name: "A", Geometry: &maps.Geometry{Location: &maps.LatLng{Lat: 1, Lng: 2}}},
					{Name: "B", Geometry: &maps.Geometry{Location: &maps.LatLng{Lat: 3, Lng: 4}}},
				},
			}, nil)

			Expect(controller.Send(ctx, "cafes")).To(Succeed())

			Expect(presenter.lists).To(HaveLen(1))
			Expect(presenter.lists[0]).To(HaveLen(2))
			Expect(presenter.mapViews).To(HaveLen(1))
			Expect(presenter.mapViews[0].URL).To(ContainSubstring("q=1,2&"))
			Expect(presenter.mapViews[0].Markers).To(Equal("1,2|3,4"))
			Expect(controller.Places()).To(HaveLen(2))
		})

		It("embeds every marker when multi-marker is on", func() {
			controller = client.NewController(session, transport, client.NoLocator{}, presenter, zap.NewNop(), client.WithMultiMarker(true))
			transport.EXPECT().Chat(gomock.Any(), gomock.Any()).Return(&client.ChatResponse{
				Response: "Two cafes.",
				Places: []maps.Place{
					{Name: "A", Geometry: &maps.Geometry{Location: &maps.LatLng{Lat: 1, Lng: 2}}},
					{Name: "B", Geometry: &maps.Geometry{Location: &maps.LatLng{Lat: 3, Lng: 4}}},
				},
			}, nil)

			Expect(controller.Send(ctx, "cafes")).To(Succeed())
			Expect(presenter.mapViews[0].URL).To(ContainSubstring("q=1,2%7C3,4&"))
		})

		It("keeps the previous map when no place has coordinates", func() {
			transport.EXPECT().Chat(gomock.Any(), gomock.Any()).Return(&client.ChatResponse{
				Response: "One place.",
				Places:   []maps.Place{{Name: "Nowhere"}},
			}, nil)

			Expect(controller.Send(ctx, "somewhere")).To(Succeed())
			Expect(presenter.lists).To(HaveLen(1))
			Expect(presenter.mapViews).To(BeEmpty())
		})
	})

	Describe("SelectPlace", func() {
		BeforeEach(func() {
			transport.EXPECT().Chat(gomock.Any(), gomock.Any()).Return(&client.ChatResponse{
				Response: "Found it.",
				Places:   []maps.Place{{Name: "Park", FormattedAddress: "5th Ave"}},
			}, nil)
			Expect(controller.Send(ctx, "park")).To(Succeed())
			presenter.messages = nil
			presenter.mapViews = nil
		})

		It("surfaces a notice and skips the transport without a location", func() {
			err := controller.SelectPlace(ctx, 0)

			Expect(err).To(MatchError(client.ErrNoLocation))
			Expect(presenter.notices).To(Equal([]string{client.LocationRequiredNotice}))
		})

		It("renders the route and a display-only summary", func() {
			session.SetLocation(maps.LatLng{Lat: 1, Lng: 2})
			Expect(controller.SetMode(maps.ModeWalking)).To(Succeed())

			transport.EXPECT().Directions(gomock.Any(), client.DirectionsRequest{
				Origin:      "1,2",
				Destination: "5th Ave",
				Mode:        maps.ModeWalking,
			}).Return(&client.DirectionsResponse{Success: true, Routes: []maps.Route{sampleRoute}}, nil)

			Expect(controller.SelectPlace(ctx, 0)).To(Succeed())

			Expect(presenter.mapViews).To(HaveLen(1))
			Expect(presenter.mapViews[0].Kind).To(Equal(client.MapDirections))
			Expect(presenter.mapViews[0].URL).To(HaveSuffix("&mode=walking"))
			Expect(presenter.messages).To(Equal([]client.Message{
				{Role: client.RoleAssistant, Content: "🚗 Route: 3.1 km, approximately 12 mins"},
			}))

			// The summary never reaches the backend.
			transport.EXPECT().Chat(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, req client.ChatRequest) (*client.ChatResponse, error) {
					for _, m := range req.ConversationHistory {
						Expect(m.Content).NotTo(ContainSubstring("🚗 Route"))
					}
					Expect(req.ConversationHistory).To(HaveLen(2))
					return &client.ChatResponse{Response: "ok"}, nil
				})
			Expect(controller.Send(ctx, "thanks")).To(Succeed())
		})

		It("does nothing when the backend reports failure", func() {
			session.SetLocation(maps.LatLng{Lat: 1, Lng: 2})
			transport.EXPECT().Directions(gomock.Any(), gomock.Any()).
				Return(&client.DirectionsResponse{Success: false, Routes: []maps.Route{sampleRoute}}, nil)

			Expect(controller.SelectPlace(ctx, 0)).To(Succeed())
			Expect(presenter.mapViews).To(BeEmpty())
			Expect(presenter.messages).To(BeEmpty())
		})

		It("does nothing on empty routes or transport errors", func() {
			session.SetLocation(maps.LatLng{Lat: 1, Lng: 2})
			transport.EXPECT().Directions(gomock.Any(), gomock.Any()).
				Return(&client.DirectionsResponse{Success: true}, nil)
			transport.EXPECT().Directions(gomock.Any(), gomock.Any()).
				Return(nil, &client.TransportError{Op: "directions", StatusCode: 404})

			Expect(controller.SelectPlace(ctx, 0)).To(Succeed())
			Expect(controller.SelectPlace(ctx, 0)).To(Succeed())
			Expect(presenter.mapViews).To(BeEmpty())
			Expect(presenter.messages).To(BeEmpty())
			Expect(session.Len()).To(Equal(2))
		})

		It("rejects an index outside the list", func() {
			Expect(controller.SelectPlace(ctx, 3)).To(MatchError(client.ErrNoSuchPlace))
		})
	})

	Describe("Route", func() {
		It("returns ErrNoRoute for an empty answer", func() {
			transport.EXPECT().Directions(gomock.Any(), gomock.Any()).Return(&client.DirectionsResponse{Success: true}, nil)

			Expect(controller.Route(ctx, "a", "b")).To(MatchError(client.ErrNoRoute))
		})
	})

	Describe("SetMode", func() {
		It("rejects unknown modes", func() {
			Expect(controller.SetMode("hovercraft")).To(HaveOccurred())
			Expect(session.Mode()).To(Equal(maps.ModeDriving))
		})
	})
})
