package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// ChatFailedMessage replaces the reply when a chat turn fails.
const ChatFailedMessage = "Sorry, I encountered an error. Please try again."

// LocationRequiredNotice is shown when directions need a location we lack.
const LocationRequiredNotice = "Location access is required for directions. Start the client with --location or --address."

var (
	// ErrBusy is returned by Send while another turn is in flight.
	ErrBusy = errors.New("a message is already being sent")

	// ErrEmptyMessage is returned by Send for blank input.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoSuchPlace is returned by SelectPlace for an index outside the last list.
	ErrNoSuchPlace = errors.New("no such place")

	// ErrNoRoute is returned by Route when the backend has no usable route.
	ErrNoRoute = errors.New("no route found")
)

// Controller runs the chat flow against a Transport and a Presenter.
type Controller struct {
	session   *Session
	transport Transport
	locator   Locator
	presenter Presenter
	logger    *zap.Logger

	multiMarker bool

	// sending gates Send; a second caller is turned away, not queued.
	sending sync.Mutex

	placesMu sync.Mutex
	places   []PlaceView
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithMultiMarker makes place maps embed every marker instead of the first.
func WithMultiMarker(enabled bool) ControllerOption {
	return func(c *Controller) { c.multiMarker = enabled }
}

// NewController wires a Controller.
func NewController(session *Session, transport Transport, locator Locator, presenter Presenter, logger *zap.Logger, opts ...ControllerOption) *Controller {
	if locator == nil {
		locator = NoLocator{}
	}
	c := &Controller{
		session:   session,
		transport: transport,
		locator:   locator,
		presenter: presenter,
		logger:    logger.With(zap.String("session", session.ID())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the controller's session.
func (c *Controller) Session() *Session {
	return c.session
}

// Start fetches the client config and acquires the location. Failures are
// logged and the session carries on without them.
func (c *Controller) Start(ctx context.Context) {
	cfg, err := c.transport.FetchConfig(ctx)
	if err != nil {
		c.logger.Error("failed to fetch config, map embeds will lack an API key", zap.Error(err))
	} else {
		c.session.SetAPIKey(cfg.GoogleMapsAPIKey)
	}

	at, err := c.locator.Locate(ctx)
	if err != nil {
		c.logger.Warn("location unavailable, continuing without it", zap.Error(err))
		return
	}
	c.session.SetLocation(at)
	c.logger.Info("location acquired", zap.String("location", at.String()))
}

// Send runs one chat turn. History only grows when the backend answers.
func (c *Controller) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if !c.sending.TryLock() {
		return ErrBusy
	}
	defer c.sending.Unlock()

	c.presenter.RenderMessage(Message{Role: RoleUser, Content: text})
	c.presenter.SetBusy(true)
	defer c.presenter.SetBusy(false)

	req := ChatRequest{
		Message:             text,
		ConversationHistory: c.session.Snapshot(),
	}
	if at, ok := c.session.Location(); ok {
		loc := at.String()
		req.UserLocation = &loc
	}

	resp, err := c.transport.Chat(ctx, req)
	if err != nil {
		c.logger.Error("chat failed", zap.Error(err))
		c.presenter.RenderMessage(Message{Role: RoleAssistant, Content: ChatFailedMessage})
		return err
	}

	c.session.Append(RoleUser, text)
	c.session.Append(RoleAssistant, resp.Response)
	c.presenter.RenderMessage(Message{Role: RoleAssistant, Content: resp.Response})

	if len(resp.Places) > 0 {
		views := NewPlaceViews(resp.Places)
		c.setPlaces(views)
		c.presenter.RenderPlaceList(views)
		c.renderPlaceMap(views)
	} else if len(resp.MapData) > 0 {
		c.renderRoute(resp.MapData[0], c.session.Mode())
	}

	return nil
}

// Places returns the most recently rendered place list.
func (c *Controller) Places() []PlaceView {
	c.placesMu.Lock()
	defer c.placesMu.Unlock()
	out := make([]PlaceView, len(c.places))
	copy(out, c.places)
	return out
}

func (c *Controller) setPlaces(views []PlaceView) {
	c.placesMu.Lock()
	defer c.placesMu.Unlock()
	c.places = views
}

// SelectPlace shows directions from the user to the place at index in the
// last list. Without a location the user is told so and nothing is fetched.
// Backend failures and empty routes change nothing.
func (c *Controller) SelectPlace(ctx context.Context, index int) error {
	places := c.Places()
	if index < 0 || index >= len(places) {
		return fmt.Errorf("%w: %d", ErrNoSuchPlace, index+1)
	}

	at, ok := c.session.Location()
	if !ok {
		c.presenter.Notify(LocationRequiredNotice)
		return ErrNoLocation
	}

	err := c.Route(ctx, at.String(), places[index].Address)
	if err != nil {
		c.logger.Warn("directions unavailable", zap.String("destination", places[index].Address), zap.Error(err))
	}
	return nil
}

// Route fetches directions and shows the first route. The summary line is
// displayed but never added to the conversation.
func (c *Controller) Route(ctx context.Context, origin, destination string) error {
	mode := c.session.Mode()

	resp, err := c.transport.Directions(ctx, DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
	})
	if err != nil {
		return err
	}
	if !resp.Success || len(resp.Routes) == 0 {
		return ErrNoRoute
	}

	if !c.renderRoute(resp.Routes[0], mode) {
		return ErrNoCoordinates
	}
	return nil
}

// SetMode sets the travel mode for later directions.
func (c *Controller) SetMode(mode string) error {
	if !maps.ValidMode(mode) {
		return fmt.Errorf("unknown travel mode %q", mode)
	}
	c.session.SetMode(mode)
	return nil
}

func (c *Controller) renderPlaceMap(views []PlaceView) {
	view, err := PlaceMap(c.session.APIKey(), views, c.multiMarker)
	if err != nil {
		c.logger.Error("cannot render place map", zap.Int("places", len(views)), zap.Error(err))
		return
	}
	c.presenter.RenderMap(view)
}

func (c *Controller) renderRoute(route maps.Route, mode string) bool {
	view, err := DirectionsMap(c.session.APIKey(), route, mode)
	if err != nil {
		c.logger.Error("cannot render directions map", zap.String("summary", route.Summary), zap.Error(err))
		return false
	}
	c.presenter.RenderMap(view)
	c.presenter.RenderMessage(Message{Role: RoleAssistant, Content: view.Summary})
	return true
}
