package server

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/wayfinder/pkg/llm"
	"github.com/papercomputeco/wayfinder/pkg/maps"
	"github.com/papercomputeco/wayfinder/pkg/merkle"
)

// Response headers describing the conversation a chat request extends.
const (
	ConversationHashHeader  = "X-Conversation-Hash"
	ConversationDepthHeader = "X-Conversation-Depth"
)

func (s *Server) handleRoot(c *fiber.Ctx) error {
	if path, ok := indexFile(s.services().config.Server.StaticDir); ok {
		return c.SendFile(path)
	}
	return c.JSON(fiber.Map{
		"message": "wayfinder location assistant API",
		"docs":    "/api/health",
	})
}

// handleChat runs one assistant turn. The client owns the history; the server
// keeps nothing between requests.
func (s *Server) handleChat(c *fiber.Ctx) error {
	startTime := time.Now()
	svc := s.services()

	var req ChatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		s.logger.Error("failed to parse chat request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "message is required"})
	}

	history := req.history()
	userLocation := ""
	if req.UserLocation != nil {
		userLocation = *req.UserLocation
	}

	// Same history plus same message always yields the same hash.
	tip := merkle.Tip(append(history, llm.NewMessage(llm.RoleUser, req.Message)))
	head := tip.Hash
	c.Set(ConversationHashHeader, head)
	c.Set(ConversationDepthHeader, strconv.Itoa(tip.Depth))

	s.logger.Info("chat request",
		zap.String("conversation", truncate(head, 16)),
		zap.Int("depth", tip.Depth),
		zap.Int("history_len", len(history)),
		zap.Bool("has_location", userLocation != ""),
		zap.String("message_preview", truncate(req.Message, 100)),
	)

	result, err := svc.assistant.Chat(c.UserContext(), req.Message, history, userLocation)
	if err != nil {
		s.logger.Error("chat processing failed", zap.String("conversation", truncate(head, 16)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{Error: "chat processing error: " + err.Error()})
	}

	s.logger.Debug("chat response",
		zap.String("conversation", truncate(head, 16)),
		zap.Int("places", len(result.Places)),
		zap.Int("routes", len(result.MapData)),
		zap.String("content_preview", truncate(result.Response, 100)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return c.JSON(result)
}

func (s *Server) handleSearchPlaces(c *fiber.Ctx) error {
	svc := s.services()

	var req PlaceSearchRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "query is required"})
	}
	if req.Radius <= 0 {
		req.Radius = maps.DefaultRadius
	}

	s.logger.Info("place search", zap.String("query", req.Query), zap.String("location", req.Location))

	places, err := svc.maps.SearchPlaces(c.UserContext(), maps.PlaceQuery{
		Query:     req.Query,
		Location:  req.Location,
		Radius:    req.Radius,
		PlaceType: req.PlaceType,
	})
	if err != nil {
		return s.mapsError(c, "place search error", err)
	}

	count := len(places)
	if len(places) > maxSearchResults {
		places = places[:maxSearchResults]
	}
	if places == nil {
		places = []maps.Place{}
	}

	return c.JSON(PlaceSearchResponse{Success: true, Count: count, Results: places})
}

func (s *Server) handlePlaceDetails(c *fiber.Ctx) error {
	svc := s.services()
	placeID := c.Params("id")

	place, err := svc.maps.PlaceDetails(c.UserContext(), placeID)
	if errors.Is(err, maps.ErrNotFound) || (err == nil && place == nil) {
		return c.Status(fiber.StatusNotFound).JSON(llm.ErrorResponse{Error: "place not found"})
	}
	if err != nil {
		return s.mapsError(c, "place details error", err)
	}

	return c.JSON(PlaceDetailsResponse{Success: true, Result: place})
}

func (s *Server) handleDirections(c *fiber.Ctx) error {
	svc := s.services()

	var req DirectionsRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}
	if req.Origin == "" || req.Destination == "" {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "origin and destination are required"})
	}
	if req.Mode == "" {
		req.Mode = maps.ModeDriving
	}
	if !maps.ValidMode(req.Mode) {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid mode " + req.Mode})
	}
	alternatives := req.Alternatives == nil || *req.Alternatives

	s.logger.Info("directions request",
		zap.String("origin", req.Origin),
		zap.String("destination", req.Destination),
		zap.String("mode", req.Mode),
	)

	routes, err := svc.maps.Directions(c.UserContext(), maps.DirectionsQuery{
		Origin:       req.Origin,
		Destination:  req.Destination,
		Mode:         req.Mode,
		Alternatives: alternatives,
	})
	if err != nil && !errors.Is(err, maps.ErrNotFound) {
		return s.mapsError(c, "directions error", err)
	}
	if len(routes) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(llm.ErrorResponse{Error: "no route found"})
	}

	return c.JSON(DirectionsResponse{Success: true, Routes: routes})
}

// handleGeocode resolves ?address= forward or ?latlng=lat,lng in reverse.
func (s *Server) handleGeocode(c *fiber.Ctx) error {
	svc := s.services()

	var (
		result *maps.GeocodeResult
		err    error
	)
	switch {
	case c.Query("address") != "":
		result, err = svc.maps.Geocode(c.UserContext(), c.Query("address"))
	case c.Query("latlng") != "":
		at, perr := maps.ParseLatLng(c.Query("latlng"))
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: perr.Error()})
		}
		result, err = svc.maps.ReverseGeocode(c.UserContext(), at)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "address or latlng is required"})
	}

	if errors.Is(err, maps.ErrNotFound) || (err == nil && result == nil) {
		return c.Status(fiber.StatusNotFound).JSON(llm.ErrorResponse{Error: "location not found"})
	}
	if err != nil {
		return s.mapsError(c, "geocode error", err)
	}

	return c.JSON(GeocodeResponse{Success: true, Result: result})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	cfg := s.services().config
	return c.JSON(HealthResponse{
		Status:               "healthy",
		GoogleMapsConfigured: cfg.MapsConfigured(),
		LLMConfigured:        cfg.LLMConfigured(),
		LLMProvider:          cfg.LLM.Provider,
	})
}

func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(ConfigResponse{GoogleMapsAPIKey: s.services().config.GoogleMapsAPIKey})
}

// mapsError logs err and writes the matching error response.
func (s *Server) mapsError(c *fiber.Ctx, prefix string, err error) error {
	s.logger.Error(prefix, zap.String("path", c.Path()), zap.Error(err))

	status := fiber.StatusInternalServerError
	if errors.Is(err, maps.ErrNotConfigured) {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(llm.ErrorResponse{Error: prefix + ": " + err.Error()})
}

// truncate shortens a string for logging to at most maxLen bytes plus an
// ellipsis, never splitting a multi-byte rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
