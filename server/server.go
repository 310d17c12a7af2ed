// Package server provides the wayfinder HTTP backend: chat, places, directions
// and geocoding endpoints in front of an LLM and the Google Maps APIs.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/papercomputeco/wayfinder/pkg/config"
	"github.com/papercomputeco/wayfinder/pkg/llm"
	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// shutdownTimeout bounds how long in-flight requests get after Run's context ends.
const shutdownTimeout = 10 * time.Second

// Server is the wayfinder backend.
type Server struct {
	logger *zap.Logger
	app    *fiber.App

	current atomic.Pointer[services]

	mapsOverride     maps.Client
	providerOverride llm.Provider
}

// New creates a Server from cfg and registers every route.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Server, error) {
	s := &Server{logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	svc, err := s.buildServices(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.current.Store(svc)

	s.app = fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		AppName:               "wayfinder",
	})
	s.routes()

	return s, nil
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) routes() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "*",
	}))
	s.app.Use(s.accessLog)

	s.app.Get("/", s.handleRoot)

	api := s.app.Group("/api")
	api.Post("/chat", s.handleChat)
	api.Post("/places/search", s.handleSearchPlaces)
	api.Get("/places/:id", s.handlePlaceDetails)
	api.Post("/directions", s.handleDirections)
	api.Get("/geocode", s.handleGeocode)
	api.Get("/health", s.handleHealth)
	api.Get("/config", s.handleConfig)

	s.app.All("/mcp", adaptor.HTTPHandler(s.mcpHandler()))

	if dir := s.services().config.Server.StaticDir; dir != "" {
		s.app.Static("/static", dir)
	}
}

// services returns the dependency bundle for the current config.
func (s *Server) services() *services {
	return s.current.Load()
}

// Reload rebuilds the maps client, provider and assistant from cfg. Requests
// already running keep the bundle they started with. The static mount and
// listen address are fixed at startup.
func (s *Server) Reload(ctx context.Context, cfg *config.Config) error {
	svc, err := s.buildServices(ctx, cfg)
	if err != nil {
		return fmt.Errorf("reload services: %w", err)
	}
	s.current.Store(svc)

	s.logger.Info("server config reloaded",
		zap.Bool("google_maps_configured", cfg.MapsConfigured()),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.ModelOrDefault()),
	)
	return nil
}

// Run listens on the configured address until ctx is done, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	cfg := s.services().config
	addr := cfg.Addr()

	s.logger.Info("starting wayfinder server",
		zap.String("listen", addr),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.Bool("google_maps_configured", cfg.MapsConfigured()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.app.Listen(addr); err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down wayfinder server")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// accessLog logs one line per request.
func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}

	fields := []zap.Field{
		zap.String("request_id", requestID(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	if status >= fiber.StatusInternalServerError {
		s.logger.Warn("request", fields...)
	} else {
		s.logger.Debug("request", fields...)
	}
	return err
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}

// indexFile returns the path of index.html in the static dir, if present.
func indexFile(staticDir string) (string, bool) {
	if staticDir == "" {
		return "", false
	}
	path := filepath.Join(staticDir, "index.html")
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
