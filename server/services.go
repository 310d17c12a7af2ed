package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/papercomputeco/wayfinder/pkg/assistant"
	"github.com/papercomputeco/wayfinder/pkg/config"
	"github.com/papercomputeco/wayfinder/pkg/llm"
	"github.com/papercomputeco/wayfinder/pkg/llm/anthropic"
	"github.com/papercomputeco/wayfinder/pkg/llm/gemini"
	"github.com/papercomputeco/wayfinder/pkg/llm/ollama"
	"github.com/papercomputeco/wayfinder/pkg/maps"
)

// services is everything a request needs that depends on the config.
// It is swapped as a whole on reload so a request never sees a mix.
type services struct {
	config    *config.Config
	maps      maps.Client
	provider  llm.Provider
	assistant *assistant.Assistant
}

// Option overrides a dependency, mostly for tests.
type Option func(*Server)

// WithMapsClient uses c instead of building a Google client from config.
func WithMapsClient(c maps.Client) Option {
	return func(s *Server) { s.mapsOverride = c }
}

// WithProvider uses p instead of building a provider from config.
func WithProvider(p llm.Provider) Option {
	return func(s *Server) { s.providerOverride = p }
}

func (s *Server) buildServices(ctx context.Context, cfg *config.Config) (*services, error) {
	mapsClient := s.mapsOverride
	if mapsClient == nil {
		c, err := newMapsClient(cfg, s.logger)
		if err != nil {
			return nil, err
		}
		mapsClient = c
	}

	provider := s.providerOverride
	if provider == nil {
		p, err := newProvider(ctx, cfg, s.logger)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	var options *llm.Options
	if cfg.LLM.Temperature != nil {
		options = &llm.Options{Temperature: cfg.LLM.Temperature}
	}

	return &services{
		config:    cfg,
		maps:      mapsClient,
		provider:  provider,
		assistant: assistant.New(provider, mapsClient, cfg.LLM.ModelOrDefault(), options, s.logger),
	}, nil
}

func newMapsClient(cfg *config.Config, logger *zap.Logger) (maps.Client, error) {
	if !cfg.MapsConfigured() {
		logger.Warn("GOOGLE_MAPS_API_KEY not set, maps features are disabled")
		return maps.Unconfigured{}, nil
	}

	c, err := maps.NewGoogle(cfg.GoogleMapsAPIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return c, nil
}

func newProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (llm.Provider, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOllama:
		return ollama.New(cfg.LLM.BaseURL, cfg.LLM.APIKey, logger), nil
	case config.ProviderGemini:
		p, err := gemini.New(ctx, cfg.LLM.APIKey, cfg.LLM.ModelOrDefault(), logger)
		if err != nil {
			return nil, fmt.Errorf("create gemini provider: %w", err)
		}
		return p, nil
	case config.ProviderAnthropic:
		return anthropic.New(cfg.LLM.APIKey, cfg.LLM.ModelOrDefault(), logger), nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
}
