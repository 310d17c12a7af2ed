// Package config loads wayfinder settings from defaults, an optional TOML or
// YAML file and the environment, in that order of precedence.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Supported LLM providers.
const (
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Config is the full application configuration.
type Config struct {
	// GoogleMapsAPIKey is used for Places and Directions calls and handed to
	// clients for map embeds.
	GoogleMapsAPIKey string `toml:"google_maps_api_key" yaml:"google_maps_api_key"`

	Debug bool `toml:"debug" yaml:"debug"`

	LLM    LLMConfig    `toml:"llm" yaml:"llm"`
	Server ServerConfig `toml:"server" yaml:"server"`
	Client ClientConfig `toml:"client" yaml:"client"`
}

// LLMConfig selects and configures the model backend.
type LLMConfig struct {
	Provider    string   `toml:"provider" yaml:"provider"`
	BaseURL     string   `toml:"base_url" yaml:"base_url"`
	APIKey      string   `toml:"api_key" yaml:"api_key"`
	Model       string   `toml:"model" yaml:"model"`
	Temperature *float64 `toml:"temperature" yaml:"temperature"`
}

// ServerConfig is the HTTP backend configuration.
type ServerConfig struct {
	Host      string `toml:"host" yaml:"host"`
	Port      int    `toml:"port" yaml:"port"`
	StaticDir string `toml:"static_dir" yaml:"static_dir"`
}

// ClientConfig is used by the chat, ask and route commands.
type ClientConfig struct {
	BackendURL  string `toml:"backend_url" yaml:"backend_url"`
	Location    string `toml:"location" yaml:"location"` // "lat,lng"
	Address     string `toml:"address" yaml:"address"`   // geocoded when Location is empty
	MultiMarker bool   `toml:"multi_marker" yaml:"multi_marker"`
	LogFile     string `toml:"log_file" yaml:"log_file"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: ProviderOllama,
			BaseURL:  "http://localhost:11434/v1",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Client: ClientConfig{
			BackendURL: "http://localhost:8000",
		},
	}
}

// Default models per provider, used when LLMConfig.Model is empty.
var defaultModels = map[string]string{
	ProviderOllama:    "llama3",
	ProviderGemini:    "gemini-2.0-flash",
	ProviderAnthropic: "claude-3-7-sonnet-latest",
}

// ModelOrDefault is the configured model, or the provider's default.
func (c LLMConfig) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// Addr is the listen address of the server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// MapsConfigured reports whether a Google Maps key is set.
func (c *Config) MapsConfigured() bool {
	return c.GoogleMapsAPIKey != ""
}

// LLMConfigured reports whether the selected provider has what it needs.
func (c *Config) LLMConfigured() bool {
	switch c.LLM.Provider {
	case ProviderOllama:
		return c.LLM.BaseURL != ""
	case ProviderGemini, ProviderAnthropic:
		return c.LLM.APIKey != ""
	}
	return false
}

// Validate checks values that cannot be used as given.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOllama, ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	return nil
}

// Load builds a Config from defaults, the file at path (skipped when path is
// empty) and the process environment.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode toml config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode yaml config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q", filepath.Ext(path))
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("GOOGLE_MAPS_API_KEY", &cfg.GoogleMapsAPIKey)
	str("LLM_PROVIDER", &cfg.LLM.Provider)
	str("LLM_BASE_URL", &cfg.LLM.BaseURL)
	str("LLM_API_KEY", &cfg.LLM.APIKey)
	str("LLM_MODEL", &cfg.LLM.Model)
	str("APP_HOST", &cfg.Server.Host)
	str("STATIC_DIR", &cfg.Server.StaticDir)
	str("WAYFINDER_BACKEND_URL", &cfg.Client.BackendURL)

	if v, ok := lookup("APP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse APP_PORT: %w", err)
		}
		cfg.Server.Port = port
	}

	if v, ok := lookup("DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse DEBUG: %w", err)
		}
		cfg.Debug = debug
	}

	return nil
}
