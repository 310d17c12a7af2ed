// Package cliconfig resolves wayfinder configuration for cobra commands and
// wires the chat client they share.
package cliconfig

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/wayfinder/client"
	"github.com/papercomputeco/wayfinder/pkg/config"
)

// Persistent flag names registered on the root command.
const (
	ConfigFlag = "config"
	DebugFlag  = "debug"
)

// AddPersistentFlags registers the flags every subcommand understands.
func AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(ConfigFlag, "c", "", "Path to a .toml or .yaml config file")
	cmd.PersistentFlags().Bool(DebugFlag, false, "Enable debug logging")
}

// Load reads the config named by --config, then applies --debug when set.
func Load(cmd *cobra.Command) (*config.Config, string, error) {
	path, err := cmd.Flags().GetString(ConfigFlag)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not load config: %w", err)
	}

	ApplyPersistent(cmd, cfg)
	return cfg, path, nil
}

// ApplyPersistent overrides cfg with the persistent flags that were set on
// cmd. Reloaded configs go through it again so flags keep winning.
func ApplyPersistent(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed(DebugFlag) {
		cfg.Debug, _ = cmd.Flags().GetBool(DebugFlag)
	}
}

// ClientFlags are the flags shared by chat, ask and route.
type ClientFlags struct {
	BackendURL  string
	Location    string
	Address     string
	MultiMarker bool
}

// Register adds the client flags to cmd.
func (f *ClientFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.BackendURL, "backend", "b", "", "wayfinder server URL (default from config)")
	cmd.Flags().StringVarP(&f.Location, "location", "l", "", "Your location as lat,lng")
	cmd.Flags().StringVar(&f.Address, "address", "", "Your location as an address, geocoded by the server")
	cmd.Flags().BoolVar(&f.MultiMarker, "multi-marker", false, "Embed every place marker in place maps")
}

// Apply overrides cfg with the flags that were set on cmd.
func (f *ClientFlags) Apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("backend") {
		cfg.Client.BackendURL = f.BackendURL
	}
	if cmd.Flags().Changed("location") {
		cfg.Client.Location = f.Location
	}
	if cmd.Flags().Changed("address") {
		cfg.Client.Address = f.Address
	}
	if cmd.Flags().Changed("multi-marker") {
		cfg.Client.MultiMarker = f.MultiMarker
	}
}

// NewController wires a chat controller for cfg rendering to presenter.
func NewController(cfg *config.Config, presenter client.Presenter, logger *zap.Logger) (*client.Controller, error) {
	transport := client.NewHTTPTransport(cfg.Client.BackendURL, logger)

	locator, err := client.NewLocator(cfg.Client.Location, cfg.Client.Address, transport)
	if err != nil {
		return nil, err
	}

	return client.NewController(
		client.NewSession(),
		transport,
		locator,
		presenter,
		logger,
		client.WithMultiMarker(cfg.Client.MultiMarker),
	), nil
}
