package servecmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/papercomputeco/wayfinder/cmd/wayfinder/cliconfig"
	"github.com/papercomputeco/wayfinder/pkg/config"
	"github.com/papercomputeco/wayfinder/pkg/logger"
	"github.com/papercomputeco/wayfinder/server"
)

const serveLongDesc string = `Run the wayfinder backend.

Serves the chat, places, directions and geocoding API, plus an MCP
endpoint at /mcp exposing the maps tools. Settings come from the
config file, then the environment (GOOGLE_MAPS_API_KEY, LLM_PROVIDER,
LLM_BASE_URL, LLM_API_KEY, LLM_MODEL, APP_HOST, APP_PORT, DEBUG,
STATIC_DIR), then flags. With --watch the config file is reloaded
when it changes.

Examples:
  wayfinder serve
  wayfinder serve --port 9000 --provider gemini
  wayfinder serve -c wayfinder.toml --watch`

const serveShortDesc string = "Run the wayfinder backend server"

type serveCommander struct {
	host      string
	port      int
	provider  string
	model     string
	staticDir string
	watch     bool
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().StringVar(&cmder.host, "host", "", "Address to bind (default 0.0.0.0)")
	cmd.Flags().IntVarP(&cmder.port, "port", "p", 0, "Port to listen on (default 8000)")
	cmd.Flags().StringVar(&cmder.provider, "provider", "", "LLM provider: ollama, gemini or anthropic")
	cmd.Flags().StringVarP(&cmder.model, "model", "m", "", "LLM model name")
	cmd.Flags().StringVar(&cmder.staticDir, "static", "", "Directory served at / and /static")
	cmd.Flags().BoolVarP(&cmder.watch, "watch", "w", false, "Reload the config file when it changes")

	return cmd
}

func (c *serveCommander) run(ctx context.Context, cmd *cobra.Command) error {
	cfg, path, err := cliconfig.Load(cmd)
	if err != nil {
		return err
	}
	c.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.watch && path == "" {
		return fmt.Errorf("--watch needs a config file (--config)")
	}

	log := logger.NewLogger(cfg.Debug)
	defer log.Sync()

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("could not create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	if c.watch {
		watcher, err := config.NewWatcher(path, func(next *config.Config) {
			// Flags keep winning over the reloaded file.
			cliconfig.ApplyPersistent(cmd, next)
			c.apply(cmd, next)
			if err := srv.Reload(gctx, next); err != nil {
				log.Error("could not apply reloaded config", zap.Error(err))
			}
		}, log)
		if err != nil {
			return err
		}

		g.Go(func() error {
			return watcher.Run(gctx)
		})
		log.Info("watching config file", zap.String("path", path))
	}

	g.Go(func() error {
		return srv.Run(gctx)
	})

	return g.Wait()
}

// apply overrides cfg with the flags that were set.
func (c *serveCommander) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = c.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = c.port
	}
	if cmd.Flags().Changed("provider") {
		cfg.LLM.Provider = c.provider
	}
	if cmd.Flags().Changed("model") {
		cfg.LLM.Model = c.model
	}
	if cmd.Flags().Changed("static") {
		cfg.Server.StaticDir = c.staticDir
	}
}
