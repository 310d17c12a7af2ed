package chatcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/papercomputeco/wayfinder/client"
	"github.com/papercomputeco/wayfinder/client/tui"
	"github.com/papercomputeco/wayfinder/cmd/wayfinder/cliconfig"
	"github.com/papercomputeco/wayfinder/pkg/config"
	"github.com/papercomputeco/wayfinder/pkg/logger"
)

const chatLongDesc string = `Chat with the wayfinder assistant.

Opens an interactive terminal UI when stdout is a terminal, otherwise
reads one message per line from stdin and prints plain text. Ask for
places, then type "/go N" for directions to place N. "/mode walking"
changes the travel mode.

Examples:
  wayfinder chat --location 40.7128,-74.0060
  wayfinder chat --address "Union Square, San Francisco"
  echo "coffee near me" | wayfinder chat -l 48.8566,2.3522`

const chatShortDesc string = "Chat with the location assistant"

type chatCommander struct {
	flags   cliconfig.ClientFlags
	logFile string
	plain   bool
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmder.flags.Register(cmd)
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Write logs to this file (the terminal UI discards them otherwise)")
	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Use plain line-based output even on a terminal")

	return cmd
}

func (c *chatCommander) run(ctx context.Context, cmd *cobra.Command) error {
	cfg, _, err := cliconfig.Load(cmd)
	if err != nil {
		return err
	}
	c.flags.Apply(cmd, cfg)
	if cmd.Flags().Changed("log-file") {
		cfg.Client.LogFile = c.logFile
	}

	interactive := !c.plain && isTerminal(cmd.OutOrStdout())

	log, closeLog, err := logger.NewFileLogger(cfg.Client.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	if !interactive {
		if cfg.Client.LogFile == "" {
			log = logger.NewWriterLogger(cmd.ErrOrStderr(), cfg.Debug)
		}
		return c.runPlain(ctx, cmd, cfg, log)
	}

	presenter := tui.NewPresenter()
	controller, err := cliconfig.NewController(cfg, presenter, log)
	if err != nil {
		return err
	}
	controller.Start(ctx)

	return tui.Run(ctx, controller, presenter)
}

func (c *chatCommander) runPlain(ctx context.Context, cmd *cobra.Command, cfg *config.Config, log *zap.Logger) error {
	out := cmd.OutOrStdout()
	controller, err := cliconfig.NewController(cfg, client.NewTextPresenter(out), log)
	if err != nil {
		return err
	}
	controller.Start(ctx)
	log.Debug("plain chat started", zap.String("backend", cfg.Client.BackendURL))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if done := handleLine(ctx, controller, out, line); done {
			return nil
		}
	}
	return scanner.Err()
}

// handleLine runs one input line. It reports whether the user asked to quit.
func handleLine(ctx context.Context, controller *client.Controller, out io.Writer, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true

	case "/go":
		if len(fields) != 2 {
			fmt.Fprintln(out, "Usage: /go N")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			fmt.Fprintln(out, "Place number must be 1 or more.")
			return false
		}
		if err := controller.SelectPlace(ctx, n-1); err != nil && !errors.Is(err, client.ErrNoLocation) {
			fmt.Fprintln(out, err)
		}
		return false

	case "/mode":
		if len(fields) != 2 {
			fmt.Fprintln(out, "Usage: /mode driving|walking|bicycling|transit")
			return false
		}
		if err := controller.SetMode(fields[1]); err != nil {
			fmt.Fprintln(out, err)
		}
		return false
	}

	// Failures already rendered the apology.
	_ = controller.Send(ctx, line)
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
