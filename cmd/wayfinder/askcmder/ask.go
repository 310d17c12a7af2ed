package askcmder

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/wayfinder/client"
	"github.com/papercomputeco/wayfinder/cmd/wayfinder/cliconfig"
	"github.com/papercomputeco/wayfinder/pkg/logger"
)

const askLongDesc string = `Send a single message to the assistant and print the answer.

Place results are listed with their details and a map embed URL.

Examples:
  wayfinder ask "best ramen nearby" --location 35.6762,139.6503
  wayfinder ask --backend http://wayfinder.internal:8000 "museums in Paris"`

const askShortDesc string = "Ask the assistant one question"

type askCommander struct {
	flags cliconfig.ClientFlags
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, strings.Join(args, " "))
		},
	}

	cmder.flags.Register(cmd)

	return cmd
}

func (c *askCommander) run(ctx context.Context, cmd *cobra.Command, message string) error {
	cfg, _, err := cliconfig.Load(cmd)
	if err != nil {
		return err
	}
	c.flags.Apply(cmd, cfg)

	log := logger.NewWriterLogger(cmd.ErrOrStderr(), cfg.Debug)
	defer log.Sync()

	controller, err := cliconfig.NewController(cfg, client.NewTextPresenter(cmd.OutOrStdout()), log)
	if err != nil {
		return err
	}
	controller.Start(ctx)

	return controller.Send(ctx, message)
}
