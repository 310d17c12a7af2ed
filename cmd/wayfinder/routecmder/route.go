package routecmder

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/wayfinder/client"
	"github.com/papercomputeco/wayfinder/cmd/wayfinder/cliconfig"
	"github.com/papercomputeco/wayfinder/pkg/logger"
)

const routeLongDesc string = `Print directions between two places.

With one argument the origin is your location (--location or --address).
Prints the route summary and a directions map embed URL.

Examples:
  wayfinder route "Central Park" --location 40.7128,-74.0060
  wayfinder route "Ferry Building, SF" "Coit Tower, SF" --mode walking`

const routeShortDesc string = "Get directions between two places"

type routeCommander struct {
	flags cliconfig.ClientFlags
	mode  string
}

func NewRouteCmd() *cobra.Command {
	cmder := &routeCommander{}

	cmd := &cobra.Command{
		Use:   "route [origin] <destination>",
		Short: routeShortDesc,
		Long:  routeLongDesc,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args)
		},
	}

	cmder.flags.Register(cmd)
	cmd.Flags().StringVar(&cmder.mode, "mode", "driving", "Travel mode: driving, walking, bicycling or transit")

	return cmd
}

func (c *routeCommander) run(ctx context.Context, cmd *cobra.Command, args []string) error {
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
	if err := controller.SetMode(c.mode); err != nil {
		return err
	}
	controller.Start(ctx)

	origin, destination := "", args[len(args)-1]
	if len(args) == 2 {
		origin = args[0]
	} else {
		at, ok := controller.Session().Location()
		if !ok {
			return fmt.Errorf("no origin given and %w; pass --location or --address", client.ErrNoLocation)
		}
		origin = at.String()
	}

	if err := controller.Route(ctx, origin, destination); err != nil {
		if errors.Is(err, client.ErrNoRoute) {
			return fmt.Errorf("no route from %q to %q", origin, destination)
		}
		return err
	}
	return nil
}
