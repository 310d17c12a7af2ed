package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/wayfinder/cmd/wayfinder/askcmder"
	"github.com/papercomputeco/wayfinder/cmd/wayfinder/chatcmder"
	"github.com/papercomputeco/wayfinder/cmd/wayfinder/cliconfig"
	"github.com/papercomputeco/wayfinder/cmd/wayfinder/routecmder"
	"github.com/papercomputeco/wayfinder/cmd/wayfinder/servecmder"
)

const rootLongDesc string = `wayfinder is a location assistant.

The server pairs an LLM with Google Maps place search and directions;
the chat client shows answers, place cards and map embeds in your
terminal.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wayfinder",
		Short:         "LLM location assistant backed by Google Maps",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cliconfig.AddPersistentFlags(cmd)

	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(routecmder.NewRouteCmd())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
