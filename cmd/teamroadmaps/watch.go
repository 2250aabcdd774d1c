package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Add custom roadmaps to the team as they are created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, client, err := a.openPanel(ctx)
			if err != nil {
				return err
			}
			events, err := client.SubscribeEvents(ctx, a.cfg.TeamID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Watching team %s, press Ctrl+C to stop\n", a.cfg.TeamID)
			p.Watch(ctx, events)
			return nil
		},
	}
}
