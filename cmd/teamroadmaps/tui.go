package main

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rflorenc/teamroadmaps/internal/config"
	"github.com/rflorenc/teamroadmaps/internal/models"
	"github.com/rflorenc/teamroadmaps/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var (
		logFile string
		noWatch bool
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Manage the team's roadmaps interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the UI; logs go to a file or nowhere.
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			a.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: config.ParseLevel(a.cfg.LogLevel)}))

			status := &tui.Status{}
			p, client, err := a.newPanel(status)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var events <-chan models.TeamEvent
			if !noWatch {
				events, err = client.SubscribeEvents(ctx, a.cfg.TeamID)
				if err != nil {
					a.logger.Warn("team events unavailable", "error", err)
					events = nil
				}
			}

			model := tui.New(ctx, p, tui.Options{
				TeamID: a.cfg.TeamID,
				Status: status,
				Events: events,
			})
			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(tui.Model); ok && m.Err() != nil {
				return m.Err()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not subscribe to team events")
	return cmd
}
