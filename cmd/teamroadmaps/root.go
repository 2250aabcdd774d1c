package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rflorenc/teamroadmaps/internal/config"
	"github.com/rflorenc/teamroadmaps/internal/panel"
	"github.com/rflorenc/teamroadmaps/internal/platform"
)

// app is the state shared by every subcommand.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "teamroadmaps",
		Short:         "Manage the roadmaps assigned to a team",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Load(cmd.Flags()); err != nil {
				return err
			}
			a.logger = a.cfg.NewLogger(cmd.ErrOrStderr())
			slog.SetDefault(a.logger)
			return nil
		},
	}
	a.cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newCustomizeCmd(a),
		newCreateCmd(a),
		newWatchCmd(a),
		newTUICmd(a),
	)
	return root
}

var errNoTeam = errors.New("no team selected: pass --team or set team_id in the config file")

// newPanel builds a panel over the remote API without loading anything.
func (a *app) newPanel(n panel.Notifier) (*panel.Panel, *platform.Client, error) {
	if a.cfg.TeamID == "" {
		return nil, nil, errNoTeam
	}
	if n == nil {
		n = panel.LogNotifier{Logger: a.logger}
	}
	client := platform.NewClient(&a.cfg, a.logger)
	p := panel.New(client, panel.Options{
		EditorURL: a.cfg.EditorURL,
		Notifier:  n,
		Logger:    a.logger,
	})
	return p, client, nil
}

// openPanel builds a panel and loads the configured team.
func (a *app) openPanel(ctx context.Context) (*panel.Panel, *platform.Client, error) {
	p, client, err := a.newPanel(nil)
	if err != nil {
		return nil, nil, err
	}
	if err := p.Open(ctx, a.cfg.TeamID); err != nil {
		return nil, nil, err
	}
	return p, client, nil
}
