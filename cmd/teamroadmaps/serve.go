package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rflorenc/teamroadmaps/internal/api"
	"github.com/rflorenc/teamroadmaps/internal/models"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the in-memory team API for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := a.cfg.Seed
			if len(seed.Teams) == 0 {
				seed = api.DefaultSeed()
				a.logger.Info("no seed in config, using demo data")
			}
			store := models.NewTeamStore()
			if err := api.SeedStore(store, seed); err != nil {
				return err
			}
			for _, t := range seed.Teams {
				cfg, _ := store.Config(t.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded team: %s (%s, role %s, %d roadmaps)\n", t.Name, t.ID, t.Role, len(cfg))
			}

			server := api.NewServer(store, a.logger)
			httpServer := &http.Server{
				Addr:              a.cfg.Listen,
				Handler:           api.NewRouter(server),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				fmt.Fprintf(cmd.OutOrStdout(), "Team roadmaps dev server %s starting on %s\n", version, a.cfg.Listen)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
}
