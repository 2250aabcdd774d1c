package panel

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

// Open loads team detail, resource config and the catalog concurrently and
// returns once all three have settled. An empty teamID is a no-op.
//
// A team detail failure is fatal: the panel is terminated and the returned
// error wraps ErrTeamUnavailable. Config and catalog failures leave their
// caches empty. Results of a superseded Open (the team changed while it was
// in flight) are discarded.
func (p *Panel) Open(ctx context.Context, teamID string) error {
	if teamID == "" {
		return nil
	}

	p.mu.Lock()
	p.generation++
	gen := p.generation
	if p.teamID != teamID {
		p.team = nil
		p.resources = nil
		p.pendingRemoval = ""
		p.claimed = nil
		p.modals.Close()
	}
	p.teamID = teamID
	p.loading = true
	p.ready = false
	p.terminated = false
	p.mu.Unlock()

	var (
		team    *models.Team
		cfg     models.TeamResourceConfig
		catalog []models.CatalogRoadmap
		cfgErr  error
		catErr  error
	)

	// Plain Group: a failing fetch must not cancel its siblings.
	var g errgroup.Group
	g.Go(func() error {
		t, err := p.api.GetTeam(ctx, teamID)
		if err == nil && t == nil {
			err = ErrEmptyResponse
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrTeamUnavailable, teamID, err)
		}
		team = t
		return nil
	})
	g.Go(func() error {
		cfg, cfgErr = p.api.GetTeamResourceConfig(ctx, teamID)
		return nil
	})
	g.Go(func() error {
		var pages []models.CatalogRoadmap
		pages, catErr = p.api.ListPages(ctx)
		if catErr == nil {
			catalog = RoadmapCatalog(pages)
		}
		return nil
	})
	teamErr := g.Wait()

	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		p.logger.Debug("discarding stale load", "team", teamID, "generation", gen)
		return nil
	}
	p.loading = false
	if teamErr != nil {
		p.terminated = true
		p.mu.Unlock()
		p.logger.Error("loading team", "team", teamID, "error", teamErr)
		p.notifier.Error("Error loading team")
		return teamErr
	}
	p.team = team
	p.ready = true
	if cfgErr == nil {
		p.resources = cfg.Clone()
	}
	if catErr == nil {
		p.catalog = catalog
	}
	p.mu.Unlock()

	if cfgErr != nil {
		p.logger.Warn("loading team resource config", "team", teamID, "error", cfgErr)
	}
	if catErr != nil {
		p.logger.Warn("loading roadmap catalog", "error", catErr)
		p.notifier.Error(userMessage(catErr, "Something went wrong"))
	}
	return nil
}

// RefreshCatalog reloads the roadmap catalog. On failure the previous
// catalog is kept.
func (p *Panel) RefreshCatalog(ctx context.Context) error {
	pages, err := p.api.ListPages(ctx)
	if err != nil {
		p.notifier.Error(userMessage(err, "Something went wrong"))
		return fmt.Errorf("loading catalog: %w", err)
	}
	catalog := RoadmapCatalog(pages)
	p.mu.Lock()
	p.catalog = catalog
	p.mu.Unlock()
	return nil
}

// ReloadConfig refetches the team's resource config. Failures are logged
// and leave the cache untouched.
func (p *Panel) ReloadConfig(ctx context.Context) error {
	p.mu.RLock()
	teamID := p.teamID
	p.mu.RUnlock()
	if teamID == "" {
		return ErrNoTeam
	}

	cfg, err := p.api.GetTeamResourceConfig(ctx, teamID)
	if err != nil {
		p.logger.Warn("reloading team resource config", "team", teamID, "error", err)
		return fmt.Errorf("reloading config: %w", err)
	}
	p.replaceConfig(teamID, cfg)
	return nil
}

// replaceConfig swaps in a server response if it still belongs to the
// current team. Reports whether the cache was replaced.
func (p *Panel) replaceConfig(teamID string, cfg models.TeamResourceConfig) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.teamID != teamID {
		p.logger.Debug("dropping config for previous team", "team", teamID)
		return false
	}
	if cfg == nil {
		cfg = models.TeamResourceConfig{}
	}
	p.resources = cfg.Clone()
	return true
}
