// Package panel implements the team roadmap panel: loading a team's
// roadmaps, classifying them, and reconciling add/remove/customize
// operations with the remote resource configuration.
package panel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

// API is the subset of the remote API the panel depends on.
// *platform.Client implements it.
type API interface {
	GetTeam(ctx context.Context, teamID string) (*models.Team, error)
	GetTeamResourceConfig(ctx context.Context, teamID string) (models.TeamResourceConfig, error)
	ListPages(ctx context.Context) ([]models.CatalogRoadmap, error)
	UpdateTeamResourceConfig(ctx context.Context, teamID, resourceID string, removed []string) (models.TeamResourceConfig, error)
	DeleteTeamResourceConfig(ctx context.Context, teamID, resourceID string) (models.TeamResourceConfig, error)
	CreateRoadmap(ctx context.Context, req models.CreateRoadmapRequest) (string, error)
}

// Options configures a Panel.
type Options struct {
	EditorURL string // base URL for editing custom roadmaps
	Notifier  Notifier
	Logger    *slog.Logger
}

// Panel holds the cached state for one team's roadmaps. Remote calls run
// without holding the lock; every server response replaces the cached
// config wholesale, so the last call to complete wins.
type Panel struct {
	api       API
	notifier  Notifier
	logger    *slog.Logger
	editorURL string

	mu             sync.RWMutex
	teamID         string
	generation     uint64
	loading        bool
	ready          bool
	terminated     bool
	inFlight       int
	team           *models.Team
	resources      models.TeamResourceConfig
	catalog        []models.CatalogRoadmap
	pendingRemoval string
	modals         Modals
	// claimed holds created roadmap IDs already being added, so the direct
	// create path and the event stream add each one once.
	claimed map[string]bool
}

// New creates a Panel. Call Open to load a team.
func New(api API, opts Options) *Panel {
	p := &Panel{
		api:       api,
		notifier:  opts.Notifier,
		logger:    opts.Logger,
		editorURL: opts.EditorURL,
	}
	if p.notifier == nil {
		p.notifier = LogNotifier{Logger: opts.Logger}
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// State is a point-in-time copy of the panel for rendering.
type State struct {
	TeamID         string
	Team           *models.Team
	Resources      models.TeamResourceConfig
	Catalog        []models.CatalogRoadmap
	Loading        bool
	Ready          bool
	Terminated     bool
	Busy           bool
	PendingRemoval string
	Modal          Modal
}

// CanManage reports whether the loaded team grants management permission.
func (s State) CanManage() bool {
	return s.Team.CanManage()
}

// Snapshot returns a copy of the current state.
func (p *Panel) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var team *models.Team
	if p.team != nil {
		cp := *p.team
		team = &cp
	}
	return State{
		TeamID:         p.teamID,
		Team:           team,
		Resources:      p.resources.Clone(),
		Catalog:        append([]models.CatalogRoadmap(nil), p.catalog...),
		Loading:        p.loading,
		Ready:          p.ready,
		Terminated:     p.terminated,
		Busy:           p.inFlight > 0,
		PendingRemoval: p.pendingRemoval,
		Modal:          p.modals.Current(),
	}
}

// EditorURL returns the base URL custom roadmaps are edited at.
func (p *Panel) EditorURL() string { return p.editorURL }

// Resources returns a copy of the cached config.
func (p *Panel) Resources() models.TeamResourceConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.resources.Clone()
}

// Modal returns the active modal.
func (p *Panel) Modal() Modal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modals.Current()
}

// OpenPicker shows the add-roadmap option picker.
func (p *Panel) OpenPicker() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modals.OpenPicker()
}

// ChooseExisting continues from the picker to the catalog roadmap list.
func (p *Panel) ChooseExisting() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modals.ChooseExisting()
}

// ChooseCustom continues from the picker to the custom roadmap form.
func (p *Panel) ChooseCustom() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modals.ChooseCustom()
}

// CloseModal dismisses whichever modal is open.
func (p *Panel) CloseModal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modals.Close()
}
