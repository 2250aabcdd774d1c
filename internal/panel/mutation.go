package panel

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

// begin marks a mutation in flight and returns the team it targets.
func (p *Panel) begin(requireTeam bool) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.teamID == "" || (requireTeam && p.team == nil) {
		return "", ErrNoTeam
	}
	p.inFlight++
	return p.teamID, nil
}

func (p *Panel) end() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight--
}

// Add assigns a roadmap to the team. It does nothing and returns ErrNoTeam
// when no team is known. On failure the cached config is left as it was.
func (p *Panel) Add(ctx context.Context, resourceID string) error {
	teamID, err := p.begin(false)
	if err != nil {
		return err
	}
	defer p.end()

	p.notifier.Loading("Adding roadmap")
	cfg, err := p.api.UpdateTeamResourceConfig(ctx, teamID, resourceID, nil)
	if err == nil && cfg == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		p.notifier.Error(userMessage(err, "Error adding roadmap"))
		return fmt.Errorf("adding roadmap %s: %w", resourceID, err)
	}

	p.replaceConfig(teamID, cfg)
	p.notifier.Success("Roadmap added")
	return nil
}

// RequestRemoval marks a roadmap as awaiting confirmation. Only one roadmap
// can be pending; requesting another replaces it.
func (p *Panel) RequestRemoval(resourceID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.resources.Find(resourceID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownResource, resourceID)
	}
	p.pendingRemoval = resourceID
	return nil
}

// CancelRemoval clears the pending confirmation.
func (p *Panel) CancelRemoval() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingRemoval = ""
}

// PendingRemoval returns the roadmap awaiting confirmation, or "".
func (p *Panel) PendingRemoval() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pendingRemoval
}

// ConfirmRemoval removes the roadmap pending confirmation. On failure the
// cached config and the pending mark are kept so the user can retry.
func (p *Panel) ConfirmRemoval(ctx context.Context) error {
	p.mu.RLock()
	resourceID := p.pendingRemoval
	p.mu.RUnlock()
	if resourceID == "" {
		return ErrNoPendingRemoval
	}
	return p.remove(ctx, resourceID)
}

func (p *Panel) remove(ctx context.Context, resourceID string) error {
	teamID, err := p.begin(true)
	if err != nil {
		return err
	}
	defer p.end()

	p.notifier.Loading("Deleting roadmap")
	cfg, err := p.api.DeleteTeamResourceConfig(ctx, teamID, resourceID)
	if err == nil && cfg == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		p.notifier.Error(userMessage(err, "Something went wrong"))
		return fmt.Errorf("removing roadmap %s: %w", resourceID, err)
	}

	if p.replaceConfig(teamID, cfg) {
		p.mu.Lock()
		if p.pendingRemoval == resourceID {
			p.pendingRemoval = ""
		}
		p.mu.Unlock()
	}
	p.notifier.Success("Roadmap removed")
	return nil
}

// Customize starts customizing a roadmap. Default roadmaps open the
// customization modal and clear any pending removal. Custom roadmaps are
// edited externally: no modal opens and the editor URL is returned instead.
func (p *Panel) Customize(resourceID string) (editorURL string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.resources.Find(resourceID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownResource, resourceID)
	}
	if entry.IsCustomResource {
		return p.editorLink(resourceID), nil
	}
	p.pendingRemoval = ""
	p.modals.Customize(resourceID)
	return "", nil
}

// RemovedTopics returns the topics currently hidden for a roadmap.
func (p *Panel) RemovedTopics(resourceID string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	entry, ok := p.resources.Find(resourceID)
	if !ok || len(entry.Removed) == 0 {
		return []string{}
	}
	return append([]string(nil), entry.Removed...)
}

// SaveCustomization stores the removed topics of the roadmap being
// customized and closes the modal. On failure the modal stays open.
func (p *Panel) SaveCustomization(ctx context.Context, removed []string) error {
	p.mu.RLock()
	modal := p.modals.Current()
	p.mu.RUnlock()
	if modal.Kind != ModalCustomizingExisting {
		return fmt.Errorf("%w: save from %s", ErrInvalidTransition, modal)
	}

	teamID, err := p.begin(true)
	if err != nil {
		return err
	}
	defer p.end()

	p.notifier.Loading("Updating roadmap")
	cfg, err := p.api.UpdateTeamResourceConfig(ctx, teamID, modal.ResourceID, removed)
	if err == nil && cfg == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		p.notifier.Error(userMessage(err, "Error updating roadmap"))
		return fmt.Errorf("customizing roadmap %s: %w", modal.ResourceID, err)
	}
	p.ApplyConfig(teamID, cfg)
	p.notifier.Success("Roadmap updated")
	return nil
}

// ApplyConfig accepts a full config produced by an external customization
// flow and closes the customization modal.
func (p *Panel) ApplyConfig(teamID string, cfg models.TeamResourceConfig) {
	if !p.replaceConfig(teamID, cfg) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.modals.Current().Kind == ModalCustomizingExisting {
		p.modals.Close()
	}
}

// CreateCustom creates an empty custom roadmap for the team from the
// create-custom modal, then handles it like any other created roadmap.
func (p *Panel) CreateCustom(ctx context.Context, title, description string) (string, error) {
	p.mu.RLock()
	modal := p.modals.Current()
	teamID := p.teamID
	p.mu.RUnlock()
	if modal.Kind != ModalCreatingCustom {
		return "", fmt.Errorf("%w: create from %s", ErrInvalidTransition, modal)
	}
	if teamID == "" {
		return "", ErrNoTeam
	}
	title = strings.TrimSpace(title)
	if title == "" {
		p.notifier.Error("Title is required")
		return "", fmt.Errorf("creating roadmap: title is required")
	}

	p.notifier.Loading("Creating roadmap")
	roadmapID, err := p.api.CreateRoadmap(ctx, models.CreateRoadmapRequest{
		Title:       title,
		Description: description,
		Type:        "role",
		TeamID:      teamID,
	})
	if err != nil {
		p.notifier.Error(userMessage(err, "Error creating roadmap"))
		return "", fmt.Errorf("creating roadmap: %w", err)
	}

	err = p.HandleCreated(ctx, roadmapID)
	p.OnCustomCreated(ctx)
	return roadmapID, err
}

// OnCustomCreated finishes the create-custom flow: it reloads the team
// config and closes the create modal.
func (p *Panel) OnCustomCreated(ctx context.Context) {
	if err := p.ReloadConfig(ctx); err != nil {
		p.logger.Warn("reloading config after create", "error", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.modals.Current().Kind == ModalCreatingCustom {
		p.modals.Close()
	}
}

// HandleCreated reacts to a newly created custom roadmap by refreshing the
// catalog and adding the roadmap to the team. An empty ID is ignored, as is
// a roadmap that is already assigned or already being added.
func (p *Panel) HandleCreated(ctx context.Context, roadmapID string) error {
	if roadmapID == "" || !p.claim(roadmapID) {
		return nil
	}
	var g errgroup.Group
	g.Go(func() error {
		if err := p.RefreshCatalog(ctx); err != nil {
			p.logger.Warn("refreshing catalog after create", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		return p.Add(ctx, roadmapID)
	})
	if err := g.Wait(); err != nil {
		p.release(roadmapID)
		return err
	}
	return nil
}

// claim reserves roadmapID for adding. It reports false when the roadmap is
// already in the cached config or claimed by another caller.
func (p *Panel) claim(roadmapID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.resources.Find(roadmapID); ok {
		p.logger.Debug("created roadmap already assigned", "roadmap", roadmapID)
		return false
	}
	if p.claimed[roadmapID] {
		p.logger.Debug("created roadmap already being added", "roadmap", roadmapID)
		return false
	}
	if p.claimed == nil {
		p.claimed = make(map[string]bool)
	}
	p.claimed[roadmapID] = true
	return true
}

func (p *Panel) release(roadmapID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.claimed, roadmapID)
}

// Watch handles custom-roadmap-created events until ctx ends or events is
// closed.
func (p *Panel) Watch(ctx context.Context, events <-chan models.TeamEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type != models.EventCustomRoadmapCreated {
				continue
			}
			if err := p.HandleCreated(ctx, ev.RoadmapID); err != nil {
				p.logger.Warn("handling created roadmap", "roadmap", ev.RoadmapID, "error", err)
			}
		}
	}
}

func (p *Panel) editorLink(resourceID string) string {
	return strings.TrimRight(p.editorURL, "/") + "/" + resourceID
}
