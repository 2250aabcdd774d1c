package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrResourceNotFound = errors.New("resource not found")
)

// TeamStore is an in-memory thread-safe store backing the dev server.
// It owns teams, their resource configs, the catalog and custom roadmaps.
type TeamStore struct {
	mu       sync.RWMutex
	teams    map[string]*Team
	configs  map[string]TeamResourceConfig
	pages    []CatalogRoadmap
	roadmaps map[string]*CustomRoadmap
}

// NewTeamStore creates an empty store.
func NewTeamStore() *TeamStore {
	return &TeamStore{
		teams:    make(map[string]*Team),
		configs:  make(map[string]TeamResourceConfig),
		roadmaps: make(map[string]*CustomRoadmap),
	}
}

// PutTeam adds or replaces a team, assigning it an ID if it has none.
func (s *TeamStore) PutTeam(t *Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	s.teams[t.ID] = t
	if _, ok := s.configs[t.ID]; !ok {
		s.configs[t.ID] = TeamResourceConfig{}
	}
}

// GetTeam returns a copy of a team by ID, or nil if not found.
func (s *TeamStore) GetTeam(id string) *Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

// SetPages replaces the catalog.
func (s *TeamStore) SetPages(pages []CatalogRoadmap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = append([]CatalogRoadmap(nil), pages...)
}

// Pages returns the full catalog.
func (s *TeamStore) Pages() []CatalogRoadmap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CatalogRoadmap(nil), s.pages...)
}

// PutRoadmap adds or replaces a custom roadmap.
func (s *TeamStore) PutRoadmap(r *CustomRoadmap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	s.roadmaps[r.ID] = r
}

// CreateRoadmap registers a new, unauthored custom roadmap.
func (s *TeamStore) CreateRoadmap(req CreateRoadmapRequest) (*CustomRoadmap, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	r := &CustomRoadmap{
		ID:          uuid.New().String(),
		Title:       title,
		Description: req.Description,
		TeamID:      req.TeamID,
		Visibility:  VisibilityMe,
	}
	if req.TeamID != "" {
		r.Visibility = VisibilityTeam
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.TeamID != "" {
		if _, ok := s.teams[req.TeamID]; !ok {
			return nil, ErrTeamNotFound
		}
	}
	s.roadmaps[r.ID] = r
	cp := *r
	return &cp, nil
}

// Config returns a copy of a team's resource config.
func (s *TeamStore) Config(teamID string) (TeamResourceConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[teamID]
	if !ok {
		return nil, ErrTeamNotFound
	}
	return cfg.Clone(), nil
}

// SetConfig replaces a team's resource config. Used for seeding.
func (s *TeamStore) SetConfig(teamID string, cfg TeamResourceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[teamID]; !ok {
		return ErrTeamNotFound
	}
	s.configs[teamID] = cfg.Clone()
	return nil
}

// UpsertResource adds a roadmap to a team or updates its removed topics,
// returning the full updated config.
func (s *TeamStore) UpsertResource(teamID, resourceID string, removed []string) (TeamResourceConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[teamID]
	if !ok {
		return nil, ErrTeamNotFound
	}
	if removed == nil {
		removed = []string{}
	}

	for i := range cfg {
		if cfg[i].ResourceID == resourceID {
			cfg[i].Removed = append([]string(nil), removed...)
			return cfg.Clone(), nil
		}
	}

	entry, err := s.resolveEntry(resourceID)
	if err != nil {
		return nil, err
	}
	entry.Removed = append([]string(nil), removed...)
	cfg = append(cfg, entry)
	s.configs[teamID] = cfg
	return cfg.Clone(), nil
}

// DeleteResource removes a roadmap from a team, returning the full updated config.
// Deleting an absent resource is not an error.
func (s *TeamStore) DeleteResource(teamID, resourceID string) (TeamResourceConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.configs[teamID]
	if !ok {
		return nil, ErrTeamNotFound
	}
	out := make(TeamResourceConfig, 0, len(cfg))
	for _, e := range cfg {
		if e.ResourceID != resourceID {
			out = append(out, e)
		}
	}
	s.configs[teamID] = out
	return out.Clone(), nil
}

// resolveEntry builds a config entry from a custom roadmap or a catalog page.
// Caller must hold s.mu.
func (s *TeamStore) resolveEntry(resourceID string) (ResourceConfigEntry, error) {
	if r, ok := s.roadmaps[resourceID]; ok {
		entry := ResourceConfigEntry{
			ResourceID:       r.ID,
			ResourceType:     ResourceTypeRoadmap,
			Title:            r.Title,
			Visibility:       r.Visibility,
			IsCustomResource: true,
		}
		if r.Topics != nil {
			n := *r.Topics
			entry.Topics = &n
		}
		return entry, nil
	}
	for _, p := range s.pages {
		if p.ID == resourceID && p.Group == CatalogGroupRoadmaps {
			return ResourceConfigEntry{
				ResourceID:   p.ID,
				ResourceType: ResourceTypeRoadmap,
				Title:        p.Title,
				Visibility:   VisibilityPublic,
			}, nil
		}
	}
	return ResourceConfigEntry{}, fmt.Errorf("%w: %s", ErrResourceNotFound, resourceID)
}
