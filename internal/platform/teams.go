package platform

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

// GetTeam fetches team detail.
func (c *Client) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	var team models.Team
	if err := c.Get(ctx, "/v1-get-team/"+url.PathEscape(teamID), &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// GetTeamResourceConfig fetches the team's roadmap list.
func (c *Client) GetTeamResourceConfig(ctx context.Context, teamID string) (models.TeamResourceConfig, error) {
	var cfg models.TeamResourceConfig
	if err := c.Get(ctx, "/v1-get-team-resource-config/"+url.PathEscape(teamID), &cfg); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = models.TeamResourceConfig{}
	}
	return cfg, nil
}

// ListPages fetches the full page catalog. Filtering to roadmaps is left to the caller.
func (c *Client) ListPages(ctx context.Context) ([]models.CatalogRoadmap, error) {
	var pages []models.CatalogRoadmap
	if err := c.do(ctx, http.MethodGet, c.catalogURL+"/pages.json", nil, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// UpdateTeamResourceConfig adds a roadmap to the team, or replaces the removed
// topics of one already there. Returns the full updated config.
func (c *Client) UpdateTeamResourceConfig(ctx context.Context, teamID, resourceID string, removed []string) (models.TeamResourceConfig, error) {
	if removed == nil {
		removed = []string{}
	}
	req := models.UpdateResourceRequest{
		TeamID:       teamID,
		ResourceID:   resourceID,
		ResourceType: models.ResourceTypeRoadmap,
		Removed:      removed,
	}
	var cfg models.TeamResourceConfig
	if err := c.Put(ctx, "/v1-update-team-resource-config/"+url.PathEscape(teamID), req, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DeleteTeamResourceConfig removes a roadmap from the team. Returns the full updated config.
func (c *Client) DeleteTeamResourceConfig(ctx context.Context, teamID, resourceID string) (models.TeamResourceConfig, error) {
	req := models.DeleteResourceRequest{
		ResourceID:   resourceID,
		ResourceType: models.ResourceTypeRoadmap,
	}
	var cfg models.TeamResourceConfig
	if err := c.Put(ctx, "/v1-delete-team-resource-config/"+url.PathEscape(teamID), req, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CreateRoadmap creates an empty custom roadmap and returns its ID.
func (c *Client) CreateRoadmap(ctx context.Context, req models.CreateRoadmapRequest) (string, error) {
	var resp models.CreateRoadmapResponse
	if err := c.Post(ctx, "/v1-create-roadmap", req, &resp); err != nil {
		return "", err
	}
	return resp.RoadmapID, nil
}
