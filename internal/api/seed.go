package api

import (
	"fmt"

	"github.com/rflorenc/teamroadmaps/internal/config"
	"github.com/rflorenc/teamroadmaps/internal/models"
)

// DefaultSeed is the dataset served when the config file has none.
func DefaultSeed() config.Seed {
	topics := 14
	return config.Seed{
		Teams: []models.Team{
			{ID: "demo", Name: "Demo Team", Type: "company", Role: models.RoleAdmin},
			{ID: "readonly", Name: "Read-only Team", Type: "study_group", Role: models.RoleMember},
		},
		Pages: []models.CatalogRoadmap{
			{ID: "frontend", URL: "/frontend", Title: "Frontend", Group: models.CatalogGroupRoadmaps},
			{ID: "backend", URL: "/backend", Title: "Backend", Group: models.CatalogGroupRoadmaps},
			{ID: "devops", URL: "/devops", Title: "DevOps", Group: models.CatalogGroupRoadmaps},
			{ID: "android", URL: "/android", Title: "Android", Group: models.CatalogGroupRoadmaps},
			{ID: "golang", URL: "/golang", Title: "Go", Group: models.CatalogGroupRoadmaps},
			{ID: "react", URL: "/react", Title: "React", Group: models.CatalogGroupRoadmaps},
			{ID: "system-design", URL: "/system-design", Title: "System Design", Group: "Best Practices"},
		},
		Roadmaps: []models.CustomRoadmap{
			{ID: "onboarding", Title: "Team Onboarding", TeamID: "demo", Visibility: models.VisibilityTeam, Topics: &topics},
		},
		Configs: map[string]models.TeamResourceConfig{
			"demo": {
				{ResourceID: "frontend", ResourceType: models.ResourceTypeRoadmap, Title: "Frontend",
					Visibility: models.VisibilityPublic, Removed: []string{"css-frameworks", "web-components"}},
				{ResourceID: "onboarding", ResourceType: models.ResourceTypeRoadmap, Title: "Team Onboarding",
					Visibility: models.VisibilityTeam, IsCustomResource: true, Topics: &topics, Removed: []string{}},
			},
		},
	}
}

// SeedStore loads seed data into store. Configs may only reference seeded teams.
func SeedStore(store *models.TeamStore, seed config.Seed) error {
	for i := range seed.Teams {
		t := seed.Teams[i]
		store.PutTeam(&t)
	}
	store.SetPages(seed.Pages)
	for i := range seed.Roadmaps {
		r := seed.Roadmaps[i]
		store.PutRoadmap(&r)
	}
	for teamID, cfg := range seed.Configs {
		if err := store.SetConfig(teamID, cfg); err != nil {
			return fmt.Errorf("seeding config for %s: %w", teamID, err)
		}
	}
	return nil
}
