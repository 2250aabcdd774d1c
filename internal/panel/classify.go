package panel

import "github.com/rflorenc/teamroadmaps/internal/models"

// Groups partitions a team's roadmaps by kind. Each slice keeps the
// relative order of the input.
type Groups struct {
	Placeholder []models.ResourceConfigEntry // custom, not yet authored
	Custom      []models.ResourceConfigEntry // custom with topics
	Default     []models.ResourceConfigEntry // catalog roadmaps
}

// Classify splits cfg into disjoint groups whose union is cfg.
func Classify(cfg models.TeamResourceConfig) Groups {
	var g Groups
	for _, e := range cfg {
		switch {
		case !e.IsCustomResource:
			g.Default = append(g.Default, e)
		case e.Topics == nil:
			g.Placeholder = append(g.Placeholder, e)
		default:
			g.Custom = append(g.Custom, e)
		}
	}
	return g
}

// Len returns the total number of entries across all groups.
func (g Groups) Len() int {
	return len(g.Placeholder) + len(g.Custom) + len(g.Default)
}
