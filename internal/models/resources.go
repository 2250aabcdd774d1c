package models

// ResourceTypeRoadmap is the only resource type managed by the panel.
const ResourceTypeRoadmap = "roadmap"

// CatalogGroupRoadmaps is the catalog group that holds roadmaps.
const CatalogGroupRoadmaps = "Roadmaps"

// Visibility controls who can see a custom roadmap.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityMe      Visibility = "me"
	VisibilityTeam    Visibility = "team"
	VisibilityFriends Visibility = "friends"
)

// Label returns the human-readable badge text for a visibility.
func (v Visibility) Label() string {
	switch v {
	case VisibilityPublic:
		return "Public"
	case VisibilityMe:
		return "Only me"
	case VisibilityTeam:
		return "Team can View"
	case VisibilityFriends:
		return "Friends"
	}
	return ""
}

// ResourceConfigEntry associates one roadmap with a team.
type ResourceConfigEntry struct {
	ResourceID       string     `json:"resourceId" yaml:"resource_id"`
	ResourceType     string     `json:"resourceType" yaml:"resource_type"`
	Title            string     `json:"title" yaml:"title"`
	Visibility       Visibility `json:"visibility,omitempty" yaml:"visibility"`
	IsCustomResource bool       `json:"isCustomResource" yaml:"is_custom_resource"`
	Topics           *int       `json:"topics,omitempty" yaml:"topics"` // nil until a custom roadmap is authored
	Removed          []string   `json:"removed" yaml:"removed"`
}

// IsPlaceholder reports whether the entry is a custom roadmap with no content yet.
func (e ResourceConfigEntry) IsPlaceholder() bool {
	return e.IsCustomResource && e.Topics == nil
}

// TeamResourceConfig is the ordered, server-owned list of a team's roadmaps.
type TeamResourceConfig []ResourceConfigEntry

// Find returns the entry with the given resource ID.
func (c TeamResourceConfig) Find(resourceID string) (ResourceConfigEntry, bool) {
	for _, e := range c {
		if e.ResourceID == resourceID {
			return e, true
		}
	}
	return ResourceConfigEntry{}, false
}

// Clone returns a deep copy so callers can't mutate cached state.
func (c TeamResourceConfig) Clone() TeamResourceConfig {
	if c == nil {
		return nil
	}
	out := make(TeamResourceConfig, len(c))
	for i, e := range c {
		out[i] = e
		if e.Topics != nil {
			n := *e.Topics
			out[i].Topics = &n
		}
		if e.Removed != nil {
			out[i].Removed = make([]string, len(e.Removed))
			copy(out[i].Removed, e.Removed)
		}
	}
	return out
}

// CatalogRoadmap is one page from the public catalog (pages.json).
type CatalogRoadmap struct {
	ID    string `json:"id" yaml:"id"`
	URL   string `json:"url,omitempty" yaml:"url"`
	Title string `json:"title" yaml:"title"`
	Group string `json:"group" yaml:"group"`
}

// CustomRoadmap is a team-authored roadmap known to the dev server.
type CustomRoadmap struct {
	ID          string     `json:"_id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description"`
	TeamID      string     `json:"teamId,omitempty" yaml:"team_id"`
	Visibility  Visibility `json:"visibility,omitempty" yaml:"visibility"`
	Topics      *int       `json:"topics,omitempty" yaml:"topics"`
}

// UpdateResourceRequest is the body of v1-update-team-resource-config.
type UpdateResourceRequest struct {
	TeamID       string   `json:"teamId"`
	ResourceID   string   `json:"resourceId"`
	ResourceType string   `json:"resourceType"`
	Removed      []string `json:"removed"`
}

// DeleteResourceRequest is the body of v1-delete-team-resource-config.
type DeleteResourceRequest struct {
	ResourceID   string `json:"resourceId"`
	ResourceType string `json:"resourceType"`
}

// CreateRoadmapRequest is the body of v1-create-roadmap.
type CreateRoadmapRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"` // "role" or "skill"
	TeamID      string `json:"teamId,omitempty"`
}

// CreateRoadmapResponse is returned by v1-create-roadmap.
type CreateRoadmapResponse struct {
	RoadmapID string `json:"roadmapId"`
}

// EventCustomRoadmapCreated is the event type broadcast after a custom roadmap is created.
const EventCustomRoadmapCreated = "custom-roadmap-created"

// TeamEvent is a frame on the team event stream.
type TeamEvent struct {
	Type      string `json:"type"`
	RoadmapID string `json:"roadmapId"`
}
