package panel

import (
	"context"
	"sync"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

type call struct {
	Method     string
	TeamID     string
	ResourceID string
	Removed    []string
}

// fakeAPI is an in-memory API with injectable failures.
type fakeAPI struct {
	mu      sync.Mutex
	team    *models.Team
	config  models.TeamResourceConfig
	pages   []models.CatalogRoadmap
	created string

	teamErr, configErr, pagesErr    error
	updateErr, deleteErr, createErr error

	// gate, when set, blocks GetTeam until closed.
	gate chan struct{}
	// updateGates block Update and Delete for a resource until closed.
	updateGates map[string]chan struct{}
	// replies, when set for a resource, is returned by Update instead of
	// the fake's own config.
	replies map[string]models.TeamResourceConfig
	calls   []call
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		team: &models.Team{ID: "team-1", Name: "Platform", Role: models.RoleAdmin},
		config: models.TeamResourceConfig{
			{ResourceID: "frontend", ResourceType: "roadmap", Title: "Frontend", Removed: []string{}},
		},
		pages: []models.CatalogRoadmap{
			{ID: "frontend", Title: "Frontend", Group: "Roadmaps"},
			{ID: "backend", Title: "Backend", Group: "Roadmaps"},
			{ID: "android", Title: "Android", Group: "Roadmaps"},
			{ID: "react", Title: "React", Group: "Skills"},
		},
	}
}

func (f *fakeAPI) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) Calls(method string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// hold makes Update and Delete for resourceID block until the returned
// func is called.
func (f *fakeAPI) hold(resourceID string) (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateGates == nil {
		f.updateGates = make(map[string]chan struct{})
	}
	gate := make(chan struct{})
	f.updateGates[resourceID] = gate
	return func() { close(gate) }
}

func (f *fakeAPI) wait(resourceID string) {
	f.mu.Lock()
	gate := f.updateGates[resourceID]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (f *fakeAPI) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	f.record(call{Method: "GetTeam", TeamID: teamID})
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.teamErr != nil {
		return nil, f.teamErr
	}
	t := *f.team
	t.ID = teamID
	return &t, nil
}

func (f *fakeAPI) GetTeamResourceConfig(ctx context.Context, teamID string) (models.TeamResourceConfig, error) {
	f.record(call{Method: "GetTeamResourceConfig", TeamID: teamID})
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.configErr != nil {
		return nil, f.configErr
	}
	return f.config.Clone(), nil
}

func (f *fakeAPI) ListPages(ctx context.Context) ([]models.CatalogRoadmap, error) {
	f.record(call{Method: "ListPages"})
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pagesErr != nil {
		return nil, f.pagesErr
	}
	return append([]models.CatalogRoadmap(nil), f.pages...), nil
}

func (f *fakeAPI) UpdateTeamResourceConfig(ctx context.Context, teamID, resourceID string, removed []string) (models.TeamResourceConfig, error) {
	f.record(call{Method: "Update", TeamID: teamID, ResourceID: resourceID, Removed: removed})
	f.wait(resourceID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if reply, ok := f.replies[resourceID]; ok {
		return reply.Clone(), nil
	}
	if removed == nil {
		removed = []string{}
	}
	for i := range f.config {
		if f.config[i].ResourceID == resourceID {
			f.config[i].Removed = removed
			return f.config.Clone(), nil
		}
	}
	title := resourceID
	for _, p := range f.pages {
		if p.ID == resourceID {
			title = p.Title
		}
	}
	f.config = append(f.config, models.ResourceConfigEntry{
		ResourceID:       resourceID,
		ResourceType:     "roadmap",
		Title:            title,
		IsCustomResource: resourceID == f.created,
		Removed:          removed,
	})
	return f.config.Clone(), nil
}

func (f *fakeAPI) DeleteTeamResourceConfig(ctx context.Context, teamID, resourceID string) (models.TeamResourceConfig, error) {
	f.record(call{Method: "Delete", TeamID: teamID, ResourceID: resourceID})
	f.wait(resourceID)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	out := models.TeamResourceConfig{}
	for _, e := range f.config {
		if e.ResourceID != resourceID {
			out = append(out, e)
		}
	}
	f.config = out
	return f.config.Clone(), nil
}

func (f *fakeAPI) CreateRoadmap(ctx context.Context, req models.CreateRoadmapRequest) (string, error) {
	f.record(call{Method: "CreateRoadmap", TeamID: req.TeamID})
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = "custom-1"
	f.pages = append(f.pages, models.CatalogRoadmap{ID: f.created, Title: req.Title, Group: "Roadmaps"})
	return f.created, nil
}

// newOpenPanel returns a panel that has loaded team-1 from api.
func newOpenPanel(api *fakeAPI) (*Panel, *Recorder) {
	rec := &Recorder{}
	p := New(api, Options{EditorURL: "https://editor.test/r", Notifier: rec})
	if err := p.Open(context.Background(), "team-1"); err != nil {
		panic(err)
	}
	return p, rec
}

func intPtr(n int) *int { return &n }
