package panel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rflorenc/teamroadmaps/internal/models"
	"github.com/rflorenc/teamroadmaps/internal/platform"
)

func TestAdd_ReplacesWithServerConfig(t *testing.T) {
	api := newFakeAPI()
	p, rec := newOpenPanel(api)

	require.NoError(t, p.Add(context.Background(), "backend"))

	assert.Equal(t, api.config, p.Resources())
	assert.Equal(t, []Notification{
		{Kind: "loading", Message: "Adding roadmap"},
		{Kind: "success", Message: "Roadmap added"},
	}, rec.All())

	calls := api.Calls("Update")
	require.Len(t, calls, 1)
	assert.Equal(t, call{Method: "Update", TeamID: "team-1", ResourceID: "backend"}, calls[0])
}

func TestAdd_FailureLeavesStateUnchanged(t *testing.T) {
	api := newFakeAPI()
	p, rec := newOpenPanel(api)
	before := p.Resources()

	api.updateErr = &platform.APIError{Status: 400, Message: "Roadmap already added"}
	err := p.Add(context.Background(), "backend")

	require.Error(t, err)
	assert.Equal(t, before, p.Resources())
	assert.False(t, p.Snapshot().Busy)
	last, _ := rec.Last()
	assert.Equal(t, Notification{Kind: "error", Message: "Roadmap already added"}, last)
}

func TestAdd_FailureFallbackMessage(t *testing.T) {
	api := newFakeAPI()
	p, rec := newOpenPanel(api)
	api.updateErr = errors.New("timeout")

	require.Error(t, p.Add(context.Background(), "backend"))
	last, _ := rec.Last()
	assert.Equal(t, "Error adding roadmap", last.Message)
}

func TestAdd_NoTeamIsNoop(t *testing.T) {
	api := newFakeAPI()
	rec := &Recorder{}
	p := New(api, Options{Notifier: rec})

	assert.ErrorIs(t, p.Add(context.Background(), "backend"), ErrNoTeam)
	assert.Empty(t, api.Calls("Update"))
	assert.Empty(t, rec.All())
}

func TestAdd_UpdatesSelectedCount(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	n := len(p.Resources())
	assert.Equal(t, "1 roadmap(s) selected", p.View().Count)

	require.NoError(t, p.Add(context.Background(), "backend"))

	assert.Len(t, p.Resources(), n+1)
	assert.Equal(t, "2 roadmap(s) selected", p.View().Count)
}

func TestRemoval_RequiresConfirmation(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)

	assert.ErrorIs(t, p.ConfirmRemoval(context.Background()), ErrNoPendingRemoval)
	assert.Empty(t, api.Calls("Delete"))

	require.NoError(t, p.RequestRemoval("frontend"))
	p.CancelRemoval()
	assert.ErrorIs(t, p.ConfirmRemoval(context.Background()), ErrNoPendingRemoval)
	assert.Empty(t, api.Calls("Delete"))

	require.NoError(t, p.RequestRemoval("frontend"))
	require.NoError(t, p.ConfirmRemoval(context.Background()))

	require.Len(t, api.Calls("Delete"), 1)
	assert.Empty(t, p.Resources())
	assert.Empty(t, p.PendingRemoval())
}

func TestRemoval_SinglePendingEntry(t *testing.T) {
	api := newFakeAPI()
	api.config = append(api.config, models.ResourceConfigEntry{ResourceID: "backend", Title: "Backend"})
	p, _ := newOpenPanel(api)

	require.NoError(t, p.RequestRemoval("frontend"))
	require.NoError(t, p.RequestRemoval("backend"))
	assert.Equal(t, "backend", p.PendingRemoval())

	v := p.View()
	var pending []string
	for _, e := range v.All {
		if e.PendingRemoval {
			pending = append(pending, e.ResourceID)
		}
	}
	assert.Equal(t, []string{"backend"}, pending)
}

func TestRemoval_UnknownResource(t *testing.T) {
	p, _ := newOpenPanel(newFakeAPI())
	assert.ErrorIs(t, p.RequestRemoval("nope"), ErrUnknownResource)
	assert.Empty(t, p.PendingRemoval())
}

func TestRemoval_FailureKeepsStateAndPending(t *testing.T) {
	api := newFakeAPI()
	p, rec := newOpenPanel(api)
	before := p.Resources()
	api.deleteErr = errors.New("boom")

	require.NoError(t, p.RequestRemoval("frontend"))
	require.Error(t, p.ConfirmRemoval(context.Background()))

	assert.Equal(t, before, p.Resources())
	assert.Equal(t, "frontend", p.PendingRemoval())
	last, _ := rec.Last()
	assert.Equal(t, Notification{Kind: "error", Message: "Something went wrong"}, last)
}

func TestRemoval_ClearedOnTeamChange(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	require.NoError(t, p.RequestRemoval("frontend"))

	api.teamErr = errors.New("gone")
	require.Error(t, p.Open(context.Background(), "team-2"))

	assert.ErrorIs(t, p.ConfirmRemoval(context.Background()), ErrNoPendingRemoval)
	assert.Empty(t, api.Calls("Delete"))
}

func TestCustomize_DefaultRoadmapOpensModal(t *testing.T) {
	api := newFakeAPI()
	api.config[0].Removed = []string{"t1"}
	p, rec := newOpenPanel(api)
	require.NoError(t, p.RequestRemoval("frontend"))

	link, err := p.Customize("frontend")
	require.NoError(t, err)
	assert.Empty(t, link)
	assert.Equal(t, Modal{Kind: ModalCustomizingExisting, ResourceID: "frontend"}, p.Modal())
	assert.Empty(t, p.PendingRemoval(), "customizing clears a pending removal")
	assert.Equal(t, []string{"t1"}, p.RemovedTopics("frontend"))

	require.NoError(t, p.SaveCustomization(context.Background(), []string{"t1", "t2"}))

	assert.Equal(t, ModalIdle, p.Modal().Kind)
	entry, ok := p.Resources().Find("frontend")
	require.True(t, ok)
	assert.Equal(t, []string{"t1", "t2"}, entry.Removed)
	assert.Equal(t, "2 topics removed", EntryLabel(entry))
	last, _ := rec.Last()
	assert.Equal(t, Notification{Kind: "success", Message: "Roadmap updated"}, last)
}

func TestCustomize_FailureKeepsModalOpen(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	_, err := p.Customize("frontend")
	require.NoError(t, err)

	api.updateErr = errors.New("boom")
	require.Error(t, p.SaveCustomization(context.Background(), []string{"t1"}))

	assert.Equal(t, ModalCustomizingExisting, p.Modal().Kind)
	entry, _ := p.Resources().Find("frontend")
	assert.Empty(t, entry.Removed)
}

func TestCustomize_CustomRoadmapReturnsEditorLink(t *testing.T) {
	api := newFakeAPI()
	api.config = append(api.config, models.ResourceConfigEntry{ResourceID: "mine", IsCustomResource: true, Topics: intPtr(3)})
	p, _ := newOpenPanel(api)

	link, err := p.Customize("mine")
	require.NoError(t, err)
	assert.Equal(t, "https://editor.test/r/mine", link)
	assert.Equal(t, ModalIdle, p.Modal().Kind)
}

func TestSaveCustomization_RequiresModal(t *testing.T) {
	p, _ := newOpenPanel(newFakeAPI())
	assert.ErrorIs(t, p.SaveCustomization(context.Background(), nil), ErrInvalidTransition)
}

func TestApplyConfig_IgnoresOtherTeam(t *testing.T) {
	p, _ := newOpenPanel(newFakeAPI())
	before := p.Resources()

	p.ApplyConfig("team-other", models.TeamResourceConfig{})

	assert.Equal(t, before, p.Resources())
}

func TestHandleCreated_RefreshesCatalogAndAdds(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	api.pages = append(api.pages, models.CatalogRoadmap{ID: "new-one", Title: "Data", Group: "Roadmaps"})

	require.NoError(t, p.HandleCreated(context.Background(), "new-one"))

	assert.Len(t, api.Calls("ListPages"), 2)
	_, ok := p.Resources().Find("new-one")
	assert.True(t, ok)
	assert.Contains(t, titles(p.Snapshot().Catalog), "Data")
}

func TestHandleCreated_AlreadyAssignedIsSkipped(t *testing.T) {
	api := newFakeAPI()
	p, rec := newOpenPanel(api)
	before := len(rec.All())

	require.NoError(t, p.HandleCreated(context.Background(), "frontend"))

	assert.Empty(t, api.Calls("Update"))
	assert.Len(t, api.Calls("ListPages"), 1)
	assert.Len(t, rec.All(), before)
}

func TestHandleCreated_InFlightIsSkipped(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	release := api.hold("new-one")

	done := make(chan error, 1)
	go func() { done <- p.HandleCreated(context.Background(), "new-one") }()
	require.Eventually(t, func() bool { return len(api.Calls("Update")) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, p.HandleCreated(context.Background(), "new-one"))
	release()
	require.NoError(t, <-done)

	assert.Len(t, api.Calls("Update"), 1)
	_, ok := p.Resources().Find("new-one")
	assert.True(t, ok)
}

func TestHandleCreated_RetryAfterFailure(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	api.updateErr = errors.New("boom")

	require.Error(t, p.HandleCreated(context.Background(), "new-one"))

	api.mu.Lock()
	api.updateErr = nil
	api.mu.Unlock()
	require.NoError(t, p.HandleCreated(context.Background(), "new-one"))
	assert.Len(t, api.Calls("Update"), 2)
	_, ok := p.Resources().Find("new-one")
	assert.True(t, ok)
}

func TestHandleCreated_EmptyIDIgnored(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)

	require.NoError(t, p.HandleCreated(context.Background(), ""))
	assert.Len(t, api.Calls("ListPages"), 1)
	assert.Empty(t, api.Calls("Update"))
}

func TestWatch_HandlesCreatedEvents(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)

	events := make(chan models.TeamEvent, 3)
	events <- models.TeamEvent{Type: "something-else", RoadmapID: "x"}
	events <- models.TeamEvent{Type: models.EventCustomRoadmapCreated, RoadmapID: "backend"}
	events <- models.TeamEvent{Type: models.EventCustomRoadmapCreated}
	close(events)

	p.Watch(context.Background(), events)

	calls := api.Calls("Update")
	require.Len(t, calls, 1)
	assert.Equal(t, "backend", calls[0].ResourceID)
}

func TestCreateCustom(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)

	_, err := p.CreateCustom(context.Background(), "Team onboarding", "")
	require.ErrorIs(t, err, ErrInvalidTransition)

	p.OpenPicker()
	require.NoError(t, p.ChooseCustom())
	id, err := p.CreateCustom(context.Background(), "Team onboarding", "")
	require.NoError(t, err)

	assert.Equal(t, "custom-1", id)
	assert.Equal(t, ModalIdle, p.Modal().Kind)
	entry, ok := p.Resources().Find("custom-1")
	require.True(t, ok)
	assert.True(t, entry.IsPlaceholder())
	assert.Equal(t, "Team onboarding", entry.Title)
	assert.Len(t, api.Calls("Update"), 1)
	// Initial load plus the reload that finishes the create flow.
	assert.Len(t, api.Calls("GetTeamResourceConfig"), 2)
}

func TestCreateCustom_BlankTitle(t *testing.T) {
	api := newFakeAPI()
	p, rec := newOpenPanel(api)
	p.OpenPicker()
	require.NoError(t, p.ChooseCustom())

	_, err := p.CreateCustom(context.Background(), "   ", "")
	require.Error(t, err)
	assert.Empty(t, api.Calls("CreateRoadmap"))
	assert.Equal(t, ModalCreatingCustom, p.Modal().Kind)
	last, _ := rec.Last()
	assert.Equal(t, "error", last.Kind)
}

func TestOnCustomCreated_ReloadsAndClosesModal(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	p.OpenPicker()
	require.NoError(t, p.ChooseCustom())
	api.mu.Lock()
	api.config = append(api.config, models.ResourceConfigEntry{ResourceID: "elsewhere", Title: "Elsewhere", Removed: []string{}})
	api.mu.Unlock()

	p.OnCustomCreated(context.Background())

	assert.Equal(t, ModalIdle, p.Modal().Kind)
	_, ok := p.Resources().Find("elsewhere")
	assert.True(t, ok)
}

func TestOnCustomCreated_LeavesOtherModals(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	p.OpenPicker()
	require.NoError(t, p.ChooseExisting())

	p.OnCustomCreated(context.Background())

	assert.Equal(t, ModalAddingExisting, p.Modal().Kind)
}

func TestAdd_LastToCompleteWins(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	early := models.TeamResourceConfig{{ResourceID: "backend", Title: "Backend", Removed: []string{}}}
	late := models.TeamResourceConfig{{ResourceID: "android", Title: "Android", Removed: []string{}}}
	api.replies = map[string]models.TeamResourceConfig{"android": late, "backend": early}
	releaseAndroid := api.hold("android")
	releaseBackend := api.hold("backend")

	// android is issued first but completes last.
	androidDone := make(chan error, 1)
	go func() { androidDone <- p.Add(context.Background(), "android") }()
	require.Eventually(t, func() bool { return len(api.Calls("Update")) == 1 }, time.Second, 5*time.Millisecond)
	backendDone := make(chan error, 1)
	go func() { backendDone <- p.Add(context.Background(), "backend") }()
	require.Eventually(t, func() bool { return len(api.Calls("Update")) == 2 }, time.Second, 5*time.Millisecond)

	releaseBackend()
	require.NoError(t, <-backendDone)
	assert.Equal(t, early, p.Resources())

	releaseAndroid()
	require.NoError(t, <-androidDone)
	assert.Equal(t, late, p.Resources())
	assert.False(t, p.Snapshot().Busy)
}

func TestAdd_ResponseForPreviousTeamIsDropped(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	release := api.hold("backend")

	done := make(chan error, 1)
	go func() { done <- p.Add(context.Background(), "backend") }()
	require.Eventually(t, func() bool { return len(api.Calls("Update")) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, p.Open(context.Background(), "team-2"))
	release()
	require.NoError(t, <-done)

	assert.Equal(t, "team-2", p.Snapshot().TeamID)
	_, ok := p.Resources().Find("backend")
	assert.False(t, ok, "late response for team-1 must not land on team-2")
	_, ok = p.Resources().Find("frontend")
	assert.True(t, ok)
}

func TestRemoval_ResponseForPreviousTeamIsDropped(t *testing.T) {
	api := newFakeAPI()
	p, _ := newOpenPanel(api)
	release := api.hold("frontend")
	require.NoError(t, p.RequestRemoval("frontend"))

	done := make(chan error, 1)
	go func() { done <- p.ConfirmRemoval(context.Background()) }()
	require.Eventually(t, func() bool { return len(api.Calls("Delete")) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, p.Open(context.Background(), "team-2"))
	release()
	require.NoError(t, <-done)

	_, ok := p.Resources().Find("frontend")
	assert.True(t, ok)
	assert.Empty(t, p.PendingRemoval())
}
