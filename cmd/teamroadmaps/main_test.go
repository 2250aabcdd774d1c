package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rflorenc/teamroadmaps/internal/api"
	"github.com/rflorenc/teamroadmaps/internal/models"
	"github.com/rflorenc/teamroadmaps/internal/panel"
)

func newDevServer(t *testing.T) (*httptest.Server, *models.TeamStore) {
	t.Helper()
	store := models.NewTeamStore()
	require.NoError(t, api.SeedStore(store, api.DefaultSeed()))
	ts := httptest.NewServer(api.NewRouter(api.NewServer(store, slog.New(slog.NewTextHandler(io.Discard, nil)))))
	t.Cleanup(ts.Close)
	return ts, store
}

// run executes the CLI with args against ts and returns stdout.
func run(t *testing.T, ts *httptest.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TEAMROADMAPS_TOKEN", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api-url", ts.URL, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	ts, _ := newDevServer(t)

	out, err := run(t, ts, "", "list", "--team", "demo")

	require.NoError(t, err)
	assert.Contains(t, out, "Demo Team (admin)")
	assert.Contains(t, out, "2 roadmap(s) selected")
	assert.Contains(t, out, "Team Onboarding")
	assert.Contains(t, out, "2 topics removed")
	assert.Contains(t, out, "/frontend?t=demo")
}

func TestList_JSON(t *testing.T) {
	ts, _ := newDevServer(t)

	out, err := run(t, ts, "", "list", "-t", "demo", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"Count": "2 roadmap(s) selected"`)
}

func TestList_NoTeam(t *testing.T) {
	ts, _ := newDevServer(t)

	_, err := run(t, ts, "", "list")

	assert.ErrorIs(t, err, errNoTeam)
}

func TestList_TeamUnavailable(t *testing.T) {
	ts, _ := newDevServer(t)

	_, err := run(t, ts, "", "list", "--team", "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, panel.ErrTeamUnavailable))
}

func TestAddAndRemove(t *testing.T) {
	ts, store := newDevServer(t)

	out, err := run(t, ts, "", "add", "-t", "demo", "backend", "devops")
	require.NoError(t, err)
	assert.Contains(t, out, "Added devops")
	cfg, _ := store.Config("demo")
	assert.Len(t, cfg, 4)

	// Declining the prompt keeps the roadmap.
	out, err = run(t, ts, "n\n", "remove", "-t", "demo", "backend")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
	cfg, _ = store.Config("demo")
	assert.Len(t, cfg, 4)

	out, err = run(t, ts, "y\n", "remove", "-t", "demo", "backend")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed backend")

	_, err = run(t, ts, "", "remove", "-t", "demo", "--yes", "devops")
	require.NoError(t, err)
	cfg, _ = store.Config("demo")
	assert.Len(t, cfg, 2)
}

func TestRemove_UnknownRoadmap(t *testing.T) {
	ts, _ := newDevServer(t)

	_, err := run(t, ts, "", "remove", "-t", "demo", "--yes", "backend")

	assert.ErrorIs(t, err, panel.ErrUnknownResource)
}

func TestAdd_Forbidden(t *testing.T) {
	ts, _ := newDevServer(t)

	_, err := run(t, ts, "", "add", "-t", "readonly", "backend")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "You are not allowed to manage this team")
}

func TestCustomize(t *testing.T) {
	ts, store := newDevServer(t)

	out, err := run(t, ts, "", "customize", "-t", "demo", "frontend")
	require.NoError(t, err)
	assert.Equal(t, "css-frameworks\nweb-components\n", out)

	out, err = run(t, ts, "", "customize", "-t", "demo", "frontend", "--remove", "a,b,c")
	require.NoError(t, err)
	assert.Contains(t, out, "3 topic(s) removed")
	cfg, _ := store.Config("demo")
	entry, _ := cfg.Find("frontend")
	assert.Equal(t, []string{"a", "b", "c"}, entry.Removed)

	_, err = run(t, ts, "", "customize", "-t", "demo", "frontend", "--reset")
	require.NoError(t, err)
	cfg, _ = store.Config("demo")
	entry, _ = cfg.Find("frontend")
	assert.Empty(t, entry.Removed)
}

func TestCustomize_CustomRoadmapPrintsEditorLink(t *testing.T) {
	ts, _ := newDevServer(t)

	out, err := run(t, ts, "", "customize", "-t", "demo", "--editor-url", "https://editor.example.com/r", "onboarding")

	require.NoError(t, err)
	assert.Contains(t, out, "https://editor.example.com/r/onboarding")
}

func TestCreate(t *testing.T) {
	ts, store := newDevServer(t)

	out, err := run(t, ts, "", "create", "-t", "demo", "Incident response", "-d", "On-call basics")

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Created "))
	id := strings.TrimSpace(strings.TrimPrefix(out, "Created "))
	cfg, _ := store.Config("demo")
	entry, ok := cfg.Find(id)
	require.True(t, ok)
	assert.True(t, entry.IsPlaceholder())
	assert.Equal(t, "Incident response", entry.Title)
}
