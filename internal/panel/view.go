package panel

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

// EntryKind is the group an entry is rendered in.
type EntryKind string

const (
	KindPlaceholder EntryKind = "placeholder"
	KindCustom      EntryKind = "custom"
	KindDefault     EntryKind = "default"
)

// EmptyState is rendered when the team has no roadmaps.
type EmptyState struct {
	Title   string
	Message string
	Action  string // "" when the viewer can't manage the team
}

// EntryView is one roadmap ready for display.
type EntryView struct {
	ResourceID     string
	Title          string
	Kind           EntryKind
	Label          string // "3 topics", "2 topics removed", ...
	Muted          bool   // label is a hint rather than a count
	Visibility     string // badge text: custom roadmaps, or any roadmap visible only to its creator
	URL            string
	EditorURL      string // custom roadmaps only
	PendingRemoval bool
}

// View is the render-ready projection of a State.
type View struct {
	Loading    bool
	Terminated bool
	CanManage  bool
	Empty      *EmptyState
	Count      string
	Modal      Modal

	Placeholder []EntryView
	Custom      []EntryView
	Default     []EntryView
	All         []EntryView // config order
}

// View builds the render-ready projection of the current state.
func (p *Panel) View() View {
	return BuildView(p.Snapshot(), p.editorURL)
}

// BuildView projects s into a View. editorURL is the custom roadmap editor base.
func BuildView(s State, editorURL string) View {
	v := View{
		Loading:    s.Loading,
		Terminated: s.Terminated,
		CanManage:  s.CanManage(),
		Modal:      s.Modal,
	}
	if s.Loading || s.Team == nil {
		return v
	}

	if len(s.Resources) == 0 {
		v.Empty = &EmptyState{Title: "No roadmaps"}
		if v.CanManage {
			v.Empty.Message = "Add a roadmap to start tracking your team"
			v.Empty.Action = "Add roadmap"
		} else {
			v.Empty.Message = "Ask your team admin to add some roadmaps"
		}
		return v
	}

	v.Count = fmt.Sprintf("%d roadmap(s) selected", len(s.Resources))
	project := func(entries []models.ResourceConfigEntry) []EntryView {
		out := make([]EntryView, 0, len(entries))
		for _, e := range entries {
			ev := entryView(e, s.TeamID, editorURL)
			ev.PendingRemoval = e.ResourceID == s.PendingRemoval
			out = append(out, ev)
		}
		return out
	}
	groups := Classify(s.Resources)
	v.Placeholder = project(groups.Placeholder)
	v.Custom = project(groups.Custom)
	v.Default = project(groups.Default)
	v.All = project(s.Resources)
	return v
}

func entryView(e models.ResourceConfigEntry, teamID, editorURL string) EntryView {
	ev := EntryView{
		ResourceID: e.ResourceID,
		Title:      e.Title,
		Label:      EntryLabel(e),
	}
	switch {
	case !e.IsCustomResource:
		ev.Kind = KindDefault
		ev.URL = "/" + e.ResourceID + "?t=" + url.QueryEscape(teamID)
	case e.Topics == nil:
		ev.Kind = KindPlaceholder
	default:
		ev.Kind = KindCustom
	}
	if e.IsCustomResource {
		ev.URL = "/r?id=" + url.QueryEscape(e.ResourceID)
		ev.EditorURL = strings.TrimRight(editorURL, "/") + "/" + e.ResourceID
	}
	// Custom roadmaps always carry the badge; private ones carry it anywhere.
	if e.IsCustomResource || e.Visibility == models.VisibilityMe {
		ev.Visibility = e.Visibility.Label()
	}
	ev.Muted = ev.Label == "Placeholder roadmap" || ev.Label == "No changes made .."
	return ev
}

// EntryLabel summarizes an entry: topic count for custom roadmaps, removed
// topic count for default ones.
func EntryLabel(e models.ResourceConfigEntry) string {
	topics := 0
	if e.Topics != nil {
		topics = *e.Topics
	}
	if e.IsCustomResource {
		if topics > 0 {
			return plural(topics, "topic")
		}
		return "Placeholder roadmap"
	}
	if len(e.Removed) > 0 {
		return plural(len(e.Removed), "topic") + " removed"
	}
	return "No changes made .."
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
