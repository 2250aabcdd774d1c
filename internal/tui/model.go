// Package tui is an interactive terminal front end for the team roadmap
// panel. Panel operations run as tea.Cmds; the model re-renders from a
// panel snapshot on every frame.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rflorenc/teamroadmaps/internal/models"
	"github.com/rflorenc/teamroadmaps/internal/panel"
)

// Options configures a Model.
type Options struct {
	TeamID string
	// Status must be the Notifier the panel was created with; it feeds
	// the status line. Nil disables the status line.
	Status *Status
	// Events, when set, is the team event stream. Created roadmaps are
	// added to the team as they arrive.
	Events <-chan models.TeamEvent
	Theme  *Theme
	Keys   *KeyMap
}

// Model is the bubbletea model for one team's roadmap panel.
type Model struct {
	ctx    context.Context
	panel  *panel.Panel
	teamID string
	status *Status
	events <-chan models.TeamEvent
	keys   KeyMap
	theme  Theme
	styles styles

	spinner spinner.Model
	title   textinput.Model
	desc    textinput.Model
	topics  textinput.Model
	// focus is the active field of the create form: 0 title, 1 description.
	focus int

	cursor        int // index into listRows
	catalogCursor int
	notice        string
	width, height int
	err           error
}

type (
	loadedMsg       struct{ err error }
	opDoneMsg       struct{ err error }
	teamEventMsg    struct{ event models.TeamEvent }
	eventsClosedMsg struct{}
)

// New creates a Model over p. ctx bounds every remote call the model issues.
func New(ctx context.Context, p *panel.Panel, opts Options) Model {
	theme := DefaultTheme
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	keys := DefaultKeyMap
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	status := opts.Status
	if status == nil {
		status = &Status{}
	}

	title := textinput.New()
	title.Placeholder = "Enter title"
	title.CharLimit = 80
	desc := textinput.New()
	desc.Placeholder = "Enter description"
	desc.CharLimit = 200
	topics := textinput.New()
	topics.Placeholder = "topic-a, topic-b"

	return Model{
		ctx:     ctx,
		panel:   p,
		teamID:  opts.TeamID,
		status:  status,
		events:  opts.Events,
		keys:    keys,
		theme:   theme,
		styles:  newStyles(theme),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		title:   title,
		desc:    desc,
		topics:  topics,
	}
}

// Err returns the error that ended the session, if the team failed to load.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.openCmd(), m.waitForEvent())
}

func (m Model) openCmd() tea.Cmd {
	ctx, p, teamID := m.ctx, m.panel, m.teamID
	return func() tea.Msg {
		return loadedMsg{err: p.Open(ctx, teamID)}
	}
}

// refreshCmd refetches the config and catalog of the loaded team without
// resetting the panel.
func (m Model) refreshCmd() tea.Cmd {
	return tea.Batch(m.run(m.panel.ReloadConfig), m.run(m.panel.RefreshCatalog))
}

// run wraps a blocking panel operation as a command.
func (m Model) run(op func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{err: op(ctx)}
	}
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return teamEventMsg{event: ev}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		if errors.Is(msg.err, panel.ErrTeamUnavailable) {
			m.err = msg.err
			return m, tea.Quit
		}
		m.clampCursors(m.panel.Snapshot())
		return m, nil

	case opDoneMsg:
		m.clampCursors(m.panel.Snapshot())
		return m, nil

	case teamEventMsg:
		if msg.event.Type != models.EventCustomRoadmapCreated {
			return m, m.waitForEvent()
		}
		id := msg.event.RoadmapID
		handle := m.run(func(ctx context.Context) error { return m.panel.HandleCreated(ctx, id) })
		return m, tea.Batch(handle, m.waitForEvent())

	case eventsClosedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	state := m.panel.Snapshot()

	if state.Loading {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if state.Terminated || state.Team == nil {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			return m, m.openCmd()
		}
		return m, nil
	}

	if state.PendingRemoval != "" {
		switch {
		case key.Matches(msg, m.keys.ConfirmYes):
			return m, m.run(m.panel.ConfirmRemoval)
		case key.Matches(msg, m.keys.ConfirmNo):
			m.panel.CancelRemoval()
		}
		return m, nil
	}

	switch state.Modal.Kind {
	case panel.ModalPickingOption:
		return m.handlePicker(msg)
	case panel.ModalAddingExisting:
		return m.handleCatalog(msg, state)
	case panel.ModalCreatingCustom:
		return m.handleCreateForm(msg)
	case panel.ModalCustomizingExisting:
		return m.handleCustomizeForm(msg)
	}
	return m.handleList(msg, state)
}

func (m Model) handleList(msg tea.KeyMsg, state panel.State) (tea.Model, tea.Cmd) {
	rows := listRows(panel.BuildView(state, m.panel.EditorURL()))
	var selected string
	if m.cursor >= 0 && m.cursor < len(rows) {
		selected = rows[m.cursor].ResourceID
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Reload):
		m.notice = ""
		return m, m.refreshCmd()
	case !state.CanManage():
		// Read-only viewers can only browse.
	case key.Matches(msg, m.keys.Add):
		m.notice = ""
		m.panel.OpenPicker()
	case key.Matches(msg, m.keys.Remove) && selected != "":
		m.notice = ""
		_ = m.panel.RequestRemoval(selected)
	case key.Matches(msg, m.keys.Customize) && selected != "":
		link, err := m.panel.Customize(selected)
		if err != nil {
			return m, nil
		}
		if link != "" {
			m.notice = "Edit in browser: " + link
			return m, nil
		}
		m.notice = ""
		m.topics.SetValue(strings.Join(m.panel.RemovedTopics(selected), ", "))
		m.topics.CursorEnd()
		return m, m.topics.Focus()
	}
	return m, nil
}

func (m Model) handlePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.OptionOne):
		if m.panel.ChooseExisting() == nil {
			m.catalogCursor = 0
		}
	case key.Matches(msg, m.keys.OptionTwo):
		if m.panel.ChooseCustom() == nil {
			m.title.SetValue("")
			m.desc.SetValue("")
			m.desc.Blur()
			m.focus = 0
			return m, m.title.Focus()
		}
	case key.Matches(msg, m.keys.Close):
		m.panel.CloseModal()
	}
	return m, nil
}

func (m Model) handleCatalog(msg tea.KeyMsg, state panel.State) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.panel.CloseModal()
	case key.Matches(msg, m.keys.Up):
		if m.catalogCursor > 0 {
			m.catalogCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.catalogCursor < len(state.Catalog)-1 {
			m.catalogCursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.catalogCursor >= len(state.Catalog) {
			return m, nil
		}
		id := state.Catalog[m.catalogCursor].ID
		if _, added := state.Resources.Find(id); added {
			_ = m.panel.RequestRemoval(id)
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error { return m.panel.Add(ctx, id) })
	}
	return m, nil
}

func (m Model) handleCreateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.title.Blur()
		m.desc.Blur()
		m.panel.CloseModal()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.focus = 1 - m.focus
		if m.focus == 0 {
			m.desc.Blur()
			return m, m.title.Focus()
		}
		m.title.Blur()
		return m, m.desc.Focus()
	case key.Matches(msg, m.keys.Select):
		title, desc := m.title.Value(), m.desc.Value()
		return m, m.run(func(ctx context.Context) error {
			_, err := m.panel.CreateCustom(ctx, title, desc)
			return err
		})
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.desc, cmd = m.desc.Update(msg)
	}
	return m, cmd
}

func (m Model) handleCustomizeForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		m.topics.Blur()
		m.panel.CloseModal()
		return m, nil
	case key.Matches(msg, m.keys.Select):
		removed := parseTopics(m.topics.Value())
		return m, m.run(func(ctx context.Context) error {
			return m.panel.SaveCustomization(ctx, removed)
		})
	}
	var cmd tea.Cmd
	m.topics, cmd = m.topics.Update(msg)
	return m, cmd
}

func (m *Model) clampCursors(state panel.State) {
	n := len(state.Resources)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.catalogCursor >= len(state.Catalog) {
		m.catalogCursor = len(state.Catalog) - 1
	}
	if m.catalogCursor < 0 {
		m.catalogCursor = 0
	}
}

// listRows returns entries in display order: placeholders, custom, default.
func listRows(v panel.View) []panel.EntryView {
	rows := make([]panel.EntryView, 0, len(v.All))
	rows = append(rows, v.Placeholder...)
	rows = append(rows, v.Custom...)
	rows = append(rows, v.Default...)
	return rows
}

// parseTopics splits a comma separated topic list, dropping blanks.
func parseTopics(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
