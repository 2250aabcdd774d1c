package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rflorenc/teamroadmaps/internal/panel"
)

func (m Model) View() string {
	state := m.panel.Snapshot()
	v := panel.BuildView(state, m.panel.EditorURL())

	var body string
	switch {
	case v.Loading:
		body = m.spinner.View() + " Loading team..."
	case v.Terminated:
		body = m.styles.danger.Render("Error loading team") + "\n\n" +
			m.helpLine(m.keys.Reload, m.keys.Quit)
	case state.Team == nil:
		body = m.styles.faint.Render("No team selected") + "\n\n" + m.helpLine(m.keys.Quit)
	default:
		body = m.renderPanel(state, v)
	}

	if state.Modal.Kind != panel.ModalIdle && !v.Loading && !v.Terminated {
		box := m.styles.modal.Render(m.renderModal(state))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}
	return body
}

func (m Model) renderPanel(state panel.State, v panel.View) string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("Team roadmaps · " + state.Team.Name))
	b.WriteString("\n")

	if v.Empty != nil {
		b.WriteString("\n" + m.styles.normal.Render(v.Empty.Title) + "\n")
		b.WriteString(m.styles.faint.Render(v.Empty.Message) + "\n")
		if v.Empty.Action != "" {
			b.WriteString(m.styles.faint.Render(fmt.Sprintf("Press %s to %s", m.keys.Add.Help().Key, strings.ToLower(v.Empty.Action))) + "\n")
		}
	} else {
		b.WriteString(m.styles.faint.Render(v.Count) + "\n")
		row := 0
		for _, group := range []struct {
			title   string
			entries []panel.EntryView
		}{
			{"Placeholders", v.Placeholder},
			{"Custom roadmaps", v.Custom},
			{"Roadmaps", v.Default},
		} {
			if len(group.entries) == 0 {
				continue
			}
			b.WriteString("\n" + m.styles.group.Render(group.title) + "\n")
			for _, e := range group.entries {
				b.WriteString(m.renderEntry(e, row == m.cursor) + "\n")
				row++
			}
		}
	}

	if id := state.PendingRemoval; id != "" {
		b.WriteString("\n" + m.confirmLine(state, id) + "\n")
	}
	if line := m.statusLine(state); line != "" {
		b.WriteString("\n" + line + "\n")
	}
	if m.notice != "" {
		b.WriteString(m.styles.faint.Render(m.notice) + "\n")
	}

	b.WriteString("\n")
	if v.CanManage {
		b.WriteString(m.helpLine(m.keys.Up, m.keys.Down, m.keys.Add, m.keys.Remove, m.keys.Customize, m.keys.Reload, m.keys.Quit))
	} else {
		b.WriteString(m.helpLine(m.keys.Up, m.keys.Down, m.keys.Reload, m.keys.Quit))
	}
	return b.String()
}

func (m Model) renderEntry(e panel.EntryView, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	title := e.Title
	switch e.Kind {
	case panel.KindPlaceholder:
		title = lipgloss.NewStyle().Foreground(m.theme.PlaceholderAccent).Render(title)
	case panel.KindCustom:
		title = lipgloss.NewStyle().Foreground(m.theme.CustomAccent).Render(title)
	}

	label := m.styles.normal.Render(e.Label)
	if e.Muted {
		label = m.styles.faint.Render(e.Label)
	}
	line := cursor + title + "  " + label
	if e.Visibility != "" {
		line += " " + m.styles.badge.Render(e.Visibility)
	}
	if e.PendingRemoval {
		line += " " + m.styles.danger.Render("(removing)")
	}
	if selected {
		return m.styles.selected.Render(line)
	}
	return line
}

func (m Model) renderModal(state panel.State) string {
	var b strings.Builder
	switch state.Modal.Kind {
	case panel.ModalPickingOption:
		b.WriteString(m.styles.header.Render("Add roadmap") + "\n\n")
		b.WriteString("1  Pick from our roadmaps\n")
		b.WriteString("2  Create a custom roadmap\n\n")
		b.WriteString(m.helpLine(m.keys.OptionOne, m.keys.OptionTwo, m.keys.Close))

	case panel.ModalAddingExisting:
		b.WriteString(m.styles.header.Render("Select roadmaps") + "\n\n")
		if len(state.Catalog) == 0 {
			b.WriteString(m.styles.faint.Render("No roadmaps available") + "\n")
		}
		start, end := visibleRange(m.catalogCursor, len(state.Catalog), m.height-10)
		for i := start; i < end; i++ {
			r := state.Catalog[i]
			mark := "[ ]"
			if _, ok := state.Resources.Find(r.ID); ok {
				mark = "[x]"
			}
			line := "  " + mark + " " + r.Title
			if i == m.catalogCursor {
				line = m.styles.selected.Render("> " + mark + " " + r.Title)
			}
			b.WriteString(line + "\n")
		}
		if id := state.PendingRemoval; id != "" {
			b.WriteString("\n" + m.confirmLine(state, id) + "\n")
		}
		if line := m.statusLine(state); line != "" {
			b.WriteString("\n" + line + "\n")
		}
		b.WriteString("\n" + m.helpLine(m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Close))

	case panel.ModalCreatingCustom:
		b.WriteString(m.styles.header.Render("Create custom roadmap") + "\n\n")
		b.WriteString(m.styles.faint.Render("Title") + "\n" + m.title.View() + "\n\n")
		b.WriteString(m.styles.faint.Render("Description") + "\n" + m.desc.View() + "\n")
		if line := m.statusLine(state); line != "" {
			b.WriteString("\n" + line + "\n")
		}
		b.WriteString("\n" + m.helpLine(m.keys.Select, m.keys.NextField, m.keys.Close))

	case panel.ModalCustomizingExisting:
		title := state.Modal.ResourceID
		if e, ok := state.Resources.Find(state.Modal.ResourceID); ok {
			title = e.Title
		}
		b.WriteString(m.styles.header.Render("Customize "+title) + "\n\n")
		b.WriteString(m.styles.faint.Render("Removed topics (comma separated)") + "\n")
		b.WriteString(m.topics.View() + "\n")
		if line := m.statusLine(state); line != "" {
			b.WriteString("\n" + line + "\n")
		}
		b.WriteString("\n" + m.helpLine(m.keys.Select, m.keys.Close))
	}
	return b.String()
}

func (m Model) confirmLine(state panel.State, resourceID string) string {
	title := resourceID
	if e, ok := state.Resources.Find(resourceID); ok {
		title = e.Title
	}
	return m.styles.danger.Render(fmt.Sprintf("Remove %q? ", title)) +
		m.helpLine(m.keys.ConfirmYes, m.keys.ConfirmNo)
}

func (m Model) statusLine(state panel.State) string {
	kind, msg := m.status.Current()
	if msg == "" {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(m.theme.statusColor(kind))
	if state.Busy {
		return m.spinner.View() + " " + style.Render(msg)
	}
	return style.Render(msg)
}

func (m Model) helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.help.Render(strings.Join(parts, " · "))
}

// visibleRange returns the window [start, end) of n rows that keeps cursor
// visible in at most size rows. size <= 0 shows everything.
func visibleRange(cursor, n, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > n {
		start = n - size
	}
	return start, start + size
}
