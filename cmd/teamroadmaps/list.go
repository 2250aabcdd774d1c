package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rflorenc/teamroadmaps/internal/panel"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the team's roadmaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := a.openPanel(cmd.Context())
			if err != nil {
				return err
			}
			v := p.View()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			}
			printView(cmd.OutOrStdout(), p.Snapshot(), v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view as JSON")
	return cmd
}

func printView(w io.Writer, state panel.State, v panel.View) {
	header := lipgloss.NewStyle().Bold(true)
	fmt.Fprintln(w, header.Render(state.Team.Name)+" ("+state.Team.Role+")")

	if v.Empty != nil {
		fmt.Fprintln(w, v.Empty.Title)
		fmt.Fprintln(w, v.Empty.Message)
		return
	}
	fmt.Fprintln(w, v.Count)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("GROUP", "ID", "TITLE", "DETAILS", "VISIBILITY", "URL")
	for _, group := range []struct {
		name    string
		entries []panel.EntryView
	}{
		{"placeholder", v.Placeholder},
		{"custom", v.Custom},
		{"default", v.Default},
	} {
		for _, e := range group.entries {
			t.Row(group.name, e.ResourceID, e.Title, e.Label, e.Visibility, e.URL)
		}
	}
	fmt.Fprintln(w, t.Render())
}
