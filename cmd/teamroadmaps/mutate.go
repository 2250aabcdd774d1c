package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add ROADMAP_ID...",
		Short: "Add catalog or custom roadmaps to the team",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := a.openPanel(cmd.Context())
			if err != nil {
				return err
			}
			// Sequential: each response replaces the whole config.
			for _, id := range args {
				if err := p.Add(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", id)
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove ROADMAP_ID",
		Short: "Remove a roadmap from the team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := a.openPanel(cmd.Context())
			if err != nil {
				return err
			}
			id := args[0]
			if err := p.RequestRemoval(id); err != nil {
				return err
			}
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Remove %s from the team? [y/N] ", id)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					p.CancelRemoval()
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}
			if err := p.ConfirmRemoval(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newCustomizeCmd(a *app) *cobra.Command {
	var (
		removed []string
		reset   bool
	)
	cmd := &cobra.Command{
		Use:   "customize ROADMAP_ID",
		Short: "Show or change the topics removed from a roadmap",
		Long: `Without flags, prints the topics currently removed from the roadmap.
Custom roadmaps are edited in the browser; their editor link is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := a.openPanel(cmd.Context())
			if err != nil {
				return err
			}
			id := args[0]
			link, err := p.Customize(id)
			if err != nil {
				return err
			}
			if link != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is a custom roadmap, edit it at %s\n", id, link)
				return nil
			}

			if !reset && !cmd.Flags().Changed("remove") {
				p.CloseModal()
				current := p.RemovedTopics(id)
				if len(current) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No changes made")
					return nil
				}
				for _, topic := range current {
					fmt.Fprintln(cmd.OutOrStdout(), topic)
				}
				return nil
			}

			topics := []string{}
			if !reset {
				topics = removed
			}
			if err := p.SaveCustomization(cmd.Context(), topics); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %d topic(s) removed\n", id, len(topics))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&removed, "remove", nil, "Topics to remove (comma separated, replaces the current list)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Restore every topic")
	cmd.MarkFlagsMutuallyExclusive("remove", "reset")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create an empty custom roadmap and add it to the team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := a.openPanel(cmd.Context())
			if err != nil {
				return err
			}
			p.OpenPicker()
			if err := p.ChooseCustom(); err != nil {
				return err
			}
			id, err := p.CreateCustom(cmd.Context(), args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Roadmap description")
	return cmd
}
