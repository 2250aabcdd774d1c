package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette of the panel TUI. Colors are ANSI
// 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Entry kinds.
	PlaceholderAccent lipgloss.Color
	CustomAccent      lipgloss.Color
	BadgeForeground   lipgloss.Color
	BadgeBackground   lipgloss.Color

	// Status line.
	StatusLoading lipgloss.Color
	StatusSuccess lipgloss.Color
	StatusError   lipgloss.Color
	Danger        lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("242"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("75"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	PlaceholderAccent: lipgloss.Color("214"),
	CustomAccent:      lipgloss.Color("141"),
	BadgeForeground:   lipgloss.Color("255"),
	BadgeBackground:   lipgloss.Color("238"),

	StatusLoading: lipgloss.Color("75"),
	StatusSuccess: lipgloss.Color("78"),
	StatusError:   lipgloss.Color("203"),
	Danger:        lipgloss.Color("196"),
}

type styles struct {
	header   lipgloss.Style
	group    lipgloss.Style
	normal   lipgloss.Style
	faint    lipgloss.Style
	selected lipgloss.Style
	badge    lipgloss.Style
	help     lipgloss.Style
	danger   lipgloss.Style
	modal    lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		group:    lipgloss.NewStyle().Bold(true).Foreground(theme.FaintText),
		normal:   lipgloss.NewStyle().Foreground(theme.NormalText),
		faint:    lipgloss.NewStyle().Foreground(theme.FaintText),
		selected: lipgloss.NewStyle().Background(theme.SelectedBackground).Foreground(theme.SelectedForeground),
		badge:    lipgloss.NewStyle().Foreground(theme.BadgeForeground).Background(theme.BadgeBackground).Padding(0, 1),
		help:     lipgloss.NewStyle().Foreground(theme.HelpText),
		danger:   lipgloss.NewStyle().Bold(true).Foreground(theme.Danger),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor).
			Padding(0, 1),
	}
}

func (theme Theme) statusColor(kind string) lipgloss.Color {
	switch kind {
	case statusSuccess:
		return theme.StatusSuccess
	case statusError:
		return theme.StatusError
	}
	return theme.StatusLoading
}
