package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/user/gifclip/pkg/config"
)

// Styles holds the lipgloss styles derived from the configured theme.
type Styles struct {
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	ErrorFg lipgloss.Color

	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Dim     lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Border  lipgloss.Style
	Key     lipgloss.Style
}

// NewStyles builds Styles from theme colors.
func NewStyles(theme config.ThemeConfig) Styles {
	accent := lipgloss.Color(theme.AccentColor)
	muted := lipgloss.Color(theme.MutedColor)
	errFg := lipgloss.Color(theme.ErrorColor)

	return Styles{
		Accent:  accent,
		Muted:   muted,
		ErrorFg: errFg,

		Title:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		Label:   lipgloss.NewStyle().Foreground(muted),
		Value:   lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(muted).Faint(true),
		Error:   lipgloss.NewStyle().Foreground(errFg).Bold(true),
		Success: lipgloss.NewStyle().Foreground(accent),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted),
		Key: lipgloss.NewStyle().Foreground(accent),
	}
}
