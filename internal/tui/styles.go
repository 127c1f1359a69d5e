package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#8BC34A"}
	muted       = lipgloss.AdaptiveColor{Light: "#6a737d", Dark: "#8b949e"}
	destructive = lipgloss.Color("#e53935")
)

type styles struct {
	Title    lipgloss.Style
	Letter   lipgloss.Style
	Cursor   lipgloss.Style
	Active   lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style
	Name     lipgloss.Style
	Detail   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Letter:   lipgloss.NewStyle().Padding(0, 0, 0, 1),
		Cursor:   lipgloss.NewStyle().Padding(0, 0, 0, 1).Reverse(true),
		Active:   lipgloss.NewStyle().Padding(0, 0, 0, 1).Bold(true).Underline(true).Foreground(accent),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Error:    lipgloss.NewStyle().Foreground(destructive),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Label:    lipgloss.NewStyle().Width(11).Foreground(muted),
		Name:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
	}
}
