package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/stratizen/stratizen/internal/config"
)

// Theme is the style set the dashboard renders with. Which one is
// active follows the persisted theme preference; "system" asks the
// terminal for its background.
type Theme struct {
	Title    lipgloss.Style
	Day      lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	XPBar    lipgloss.Style
}

var DarkTheme = Theme{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Day:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA")),
	Label:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
	Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1),
	Hint:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	XPBar:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
}

var LightTheme = Theme{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#40A02B")),
	Day:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E66F5")),
	Label:    lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#1E66F5")),
	Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#5C5F77")),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DF8E1D")),
	Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1),
	Hint:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#8839EF")),
	Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D20F39")),
	Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#40A02B")),
	XPBar:    lipgloss.NewStyle().Foreground(lipgloss.Color("#DF8E1D")),
}

// ThemeFor resolves the preference to a concrete style set.
func ThemeFor(mode config.ThemeMode) Theme {
	switch mode {
	case config.ThemeLight:
		return LightTheme
	case config.ThemeDark:
		return DarkTheme
	default:
		if lipgloss.HasDarkBackground() {
			return DarkTheme
		}
		return LightTheme
	}
}
