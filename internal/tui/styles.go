package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/catalog-admin/internal/ui"
)

// AppName is shown in the header
const AppName = "CATALOG ADMIN"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(ui.PrimaryColor).
				Bold(true)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(ui.ErrorColor).
				Bold(true)

	successBannerStyle = lipgloss.NewStyle().
				Foreground(ui.SuccessColor).
				Bold(true)

	activePageStyle = lipgloss.NewStyle().
			Foreground(ui.TextColor).
			Background(ui.PrimaryColor).
			Padding(0, 1)

	pageStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.PrimaryColor).
			Padding(1, 2).
			Width(56)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ui.WarningColor).
			Padding(1, 2)
)

// confirmMinWidth is the narrowest the delete confirmation is drawn
const confirmMinWidth = 56

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.MutedColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ui.TextColor).
		Background(ui.PrimaryColor).
		Bold(false)
	return s
}
