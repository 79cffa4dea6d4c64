package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Orange
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorText      = lipgloss.Color("#F9FAFB") // Light
	ColorBgAlt     = lipgloss.Color("#1F2937") // Dark alt
	ColorBorder    = lipgloss.Color("#374151") // Gray border
)

// Base styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBgAlt).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusActive = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusIdle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	SidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	SidebarItemStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	SidebarActiveStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Bold(true)

	MainStyle = lipgloss.NewStyle().
			Padding(0, 1)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgAlt).
				Bold(true)

	RowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	NotifySuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	NotifyErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError)

	NotifyWarningStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	NotifyInfoStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)
