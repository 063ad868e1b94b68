package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSecondary = lipgloss.Color("#06B6D4")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorRecording = lipgloss.Color("#F43F5E")
	ColorText      = lipgloss.Color("#E5E7EB")
	ColorSubtle    = lipgloss.Color("#9CA3AF")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	subtitleStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorError).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorSuccess).
			Padding(0, 1)

	recordingStyle = lipgloss.NewStyle().Foreground(ColorRecording).Bold(true)

	dropZoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Foreground(ColorSubtle).
			Padding(0, 2)

	dropZoneActiveStyle = dropZoneStyle.
				BorderForeground(ColorSecondary).
				Foreground(ColorSecondary)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	selectedCardStyle = cardStyle.BorderForeground(ColorPrimary)

	metaStyle        = lipgloss.NewStyle().Foreground(ColorMuted)
	placeholderStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	bodyStyle        = lipgloss.NewStyle().Foreground(ColorText)

	helpStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	keyStyle  = lipgloss.NewStyle().Foreground(ColorSubtle).Bold(true)
)
