// Package tui provides the interactive terminal front end for baitlens.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#FF6B6B") // Red - titles, errors
	ColorSecondary = lipgloss.Color("#4ecdc4") // Teal - subtitles, toggles
	ColorAccent    = lipgloss.Color("#ffe66d") // Yellow - scores, active button
	ColorMuted     = lipgloss.Color("#666666") // Gray - help text
	ColorSuccess   = lipgloss.Color("#a8e6cf") // Green - healthy service
	ColorText      = lipgloss.Color("#f1faee") // Light text
	ColorLabel     = lipgloss.Color("#a8dadc") // Label color
	ColorBg        = lipgloss.Color("#1a1a2e") // Dark background
	ColorBgAlt     = lipgloss.Color("#2d3436") // Alt background
	ColorBorder    = lipgloss.Color("#3d5a80") // Border color
)

// Title styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBg).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ServerStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)

// Control styles
var (
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	InputBoxFocusedStyle = InputBoxStyle.
				BorderForeground(ColorAccent)

	ButtonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBg).
			Background(ColorAccent).
			Padding(0, 2)

	ButtonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Background(ColorBgAlt).
				Padding(0, 2)

	SampleButtonStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Background(ColorBgAlt).
				Padding(0, 1)

	ToggleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	CounterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	CounterWarnStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)
)

// Result card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	CardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLabel)

	ScorePillStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBg).
			Background(ColorAccent).
			Padding(0, 1)

	ScoreUnavailableStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgAlt).
				Padding(0, 1)

	CardNoteStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	BreakdownLabelStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	BreakdownValueStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	RawBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1).
			MarginTop(1)
)

// Status styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText).
				Background(ColorPrimary).
				Padding(0, 1)

	MetaSummaryStyle = lipgloss.NewStyle().
				Foreground(ColorLabel).
				Italic(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Italic(true)

	HealthyStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	UnhealthyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	CopiedStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)
)

// Content area style
var ContentStyle = lipgloss.NewStyle().
	Padding(0, 1)
