package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	PrimaryColor   = lipgloss.Color("205") // Pink
	SecondaryColor = lipgloss.Color("241") // Gray
	SuccessColor   = lipgloss.Color("82")  // Green
	ErrorColor     = lipgloss.Color("196") // Red
	WarningColor   = lipgloss.Color("214") // Orange
	MutedColor     = lipgloss.Color("245") // Dimmed text
)

// Text styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			MarginTop(1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)
)

// SpinnerStyle returns the style for the spinner.
func SpinnerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PrimaryColor)
}

// Badge styles for test kinds.
var (
	badgeBase = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	BadgeMarkup = badgeBase.Background(lipgloss.Color("39"))  // Blue
	BadgeXML    = badgeBase.Background(lipgloss.Color("114")) // Light green
	BadgeScript = badgeBase.Background(WarningColor)
)

// KindBadge returns a styled badge for the kind of test.
func KindBadge(k Kind) string {
	switch k {
	case KindMarkup:
		return BadgeMarkup.Render("HTML")
	case KindXML:
		return BadgeXML.Render("XML")
	case KindScript:
		return BadgeScript.Render("CGI")
	default:
		return MutedStyle.Render("???")
	}
}
