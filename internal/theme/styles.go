package theme

import "github.com/charmbracelet/lipgloss"

// Main UI styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Session polarity styles
var (
	ActiveStyle = lipgloss.NewStyle().
			Foreground(ColorActive)

	NegativeStyle = lipgloss.NewStyle().
			Foreground(ColorNegative)

	PositiveStyle = lipgloss.NewStyle().
			Foreground(ColorPositive)
)

// Stats styles
var (
	LevelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLevel)

	StreakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorStreak)

	XPStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorXP)
)

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// ProgressBar renders a fixed-width XP progress bar for the current level.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return XPStyle.Render(bar)
}
