package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Session polarity colors
const (
	ColorPositive Color = "2" // Green - focus sessions, XP gains
	ColorNegative Color = "1" // Red - slip-ups, XP losses
	ColorActive   Color = "3" // Yellow - session in progress
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorStreak  Color = "214" // Orange - streak flame
	ColorXP      Color = "226" // Yellow - XP values
	ColorLevel   Color = "141" // Purple - level badge
	ColorSpinner Color = "205" // Pink
)
