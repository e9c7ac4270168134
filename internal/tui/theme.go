package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette — true-color hex values.
// https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorMaroon   lipgloss.Color = "#eba0ac"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

// Semantic aliases.
const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
	colorMuted   = colorOverlay1
)

// accentColors resolves the status-presentation accent keys from the
// reservation core to concrete colors.
var accentColors = map[string]lipgloss.Color{
	"success": colorSuccess,
	"warning": colorWarning,
	"info":    colorInfo,
	"muted":   colorMuted,
	"no_show": colorMaroon,
}

// AccentColor maps a semantic accent key to its color; unknown keys get the
// muted tone.
func AccentColor(key string) lipgloss.Color {
	if c, ok := accentColors[key]; ok {
		return c
	}
	return colorMuted
}

// priorityColors marks feed entries; the empty key is the default priority.
var priorityColors = map[string]lipgloss.Color{
	"high":   colorRed,
	"medium": colorPeach,
	"":       colorSubtext0,
}

func priorityColor(p string) lipgloss.Color {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return colorSubtext0
}

func colorize(c lipgloss.Color, s string) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	selectedStyle = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	noticeStyle   = lipgloss.NewStyle().Foreground(colorTeal)
	helpStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	badgeStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(colorBase).Bold(true)
	unreadStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)
