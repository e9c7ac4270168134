package widgets

import "github.com/charmbracelet/lipgloss"

// Variant selects a button's color treatment.
type Variant string

const (
	VariantPrimary Variant = "primary"
	VariantDanger  Variant = "danger"
	VariantGhost   Variant = "ghost"
)

// Button is the shared button primitive. It renders a label in a bordered
// pill; focus inverts the fill so the active choice reads at a glance.
type Button struct {
	Label   string
	Variant Variant
	Focused bool

	// Accent overrides the variant's default color when set.
	Accent lipgloss.Color
}

var variantAccents = map[Variant]lipgloss.Color{
	VariantPrimary: "#a6e3a1",
	VariantDanger:  "#f38ba8",
	VariantGhost:   "#9399b2",
}

// Render draws the button.
func (b Button) Render() string {
	accent := b.Accent
	if accent == "" {
		if v, ok := variantAccents[b.Variant]; ok {
			accent = v
		} else {
			accent = variantAccents[VariantPrimary]
		}
	}

	style := lipgloss.NewStyle().
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent)
	if b.Focused {
		style = style.Background(accent).Foreground(lipgloss.Color("#1e1e2e")).Bold(true)
	} else {
		style = style.Foreground(accent)
	}
	return style.Render(b.Label)
}

// ButtonRow renders buttons side by side with the focused index highlighted.
func ButtonRow(focus int, buttons ...Button) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		b.Focused = i == focus
		parts[i] = b.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, interleave(parts, "  ")...)
}

func interleave(parts []string, sep string) []string {
	if len(parts) == 0 {
		return nil
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

// Clamp keeps a focus index inside [0, n).
func Clamp(focus, n int) int {
	if n <= 0 {
		return 0
	}
	if focus < 0 {
		return 0
	}
	if focus >= n {
		return n - 1
	}
	return focus
}
