package widgets

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	// Tests run without a TTY; pin the color profile so styled output is
	// deterministic instead of being stripped to plain text.
	lipgloss.SetColorProfile(termenv.TrueColor)
	os.Exit(m.Run())
}
