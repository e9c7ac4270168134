package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestButtonRenderContainsLabel(t *testing.T) {
	t.Parallel()

	out := Button{Label: "Cancel booking", Variant: VariantDanger}.Render()
	require.Contains(t, out, "Cancel booking")

	focused := Button{Label: "Cancel booking", Variant: VariantDanger, Focused: true}.Render()
	require.Contains(t, focused, "Cancel booking")
	require.NotEqual(t, out, focused, "focus must change the rendering")
}

func TestButtonUnknownVariantFallsBack(t *testing.T) {
	t.Parallel()

	// never panics, still renders the label
	out := Button{Label: "Ok", Variant: Variant("sparkly")}.Render()
	require.Contains(t, out, "Ok")
}

func TestButtonRow(t *testing.T) {
	t.Parallel()

	row := ButtonRow(1,
		Button{Label: "Keep it", Variant: VariantGhost},
		Button{Label: "Cancel booking", Variant: VariantDanger},
	)
	require.Contains(t, row, "Keep it")
	require.Contains(t, row, "Cancel booking")
	require.True(t, strings.Contains(row, "  "), "buttons are separated")
}

func TestClamp(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Clamp(-1, 3))
	require.Equal(t, 2, Clamp(5, 3))
	require.Equal(t, 1, Clamp(1, 3))
	require.Equal(t, 0, Clamp(4, 0))
}
