package updates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFilterKeyIsTotal(t *testing.T) {
	t.Parallel()

	require.Equal(t, FilterReservation, FilterKey(CategoryReservation))
	require.Equal(t, FilterReview, FilterKey(CategoryReview))
	require.Equal(t, FilterRestaurantNews, FilterKey(CategoryRestaurantNews))
	require.Equal(t, FilterUpdate, FilterKey(CategoryAppUpdate))
	require.Equal(t, FilterUpdate, FilterKey(CategorySystem))

	// unknown categories fall through lower-cased rather than erroring
	require.Equal(t, "promo_blast", FilterKey("PROMO_BLAST"))
	require.Equal(t, "", FilterKey(""))
}

func TestServerCategory(t *testing.T) {
	t.Parallel()

	require.Equal(t, CategoryReservation, ServerCategory(FilterReservation))
	require.Equal(t, CategoryReview, ServerCategory(FilterReview))
	require.Equal(t, CategoryRestaurantNews, ServerCategory(FilterRestaurantNews))
	require.Equal(t, CategoryAppUpdate, ServerCategory(FilterUpdate))
	require.Equal(t, "", ServerCategory(FilterAll))
	require.Equal(t, "", ServerCategory("bogus"))
}

func TestDisplayIconPrecedence(t *testing.T) {
	t.Parallel()

	u := Update{Icon: "🎉", Category: CategoryReservation}
	require.Equal(t, "🎉", u.DisplayIcon())

	u = Update{Category: CategoryReservation}
	require.Equal(t, "📅", u.DisplayIcon())

	u = Update{Category: "PROMO_BLAST"}
	require.Equal(t, "🔔", u.DisplayIcon())
}

func TestKeyFallback(t *testing.T) {
	t.Parallel()

	id := int64(42)
	u := Update{UpdateID: &id}
	require.Equal(t, "42", u.Key())

	anon := Update{}
	k := anon.Key()
	require.True(t, strings.HasPrefix(k, "tmp-"))
	require.Equal(t, k, anon.Key(), "fallback key must be stable across renders")

	other := Update{}
	require.NotEqual(t, k, other.Key())
}

func TestTimeAgo(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "0m ago"},
		{5 * time.Minute, "5m ago"},
		{59 * time.Minute, "59m ago"},
		{time.Hour, "1h ago"},
		{23 * time.Hour, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{72 * time.Hour, "3d ago"},
		{-time.Minute, "0m ago"}, // clock skew clamps to now
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, TimeAgo(now.Add(-tc.age), now))
	}
}
