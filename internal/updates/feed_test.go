package updates

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func id(v int64) *int64 { return &v }

func testFeed(items []Update, unread int) *Feed {
	f := NewFeed(zerolog.Nop())
	f.Replace(items, unread)
	return f
}

func TestMarkRead(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := testFeed([]Update{
		{UpdateID: id(1), IsRead: false},
		{UpdateID: id(2), IsRead: true},
	}, 1)

	f.MarkRead("1", now)
	require.True(t, f.Items[0].IsRead)
	require.NotNil(t, f.Items[0].ReadAt)
	require.Equal(t, now, *f.Items[0].ReadAt)
	require.Equal(t, 0, f.Unread)

	// idempotent: a second call changes nothing and the counter stays at zero
	later := now.Add(time.Hour)
	f.MarkRead("1", later)
	require.Equal(t, now, *f.Items[0].ReadAt)
	require.Equal(t, 0, f.Unread)

	// already-read item never drives the counter negative
	f.MarkRead("2", later)
	require.Equal(t, 0, f.Unread)
}

func TestMarkReadUnknownKey(t *testing.T) {
	t.Parallel()

	f := testFeed([]Update{{UpdateID: id(1)}}, 1)
	f.MarkRead("999", time.Now())
	require.Equal(t, 1, f.Unread)
	require.False(t, f.Items[0].IsRead)
}

func TestMarkAllRead(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)
	f := testFeed([]Update{
		{UpdateID: id(1)},
		{UpdateID: id(2), IsRead: true, ReadAt: &earlier},
		{UpdateID: id(3)},
	}, 2)

	f.MarkAllRead(now)
	require.Equal(t, 0, f.Unread)
	for _, u := range f.Items {
		require.True(t, u.IsRead)
	}
	// previously read items keep their original stamp
	require.Equal(t, earlier, *f.Items[1].ReadAt)
	require.Equal(t, now, *f.Items[0].ReadAt)
}

func TestDeleteRemovesExactItem(t *testing.T) {
	t.Parallel()

	f := testFeed([]Update{
		{UpdateID: id(1)},
		{UpdateID: id(2)},
		{UpdateID: id(3)},
	}, 2)

	f.Delete("2")
	require.Len(t, f.Items, 2)
	require.Equal(t, int64(1), *f.Items[0].UpdateID)
	require.Equal(t, int64(3), *f.Items[1].UpdateID)

	// deleting an unread item does not touch the counter; a refresh
	// reconciles it
	require.Equal(t, 2, f.Unread)

	f.Delete("nope")
	require.Len(t, f.Items, 2)
}

func TestFallbackKeyNeverMutates(t *testing.T) {
	t.Parallel()

	items := []Update{
		{UpdateID: id(1)},
		{Title: "orphan row"},
	}
	f := testFeed(items, 2)
	orphanKey := f.Items[1].Key()

	f.MarkRead(orphanKey, time.Now())
	require.False(t, f.Items[1].IsRead)
	require.Equal(t, 2, f.Unread)

	f.Delete(orphanKey)
	require.Len(t, f.Items, 2)
}
