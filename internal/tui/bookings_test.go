package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"tablebook/internal/config"
	"tablebook/internal/reservation"
)

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Config{}
	cfg.UI.PageSize = 10
	return New(context.Background(), cfg, Sources{}, Session{UserID: 1}, zerolog.Nop(), time.UTC)
}

func TestBookingsStaleResponsesDropped(t *testing.T) {
	t.Parallel()

	a := testApp(t)
	a.bookings.filter = reservation.FilterUpcoming
	a.bookings.items = []reservation.Reservation{{ID: 1}}

	// a page from the previous filter must not replace the live list
	_, handled := a.updateBookings(reservationsMsg{
		filter: reservation.FilterAll, page: 1,
		items: []reservation.Reservation{{ID: 99}},
	})
	require.True(t, handled)
	require.Len(t, a.bookings.items, 1)
	require.Equal(t, int64(1), a.bookings.items[0].ID)

	// and neither must a late error: the retry screen belongs to the filter
	// that failed, not the one now on screen
	_, handled = a.updateBookings(reservationsErrMsg{
		filter: reservation.FilterAll, page: 1, err: errors.New("boom"),
	})
	require.True(t, handled)
	require.Empty(t, a.bookings.loadErr)
	require.Len(t, a.bookings.items, 1)
}

func TestBookingsInitialLoadFailure(t *testing.T) {
	t.Parallel()

	a := testApp(t)
	bk := &a.bookings
	_, ok := bk.pager.Begin()
	require.True(t, ok)

	_, handled := a.updateBookings(reservationsErrMsg{
		filter: bk.filter, page: 1, err: errors.New("boom"),
	})
	require.True(t, handled)
	require.Equal(t, "boom", bk.loadErr)
	require.False(t, bk.pager.Loading(), "failed claim must be released for retry")

	page, ok := bk.pager.Begin()
	require.True(t, ok)
	require.Equal(t, 1, page)
}

func TestBookingsPaginationFailureKeepsRows(t *testing.T) {
	t.Parallel()

	a := testApp(t)
	bk := &a.bookings
	bk.items = []reservation.Reservation{{ID: 1}, {ID: 2}}
	bk.pager.Begin()
	bk.pager.Finish(true)
	bk.pager.Begin()

	_, handled := a.updateBookings(reservationsErrMsg{
		filter: bk.filter, page: 2, err: errors.New("boom"),
	})
	require.True(t, handled)
	require.Empty(t, bk.loadErr, "rows on screen stay; only a notice is shown")
	require.Len(t, bk.items, 2)
	require.NotEmpty(t, a.status)
}
