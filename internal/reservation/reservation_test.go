package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCancellable(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := Reservation{Date: "2026-03-20", Time: "19:00"}
	past := Reservation{Date: "2020-01-01", Time: "10:00"}

	cases := []struct {
		name   string
		status Status
		res    Reservation
		want   bool
	}{
		{"confirmed upcoming", StatusConfirmed, future, true},
		{"pending upcoming", StatusPending, future, true},
		{"confirmed past", StatusConfirmed, past, false},
		{"pending past", StatusPending, past, false},
		{"completed upcoming", StatusCompleted, future, false},
		{"cancelled upcoming", StatusCancelled, future, false},
		{"no_show upcoming", StatusNoShow, future, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.res
			r.Status = tc.status
			require.Equal(t, tc.want, r.Cancellable(now))
		})
	}
}

func TestIsPast(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	r := Reservation{Status: StatusConfirmed, Date: "2020-01-01", Time: "10:00"}
	require.True(t, r.IsPast(now))
	require.False(t, r.Cancellable(now))

	// same day, later time
	r = Reservation{Date: "2026-03-10", Time: "19:30"}
	require.False(t, r.IsPast(now))

	// unparseable dates classify as not past so the row stays actionable
	r = Reservation{Date: "soon", Time: "whenever"}
	require.False(t, r.IsPast(now))
}

func TestReviewable(t *testing.T) {
	t.Parallel()

	reviewed := map[int64]struct{}{7: {}}

	require.True(t, Reservation{ID: 3, Status: StatusCompleted}.Reviewable(reviewed))
	require.False(t, Reservation{ID: 7, Status: StatusCompleted}.Reviewable(reviewed))
	require.False(t, Reservation{ID: 3, Status: StatusConfirmed}.Reviewable(reviewed))
	require.False(t, Reservation{ID: 3, Status: StatusNoShow}.Reviewable(reviewed))
}

func TestApplyReviewed(t *testing.T) {
	t.Parallel()

	list := []Reservation{
		{ID: 1, Status: StatusCompleted},
		{ID: 2, Status: StatusCompleted},
		{ID: 3, Status: StatusConfirmed},
	}
	ApplyReviewed(list, map[int64]struct{}{2: {}})
	require.True(t, list[0].CanReview)
	require.False(t, list[1].CanReview)
	require.False(t, list[2].CanReview)
}

func TestPresentationFallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Confirmed", PresentationFor(StatusConfirmed).Label)
	require.Equal(t, "no_show", PresentationFor(StatusNoShow).Accent)

	// unknown and empty statuses render as pending, never panic
	pending := PresentationFor(StatusPending)
	require.Equal(t, pending, PresentationFor(Status("archived")))
	require.Equal(t, pending, PresentationFor(Status("")))
}
