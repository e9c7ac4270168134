package tui

import (
	"context"
	"time"

	"tablebook/internal/database/repository"
	"tablebook/internal/reservation"
	"tablebook/internal/updates"
)

// Session identifies the signed-in diner. It is injected, never ambient: a
// zero UserID means nobody is signed in and feed fetches become no-ops.
type Session struct {
	UserID int64
}

// SignedIn reports whether a user is present.
func (s Session) SignedIn() bool { return s.UserID > 0 }

// ReservationSource supplies reservations. Satisfied by both
// repository.ReservationRepo (local mode) and api.ReservationClient.
type ReservationSource interface {
	List(ctx context.Context, userID int64, f reservation.Filter, page, pageSize int) ([]reservation.Reservation, bool, error)
	Get(ctx context.Context, userID, id int64) (reservation.Reservation, error)
	Cancel(ctx context.Context, userID, id int64) error
}

// ReviewSource supplies the reviewed-id set and accepts new reviews.
type ReviewSource interface {
	ReviewedIDs(ctx context.Context, userID int64) (map[int64]struct{}, error)
	Insert(ctx context.Context, rv repository.Review) error
}

// UpdateSource supplies the notification feed and its mutations.
type UpdateSource interface {
	List(ctx context.Context, userID int64, category string) ([]updates.Update, int, error)
	MarkRead(ctx context.Context, userID, id int64, now time.Time) error
	MarkAllRead(ctx context.Context, userID int64, now time.Time) error
	Delete(ctx context.Context, userID, id int64) error
}

// Sources bundles the three data sources for injection from main.
type Sources struct {
	Reservations ReservationSource
	Reviews      ReviewSource
	Updates      UpdateSource
}
