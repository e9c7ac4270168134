package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"tablebook/internal/database/repository"
	"tablebook/internal/reservation"
	"tablebook/internal/updates"
)

// SeedDemo populates an empty database with a demo account's restaurants,
// reservations and updates. It is idempotent and safe to run on every
// startup.
func SeedDemo(ctx context.Context, db *sql.DB, userID int64) error {
	var existing int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	venues := []struct {
		name, cuisine, address string
	}{
		{"Lucia's Trattoria", "Italian", "14 Harbour Lane"},
		{"Golden Lotus", "Sichuan", "88 Spring Street"},
		{"The Copper Pot", "Modern European", "2 Foundry Row"},
	}
	// the venue rows land atomically; a partial seed would leave dangling
	// restaurant ids in the reservations below
	venueIDs := make([]int64, 0, len(venues))
	if err := WithTx(db, func(tx *sql.Tx) error {
		for _, v := range venues {
			res, err := tx.ExecContext(ctx, `INSERT INTO restaurants(name, cuisine, address) VALUES(?, ?, ?)`,
				v.name, v.cuisine, v.address)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			venueIDs = append(venueIDs, id)
		}
		return nil
	}); err != nil {
		return err
	}

	resRepo := repository.NewReservationRepo(db)
	now := time.Now()
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format("2006-01-02") }

	seed := []reservation.Reservation{
		{
			Status: reservation.StatusConfirmed, Date: day(3), Time: "19:30", PartySize: 2,
			Restaurant: reservation.Restaurant{ID: venueIDs[0]},
			Tags: []reservation.Tag{
				{TagID: 1, TagName: "Window seat", Icon: "🪟", Note: "Table 12 by the bay window"},
				{TagID: 2, TagName: "Anniversary", Icon: "🥂"},
			},
			SpecialRequests: "Quiet corner if possible",
		},
		{
			Status: reservation.StatusPending, Date: day(10), Time: "12:00", PartySize: 6,
			Restaurant: reservation.Restaurant{ID: venueIDs[1]},
			Tags:       []reservation.Tag{{TagID: 3, TagName: "Large party", Note: "Round table requested"}},
		},
		{
			Status: reservation.StatusCompleted, Date: day(-7), Time: "20:00", PartySize: 4,
			Restaurant: reservation.Restaurant{ID: venueIDs[2]},
		},
		{
			Status: reservation.StatusCompleted, Date: day(-21), Time: "18:30", PartySize: 2,
			Restaurant: reservation.Restaurant{ID: venueIDs[0]},
		},
		{
			Status: reservation.StatusCancelled, Date: day(-3), Time: "19:00", PartySize: 3,
			Restaurant: reservation.Restaurant{ID: venueIDs[1]},
		},
		{
			Status: reservation.StatusNoShow, Date: day(-30), Time: "21:00", PartySize: 2,
			Restaurant: reservation.Restaurant{ID: venueIDs[2]},
		},
	}
	resIDs := make([]int64, 0, len(seed))
	for _, r := range seed {
		r.ConfirmationCode = confirmationCode()
		id, err := resRepo.Insert(ctx, userID, r)
		if err != nil {
			return err
		}
		resIDs = append(resIDs, id)
	}

	updRepo := repository.NewUpdateRepo(db)
	feed := []updates.Update{
		{
			Title: "Reservation confirmed", Category: updates.CategoryReservation, Priority: "high",
			Message:   "Lucia's Trattoria confirmed your table for 2 on " + day(3) + " at 19:30.",
			CreatedAt: now.Add(-25 * time.Minute),
			Action: &updates.Action{Label: "View booking", Data: updates.ActionData{
				Screen: "bookings", ReservationID: resIDs[0], RestaurantID: venueIDs[0],
			}},
		},
		{
			Title: "How was The Copper Pot?", Category: updates.CategoryReview, Priority: "medium",
			Message:   "Leave a review for your dinner on " + day(-7) + ".",
			CreatedAt: now.Add(-26 * time.Hour),
			Action: &updates.Action{Label: "Write review", Data: updates.ActionData{
				Screen: updates.ScreenReview, ReservationID: resIDs[2], RestaurantID: venueIDs[2],
			}},
		},
		{
			Title: "New winter menu", Category: updates.CategoryRestaurantNews,
			Message:   "Golden Lotus has launched a winter hotpot menu.",
			CreatedAt: now.Add(-3 * 24 * time.Hour),
		},
		{
			Title: "App update available", Category: updates.CategoryAppUpdate,
			Message: "Version 2.4 adds calendar export.", IsRead: true,
			CreatedAt: now.Add(-9 * 24 * time.Hour),
		},
		{
			Title: "Scheduled maintenance", Category: updates.CategorySystem,
			Message:   "Booking service will be unavailable Sunday 02:00-03:00 UTC.",
			CreatedAt: now.Add(-12 * 24 * time.Hour),
		},
	}
	for _, u := range feed {
		if _, err := updRepo.Insert(ctx, userID, u); err != nil {
			return err
		}
	}
	return nil
}

// confirmationCode builds a short display code like "7F3A2C".
func confirmationCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}
