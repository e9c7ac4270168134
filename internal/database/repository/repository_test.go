package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tablebook/internal/database"
	"tablebook/internal/database/repository"
	"tablebook/internal/reservation"
	"tablebook/internal/updates"
)

const testUser = int64(1)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(path))
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`INSERT INTO restaurants(id, name, cuisine, address) VALUES
 (1, 'Lume', 'Italian', '12 Harbor St'),
 (2, 'Sora', 'Japanese', '4 Elm Ave')`)
	require.NoError(t, err)
	return db
}

func futureDate(days int) string { return time.Now().AddDate(0, 0, days).Format("2006-01-02") }

func insertReservation(t *testing.T, repo *repository.ReservationRepo, userID int64, restaurantID int64, status reservation.Status, date, tm string, tags ...reservation.Tag) int64 {
	t.Helper()
	id, err := repo.Insert(context.Background(), userID, reservation.Reservation{
		Restaurant:       reservation.Restaurant{ID: restaurantID},
		Status:           status,
		Date:             date,
		Time:             tm,
		PartySize:        2,
		ConfirmationCode: "ABC123",
		Tags:             tags,
	})
	require.NoError(t, err)
	return id
}

func TestReservationListTemporalFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewReservationRepo(testDB(t))

	up := insertReservation(t, repo, testUser, 1, reservation.StatusConfirmed, futureDate(3), "19:00")
	past := insertReservation(t, repo, testUser, 1, reservation.StatusCompleted, "2020-01-01", "10:00")
	insertReservation(t, repo, 2, 1, reservation.StatusConfirmed, futureDate(3), "19:00") // other user

	all, hasMore, err := repo.List(ctx, testUser, reservation.FilterAll, 1, 10)
	require.NoError(t, err)
	require.False(t, hasMore)
	require.Len(t, all, 2)

	upcoming, _, err := repo.List(ctx, testUser, reservation.FilterUpcoming, 1, 10)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	require.Equal(t, up, upcoming[0].ID)

	gone, _, err := repo.List(ctx, testUser, reservation.FilterPast, 1, 10)
	require.NoError(t, err)
	require.Len(t, gone, 1)
	require.Equal(t, past, gone[0].ID)
}

func TestReservationListPaging(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewReservationRepo(testDB(t))

	for i := 1; i <= 5; i++ {
		insertReservation(t, repo, testUser, 1, reservation.StatusConfirmed, futureDate(i), "19:00")
	}

	page1, hasMore, err := repo.List(ctx, testUser, reservation.FilterUpcoming, 1, 2)
	require.NoError(t, err)
	require.True(t, hasMore)
	require.Len(t, page1, 2)
	require.Equal(t, futureDate(1), page1[0].Date, "upcoming pages run soonest first")

	page3, hasMore, err := repo.List(ctx, testUser, reservation.FilterUpcoming, 3, 2)
	require.NoError(t, err)
	require.False(t, hasMore)
	require.Len(t, page3, 1)
}

func TestReservationGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewReservationRepo(testDB(t))

	id := insertReservation(t, repo, testUser, 1, reservation.StatusConfirmed, futureDate(2), "20:00",
		reservation.Tag{TagID: 1, TagName: "Window seat", Icon: "🪟", Note: "corner if possible"})

	res, err := repo.Get(ctx, testUser, id)
	require.NoError(t, err)
	require.Equal(t, "Lume", res.Restaurant.Name)
	require.Len(t, res.Tags, 1)
	require.Equal(t, "Window seat", res.Tags[0].TagName)

	_, err = repo.Get(ctx, 99, id)
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Get(ctx, testUser, 9999)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReservationCancel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewReservationRepo(testDB(t))

	confirmed := insertReservation(t, repo, testUser, 1, reservation.StatusConfirmed, futureDate(2), "19:00")
	completed := insertReservation(t, repo, testUser, 1, reservation.StatusCompleted, "2020-01-01", "10:00")

	require.NoError(t, repo.Cancel(ctx, testUser, confirmed))
	res, err := repo.Get(ctx, testUser, confirmed)
	require.NoError(t, err)
	require.Equal(t, reservation.StatusCancelled, res.Status)

	// a second cancel finds no cancellable row
	require.ErrorIs(t, repo.Cancel(ctx, testUser, confirmed), repository.ErrNotFound)
	require.ErrorIs(t, repo.Cancel(ctx, testUser, completed), repository.ErrNotFound)
	require.ErrorIs(t, repo.Cancel(ctx, testUser, 9999), repository.ErrNotFound)
	require.ErrorIs(t, repo.Cancel(ctx, 99, confirmed), repository.ErrNotFound)
}

func TestReviews(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testDB(t)
	resRepo := repository.NewReservationRepo(db)
	repo := repository.NewReviewRepo(db)

	resID := insertReservation(t, resRepo, testUser, 1, reservation.StatusCompleted, "2020-01-01", "10:00")

	ids, err := repo.ReviewedIDs(ctx, testUser)
	require.NoError(t, err)
	require.Empty(t, ids)

	rv := repository.Review{UserID: testUser, ReservationID: resID, RestaurantID: 1, Rating: 4, Comment: "great pasta"}
	require.NoError(t, repo.Insert(ctx, rv))

	ids, err = repo.ReviewedIDs(ctx, testUser)
	require.NoError(t, err)
	require.Contains(t, ids, resID)

	// one review per reservation per user
	require.Error(t, repo.Insert(ctx, rv))

	rv.Rating = 0
	require.Error(t, repo.Insert(ctx, rv))
	rv.Rating = 6
	require.Error(t, repo.Insert(ctx, rv))
}

func TestUpdatesFeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewUpdateRepo(testDB(t))

	base := time.Now().UTC().Add(-3 * time.Hour)
	oldID, err := repo.Insert(ctx, testUser, updates.Update{
		Title: "Booking confirmed", Category: updates.CategoryReservation, CreatedAt: base,
	})
	require.NoError(t, err)
	newID, err := repo.Insert(ctx, testUser, updates.Update{
		Title: "How was your visit?", Category: updates.CategoryReview, Priority: "high",
		CreatedAt: base.Add(time.Hour),
		Action: &updates.Action{Label: "Write review", Data: updates.ActionData{
			Screen: updates.ScreenReview, RestaurantID: 1, ReservationID: 7,
		}},
	})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, 2, updates.Update{Title: "other user", Category: updates.CategorySystem})
	require.NoError(t, err)

	items, unread, err := repo.List(ctx, testUser, "")
	require.NoError(t, err)
	require.Equal(t, 2, unread)
	require.Len(t, items, 2)
	require.Equal(t, newID, *items[0].UpdateID, "newest first")
	require.NotNil(t, items[0].Action)
	require.Equal(t, updates.ScreenReview, items[0].Action.Data.Screen)
	require.Equal(t, int64(7), items[0].Action.Data.ReservationID)
	require.Nil(t, items[1].Action)

	filtered, _, err := repo.List(ctx, testUser, updates.CategoryReview)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, newID, *filtered[0].UpdateID)

	now := time.Now().UTC()
	require.NoError(t, repo.MarkRead(ctx, testUser, newID, now))
	items, unread, err = repo.List(ctx, testUser, "")
	require.NoError(t, err)
	require.Equal(t, 1, unread)
	require.True(t, items[0].IsRead)
	require.NotNil(t, items[0].ReadAt)
	first := *items[0].ReadAt

	// the first transition owns read_at
	require.NoError(t, repo.MarkRead(ctx, testUser, newID, now.Add(time.Hour)))
	items, _, err = repo.List(ctx, testUser, "")
	require.NoError(t, err)
	require.Equal(t, first, *items[0].ReadAt)

	require.NoError(t, repo.MarkAllRead(ctx, testUser, now))
	_, unread, err = repo.List(ctx, testUser, "")
	require.NoError(t, err)
	require.Equal(t, 0, unread)

	require.NoError(t, repo.Delete(ctx, testUser, oldID))
	items, _, err = repo.List(ctx, testUser, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, newID, *items[0].UpdateID)

	// deletes are scoped to the owner
	require.NoError(t, repo.Delete(ctx, 99, newID))
	items, _, err = repo.List(ctx, testUser, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
}
