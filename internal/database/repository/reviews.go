package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Review is a submitted restaurant review.
type Review struct {
	ID            int64
	UserID        int64
	ReservationID int64
	RestaurantID  int64
	Rating        int
	Comment       string
}

// ReviewRepo handles reviews and the reviewed-id set.
type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// ReviewedIDs returns the set of reservation ids the user has reviewed.
func (r *ReviewRepo) ReviewedIDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT reservation_id FROM reviews WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[int64]struct{}{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

// Insert stores a review. One review per reservation per user; a duplicate
// submit surfaces the constraint error.
func (r *ReviewRepo) Insert(ctx context.Context, rv Review) error {
	if rv.Rating < 1 || rv.Rating > 5 {
		return fmt.Errorf("rating %d out of range 1-5", rv.Rating)
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO reviews(
 user_id, reservation_id, restaurant_id, rating, comment)
 VALUES(?, ?, ?, ?, ?)`,
		rv.UserID, rv.ReservationID, rv.RestaurantID, rv.Rating, rv.Comment)
	return err
}
