package repository

import (
	"context"
	"database/sql"
	"time"

	"tablebook/internal/updates"
)

// UpdateRepo handles the notification feed.
type UpdateRepo struct {
	db *sql.DB
}

func NewUpdateRepo(db *sql.DB) *UpdateRepo { return &UpdateRepo{db: db} }

// List returns the user's feed, newest first, optionally restricted to one
// server category, along with the unread count for the whole feed.
func (r *UpdateRepo) List(ctx context.Context, userID int64, category string) ([]updates.Update, int, error) {
	query := `SELECT id, title, message, category, priority, icon, is_read, read_at,
 action_label, action_screen, action_restaurant_id, action_reservation_id, created_at
 FROM updates WHERE user_id = ?`
	args := []interface{}{userID}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []updates.Update
	for rows.Next() {
		var (
			u             updates.Update
			id            int64
			readAt        sql.NullTime
			actionLabel   string
			actionScreen  string
			restaurantID  sql.NullInt64
			reservationID sql.NullInt64
		)
		if err := rows.Scan(&id, &u.Title, &u.Message, &u.Category, &u.Priority, &u.Icon,
			&u.IsRead, &readAt, &actionLabel, &actionScreen,
			&restaurantID, &reservationID, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		u.UpdateID = &id
		if readAt.Valid {
			t := readAt.Time
			u.ReadAt = &t
		}
		if actionScreen != "" {
			u.Action = &updates.Action{
				Label: actionLabel,
				Data: updates.ActionData{
					Screen:        actionScreen,
					RestaurantID:  restaurantID.Int64,
					ReservationID: reservationID.Int64,
					UpdateID:      id,
				},
			}
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var unread int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM updates WHERE user_id = ? AND is_read = 0`, userID)
	if err := row.Scan(&unread); err != nil {
		return nil, 0, err
	}
	return out, unread, nil
}

// MarkRead sets one update read, stamping read_at only on the first
// transition.
func (r *UpdateRepo) MarkRead(ctx context.Context, userID, id int64, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE updates SET is_read = 1, read_at = ?
 WHERE id = ? AND user_id = ? AND is_read = 0`, now, id, userID)
	return err
}

// MarkAllRead sets every unread update read.
func (r *UpdateRepo) MarkAllRead(ctx context.Context, userID int64, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE updates SET is_read = 1, read_at = ?
 WHERE user_id = ? AND is_read = 0`, now, userID)
	return err
}

// Delete removes one update.
func (r *UpdateRepo) Delete(ctx context.Context, userID, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM updates WHERE id = ? AND user_id = ?`, id, userID)
	return err
}

// Insert creates an update row; used by seeding and tests.
func (r *UpdateRepo) Insert(ctx context.Context, userID int64, u updates.Update) (int64, error) {
	var (
		actionLabel, actionScreen   string
		restaurantID, reservationID sql.NullInt64
	)
	if u.Action != nil {
		actionLabel = u.Action.Label
		actionScreen = u.Action.Data.Screen
		if u.Action.Data.RestaurantID != 0 {
			restaurantID = sql.NullInt64{Int64: u.Action.Data.RestaurantID, Valid: true}
		}
		if u.Action.Data.ReservationID != 0 {
			reservationID = sql.NullInt64{Int64: u.Action.Data.ReservationID, Valid: true}
		}
	}
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	out, err := r.db.ExecContext(ctx, `INSERT INTO updates(
 user_id, title, message, category, priority, icon, is_read,
 action_label, action_screen, action_restaurant_id, action_reservation_id, created_at)
 VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, u.Title, u.Message, u.Category, u.Priority, u.Icon, u.IsRead,
		actionLabel, actionScreen, restaurantID, reservationID, createdAt)
	if err != nil {
		return 0, err
	}
	return out.LastInsertId()
}
