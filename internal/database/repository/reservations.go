package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tablebook/internal/reservation"
)

// ErrNotFound is returned when a row does not exist or belongs to another user.
var ErrNotFound = errors.New("not found")

// ReservationRepo handles reservations.
type ReservationRepo struct {
	db *sql.DB
}

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `r.id, r.status, r.date, r.time, r.party_size,
 r.confirmation_code, r.special_requests, rt.id, rt.name`

// List returns one page of a user's reservations under the temporal filter,
// plus whether further pages exist. The filter is applied server-side so the
// client and server share one taxonomy.
func (r *ReservationRepo) List(ctx context.Context, userID int64, f reservation.Filter, page, pageSize int) ([]reservation.Reservation, bool, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	where := "r.user_id = ?"
	args := []interface{}{userID}
	order := "r.date DESC, r.time DESC"

	now := time.Now()
	cutDate, cutTime := now.Format("2006-01-02"), now.Format("15:04")
	switch f {
	case reservation.FilterUpcoming:
		where += " AND (r.date > ? OR (r.date = ? AND r.time >= ?))"
		args = append(args, cutDate, cutDate, cutTime)
		order = "r.date ASC, r.time ASC"
	case reservation.FilterPast:
		where += " AND (r.date < ? OR (r.date = ? AND r.time < ?))"
		args = append(args, cutDate, cutDate, cutTime)
	}

	// fetch one extra row to learn whether another page exists
	query := fmt.Sprintf(`SELECT %s FROM reservations r
 JOIN restaurants rt ON rt.id = r.restaurant_id
 WHERE %s ORDER BY %s LIMIT ? OFFSET ?`, reservationColumns, where, order)
	args = append(args, pageSize+1, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, false, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	hasMore := len(out) > pageSize
	if hasMore {
		out = out[:pageSize]
	}

	for i := range out {
		tags, err := r.fetchTags(ctx, out[i].ID)
		if err != nil {
			return nil, false, err
		}
		out[i].Tags = tags
	}
	return out, hasMore, nil
}

// Get returns a single reservation owned by the user.
func (r *ReservationRepo) Get(ctx context.Context, userID, id int64) (reservation.Reservation, error) {
	query := fmt.Sprintf(`SELECT %s FROM reservations r
 JOIN restaurants rt ON rt.id = r.restaurant_id
 WHERE r.id = ? AND r.user_id = ?`, reservationColumns)
	row := r.db.QueryRowContext(ctx, query, id, userID)
	res, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return reservation.Reservation{}, ErrNotFound
	}
	if err != nil {
		return reservation.Reservation{}, err
	}
	res.Tags, err = r.fetchTags(ctx, res.ID)
	return res, err
}

// Cancel marks a confirmed or pending reservation cancelled. The database is
// the authority: cancelling a row that is missing or no longer cancellable
// fails rather than silently succeeding.
func (r *ReservationRepo) Cancel(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE reservations
 SET status = ?, updated_at = CURRENT_TIMESTAMP
 WHERE id = ? AND user_id = ? AND status IN (?, ?)`,
		reservation.StatusCancelled, id, userID,
		reservation.StatusConfirmed, reservation.StatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reservation %d: %w or not cancellable", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (reservation.Reservation, error) {
	var res reservation.Reservation
	err := row.Scan(&res.ID, &res.Status, &res.Date, &res.Time, &res.PartySize,
		&res.ConfirmationCode, &res.SpecialRequests,
		&res.Restaurant.ID, &res.Restaurant.Name)
	return res, err
}

func (r *ReservationRepo) fetchTags(ctx context.Context, reservationID int64) ([]reservation.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag_id, tag_name, icon, note
 FROM reservation_tags WHERE reservation_id = ? ORDER BY position, tag_id`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tags []reservation.Tag
	for rows.Next() {
		var t reservation.Tag
		if err := rows.Scan(&t.TagID, &t.TagName, &t.Icon, &t.Note); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Insert creates a reservation row; used by seeding and tests.
func (r *ReservationRepo) Insert(ctx context.Context, userID int64, res reservation.Reservation) (int64, error) {
	out, err := r.db.ExecContext(ctx, `INSERT INTO reservations(
 user_id, restaurant_id, status, date, time, party_size, confirmation_code, special_requests)
 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, res.Restaurant.ID, res.Status, res.Date, res.Time,
		res.PartySize, res.ConfirmationCode, res.SpecialRequests)
	if err != nil {
		return 0, err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return 0, err
	}
	for i, t := range res.Tags {
		if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO reservation_tags(
 reservation_id, tag_id, tag_name, icon, note, position) VALUES(?, ?, ?, ?, ?, ?)`,
			id, t.TagID, t.TagName, t.Icon, t.Note, i); err != nil {
			return 0, err
		}
	}
	return id, nil
}
