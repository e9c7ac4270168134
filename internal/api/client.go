// Package api is the HTTP client for a remote tablebookd instance. Its
// per-concern clients implement the same source signatures as the sqlite
// repositories, so the TUI cannot tell local and remote modes apart.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tablebook/internal/database/repository"
	"tablebook/internal/reservation"
	"tablebook/internal/updates"
)

// Client holds the shared transport for the per-concern clients.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a client. timeout bounds every request; a request is not
// cancellable once issued beyond that bound.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Reservations returns the reservation-facing client.
func (c *Client) Reservations() *ReservationClient { return &ReservationClient{c: c} }

// Reviews returns the review-facing client.
func (c *Client) Reviews() *ReviewClient { return &ReviewClient{c: c} }

// Updates returns the feed-facing client.
func (c *Client) Updates() *UpdateClient { return &UpdateClient{c: c} }

func (c *Client) do(ctx context.Context, method, path string, userID int64, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return repository.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ReservationClient mirrors repository.ReservationRepo over HTTP.
type ReservationClient struct {
	c *Client
}

// List fetches one page of reservations.
func (r *ReservationClient) List(ctx context.Context, userID int64, f reservation.Filter, page, pageSize int) ([]reservation.Reservation, bool, error) {
	q := url.Values{}
	q.Set("filter", string(f))
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var out struct {
		Items   []reservation.Reservation `json:"items"`
		HasMore bool                      `json:"has_more"`
	}
	if err := r.c.do(ctx, http.MethodGet, "/api/v1/reservations?"+q.Encode(), userID, nil, &out); err != nil {
		return nil, false, err
	}
	return out.Items, out.HasMore, nil
}

// Get fetches a single reservation.
func (r *ReservationClient) Get(ctx context.Context, userID, id int64) (reservation.Reservation, error) {
	var out reservation.Reservation
	err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/reservations/%d", id), userID, nil, &out)
	return out, err
}

// Cancel cancels a reservation; the server decides whether it still can be.
func (r *ReservationClient) Cancel(ctx context.Context, userID, id int64) error {
	return r.c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/reservations/%d/cancel", id), userID, nil, nil)
}

// ReviewClient mirrors repository.ReviewRepo over HTTP.
type ReviewClient struct {
	c *Client
}

// ReviewedIDs fetches the set of reservation ids the user has reviewed.
func (r *ReviewClient) ReviewedIDs(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	var out struct {
		ReservationIDs []int64 `json:"reservation_ids"`
	}
	if err := r.c.do(ctx, http.MethodGet, "/api/v1/reviews/ids", userID, nil, &out); err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(out.ReservationIDs))
	for _, id := range out.ReservationIDs {
		set[id] = struct{}{}
	}
	return set, nil
}

// Insert submits a review.
func (r *ReviewClient) Insert(ctx context.Context, rv repository.Review) error {
	body := map[string]interface{}{
		"reservation_id": rv.ReservationID,
		"restaurant_id":  rv.RestaurantID,
		"rating":         rv.Rating,
		"comment":        rv.Comment,
	}
	return r.c.do(ctx, http.MethodPost, "/api/v1/reviews", rv.UserID, body, nil)
}

// UpdateClient mirrors repository.UpdateRepo over HTTP.
type UpdateClient struct {
	c *Client
}

// List fetches the feed for one server category ("" = all).
func (u *UpdateClient) List(ctx context.Context, userID int64, category string) ([]updates.Update, int, error) {
	path := "/api/v1/updates"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out struct {
		Items       []updates.Update `json:"items"`
		UnreadCount int              `json:"unread_count"`
	}
	if err := u.c.do(ctx, http.MethodGet, path, userID, nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.UnreadCount, nil
}

// MarkRead marks one update read. The server stamps read_at itself; now is
// part of the shared source signature and unused here.
func (u *UpdateClient) MarkRead(ctx context.Context, userID, id int64, _ time.Time) error {
	return u.c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/updates/%d/read", id), userID, nil, nil)
}

// MarkAllRead marks the whole feed read.
func (u *UpdateClient) MarkAllRead(ctx context.Context, userID int64, _ time.Time) error {
	return u.c.do(ctx, http.MethodPost, "/api/v1/updates/read-all", userID, nil, nil)
}

// Delete removes one update.
func (u *UpdateClient) Delete(ctx context.Context, userID, id int64) error {
	return u.c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/updates/%d", id), userID, nil, nil)
}
