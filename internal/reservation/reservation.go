package reservation

import "time"

// Status is the server-side reservation status.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Filter selects the temporal slice of the list. It is passed to the data
// source verbatim; the server applies the same taxonomy.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterUpcoming Filter = "upcoming"
	FilterPast     Filter = "past"
)

// Restaurant is the minimal venue shape carried on a reservation.
type Restaurant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tag is an annotation attached to a reservation (window seat, birthday, ...).
type Tag struct {
	TagID   int64  `json:"tag_id"`
	TagName string `json:"tag_name"`
	Icon    string `json:"icon,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Reservation is the display entity the bookings screen works with.
type Reservation struct {
	ID               int64      `json:"id"`
	Status           Status     `json:"status"`
	Date             string     `json:"date"` // 2006-01-02
	Time             string     `json:"time"` // 15:04, venue-local
	PartySize        int        `json:"party_size"`
	Restaurant       Restaurant `json:"restaurant"`
	ConfirmationCode string     `json:"confirmation_code"`
	Tags             []Tag      `json:"tags,omitempty"`
	SpecialRequests  string     `json:"special_requests,omitempty"`

	// CanReview is derived from the reviewed-id set, not stored.
	CanReview bool `json:"can_review,omitempty"`
}

// ScheduledAt parses the reservation's date and time in the given location.
func (r Reservation) ScheduledAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation("2006-01-02 15:04", r.Date+" "+r.Time, loc)
}

// IsPast reports whether the reservation's scheduled datetime is before now.
// Unparseable date/time counts as not past: the row stays actionable and the
// server remains the authority on what the action is allowed to do.
func (r Reservation) IsPast(now time.Time) bool {
	at, err := r.ScheduledAt(now.Location())
	if err != nil {
		return false
	}
	return at.Before(now)
}

// Cancellable reports whether a cancel action should be offered:
// confirmed or pending, and not already in the past.
func (r Reservation) Cancellable(now time.Time) bool {
	if r.Status != StatusConfirmed && r.Status != StatusPending {
		return false
	}
	return !r.IsPast(now)
}

// Reviewable reports whether a review can be started: the visit is completed
// and no review has been left yet.
func (r Reservation) Reviewable(reviewed map[int64]struct{}) bool {
	if r.Status != StatusCompleted {
		return false
	}
	_, done := reviewed[r.ID]
	return !done
}

// ApplyReviewed recomputes CanReview for every row against the reviewed set.
func ApplyReviewed(list []Reservation, reviewed map[int64]struct{}) {
	for i := range list {
		list[i].CanReview = list[i].Reviewable(reviewed)
	}
}
