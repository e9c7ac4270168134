package updates

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Server-side update categories.
const (
	CategoryReservation    = "RESERVATION"
	CategoryReview         = "REVIEW"
	CategoryRestaurantNews = "RESTAURANT_NEWS"
	CategoryAppUpdate      = "APP_UPDATE"
	CategorySystem         = "SYSTEM"
)

// Client-side filter keys.
const (
	FilterAll            = "all"
	FilterReservation    = "reservation"
	FilterReview         = "review"
	FilterRestaurantNews = "restaurant_news"
	FilterUpdate         = "update"
)

// ActionData is the payload behind a notification's action button.
type ActionData struct {
	Screen        string `json:"screen"`
	RestaurantID  int64  `json:"restaurant_id,omitempty"`
	ReservationID int64  `json:"reservation_id,omitempty"`
	UpdateID      int64  `json:"update_id,omitempty"`
}

// Action is an optional deep follow-up attached to an update.
type Action struct {
	Label string     `json:"label"`
	Data  ActionData `json:"data"`
}

// ScreenReview is the action target the feed knows how to follow.
const ScreenReview = "review"

// Update is a single feed entry. UpdateID may be nil for malformed rows;
// such rows must still render and be individually addressable.
type Update struct {
	UpdateID  *int64     `json:"update_id,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Category  string     `json:"category"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	Priority  string     `json:"priority,omitempty"` // high | medium | ""
	Icon      string     `json:"icon,omitempty"`
	Action    *Action    `json:"action_button,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	// fallbackKey addresses rows without an id for the lifetime of the
	// process. It is a render key only; mutations must never target it.
	fallbackKey string
}

// Key returns a stable-enough identifier for list rendering. Rows with an id
// use it; rows without get a process-local random key on first call.
func (u *Update) Key() string {
	if u.UpdateID != nil {
		return fmt.Sprintf("%d", *u.UpdateID)
	}
	if u.fallbackKey == "" {
		u.fallbackKey = "tmp-" + uuid.NewString()
	}
	return u.fallbackKey
}

// categoryFilters maps server enums to client filter keys. APP_UPDATE and
// SYSTEM both collapse onto the generic "update" bucket.
var categoryFilters = map[string]string{
	CategoryReservation:    FilterReservation,
	CategoryReview:         FilterReview,
	CategoryRestaurantNews: FilterRestaurantNews,
	CategoryAppUpdate:      FilterUpdate,
	CategorySystem:         FilterUpdate,
}

// FilterKey maps a server category to its client filter key. The mapping is
// total: unknown categories pass through lower-cased.
func FilterKey(category string) string {
	if k, ok := categoryFilters[category]; ok {
		return k
	}
	return strings.ToLower(category)
}

// ServerCategory translates an active client filter to the server enum for
// requests. FilterAll (and anything unknown) yields "" meaning no category
// constraint.
func ServerCategory(filter string) string {
	switch filter {
	case FilterReservation:
		return CategoryReservation
	case FilterReview:
		return CategoryReview
	case FilterRestaurantNews:
		return CategoryRestaurantNews
	case FilterUpdate:
		return CategoryAppUpdate
	default:
		return ""
	}
}

var categoryIcons = map[string]string{
	CategoryReservation:    "📅",
	CategoryReview:         "⭐",
	CategoryRestaurantNews: "📰",
	CategoryAppUpdate:      "📲",
	CategorySystem:         "⚙️",
}

// DisplayIcon resolves the icon with explicit-override precedence: the
// item's own icon, else the category table, else a generic glyph.
func (u Update) DisplayIcon() string {
	if u.Icon != "" {
		return u.Icon
	}
	if icon, ok := categoryIcons[u.Category]; ok {
		return icon
	}
	return "🔔"
}

// TimeAgo buckets the age of an update relative to now. Recomputed per
// render; never cached.
func TimeAgo(createdAt, now time.Time) string {
	d := now.Sub(createdAt)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
