package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"tablebook/internal/config"
	"tablebook/internal/reservation"
	"tablebook/internal/updates"
)

// App ties the screens together. Each screen owns its state exclusively;
// they share nothing but the status line.
type App struct {
	ctx     context.Context
	cfg     config.Config
	log     zerolog.Logger
	sources Sources
	session Session

	screen appScreen
	width  int
	height int
	status string
	tz     *time.Location

	bookings bookingsState
	feed     updatesState
	review   reviewState
}

type appScreen string

const (
	screenBookings appScreen = "bookings"
	screenUpdates  appScreen = "updates"
	screenReview   appScreen = "review"
)

// New constructs the app model.
func New(ctx context.Context, cfg config.Config, sources Sources, session Session, log zerolog.Logger, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	pageSize := cfg.UI.PageSize
	return &App{
		ctx:     ctx,
		cfg:     cfg,
		log:     log,
		sources: sources,
		session: session,
		screen:  screenBookings,
		tz:      tz,
		bookings: bookingsState{
			filter: reservation.FilterAll,
			pager:  reservation.NewPager(pageSize),
		},
		feed: updatesState{
			filter: updates.FilterAll,
			feed:   updates.NewFeed(log),
		},
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadReservations(true), a.loadReviewedIDs())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}

	if cmd, handled := a.updateBookings(msg); handled {
		return a, cmd
	}
	if cmd, handled := a.updateFeed(msg); handled {
		return a, cmd
	}
	if cmd, handled := a.updateReview(msg); handled {
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.bookings.modal != bookingsModalNone && a.screen == screenBookings {
		return a.handleBookingsModalKey(m)
	}

	switch a.screen {
	case screenBookings:
		return a.handleBookingsKey(m)
	case screenUpdates:
		return a.handleFeedKey(m)
	case screenReview:
		return a.handleReviewKey(m)
	}
	return a, nil
}

// gotoBookings switches to the bookings screen. Regaining focus refreshes
// the reviewed-id set (best effort) so review badges stay current.
func (a *App) gotoBookings() tea.Cmd {
	a.screen = screenBookings
	a.status = ""
	return a.loadReviewedIDs()
}

// gotoUpdates switches to the updates screen and fetches the feed for the
// active category filter.
func (a *App) gotoUpdates() tea.Cmd {
	a.screen = screenUpdates
	a.status = ""
	return a.loadFeed()
}

func (a *App) View() string {
	var body string
	switch a.screen {
	case screenUpdates:
		body = a.renderFeed()
	case screenReview:
		body = a.renderReview()
	default:
		body = a.renderBookings()
	}
	if a.screen == screenBookings && a.bookings.modal != bookingsModalNone {
		return a.renderBookingsModal(body)
	}
	return body
}

// now returns wall-clock time in the configured timezone; derivations that
// depend on "now" recompute it per call, never cache it.
func (a *App) now() time.Time {
	return time.Now().In(a.tz)
}

// statusLine renders the shared notice area.
func (a *App) statusLine() string {
	if a.status == "" {
		return ""
	}
	return "\n" + noticeStyle.Render(a.status)
}
