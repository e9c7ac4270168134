package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tablebook/internal/reservation"
	"tablebook/internal/tui/widgets"
)

type bookingsModal string

const (
	bookingsModalNone    bookingsModal = ""
	bookingsModalCancel  bookingsModal = "confirmCancel"
	bookingsModalTagNote bookingsModal = "tagNote"
)

type bookingsState struct {
	filter   reservation.Filter
	items    []reservation.Reservation
	reviewed map[int64]struct{}
	pager    *reservation.Pager
	cursor   int
	loading  bool
	loadErr  string

	modal        bookingsModal
	modalFocus   int
	cancelTarget int64
	tagTitle     string
	tagNote      string

	searching bool
	search    string
}

// messages

type reservationsMsg struct {
	filter  reservation.Filter
	page    int
	items   []reservation.Reservation
	hasMore bool
}

type reservationsErrMsg struct {
	filter reservation.Filter
	page   int
	err    error
}

// reviewedIDsMsg carries the refreshed reviewed-id set. ok=false means the
// fetch failed and the stale set stays in place — best-effort enrichment.
type reviewedIDsMsg struct {
	set map[int64]struct{}
	ok  bool
}

type cancelDoneMsg struct{ id int64 }

type cancelFailedMsg struct{}

// commands

// loadReservations fetches the next page for the active filter; reset starts
// over from page one. The pager makes overlapping or post-exhaustion calls
// no-ops.
func (a *App) loadReservations(reset bool) tea.Cmd {
	if reset {
		a.bookings.pager.Reset()
	}
	page, ok := a.bookings.pager.Begin()
	if !ok {
		return nil
	}
	if reset {
		a.bookings.loading = true
	}
	filter := a.bookings.filter
	pageSize := a.bookings.pager.PageSize()
	userID := a.session.UserID
	return func() tea.Msg {
		items, hasMore, err := a.sources.Reservations.List(a.ctx, userID, filter, page, pageSize)
		if err != nil {
			return reservationsErrMsg{filter: filter, page: page, err: err}
		}
		return reservationsMsg{filter: filter, page: page, items: items, hasMore: hasMore}
	}
}

// loadReviewedIDs refreshes the reviewed-id set. Failures are discarded on
// purpose: a stale review badge beats a broken bookings screen.
func (a *App) loadReviewedIDs() tea.Cmd {
	userID := a.session.UserID
	return func() tea.Msg {
		set, err := a.sources.Reviews.ReviewedIDs(a.ctx, userID)
		if err != nil {
			a.log.Debug().Err(err).Msg("reviewed ids refresh failed; keeping stale set")
			return reviewedIDsMsg{ok: false}
		}
		return reviewedIDsMsg{set: set, ok: true}
	}
}

func (a *App) cancelReservationCmd(id int64) tea.Cmd {
	userID := a.session.UserID
	return func() tea.Msg {
		if err := a.sources.Reservations.Cancel(a.ctx, userID, id); err != nil {
			a.log.Warn().Err(err).Int64("id", id).Msg("cancel failed")
			return cancelFailedMsg{}
		}
		return cancelDoneMsg{id: id}
	}
}

// message handling

func (a *App) updateBookings(msg tea.Msg) (tea.Cmd, bool) {
	bk := &a.bookings
	switch m := msg.(type) {
	case reservationsMsg:
		if m.filter != bk.filter {
			// stale response from before a filter change; drop it
			return nil, true
		}
		if m.page == 1 {
			bk.items = m.items
			bk.cursor = 0
		} else {
			bk.items = append(bk.items, m.items...)
		}
		bk.pager.Finish(m.hasMore)
		bk.loading = false
		bk.loadErr = ""
		reservation.ApplyReviewed(bk.items, bk.reviewed)
		return nil, true
	case reservationsErrMsg:
		if m.filter != bk.filter {
			// stale error from before a filter change; the pager was reset
			// with the filter, so there is no claim to release
			return nil, true
		}
		bk.pager.Abort()
		bk.loading = false
		if m.page == 1 {
			// initial load failure replaces the list with a retry affordance
			bk.loadErr = m.err.Error()
		} else {
			// pagination failure keeps what is already on screen
			a.status = "couldn't load more bookings"
		}
		return nil, true
	case reviewedIDsMsg:
		if m.ok {
			bk.reviewed = m.set
			reservation.ApplyReviewed(bk.items, bk.reviewed)
		}
		return nil, true
	case cancelDoneMsg:
		a.status = "booking cancelled"
		return tea.Batch(a.loadReservations(true), a.loadReviewedIDs()), true
	case cancelFailedMsg:
		a.status = "could not cancel the booking — please try again"
		return nil, true
	}
	return nil, false
}

// key handling

func (a *App) handleBookingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	bk := &a.bookings

	if bk.searching {
		switch m.Type {
		case tea.KeyEsc:
			bk.searching = false
			bk.search = ""
			bk.cursor = 0
		case tea.KeyEnter:
			bk.searching = false
		case tea.KeyBackspace, tea.KeyCtrlH:
			if len(bk.search) > 0 {
				bk.search = bk.search[:len(bk.search)-1]
			}
		case tea.KeySpace:
			bk.search += " "
		case tea.KeyRunes:
			bk.search += string(m.Runes)
		}
		bk.cursor = widgets.Clamp(bk.cursor, len(a.visibleBookings()))
		return a, nil
	}

	if bk.loadErr != "" {
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "enter", "g":
			bk.loadErr = ""
			return a, tea.Batch(a.loadReservations(true), a.loadReviewedIDs())
		case "u":
			return a, a.gotoUpdates()
		}
		return a, nil
	}

	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "u", "tab":
		return a, a.gotoUpdates()
	case "up", "k":
		if bk.cursor > 0 {
			bk.cursor--
		}
	case "down", "j":
		visible := a.visibleBookings()
		if bk.cursor < len(visible)-1 {
			bk.cursor++
		} else if bk.search == "" {
			// trailing edge: request the next page; the pager turns this
			// into a no-op while a fetch is in flight or after the last page
			return a, a.loadReservations(false)
		}
	case "f":
		bk.filter = nextBookingsFilter(bk.filter)
		bk.items = nil
		bk.cursor = 0
		a.status = ""
		return a, a.loadReservations(true)
	case "g":
		return a, tea.Batch(a.loadReservations(true), a.loadReviewedIDs())
	case "/":
		bk.searching = true
		bk.search = ""
	case "c", "x":
		if res, ok := a.selectedBooking(); ok {
			if !res.Cancellable(a.now()) {
				a.status = "this booking can no longer be cancelled"
				return a, nil
			}
			bk.modal = bookingsModalCancel
			bk.modalFocus = 0
			bk.cancelTarget = res.ID
		}
	case "r":
		if res, ok := a.selectedBooking(); ok {
			if !res.CanReview {
				a.status = "nothing to review here"
				return a, nil
			}
			a.openReview(res, res.Restaurant.ID, 0)
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if res, ok := a.selectedBooking(); ok {
			idx := int(m.String()[0] - '1')
			if idx < len(res.Tags) {
				t := res.Tags[idx]
				bk.modal = bookingsModalTagNote
				bk.modalFocus = 0
				bk.tagTitle = t.TagName
				bk.tagNote = t.Note
			}
		}
	}
	return a, nil
}

func (a *App) handleBookingsModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	bk := &a.bookings
	switch bk.modal {
	case bookingsModalCancel:
		switch m.String() {
		case "esc", "n":
			bk.modal = bookingsModalNone
		case "left", "h":
			bk.modalFocus = widgets.Clamp(bk.modalFocus-1, 2)
		case "right", "l", "tab":
			bk.modalFocus = widgets.Clamp(bk.modalFocus+1, 2)
		case "enter":
			confirmed := bk.modalFocus == 1
			bk.modal = bookingsModalNone
			if confirmed {
				return a, a.cancelReservationCmd(bk.cancelTarget)
			}
		case "y":
			bk.modal = bookingsModalNone
			return a, a.cancelReservationCmd(bk.cancelTarget)
		}
	case bookingsModalTagNote:
		switch m.String() {
		case "esc", "enter", "q":
			bk.modal = bookingsModalNone
		}
	}
	return a, nil
}

func nextBookingsFilter(f reservation.Filter) reservation.Filter {
	switch f {
	case reservation.FilterAll:
		return reservation.FilterUpcoming
	case reservation.FilterUpcoming:
		return reservation.FilterPast
	default:
		return reservation.FilterAll
	}
}

// visibleBookings applies the client-side fuzzy search over the loaded rows.
func (a *App) visibleBookings() []reservation.Reservation {
	bk := &a.bookings
	if bk.search == "" {
		return bk.items
	}
	return fuzzyByRestaurant(bk.items, bk.search)
}

func (a *App) selectedBooking() (reservation.Reservation, bool) {
	visible := a.visibleBookings()
	if len(visible) == 0 || a.bookings.cursor >= len(visible) {
		return reservation.Reservation{}, false
	}
	return visible[a.bookings.cursor], true
}

// fuzzyByRestaurant ranks rows by restaurant-name similarity: substring
// matches first, then close levenshtein distances.
func fuzzyByRestaurant(items []reservation.Reservation, query string) []reservation.Reservation {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	type ranked struct {
		res   reservation.Reservation
		score int
	}
	var out []ranked
	for _, r := range items {
		name := strings.ToLower(r.Restaurant.Name)
		switch {
		case strings.Contains(name, q):
			out = append(out, ranked{res: r, score: 0})
		default:
			dist := levenshtein.ComputeDistance(name, q)
			if dist <= len(name)/2 {
				out = append(out, ranked{res: r, score: dist})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score < out[j].score })
	result := make([]reservation.Reservation, len(out))
	for i, r := range out {
		result[i] = r.res
	}
	return result
}

// rendering

func (a *App) renderBookings() string {
	bk := &a.bookings

	title := titleStyle.Render("My Bookings") + dimStyle.Render("  ("+string(bk.filter)+")")
	out := title + "\n\n"

	if bk.loadErr != "" {
		out += errorStyle.Render("couldn't load your bookings") + "\n"
		out += dimStyle.Render(bk.loadErr) + "\n\n"
		out += widgets.Button{Label: "Retry", Variant: widgets.VariantPrimary, Focused: true}.Render() + "\n"
		out += helpStyle.Render("[enter] Retry  [u] Updates  [q] Quit")
		return out + a.statusLine()
	}

	if bk.searching || bk.search != "" {
		out += headerStyle.Render("search: ") + bk.search
		if bk.searching {
			out += selectedStyle.Render("▌")
		}
		out += "\n\n"
	}

	visible := a.visibleBookings()
	if bk.loading && len(visible) == 0 {
		out += dimStyle.Render("loading…") + "\n"
	} else if len(visible) == 0 {
		out += dimStyle.Render("no bookings for this filter") + "\n"
	}

	now := a.now()
	for i, r := range visible {
		marker := "  "
		if i == bk.cursor {
			marker = selectedStyle.Render("▶ ")
		}
		p := reservation.PresentationFor(r.Status)
		badge := badgeStyle.Background(AccentColor(p.Accent)).Render(p.Label)

		when := r.Date + " " + r.Time
		if at, err := r.ScheduledAt(a.tz); err == nil {
			when = at.Format(a.cfg.UI.DateFormat) + " " + r.Time
		}

		line := fmt.Sprintf("%s%s  %s  %s  party of %d  %s",
			marker, when, badge, headerStyle.Render(r.Restaurant.Name), r.PartySize,
			dimStyle.Render("#"+r.ConfirmationCode))
		if r.CanReview {
			line += "  " + unreadStyle.Render("★ review")
		}
		out += line + "\n"

		if i == bk.cursor {
			out += a.renderBookingDetail(r, now)
		}
	}

	if bk.pager.Loading() && len(visible) > 0 {
		out += dimStyle.Render("loading more…") + "\n"
	} else if !bk.pager.HasMore() && len(visible) > 0 {
		out += dimStyle.Render("· end of list ·") + "\n"
	}

	out += "\n" + helpStyle.Render("[f] Filter  [c] Cancel  [r] Review  [1-9] Tag note  [/] Search  [g] Reload  [u] Updates  [q] Quit")
	return out + a.statusLine()
}

func (a *App) renderBookingDetail(r reservation.Reservation, now time.Time) string {
	indent := "    "
	var out string

	if len(r.Tags) > 0 {
		parts := make([]string, len(r.Tags))
		for i, t := range r.Tags {
			label := t.TagName
			if t.Icon != "" {
				label = t.Icon + " " + label
			}
			parts[i] = fmt.Sprintf("[%d] %s", i+1, label)
		}
		out += indent + dimStyle.Render(strings.Join(parts, "  ")) + "\n"
	}
	if r.SpecialRequests != "" {
		out += indent + dimStyle.Render("requests: "+r.SpecialRequests) + "\n"
	}

	var hints []string
	if r.Cancellable(now) {
		hints = append(hints, "[c] cancel")
	}
	if r.CanReview {
		hints = append(hints, "[r] review")
	}
	if len(hints) > 0 {
		out += indent + helpStyle.Render(strings.Join(hints, "  ")) + "\n"
	}
	return out
}

func (a *App) renderBookingsModal(base string) string {
	bk := &a.bookings
	var card string
	switch bk.modal {
	case bookingsModalCancel:
		card = headerStyle.Render("Cancel this booking?") + "\n\n"
		card += "This can't be undone.\n\n"
		card += widgets.ButtonRow(bk.modalFocus,
			widgets.Button{Label: "Keep it", Variant: widgets.VariantGhost},
			widgets.Button{Label: "Cancel booking", Variant: widgets.VariantDanger},
		)
		card += "\n" + helpStyle.Render("[←/→] choose  [enter] confirm  [esc] back")
	case bookingsModalTagNote:
		note := bk.tagNote
		if note == "" {
			note = "no note for this tag"
		}
		card = headerStyle.Render(bk.tagTitle) + "\n\n" + note + "\n\n"
		card += widgets.Button{Label: "OK", Variant: widgets.VariantPrimary, Focused: true}.Render()
	default:
		return base
	}

	width, height := a.width, a.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = lipgloss.Height(base) + 2
	}
	return widgets.RenderModal(base, card, width, height)
}
