package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tablebook/internal/reservation"
	"tablebook/internal/tui/widgets"
	"tablebook/internal/updates"
)

type updatesState struct {
	filter  string
	feed    *updates.Feed
	cursor  int
	loading bool
	errText string
}

// messages

type feedMsg struct {
	filter string
	items  []updates.Update
	unread int
}

type feedErrMsg struct {
	filter string
	err    error
}

type markedReadMsg struct{ key string }

type markedAllReadMsg struct{}

type updateDeletedMsg struct{ key string }

type feedMutationFailedMsg struct{ op string }

type actionResolvedMsg struct {
	res  reservation.Reservation
	data updates.ActionData
}

type actionFailedMsg struct{ reason string }

// commands

// loadFeed fetches the feed for the active category filter. Without a
// signed-in user this is a no-op, not an error.
func (a *App) loadFeed() tea.Cmd {
	if !a.session.SignedIn() {
		return nil
	}
	a.feed.loading = true
	filter := a.feed.filter
	category := updates.ServerCategory(filter)
	userID := a.session.UserID
	return func() tea.Msg {
		items, unread, err := a.sources.Updates.List(a.ctx, userID, category)
		if err != nil {
			return feedErrMsg{filter: filter, err: err}
		}
		return feedMsg{filter: filter, items: items, unread: unread}
	}
}

// markReadCmd performs the remote mark-read; the local list mutates only
// after success.
func (a *App) markReadCmd(u updates.Update) tea.Cmd {
	if u.UpdateID == nil {
		a.log.Warn().Str("key", u.Key()).Msg("mark-read requested for an update without an id")
		return func() tea.Msg { return feedMutationFailedMsg{op: "mark read"} }
	}
	id, key := *u.UpdateID, u.Key()
	userID := a.session.UserID
	return func() tea.Msg {
		if err := a.sources.Updates.MarkRead(a.ctx, userID, id, a.now()); err != nil {
			a.log.Warn().Err(err).Int64("id", id).Msg("mark read failed")
			return feedMutationFailedMsg{op: "mark read"}
		}
		return markedReadMsg{key: key}
	}
}

func (a *App) markAllReadCmd() tea.Cmd {
	userID := a.session.UserID
	return func() tea.Msg {
		if err := a.sources.Updates.MarkAllRead(a.ctx, userID, a.now()); err != nil {
			a.log.Warn().Err(err).Msg("mark all read failed")
			return feedMutationFailedMsg{op: "mark all read"}
		}
		return markedAllReadMsg{}
	}
}

func (a *App) deleteUpdateCmd(u updates.Update) tea.Cmd {
	if u.UpdateID == nil {
		a.log.Warn().Str("key", u.Key()).Msg("delete requested for an update without an id")
		return func() tea.Msg { return feedMutationFailedMsg{op: "delete"} }
	}
	id, key := *u.UpdateID, u.Key()
	userID := a.session.UserID
	return func() tea.Msg {
		if err := a.sources.Updates.Delete(a.ctx, userID, id); err != nil {
			a.log.Warn().Err(err).Int64("id", id).Msg("delete update failed")
			return feedMutationFailedMsg{op: "delete"}
		}
		return updateDeletedMsg{key: key}
	}
}

// resolveActionCmd follows a review action payload: it walks the full
// reservation list from the source, locates the reservation, and hands it to
// the review screen. Lookup failure is a notice, never a navigation.
func (a *App) resolveActionCmd(data updates.ActionData) tea.Cmd {
	if data.ReservationID == 0 {
		return func() tea.Msg { return actionFailedMsg{reason: "this update has no booking attached"} }
	}
	userID := a.session.UserID
	pageSize := a.bookings.pager.PageSize()
	return func() tea.Msg {
		for page := 1; page <= 50; page++ {
			items, hasMore, err := a.sources.Reservations.List(a.ctx, userID, reservation.FilterAll, page, pageSize)
			if err != nil {
				a.log.Warn().Err(err).Msg("action follow-up lookup failed")
				return actionFailedMsg{reason: "couldn't load the booking to review"}
			}
			for _, r := range items {
				if r.ID == data.ReservationID {
					return actionResolvedMsg{res: r, data: data}
				}
			}
			if !hasMore {
				break
			}
		}
		return actionFailedMsg{reason: "couldn't find the booking to review"}
	}
}

// message handling

func (a *App) updateFeed(msg tea.Msg) (tea.Cmd, bool) {
	up := &a.feed
	switch m := msg.(type) {
	case feedMsg:
		if m.filter != up.filter {
			// response for a filter that is no longer active
			return nil, true
		}
		up.feed.Replace(m.items, m.unread)
		up.loading = false
		up.errText = ""
		up.cursor = widgets.Clamp(up.cursor, len(up.feed.Items))
		return nil, true
	case feedErrMsg:
		if m.filter != up.filter {
			return nil, true
		}
		up.loading = false
		up.errText = m.err.Error()
		return nil, true
	case markedReadMsg:
		up.feed.MarkRead(m.key, a.now())
		return nil, true
	case markedAllReadMsg:
		up.feed.MarkAllRead(a.now())
		a.status = "all updates marked read"
		return nil, true
	case updateDeletedMsg:
		up.feed.Delete(m.key)
		up.cursor = widgets.Clamp(up.cursor, len(up.feed.Items))
		return nil, true
	case feedMutationFailedMsg:
		a.status = "could not " + m.op + " — please try again"
		return nil, true
	case actionResolvedMsg:
		a.openReview(m.res, m.data.RestaurantID, m.data.UpdateID)
		return nil, true
	case actionFailedMsg:
		a.status = m.reason
		return nil, true
	}
	return nil, false
}

// key handling

func (a *App) handleFeedKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	up := &a.feed

	if up.errText != "" {
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "enter", "g":
			up.errText = ""
			return a, a.loadFeed()
		case "b":
			return a, a.gotoBookings()
		}
		return a, nil
	}

	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "b", "tab", "esc":
		return a, a.gotoBookings()
	case "up", "k":
		if up.cursor > 0 {
			up.cursor--
		}
	case "down", "j":
		if up.cursor < len(up.feed.Items)-1 {
			up.cursor++
		}
	case "f":
		up.filter = nextFeedFilter(up.filter)
		up.cursor = 0
		a.status = ""
		return a, a.loadFeed()
	case "g":
		return a, a.loadFeed()
	case "m":
		if u, ok := a.selectedUpdate(); ok && !u.IsRead {
			return a, a.markReadCmd(u)
		}
	case "M":
		if len(up.feed.Items) > 0 {
			return a, a.markAllReadCmd()
		}
	case "d", "x":
		if u, ok := a.selectedUpdate(); ok {
			return a, a.deleteUpdateCmd(u)
		}
	case "enter":
		if u, ok := a.selectedUpdate(); ok && u.Action != nil {
			if u.Action.Data.Screen == updates.ScreenReview {
				return a, a.resolveActionCmd(u.Action.Data)
			}
			// payloads for other screens are ignored on purpose
		}
	}
	return a, nil
}

func (a *App) selectedUpdate() (updates.Update, bool) {
	up := &a.feed
	if len(up.feed.Items) == 0 || up.cursor >= len(up.feed.Items) {
		return updates.Update{}, false
	}
	return up.feed.Items[up.cursor], true
}

var feedFilterOrder = []string{
	updates.FilterAll,
	updates.FilterReservation,
	updates.FilterReview,
	updates.FilterRestaurantNews,
	updates.FilterUpdate,
}

func nextFeedFilter(current string) string {
	for i, f := range feedFilterOrder {
		if f == current {
			return feedFilterOrder[(i+1)%len(feedFilterOrder)]
		}
	}
	return updates.FilterAll
}

// rendering

func (a *App) renderFeed() string {
	up := &a.feed

	title := titleStyle.Render("Updates")
	if up.feed.Unread > 0 {
		title += "  " + unreadStyle.Render(fmt.Sprintf("(%d unread)", up.feed.Unread))
	}
	title += dimStyle.Render("  [" + up.filter + "]")
	out := title + "\n\n"

	if !a.session.SignedIn() {
		out += dimStyle.Render("sign in to see your updates") + "\n"
		out += "\n" + helpStyle.Render("[b] Bookings  [q] Quit")
		return out + a.statusLine()
	}

	if up.errText != "" {
		out += errorStyle.Render("couldn't load updates") + "\n"
		out += dimStyle.Render(up.errText) + "\n\n"
		out += widgets.Button{Label: "Retry", Variant: widgets.VariantPrimary, Focused: true}.Render() + "\n"
		out += helpStyle.Render("[enter] Retry  [b] Bookings  [q] Quit")
		return out + a.statusLine()
	}

	if up.loading && len(up.feed.Items) == 0 {
		out += dimStyle.Render("loading…") + "\n"
	} else if len(up.feed.Items) == 0 {
		out += dimStyle.Render("you're all caught up") + "\n"
	}

	now := a.now()
	for i := range up.feed.Items {
		u := &up.feed.Items[i]
		marker := "  "
		if i == up.cursor {
			marker = selectedStyle.Render("▶ ")
		}
		dot := "  "
		if !u.IsRead {
			dot = unreadStyle.Render("● ")
		}
		titleLine := u.Title
		if !u.IsRead {
			titleLine = headerStyle.Render(titleLine)
		} else {
			titleLine = dimStyle.Render(titleLine)
		}
		prio := colorize(priorityColor(u.Priority), u.DisplayIcon())
		out += fmt.Sprintf("%s%s%s %s  %s\n", marker, dot, prio, titleLine,
			dimStyle.Render(updates.TimeAgo(u.CreatedAt, now)))
		if i == up.cursor {
			out += "    " + dimStyle.Render(u.Message) + "\n"
			if u.Action != nil {
				out += "    " + helpStyle.Render("[enter] "+u.Action.Label) + "\n"
			}
		}
	}

	out += "\n" + helpStyle.Render("[m] Mark read  [M] Mark all  [d] Delete  [f] Filter  [g] Reload  [b] Bookings  [q] Quit")
	return out + a.statusLine()
}
