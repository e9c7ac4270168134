package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tablebook/internal/database/repository"
	"tablebook/internal/reservation"
	"tablebook/internal/tui/widgets"
)

type reviewState struct {
	res          reservation.Reservation
	restaurantID int64
	updateID     int64
	rating       int
	comment      string
	focus        int // 0 stars, 1 comment, 2 submit, 3 back
	submitting   bool
	origin       appScreen
}

type reviewSubmittedMsg struct{}

type reviewFailedMsg struct{ err error }

// openReview navigates to the review screen for a resolved reservation,
// carrying the restaurant and update identifiers from the originating
// payload.
func (a *App) openReview(res reservation.Reservation, restaurantID, updateID int64) {
	if restaurantID == 0 {
		restaurantID = res.Restaurant.ID
	}
	a.review = reviewState{
		res:          res,
		restaurantID: restaurantID,
		updateID:     updateID,
		rating:       5,
		origin:       a.screen,
	}
	a.screen = screenReview
	a.status = ""
}

func (a *App) submitReviewCmd() tea.Cmd {
	rv := repository.Review{
		UserID:        a.session.UserID,
		ReservationID: a.review.res.ID,
		RestaurantID:  a.review.restaurantID,
		Rating:        a.review.rating,
		Comment:       strings.TrimSpace(a.review.comment),
	}
	a.review.submitting = true
	return func() tea.Msg {
		if err := a.sources.Reviews.Insert(a.ctx, rv); err != nil {
			a.log.Warn().Err(err).Int64("reservation_id", rv.ReservationID).Msg("review submit failed")
			return reviewFailedMsg{err: err}
		}
		return reviewSubmittedMsg{}
	}
}

func (a *App) updateReview(msg tea.Msg) (tea.Cmd, bool) {
	switch msg.(type) {
	case reviewSubmittedMsg:
		a.review.submitting = false
		origin := a.review.origin
		var cmd tea.Cmd
		if origin == screenUpdates {
			cmd = a.gotoUpdates()
		} else {
			cmd = a.gotoBookings()
		}
		a.status = "thanks for your review"
		return cmd, true
	case reviewFailedMsg:
		a.review.submitting = false
		a.status = "could not submit the review — please try again"
		return nil, true
	}
	return nil, false
}

func (a *App) handleReviewKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	rv := &a.review

	if rv.focus == 1 {
		switch m.Type {
		case tea.KeyEsc:
			rv.focus = 0
			return a, nil
		case tea.KeyTab, tea.KeyEnter:
			rv.focus = 2
			return a, nil
		case tea.KeyBackspace, tea.KeyCtrlH:
			if len(rv.comment) > 0 {
				rv.comment = rv.comment[:len(rv.comment)-1]
			}
			return a, nil
		case tea.KeySpace:
			rv.comment += " "
			return a, nil
		case tea.KeyRunes:
			rv.comment += string(m.Runes)
			return a, nil
		}
		return a, nil
	}

	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc":
		if rv.origin == screenUpdates {
			return a, a.gotoUpdates()
		}
		return a, a.gotoBookings()
	case "tab", "down", "j":
		rv.focus = (rv.focus + 1) % 4
		if rv.focus == 1 {
			// skip straight into typing only via enter; keep cycling simple
			rv.focus = 2
		}
	case "up", "k":
		rv.focus--
		if rv.focus == 1 {
			rv.focus = 0
		}
		if rv.focus < 0 {
			rv.focus = 3
		}
	case "left", "h":
		if rv.focus == 0 && rv.rating > 1 {
			rv.rating--
		}
		if rv.focus == 3 {
			rv.focus = 2
		}
	case "right", "l":
		if rv.focus == 0 && rv.rating < 5 {
			rv.rating++
		}
		if rv.focus == 2 {
			rv.focus = 3
		}
	case "1", "2", "3", "4", "5":
		rv.rating = int(m.String()[0] - '0')
	case "c":
		rv.focus = 1
	case "enter":
		switch rv.focus {
		case 1:
			rv.focus = 2
		case 3:
			if rv.origin == screenUpdates {
				return a, a.gotoUpdates()
			}
			return a, a.gotoBookings()
		default:
			if !rv.submitting {
				return a, a.submitReviewCmd()
			}
		}
	}
	return a, nil
}

func (a *App) renderReview() string {
	rv := &a.review

	out := titleStyle.Render("Write a Review") + "\n\n"

	summary := fmt.Sprintf("%s\n%s at %s · party of %d · #%s",
		headerStyle.Render(rv.res.Restaurant.Name),
		rv.res.Date, rv.res.Time, rv.res.PartySize, rv.res.ConfirmationCode)
	out += widgets.Box{Title: "Your visit", Content: summary}.Render(48, 5) + "\n\n"

	stars := strings.Repeat("★", rv.rating) + strings.Repeat("☆", 5-rv.rating)
	starLine := unreadStyle.Render(stars) + dimStyle.Render(fmt.Sprintf("  %d/5", rv.rating))
	if rv.focus == 0 {
		starLine = selectedStyle.Render("▶ ") + starLine
	} else {
		starLine = "  " + starLine
	}
	out += starLine + "\n\n"

	comment := rv.comment
	if rv.focus == 1 {
		comment += selectedStyle.Render("▌")
	} else if comment == "" {
		comment = dimStyle.Render("(press c to add a comment)")
	}
	out += headerStyle.Render("Comment: ") + comment + "\n\n"

	label := "Submit"
	if rv.submitting {
		label = "Submitting…"
	}
	out += widgets.ButtonRow(rv.focus-2,
		widgets.Button{Label: label, Variant: widgets.VariantPrimary},
		widgets.Button{Label: "Back", Variant: widgets.VariantGhost},
	) + "\n\n"

	out += helpStyle.Render("[←/→] rating  [1-5] set  [c] comment  [tab] focus  [enter] select  [esc] back")
	return out + a.statusLine()
}
