package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tablebook/internal/database"
	"tablebook/internal/database/repository"
	"tablebook/internal/metrics"
	"tablebook/internal/reservation"
)

// userHeader scopes every request to one diner. The demo server trusts the
// header; a production deployment would sit behind real authentication.
const userHeader = "X-User-ID"

const userKey = "userID"

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader(userHeader), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid " + userHeader})
			return
		}
		c.Set(userKey, id)
		c.Next()
	}
}

func userID(c *gin.Context) int64 {
	return c.GetInt64(userKey)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

type reservationPage struct {
	Items   []reservation.Reservation `json:"items"`
	HasMore bool                      `json:"has_more"`
}

func (s *Server) listReservations(c *gin.Context) {
	filter := reservation.Filter(c.DefaultQuery("filter", string(reservation.FilterAll)))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	items, hasMore, err := s.reservations.List(c.Request.Context(), userID(c), filter, page, pageSize)
	if err != nil {
		s.log.Error().Err(err).Msg("list reservations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list reservations failed"})
		return
	}
	if items == nil {
		items = []reservation.Reservation{}
	}
	c.JSON(http.StatusOK, reservationPage{Items: items, HasMore: hasMore})
}

func (s *Server) getReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := s.reservations.Get(c.Request.Context(), userID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("get reservation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get reservation failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) cancelReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.reservations.Cancel(c.Request.Context(), userID(c), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "reservation not found or not cancellable"})
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("cancel reservation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cancel failed"})
		return
	}
	metrics.IncCancellation()
	c.Status(http.StatusNoContent)
}

type reviewedIDsResponse struct {
	ReservationIDs []int64 `json:"reservation_ids"`
}

func (s *Server) reviewedIDs(c *gin.Context) {
	set, err := s.reviews.ReviewedIDs(c.Request.Context(), userID(c))
	if err != nil {
		s.log.Error().Err(err).Msg("reviewed ids")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reviewed ids failed"})
		return
	}
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	c.JSON(http.StatusOK, reviewedIDsResponse{ReservationIDs: ids})
}

type reviewRequest struct {
	ReservationID int64  `json:"reservation_id" binding:"required"`
	RestaurantID  int64  `json:"restaurant_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment"`
}

func (s *Server) createReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.reviews.Insert(c.Request.Context(), repository.Review{
		UserID:        userID(c),
		ReservationID: req.ReservationID,
		RestaurantID:  req.RestaurantID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("reservation_id", req.ReservationID).Msg("create review")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create review failed"})
		return
	}
	c.Status(http.StatusCreated)
}

type updatesFeed struct {
	Items       []updateItem `json:"items"`
	UnreadCount int          `json:"unread_count"`
}

// updateItem is the wire shape of one feed entry.
type updateItem struct {
	UpdateID  *int64     `json:"update_id,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Category  string     `json:"category"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	Priority  string     `json:"priority,omitempty"`
	Icon      string     `json:"icon,omitempty"`
	Action    *actionDTO `json:"action_button,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type actionDTO struct {
	Label string        `json:"label"`
	Data  actionDataDTO `json:"data"`
}

type actionDataDTO struct {
	Screen        string `json:"screen"`
	RestaurantID  int64  `json:"restaurant_id,omitempty"`
	ReservationID int64  `json:"reservation_id,omitempty"`
	UpdateID      int64  `json:"update_id,omitempty"`
}

func (s *Server) listUpdates(c *gin.Context) {
	category := c.Query("category")
	items, unread, err := s.updates.List(c.Request.Context(), userID(c), category)
	if err != nil {
		s.log.Error().Err(err).Msg("list updates")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list updates failed"})
		return
	}
	out := make([]updateItem, 0, len(items))
	for _, u := range items {
		item := updateItem{
			UpdateID: u.UpdateID, Title: u.Title, Message: u.Message,
			Category: u.Category, IsRead: u.IsRead, ReadAt: u.ReadAt,
			Priority: u.Priority, Icon: u.Icon, CreatedAt: u.CreatedAt,
		}
		if u.Action != nil {
			item.Action = &actionDTO{Label: u.Action.Label, Data: actionDataDTO{
				Screen:        u.Action.Data.Screen,
				RestaurantID:  u.Action.Data.RestaurantID,
				ReservationID: u.Action.Data.ReservationID,
				UpdateID:      u.Action.Data.UpdateID,
			}}
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, updatesFeed{Items: out, UnreadCount: unread})
}

func (s *Server) markUpdateRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.updates.MarkRead(c.Request.Context(), userID(c), id, database.Now()); err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("mark update read")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mark read failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) markAllUpdatesRead(c *gin.Context) {
	if err := s.updates.MarkAllRead(c.Request.Context(), userID(c), database.Now()); err != nil {
		s.log.Error().Err(err).Msg("mark all updates read")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mark all read failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.updates.Delete(c.Request.Context(), userID(c), id); err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("delete update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
