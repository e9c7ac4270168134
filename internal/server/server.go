package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"tablebook/internal/database/repository"
	"tablebook/internal/metrics"
)

// Server exposes the reservation and updates repositories over HTTP. It is
// the remote counterpart of the client's source interfaces.
type Server struct {
	reservations *repository.ReservationRepo
	reviews      *repository.ReviewRepo
	updates      *repository.UpdateRepo
	log          zerolog.Logger
}

// New constructs a server over the given repositories.
func New(res *repository.ReservationRepo, rev *repository.ReviewRepo, upd *repository.UpdateRepo, log zerolog.Logger) *Server {
	return &Server{reservations: res, reviews: rev, updates: upd, log: log}
}

// Router builds the gin engine with all routes wired.
func (s *Server) Router() *gin.Engine {
	metrics.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(requireUser())
	{
		reservations := api.Group("/reservations")
		{
			reservations.GET("", s.listReservations)
			reservations.GET("/:id", s.getReservation)
			reservations.POST("/:id/cancel", s.cancelReservation)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/ids", s.reviewedIDs)
			reviews.POST("", s.createReview)
		}

		updates := api.Group("/updates")
		{
			updates.GET("", s.listUpdates)
			updates.POST("/:id/read", s.markUpdateRead)
			updates.POST("/read-all", s.markAllUpdatesRead)
			updates.DELETE("/:id", s.deleteUpdate)
		}
	}
	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.IncHTTP(c.FullPath())
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
