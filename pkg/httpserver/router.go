// Package httpserver exposes the public site API: content reads, the pool
// schedule, the events calendar, RSVP, and subscription management.
package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Pinger is the readiness probe the router needs from the database
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the gin engine with middleware and all site routes
func NewRouter(h *Handler, db Pinger, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))
	r.Use(requestMetrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/events", h.ListEvents)
		api.GET("/events.ics", h.EventsICS)
		api.GET("/events/:id", h.GetEvent)
		api.GET("/posts", h.ListPosts)
		api.GET("/documents", h.ListDocuments)
		api.GET("/winners", h.ListWinners)
		api.GET("/calendar", h.Calendar)
		api.GET("/pool/schedule", h.PoolSchedule)

		api.POST("/rsvp", h.RSVP)

		api.POST("/newsletter/signup", h.NewsletterSignup)
		api.GET("/newsletter/verify", h.NewsletterVerify)
		api.GET("/newsletter/unsubscribe", h.NewsletterUnsubscribe)
		api.POST("/newsletter/unsubscribe", h.NewsletterUnsubscribe)
		api.POST("/newsletter/resubscribe", h.NewsletterResubscribe)

		api.POST("/trash/signup", h.TrashSignup)
		api.GET("/trash/unsubscribe", h.TrashUnsubscribe)
		api.POST("/trash/unsubscribe", h.TrashUnsubscribe)
	}

	return r
}
