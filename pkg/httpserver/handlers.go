package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/internal/config"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/clients/cmsclient"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/calendar"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/services"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/db"
)

// Handler carries the dependencies the site routes need
type Handler struct {
	content    cmsclient.ContentStore
	newsletter db.SubscriberStore
	trash      db.SubscriberStore
	runs       db.RunLogStore
	sender     services.EmailSender
	cfg        *config.Config
	logger     *zap.Logger
	loc        *time.Location
}

// NewHandler wires the route handlers
func NewHandler(
	content cmsclient.ContentStore,
	newsletter db.SubscriberStore,
	trash db.SubscriberStore,
	runs db.RunLogStore,
	sender services.EmailSender,
	cfg *config.Config,
	logger *zap.Logger,
	loc *time.Location,
) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		content:    content,
		newsletter: newsletter,
		trash:      trash,
		runs:       runs,
		sender:     sender,
		cfg:        cfg,
		logger:     logger,
		loc:        loc,
	}
}

// yearMonth parses the year/month query params, defaulting to the current
// month in the site's timezone
func (h *Handler) yearMonth(c *gin.Context) (int, time.Month, bool) {
	now := time.Now().In(h.loc)
	year, month := now.Year(), now.Month()

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return 0, 0, false
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return 0, 0, false
		}
		month = time.Month(parsed)
	}

	return year, month, true
}

type occurrenceDTO struct {
	EventID string    `json:"eventId"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	AllDay  bool      `json:"allDay"`
}

func toOccurrenceDTOs(occs []model.Occurrence) []occurrenceDTO {
	out := make([]occurrenceDTO, 0, len(occs))
	for _, occ := range occs {
		out = append(out, occurrenceDTO(occ))
	}
	return out
}

// ListEvents returns the month's events with recurrences expanded
func (h *Handler) ListEvents(c *gin.Context) {
	year, month, ok := h.yearMonth(c)
	if !ok {
		return
	}

	window := calendar.MonthWindow(year, month, h.loc)
	events, err := h.content.EventsBetween(c.Request.Context(), window.Start, window.End)
	if err != nil {
		h.logger.Error("Failed to fetch events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}

	occurrences := calendar.ExpandOccurrences(events, window, h.logger)

	c.JSON(http.StatusOK, gin.H{
		"year":        year,
		"month":       int(month),
		"occurrences": toOccurrenceDTOs(occurrences),
	})
}

// GetEvent returns a single event with its RSVP counts
func (h *Handler) GetEvent(c *gin.Context) {
	id := c.Param("id")

	event, err := h.content.EventByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to fetch event", zap.String("event_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// EventsICS serves the calendar-subscription feed
func (h *Handler) EventsICS(c *gin.Context) {
	feed, err := services.BuildICSFeed(c.Request.Context(), h.content, h.cfg, h.logger, time.Now().In(h.loc))
	if err != nil {
		h.logger.Error("Failed to build ICS feed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build feed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="events.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

const defaultPostLimit = 20

// ListPosts returns the latest news posts
func (h *Handler) ListPosts(c *gin.Context) {
	limit := defaultPostLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	posts, err := h.content.Posts(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to fetch posts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// ListDocuments returns the association's published documents
func (h *Handler) ListDocuments(c *gin.Context) {
	documents, err := h.content.Documents(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch documents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

// ListWinners returns contest winners
func (h *Handler) ListWinners(c *gin.Context) {
	winners, err := h.content.Winners(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch winners", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch winners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"winners": winners})
}

type calendarSlot struct {
	Date   string          `json:"date,omitempty"`
	Empty  bool            `json:"empty"`
	Events []occurrenceDTO `json:"events,omitempty"`
}

// Calendar returns the month grid with each day's events attached
func (h *Handler) Calendar(c *gin.Context) {
	year, month, ok := h.yearMonth(c)
	if !ok {
		return
	}

	window := calendar.MonthWindow(year, month, h.loc)
	events, err := h.content.EventsBetween(c.Request.Context(), window.Start, window.End)
	if err != nil {
		h.logger.Error("Failed to fetch events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}

	occurrences := calendar.ExpandOccurrences(events, window, h.logger)
	byDay := calendar.IndexByDay(occurrences, func(occ model.Occurrence) (time.Time, bool) {
		return occ.Start.In(h.loc), true
	})

	grid := calendar.BuildGrid(year, month)
	weeks := make([][]calendarSlot, 0, len(grid))
	for _, week := range grid {
		row := make([]calendarSlot, 0, 7)
		for _, slot := range week {
			if slot.Empty {
				row = append(row, calendarSlot{Empty: true})
				continue
			}
			row = append(row, calendarSlot{
				Date:   slot.Date.String(),
				Events: toOccurrenceDTOs(byDay[slot.Date]),
			})
		}
		weeks = append(weeks, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": int(month),
		"weeks": weeks,
	})
}

type poolSlot struct {
	Date  string `json:"date,omitempty"`
	Empty bool   `json:"empty"`
	State string `json:"state,omitempty"`
	Hours string `json:"hours,omitempty"`
}

// PoolSchedule returns the month grid with each day's pool status
func (h *Handler) PoolSchedule(c *gin.Context) {
	year, month, ok := h.yearMonth(c)
	if !ok {
		return
	}

	grid := calendar.BuildGrid(year, month)
	weeks := make([][]poolSlot, 0, len(grid))
	for _, week := range grid {
		row := make([]poolSlot, 0, 7)
		for _, slot := range week {
			if slot.Empty {
				row = append(row, poolSlot{Empty: true})
				continue
			}
			status := calendar.Classify(slot.Date)
			row = append(row, poolSlot{
				Date:  slot.Date.String(),
				State: status.State.String(),
				Hours: status.Hours,
			})
		}
		weeks = append(weeks, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": int(month),
		"weeks": weeks,
	})
}
