package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/model"
	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/services"
)

// signupRequest accepts form-encoded or JSON signup bodies
type signupRequest struct {
	Email string `form:"email" json:"email" binding:"required,email"`
	Name  string `form:"name" json:"name"`
}

// emailRequest covers unsubscribe/resubscribe, where the address may come
// from a query-string link or a posted body
type emailRequest struct {
	Email string `form:"email" json:"email" binding:"required,email"`
}

type rsvpRequest struct {
	EventID  string `json:"eventId" binding:"required"`
	Response string `json:"response" binding:"required,oneof=yes maybe"`
}

// NewsletterSignup handles POST /api/newsletter/signup
func (h *Handler) NewsletterSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	result, err := services.SignupNewsletter(c.Request.Context(), h.newsletter, h.sender, h.cfg, h.logger, req.Email, req.Name)
	if err != nil {
		h.logger.Error("Newsletter signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	if result.AlreadyVerified {
		c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "pending_verification"})
}

// NewsletterVerify handles GET /api/newsletter/verify?token=
func (h *Handler) NewsletterVerify(c *gin.Context) {
	token := c.Query("token")

	result, err := services.Verify(c.Request.Context(), h.newsletter, h.sender, h.cfg, h.logger, token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
			return
		}
		h.logger.Error("Verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "verified", "email": result.Email})
}

// NewsletterUnsubscribe handles GET and POST /api/newsletter/unsubscribe
func (h *Handler) NewsletterUnsubscribe(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	result, err := services.Unsubscribe(c.Request.Context(), h.newsletter, h.logger, req.Email)
	if err != nil {
		h.logger.Error("Unsubscribe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unsubscribe failed"})
		return
	}

	if result.Already {
		c.JSON(http.StatusOK, gin.H{"status": "already_unsubscribed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unsubscribed"})
}

// NewsletterResubscribe handles POST /api/newsletter/resubscribe
func (h *Handler) NewsletterResubscribe(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	result, err := services.Resubscribe(c.Request.Context(), h.newsletter, h.logger, req.Email)
	if err != nil {
		h.logger.Error("Resubscribe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resubscribe failed"})
		return
	}

	if result.Already {
		c.JSON(http.StatusOK, gin.H{"status": "already_subscribed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}

// TrashSignup handles POST /api/trash/signup
func (h *Handler) TrashSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	if _, err := services.SignupTrash(c.Request.Context(), h.trash, h.sender, h.cfg, h.logger, req.Email, req.Name); err != nil {
		h.logger.Error("Trash reminder signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}

// TrashUnsubscribe handles GET and POST /api/trash/unsubscribe
func (h *Handler) TrashUnsubscribe(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	result, err := services.Unsubscribe(c.Request.Context(), h.trash, h.logger, req.Email)
	if err != nil {
		h.logger.Error("Trash unsubscribe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unsubscribe failed"})
		return
	}

	if result.Already {
		c.JSON(http.StatusOK, gin.H{"status": "already_unsubscribed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unsubscribed"})
}

// RSVP handles POST /api/rsvp
func (h *Handler) RSVP(c *gin.Context) {
	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventId and a yes/maybe response are required"})
		return
	}

	result, err := services.RSVP(c.Request.Context(), h.content, h.logger, req.EventID, model.RSVPResponse(req.Response))
	if err != nil {
		if errors.Is(err, services.ErrInvalidRSVP) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "response must be yes or maybe"})
			return
		}
		h.logger.Error("RSVP failed", zap.String("event_id", req.EventID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record rsvp"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"eventId":  result.EventID,
		"response": string(result.Response),
		"count":    result.Count,
	})
}
