package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/auth-api/internal/service"
	"github.com/yourusername/auth-api/pkg/auth/manager"
)

// FeedbackHandler serves the public feedback form and the admin review
// endpoints.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	cookies         *manager.CookieManager
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService *service.FeedbackService, cookies *manager.CookieManager) (*FeedbackHandler, error) {
	if feedbackService == nil {
		return nil, fmt.Errorf("feedbackService must not be nil")
	}
	if cookies == nil {
		return nil, fmt.Errorf("cookies must not be nil")
	}
	return &FeedbackHandler{feedbackService: feedbackService, cookies: cookies}, nil
}

// SubmitRequest is the feedback form payload.
type SubmitRequest struct {
	Email    string `json:"email"`
	Comments string `json:"comments" binding:"required"`
}

// Submit records a feedback entry. Works for anonymous visitors; when a
// valid session cookie is present the entry is attributed to that user.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comments are required", "error_type": "validation"})
		return
	}

	var userID *uint
	if id, ok := h.cookies.ResolveUserID(c.Request); ok {
		userID = &id
	}

	feedback, err := h.feedbackService.Submit(service.SubmitInput{
		UserID:    userID,
		Email:     req.Email,
		Comments:  req.Comments,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Feedback received",
		"id":      feedback.ID,
	})
}

// List returns a page of feedback entries for admins.
func (h *FeedbackHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, total, err := h.feedbackService.List(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": entries,
		"total":    total,
	})
}

// UpdateStatusRequest is the status change payload.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves a feedback entry to a new status.
func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	id := c.GetUint("feedback_id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required", "error_type": "validation"})
		return
	}

	if err := h.feedbackService.SetStatus(id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
