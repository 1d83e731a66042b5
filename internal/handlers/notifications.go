package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
)

// FeedHandler serves the achievement notifications and activity rows the
// award pipeline writes.
type FeedHandler struct {
	feed *repository.FeedRepository
}

func NewFeedHandler(feed *repository.FeedRepository) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// Notifications GET /notifications
func (h *FeedHandler) Notifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	notes, err := h.feed.Notifications(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notes})
}

// UnreadCount GET /notifications/unread-count
func (h *FeedHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	count, err := h.feed.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead PUT /notifications/:id/read
func (h *FeedHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.feed.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead PUT /notifications/read-all
func (h *FeedHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.feed.MarkAllRead(c.Request.Context(), userID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// Activity GET /activity?type=
func (h *FeedHandler) Activity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	activities, err := h.feed.Activities(c.Request.Context(), userID, models.ActivityType(c.Query("type")))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}
