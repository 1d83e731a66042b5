package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/models"
	"github.com/pushp314/tradeacademy-backend/internal/services"
	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

// ProgressReader loads a learner's progress row.
type ProgressReader interface {
	Get(ctx context.Context, userID, courseID string) (*models.CourseProgress, error)
}

type ProgressHandler struct {
	tracker  *services.Tracker
	awards   *services.AwardService
	progress ProgressReader
}

func NewProgressHandler(tracker *services.Tracker, awards *services.AwardService, progress ProgressReader) *ProgressHandler {
	return &ProgressHandler{tracker: tracker, awards: awards, progress: progress}
}

type contentRequest struct {
	ContentID string `json:"contentId" binding:"required,max=128"`
}

// Enroll POST /progress/:courseId/enroll
func (h *ProgressHandler) Enroll(c *gin.Context) {
	h.track(c, func(ctx context.Context, userID, courseID string) (*services.TrackResult, error) {
		return h.tracker.Enroll(ctx, userID, courseID)
	})
}

// RecordVideo POST /progress/:courseId/videos
func (h *ProgressHandler) RecordVideo(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("contentId is required"))
		return
	}
	h.track(c, func(ctx context.Context, userID, courseID string) (*services.TrackResult, error) {
		return h.tracker.RecordVideoWatched(ctx, userID, courseID, req.ContentID)
	})
}

// RecordPDF POST /progress/:courseId/pdfs
func (h *ProgressHandler) RecordPDF(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("contentId is required"))
		return
	}
	h.track(c, func(ctx context.Context, userID, courseID string) (*services.TrackResult, error) {
		return h.tracker.RecordPDFViewed(ctx, userID, courseID, req.ContentID)
	})
}

// Complete POST /progress/:courseId/complete
func (h *ProgressHandler) Complete(c *gin.Context) {
	h.track(c, h.tracker.CompleteCourse)
}

// CheckIn POST /progress/:courseId/checkin
func (h *ProgressHandler) CheckIn(c *gin.Context) {
	h.track(c, h.tracker.CheckIn)
}

// Get GET /progress/:courseId
func (h *ProgressHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	p, err := h.progress.Get(c.Request.Context(), userID, c.Param("courseId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": p})
}

// Evaluate POST /progress/:courseId/evaluate re-runs badge evaluation
// without recording any activity.
func (h *ProgressHandler) Evaluate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	granted, err := h.awards.EvaluateAndGrant(c.Request.Context(), userID, c.Param("courseId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"newBadges": badgeSummaries(granted)})
}

func (h *ProgressHandler) track(c *gin.Context, fn func(ctx context.Context, userID, courseID string) (*services.TrackResult, error)) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), userID, c.Param("courseId"))
	if err != nil {
		// progress was saved; grants still pending are picked up by the
		// next event or the sweep
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"progress":  res.Progress,
		"xpAwarded": res.XPAwarded,
		"newBadges": badgeSummaries(res.NewBadges),
	})
}

type badgeSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category"`
	Rarity   string `json:"rarity"`
}

func badgeSummaries(bs []badges.Badge) []badgeSummary {
	out := make([]badgeSummary, 0, len(bs))
	for _, b := range bs {
		out = append(out, badgeSummary{
			ID:       b.ID,
			Name:     b.Name,
			ImageURL: b.ImageURL,
			Category: string(b.Category),
			Rarity:   string(b.Rarity),
		})
	}
	return out
}
