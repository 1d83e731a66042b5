package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/internal/badges"
	"github.com/pushp314/tradeacademy-backend/internal/services"
	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

const maxBadgeImageSize = 2 << 20

type AdminBadgeHandler struct {
	admin   *services.BadgeAdmin
	sweeper *services.Sweeper
}

func NewAdminBadgeHandler(admin *services.BadgeAdmin, sweeper *services.Sweeper) *AdminBadgeHandler {
	return &AdminBadgeHandler{admin: admin, sweeper: sweeper}
}

type badgeRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	Category     string `json:"category" binding:"required"`
	Rarity       string `json:"rarity"`
	CriteriaType string `json:"criteriaType" binding:"required"`
	Value        int64  `json:"criteriaValue"`
	DisplayOrder int    `json:"displayOrder"`
}

// Upsert PUT /admin/badges/:id
func (h *AdminBadgeHandler) Upsert(c *gin.Context) {
	var req badgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("Invalid badge definition: " + err.Error()))
		return
	}
	if req.Rarity == "" {
		req.Rarity = string(badges.RarityCommon)
	}

	pred, err := badges.NewPredicate(badges.Kind(req.CriteriaType), req.Value)
	if err != nil {
		_ = c.Error(apperrors.BadRequest(err.Error()))
		return
	}
	b := badges.Badge{
		ID:           c.Param("id"),
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Category:     badges.Category(req.Category),
		Rarity:       badges.Rarity(req.Rarity),
		Unlock:       pred,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.admin.Save(c.Request.Context(), b); err != nil {
		if apperrors.IsConfiguration(err) {
			// a single rejected edit is the caller's mistake, not a broken catalog
			err = apperrors.BadRequest(err.Error())
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badge": badgeSummaries([]badges.Badge{b})[0]})
}

// UploadImage POST /admin/badges/:id/image (multipart field "image")
func (h *AdminBadgeHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		_ = c.Error(apperrors.BadRequest("image file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxBadgeImageSize {
		_ = c.Error(apperrors.BadRequest("image must be 2MB or smaller"))
		return
	}

	url, err := h.admin.UploadImage(c.Request.Context(), c.Param("id"), header.Filename, file)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Sweep POST /admin/badges/sweep
func (h *AdminBadgeHandler) Sweep(c *gin.Context) {
	report, err := h.sweeper.Run(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Badge sweep failed")
		fail(c, err)
		return
	}
	status := http.StatusOK
	if report.Failed() {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"report": report})
}
