package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/internal/services"
)

type BadgeHandler struct {
	catalog  services.CatalogSource
	showcase *services.ShowcaseService
}

func NewBadgeHandler(catalog services.CatalogSource, showcase *services.ShowcaseService) *BadgeHandler {
	return &BadgeHandler{catalog: catalog, showcase: showcase}
}

type catalogEntry struct {
	badgeSummary
	Description  string `json:"description"`
	CriteriaType string `json:"criteriaType"`
	Target       int64  `json:"target"`
	DisplayOrder int    `json:"displayOrder"`
}

// List GET /badges
func (h *BadgeHandler) List(c *gin.Context) {
	cat, err := h.catalog.Catalog(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	all := cat.All()
	summaries := badgeSummaries(all)
	out := make([]catalogEntry, 0, len(all))
	for i, b := range all {
		out = append(out, catalogEntry{
			badgeSummary: summaries[i],
			Description:  b.Description,
			CriteriaType: string(b.Unlock.Kind()),
			Target:       b.Unlock.Value(),
			DisplayOrder: b.DisplayOrder,
		})
	}
	c.JSON(http.StatusOK, gin.H{"badges": out})
}

// ForUser GET /users/:userId/badges?courseId=
func (h *BadgeHandler) ForUser(c *gin.Context) {
	out, err := h.showcase.ForUser(c.Request.Context(), c.Param("userId"), c.Query("courseId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
