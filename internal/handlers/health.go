package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pushp314/tradeacademy-backend/internal/database"
)

type HealthHandler struct {
	db    *gorm.DB
	cache *database.Cache
}

func NewHealthHandler(db *gorm.DB, cache *database.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{"database": "ok", "redis": "disabled"}

	if err := database.Ping(h.db); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if h.cache.Enabled() {
		checks["redis"] = "ok"
		// the catalog cache is optional; a dead Redis degrades, not fails
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
		}
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}
