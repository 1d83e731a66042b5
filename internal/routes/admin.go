package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/internal/handlers"
	"github.com/pushp314/tradeacademy-backend/internal/middleware"
)

func RegisterAdminRoutes(rg *gin.RouterGroup, h *handlers.AdminBadgeHandler, auth gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(auth, middleware.AdminOnly())

	// Badge catalog
	admin.PUT("/badges/:id", h.Upsert)
	admin.POST("/badges/:id/image", h.UploadImage)
	admin.POST("/badges/sweep", h.Sweep)
}
