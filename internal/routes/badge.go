package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/internal/handlers"
)

func RegisterBadgeRoutes(rg *gin.RouterGroup, h *handlers.BadgeHandler, auth gin.HandlerFunc) {
	rg.GET("/badges", h.List)
	rg.GET("/users/:userId/badges", auth, h.ForUser)
}
