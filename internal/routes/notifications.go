package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/internal/handlers"
)

func RegisterNotificationRoutes(rg *gin.RouterGroup, h *handlers.FeedHandler, auth gin.HandlerFunc) {
	notifications := rg.Group("/notifications")
	notifications.Use(auth)
	{
		notifications.GET("", h.Notifications)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.PUT("/:id/read", h.MarkRead)
		notifications.PUT("/read-all", h.MarkAllRead)
	}
	rg.GET("/activity", auth, h.Activity)
}
