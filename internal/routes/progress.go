package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/internal/handlers"
	"github.com/pushp314/tradeacademy-backend/internal/middleware"
)

func RegisterProgressRoutes(rg *gin.RouterGroup, h *handlers.ProgressHandler, auth gin.HandlerFunc, limiter *middleware.IPRateLimiter) {
	progress := rg.Group("/progress/:courseId")
	progress.Use(auth)
	{
		progress.GET("", h.Get)
		progress.POST("/evaluate", h.Evaluate)

		tracked := progress.Group("")
		tracked.Use(middleware.RateLimitMiddleware(limiter))
		tracked.POST("/enroll", h.Enroll)
		tracked.POST("/videos", h.RecordVideo)
		tracked.POST("/pdfs", h.RecordPDF)
		tracked.POST("/complete", h.Complete)
		tracked.POST("/checkin", h.CheckIn)
	}
}
