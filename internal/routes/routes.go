package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/internal/handlers"
	"github.com/pushp314/tradeacademy-backend/internal/middleware"
)

// Handlers bundles everything the router serves.
type Handlers struct {
	Progress *handlers.ProgressHandler
	Badges   *handlers.BadgeHandler
	Admin    *handlers.AdminBadgeHandler
	Feed     *handlers.FeedHandler
	Health   *handlers.HealthHandler
}

type Options struct {
	JWTSecret   string
	FrontendURL string
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(opts Options, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(opts.FrontendURL))

	r.GET("/health", h.Health.Check)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(middleware.NewGeneralLimiter()))
	{
		auth := middleware.AuthMiddleware(opts.JWTSecret)
		RegisterProgressRoutes(api, h.Progress, auth, middleware.NewTrackingLimiter())
		RegisterBadgeRoutes(api, h.Badges, auth)
		RegisterNotificationRoutes(api, h.Feed, auth)
		RegisterAdminRoutes(api, h.Admin, auth)
	}
	return r
}
