package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/pkg/errors"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

// ErrorHandlerMiddleware recovers panics and renders errors that handlers
// attached with c.Error.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(debug.Stack())).
					Msg("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "Internal Server Error",
					"message": "An unexpected error occurred",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *errors.AppError
		switch {
		case stderrors.As(err, &appErr):
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		case errors.IsConfiguration(err):
			logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Badge catalog is misconfigured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Badge catalog is misconfigured"})
		case errors.IsUnavailable(err):
			logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Collaborator unavailable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		default:
			logger.Error().Err(err).Msg("Unhandled request error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}
	}
}
