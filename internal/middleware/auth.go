package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/pkg/errors"
	"github.com/pushp314/tradeacademy-backend/pkg/utils"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID = "userId"
	ContextClaims = "claims"
)

// AuthMiddleware requires a bearer token signed with secret. Tokens are
// issued by the platform's login service; this API only verifies them.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, errors.Unauthorized("Authorization header required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWith(c, errors.Unauthorized("Invalid authorization header format"))
			return
		}

		claims, err := utils.ValidateToken(secret, parts[1])
		if err != nil {
			abortWith(c, errors.Unauthorized("Invalid or expired token"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			abortWith(c, errors.Unauthorized("Unauthorized"))
			return
		}
		if !claims.IsAdmin() {
			abortWith(c, errors.Forbidden("Admin access required"))
			return
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

// UserID returns the authenticated learner, or "" outside AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func abortWith(c *gin.Context, err *errors.AppError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}
