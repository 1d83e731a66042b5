package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pushp314/tradeacademy-backend/internal/middleware"
	"github.com/pushp314/tradeacademy-backend/internal/repository"
	"github.com/pushp314/tradeacademy-backend/internal/services"
	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

// fail hands err to ErrorHandlerMiddleware, translating the domain
// sentinels that have a fixed HTTP meaning.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		err = apperrors.NotFound("Not found")
	case errors.Is(err, services.ErrAlreadyCompleted):
		err = apperrors.NewAppError(http.StatusConflict, "Course already completed")
	}
	_ = c.Error(err)
}

func currentUser(c *gin.Context) (string, bool) {
	userID := middleware.UserID(c)
	if userID == "" {
		_ = c.Error(apperrors.ErrUnauthorized)
		return "", false
	}
	return userID, true
}
