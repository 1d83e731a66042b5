package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
	"github.com/pushp314/tradeacademy-backend/pkg/utils"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := utils.GenerateToken(secret, "user-1", role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	r.GET("/admin", AuthMiddleware(secret), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := authRouter()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, utils.RoleLearner))
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestAdminOnly(t *testing.T) {
	r := authRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, utils.RoleLearner))
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, utils.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, serve(r, req).Code)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandlerMiddleware())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperrors.NotFound("Badge not found")) })
	r.GET("/config", func(c *gin.Context) {
		_ = c.Error(apperrors.Configuration("load badge catalog", errors.New("bad row")))
	})
	r.GET("/down", func(c *gin.Context) {
		_ = c.Error(apperrors.Unavailable("load progress", errors.New("refused")))
	})
	r.GET("/other", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	cases := map[string]int{
		"/app":    http.StatusNotFound,
		"/config": http.StatusInternalServerError,
		"/down":   http.StatusServiceUnavailable,
		"/other":  http.StatusInternalServerError,
		"/panic":  http.StatusInternalServerError,
	}
	for path, want := range cases {
		w := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(NewIPRateLimiter(rate.Limit(0.001), 2)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
