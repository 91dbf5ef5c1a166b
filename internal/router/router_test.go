package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/quizlingua/internal/config"
	"github.com/stemsi/quizlingua/internal/handler"
	"github.com/stemsi/quizlingua/internal/middleware"
	"github.com/stemsi/quizlingua/internal/service"
)

func TestImportRoutesUseCallerLimiter(t *testing.T) {
	auth := service.NewAuthService("test-secret")
	limiter := middleware.NewRateLimiter(1, time.Hour)
	defer limiter.Stop()

	r := SetupRouter(auth, &Handlers{
		Quiz:    &handler.QuizHandler{},
		Subject: &handler.SubjectHandler{},
		System:  &handler.SystemHandler{},
	}, limiter, &config.Config{GinMode: gin.TestMode, MaxImportBytes: 1 << 20})

	token, err := auth.IssueToken("admin-1", service.RoleAdmin, time.Hour)
	require.NoError(t, err)

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/normalize", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// The first call spends the only token and fails validation in the handler.
	assert.Equal(t, http.StatusBadRequest, post().Code)

	second := post()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMIT_EXCEEDED")

	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}
