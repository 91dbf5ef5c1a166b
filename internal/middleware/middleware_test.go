package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/quizlingua/internal/i18n"
	"github.com/stemsi/quizlingua/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLanguageNegotiation(t *testing.T) {
	r := gin.New()
	r.Use(Language())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, string(GetLanguage(c)))
	})

	tests := []struct {
		name   string
		query  string
		header string
		want   string
	}{
		{"no hints", "", "", "en"},
		{"header picks hindi", "", "hi-IN,hi;q=0.9,en;q=0.5", "hi"},
		{"query wins over header", "?lang=en", "hi", "en"},
		{"query is case-insensitive", "?lang=HI", "", "hi"},
		{"unsupported query falls through to header", "?lang=fr", "hi", "hi"},
		{"unsupported everything", "?lang=fr", "de,fr;q=0.8", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestGetLanguageDefault(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, i18n.DefaultLanguage, GetLanguage(c))
}

func TestRequireAdminJWT(t *testing.T) {
	auth := service.NewAuthService("test-secret")
	r := gin.New()
	r.GET("/admin", RequireAdminJWT(auth), func(c *gin.Context) {
		c.String(http.StatusOK, GetClaims(c).Subject)
	})

	adminToken, err := auth.IssueToken("admin-1", service.RoleAdmin, time.Hour)
	require.NoError(t, err)
	learnerToken, err := auth.IssueToken("learner-1", service.RoleLearner, time.Hour)
	require.NoError(t, err)
	expiredToken, err := auth.IssueToken("admin-1", service.RoleAdmin, -time.Hour)
	require.NoError(t, err)
	foreignToken, err := service.NewAuthService("other-secret").IssueToken("admin-1", service.RoleAdmin, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"missing header", "", http.StatusUnauthorized, "TOKEN_REQUIRED"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "TOKEN_REQUIRED"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "TOKEN_INVALID"},
		{"expired", "Bearer " + expiredToken, http.StatusUnauthorized, "TOKEN_INVALID"},
		{"foreign signature", "Bearer " + foreignToken, http.StatusUnauthorized, "TOKEN_INVALID"},
		{"learner", "Bearer " + learnerToken, http.StatusForbidden, "ADMIN_ACCESS_ONLY"},
		{"admin", "bearer " + adminToken, http.StatusOK, "admin-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRateLimiterRefillsPerWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("a"))
	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))
	assert.True(t, rl.allow("b"), "buckets are per caller")

	now = now.Add(59 * time.Second)
	assert.False(t, rl.allow("a"))

	now = now.Add(time.Second)
	assert.True(t, rl.allow("a"))
	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))

	now = now.Add(10 * time.Minute)
	rl.evict()
	rl.mu.Lock()
	assert.Empty(t, rl.buckets)
	rl.mu.Unlock()
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()

	r := gin.New()
	r.POST("/import", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	first := serve(r, httptest.NewRequest(http.MethodPost, "/import", nil))
	second := serve(r, httptest.NewRequest(http.MethodPost, "/import", nil))

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestRateLimiterStopEndsEviction(t *testing.T) {
	rl := NewRateLimiter(1, time.Millisecond)

	rl.Stop()
	assert.NotPanics(t, rl.Stop)

	select {
	case <-rl.stop:
	default:
		t.Fatal("stop channel still open")
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.POST("/import", BodyLimit(16), func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusNoContent)
	})

	small := serve(r, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusNoContent, small.Code)

	large := serve(r, httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(strings.Repeat("x", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, large.Code)
	assert.Contains(t, large.Body.String(), "PAYLOAD_TOO_LARGE")

	chunked := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(strings.Repeat("x", 64)))
	chunked.ContentLength = -1
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(r, chunked).Code)
}

func TestBrotliCompressesLargeBodies(t *testing.T) {
	large := strings.Repeat("प्रश्न question ", 200)

	r := gin.New()
	r.Use(BrotliWithConfig(BrotliConfig{Quality: 5, MinLength: 256}))
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/large", nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=0.9")
	w := serve(r, req)

	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Header().Values("Vary"), "Accept-Encoding")
	decoded, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, large, string(decoded))

	req = httptest.NewRequest(http.MethodGet, "/small", nil)
	req.Header.Set("Accept-Encoding", "br")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "ok", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/large", nil))
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, large, w.Body.String())
}

func TestCacheHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/public", CacheControl(60), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/admin", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, "public, max-age=60", serve(r, httptest.NewRequest(http.MethodGet, "/public", nil)).Header().Get("Cache-Control"))
	assert.Equal(t, "no-store", serve(r, httptest.NewRequest(http.MethodGet, "/admin", nil)).Header().Get("Cache-Control"))
}
