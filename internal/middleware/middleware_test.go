package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/showcase_api/internal/utils"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(limiter *InvalidAuthRateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(NewJWTMiddleware(testSecret, limiter).Handle())
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	return r
}

func TestJWTMiddleware(t *testing.T) {
	r := newAuthRouter(NewInvalidAuthRateLimiter(100, time.Minute))
	token, err := utils.GenerateJWT(testSecret, "user-42", "a@b.c", time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateJWT(testSecret, "user-42", "a@b.c", -time.Minute)
	require.NoError(t, err)
	foreign, err := utils.GenerateJWT("other-secret", "user-42", "a@b.c", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "user-42", w.Body.String())
			}
		})
	}
}

func TestJWTMiddleware_RateLimitsFailures(t *testing.T) {
	r := newAuthRouter(NewInvalidAuthRateLimiter(2, time.Minute))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{401, 401, 429}, codes)
}

func TestInvalidAuthRateLimiter_Window(t *testing.T) {
	rl := NewInvalidAuthRateLimiter(1, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))

	now = now.Add(2 * time.Minute)
	rl.evict()
	assert.Empty(t, rl.attempts)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://show.example.com"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://show.example.com:443")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://show.example.com:443", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestTimeoutMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(TimeoutMiddleware(time.Second))
	var deadline time.Time
	var ok bool
	r.GET("/x", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil).WithContext(context.Background()))
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
}
