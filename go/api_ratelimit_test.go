package houseplansserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSubmissionLimiter_RejectsOverBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewSubmissionLimiter(60, 2)
	router := gin.New()
	router.POST("/api/contact", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			require.Equal(t, "1", rec.Header().Get("Retry-After"))
			require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		}
	}
	require.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.RemoteAddr = "198.51.100.9:5000"
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, "other clients keep their own bucket")
}

func TestSubmissionLimiter_DisabledAndSweep(t *testing.T) {
	require.Nil(t, NewSubmissionLimiter(0, 5))

	limiter := NewSubmissionLimiter(30, 1)
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	limiter.forClient("203.0.113.7")
	require.Len(t, limiter.clients, 1)

	now = now.Add(limiterIdleTTL + limiterSweepInterval)
	limiter.forClient("198.51.100.9")
	require.Len(t, limiter.clients, 1)
	require.Contains(t, limiter.clients, "198.51.100.9")
}

func TestRouter_ThrottlesOnlySubmissionRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calls := 0
	throttle := func(c *gin.Context) {
		calls++
		c.AbortWithStatus(http.StatusTooManyRequests)
	}
	router := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{Throttle: throttle})

	for _, path := range []string{"/api/orders/checkout", "/api/contact", "/api/quotes"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		require.Equal(t, http.StatusTooManyRequests, rec.Code, path)
	}
	require.Equal(t, 3, calls)
	for _, route := range getRoutes(ApiHandleFunctions{}) {
		if route.Method == http.MethodGet {
			require.False(t, throttledRoutes[route.Name], route.Name)
		}
	}
}
