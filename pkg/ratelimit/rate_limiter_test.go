package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 5,
		PublicRequests:  3,
		CartRequests:    2,
		HealthRequests:  10,
		WhitelistedIPs:  []string{"10.0.0.1"},
	}
}

func fixedAt(r *RateLimiter, t time.Time) {
	r.now = func() time.Time { return t }
}

func TestRedisSlidingWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRateLimiter(client, testConfig())
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	fixedAt(limiter, start)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypePublic)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i)
		assert.Equal(t, 2-i, res.Remaining)
	}
	res, err := limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypePublic)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	// other classes and clients have their own windows
	res, err = limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypeCart)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	res, err = limiter.IsAllowed(ctx, "5.6.7.8", RateLimitTypePublic)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	fixedAt(limiter, start.Add(61*time.Second))
	res, err = limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypePublic)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLocalFallback(t *testing.T) {
	limiter := NewRateLimiter(nil, testConfig())
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	fixedAt(limiter, start)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypeCart)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
	res, err := limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypeCart)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	// one token refills every 30s
	fixedAt(limiter, start.Add(31*time.Second))
	res, err = limiter.IsAllowed(ctx, "1.2.3.4", RateLimitTypeCart)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestBypass(t *testing.T) {
	cfg := testConfig()
	limiter := NewRateLimiter(nil, cfg)
	for i := 0; i < 10; i++ {
		res, err := limiter.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeCart)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	cfg.Enabled = false
	res, err := limiter.IsAllowed(context.Background(), "1.1.1.1", RateLimitTypeCart)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Limit)
}

func TestGetRateLimitType(t *testing.T) {
	cases := []struct {
		method, path string
		want         RateLimitType
	}{
		{"GET", "/health", RateLimitTypeHealth},
		{"GET", "/metrics", RateLimitTypeHealth},
		{"GET", "/api/events/:id/listings", RateLimitTypePublic},
		{"GET", "/api/listings/:id", RateLimitTypePublic},
		{"PUT", "/api/listings/:id/image", RateLimitTypeAdmin},
		{"GET", "/api/search", RateLimitTypePublic},
		{"POST", "/api/cart", RateLimitTypeCart},
		{"POST", "/api/config", RateLimitTypeConfig},
		{"POST", "/api/scenarios/load", RateLimitTypeConfig},
		{"DELETE", "/api/logs", RateLimitTypeLogs},
		{"GET", "/api/unknown", RateLimitTypeDefault},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, getRateLimitType(tc.method, tc.path), tc.method+" "+tc.path)
	}
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(nil, testConfig())
	fixedAt(limiter, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	engine := gin.New()
	engine.Use(Middleware(limiter))
	engine.GET("/api/events", func(c *gin.Context) { c.Status(http.StatusOK) })

	var last *httptest.ResponseRecorder
	for i := 0; i < 4; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.2")
		engine.ServeHTTP(last, req)
		if i < 3 {
			assert.Equal(t, http.StatusOK, last.Code)
		}
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "3", last.Header().Get("X-RateLimit-Limit"))
	assert.Contains(t, last.Body.String(), "Rate limit exceeded")
}
