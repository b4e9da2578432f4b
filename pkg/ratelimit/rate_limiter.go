package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"tixmarket/internal/shared/constants"
)

type RateLimitType string

const (
	RateLimitTypeDefault RateLimitType = "default"
	RateLimitTypePublic  RateLimitType = "public"
	RateLimitTypeCart    RateLimitType = "cart"
	RateLimitTypeConfig  RateLimitType = "config"
	RateLimitTypeAdmin   RateLimitType = "admin"
	RateLimitTypeLogs    RateLimitType = "logs"
	RateLimitTypeHealth  RateLimitType = "health"
)

type Config struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	CartRequests    int           `json:"cart_requests"`
	ConfigRequests  int           `json:"config_requests"`
	AdminRequests   int           `json:"admin_requests"`
	LogsRequests    int           `json:"logs_requests"`
	HealthRequests  int           `json:"health_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// Result represents rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// slidingWindow trims the sorted set to the window, then admits the request
// if the remaining count is under the limit. Members carry a sequence suffix
// so that requests within the same millisecond are counted separately.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local window_start = tonumber(ARGV[1])
local now = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local window_ms = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local current = redis.call('ZCARD', key)
if current >= limit then
	redis.call('PEXPIRE', key, window_ms)
	return {current + 1, 0}
end

local seq = redis.call('INCR', key .. ':seq')
redis.call('PEXPIRE', key .. ':seq', window_ms)
redis.call('ZADD', key, now, now .. '-' .. seq)
redis.call('PEXPIRE', key, window_ms)
return {current + 1, limit - current - 1}
`)

// RateLimiter counts requests in Redis when a client is available and
// falls back to in-process token buckets otherwise.
type RateLimiter struct {
	client *redis.Client
	config *Config
	now    func() time.Time

	mu     sync.Mutex
	local  map[string]*rate.Limiter
	listed map[string]struct{}
}

func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	listed := make(map[string]struct{}, len(config.WhitelistedIPs))
	for _, ip := range config.WhitelistedIPs {
		listed[ip] = struct{}{}
	}
	return &RateLimiter{
		client: client,
		config: config,
		now:    time.Now,
		local:  make(map[string]*rate.Limiter),
		listed: listed,
	}
}

// IsAllowed checks if the request is allowed
func (r *RateLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := r.getLimit(limitType)
	if !r.config.Enabled || r.isWhitelisted(clientIP) || limit <= 0 {
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			ResetTime: r.now().Add(r.config.WindowDuration).Unix(),
		}, nil
	}

	key := constants.RateLimitKey(string(limitType), clientIP)
	if r.client == nil {
		return r.checkLocal(key, limit), nil
	}
	return r.checkLimit(ctx, key, limit)
}

// checkLimit performs the sliding window check in Redis
func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int) (*Result, error) {
	now := r.now()
	windowStart := now.Add(-r.config.WindowDuration)

	result, err := slidingWindow.Run(ctx, r.client, []string{key},
		windowStart.UnixMilli(),
		now.UnixMilli(),
		limit,
		r.config.WindowDuration.Milliseconds()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis eval failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return nil, fmt.Errorf("unexpected redis response")
	}

	currentCount, _ := strconv.Atoi(fmt.Sprint(values[0]))
	remaining, _ := strconv.Atoi(fmt.Sprint(values[1]))

	return &Result{
		Allowed:   currentCount <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: now.Add(r.config.WindowDuration).Unix(),
	}, nil
}

// checkLocal spreads limit requests per window over a token bucket whose
// burst equals the limit.
func (r *RateLimiter) checkLocal(key string, limit int) *Result {
	r.mu.Lock()
	limiter, ok := r.local[key]
	if !ok {
		every := rate.Every(r.config.WindowDuration / time.Duration(limit))
		limiter = rate.NewLimiter(every, limit)
		r.local[key] = limiter
	}
	r.mu.Unlock()

	now := r.now()
	allowed := limiter.AllowN(now, 1)
	remaining := int(limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return &Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: now.Add(r.config.WindowDuration).Unix(),
	}
}

func (r *RateLimiter) getLimit(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypePublic:
		return r.config.PublicRequests
	case RateLimitTypeCart:
		return r.config.CartRequests
	case RateLimitTypeConfig:
		return r.config.ConfigRequests
	case RateLimitTypeAdmin:
		return r.config.AdminRequests
	case RateLimitTypeLogs:
		return r.config.LogsRequests
	case RateLimitTypeHealth:
		return r.config.HealthRequests
	default:
		return r.config.DefaultRequests
	}
}

func (r *RateLimiter) isWhitelisted(ip string) bool {
	_, ok := r.listed[ip]
	return ok
}
