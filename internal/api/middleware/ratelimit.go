package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/metrics"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/ratelimit"
)

// RouteLimit binds a limiter and its user-facing denial message to one
// endpoint.
type RouteLimit struct {
	Limiter *ratelimit.Limiter
	Message string
}

// RateLimiter applies per-endpoint fixed-window limits keyed by client IP.
// Each endpoint carries its own maximum and window; requests to unlisted
// routes pass through untouched.
type RateLimiter struct {
	limits map[string]RouteLimit // "METHOD /path"
	logger zerolog.Logger
}

// NewRateLimiter creates an empty rate limiter.
func NewRateLimiter(logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		limits: make(map[string]RouteLimit),
		logger: logger,
	}
}

// Limit registers a limiter for an exact "METHOD /path" pattern.
func (rl *RateLimiter) Limit(pattern string, limiter *ratelimit.Limiter, message string) {
	rl.limits[pattern] = RouteLimit{Limiter: limiter, Message: message}
}

// RealIP extracts the real client IP from headers or connection.
func RealIP(r *http.Request) string {
	// Check Fly.io header first
	if ip := r.Header.Get("Fly-Client-IP"); ip != "" {
		return ip
	}
	// Then X-Forwarded-For
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	// Then X-Real-IP
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	// Fallback to RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Middleware returns the rate limiting middleware.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, ok := rl.limits[r.Method+" "+r.URL.Path]
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ip := RealIP(r)
		decision := limit.Limiter.Allow(ip)

		// Set rate limit headers
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Limiter.Max()))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(decision.RetryAfter))

			metrics.RateLimitHits.WithLabelValues(r.URL.Path).Inc()

			rl.logger.Warn().
				Str("type", "security").
				Str("event", "rate_limit_exceeded").
				Str("ip", ip).
				Str("endpoint", r.URL.Path).
				Int("retry_after", decision.RetryAfter).
				Msg("rate limit exceeded")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"` + limit.Message + `"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
