package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/api/middleware"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/config"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/handlers"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/ratelimit"
)

// NewRouter creates and configures the HTTP router.
// limitStore builds one rate-limit record store per endpoint name, so
// contact and chat counters never share a window.
func NewRouter(logger zerolog.Logger, cfg *config.Config, h *handlers.Handler, limitStore func(name string) ratelimit.Store) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters!)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(64 * 1024)) // 64KB max body
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// Rate limiting: cheap rejection before any payload inspection. Each
	// endpoint gets its own window so contact and chat tune independently.
	limiter := middleware.NewRateLimiter(logger)
	limiter.Limit("POST /api/contact",
		ratelimit.New(limitStore("contact"), cfg.ContactRateMax, cfg.ContactRateWindow),
		"Too many submissions. Please try again later.")
	limiter.Limit("POST /api/chat",
		ratelimit.New(limitStore("chat"), cfg.ChatRateMax, cfg.ChatRateWindow),
		"Too many requests. Please try again later.")
	limiter.Limit("POST /api/realtime-token",
		ratelimit.New(limitStore("realtime"), cfg.RealtimeRateMax, cfg.RealtimeRateWindow),
		"Too many requests. Please try again later.")
	r.Use(limiter.Middleware)

	// CORS - the site is served from a different origin than the API
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// Public routes
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Post("/api/contact", h.Contact)
	r.Post("/api/chat", h.Chat)
	r.Post("/api/realtime-token", h.RealtimeToken)

	// Admin routes (require bearer token)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminTokenHash))

		r.Get("/api/admin/submissions", h.ListSubmissions)
	})

	return r
}
