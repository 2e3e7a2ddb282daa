// Package api provides the local HTTP API for Touchwood. The mobile shell
// and the CLI both talk to the daemon through it.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/touchwood-app/touchwood/internal/app/achievement"
	"github.com/touchwood-app/touchwood/internal/app/challenge"
	"github.com/touchwood-app/touchwood/internal/app/level"
	"github.com/touchwood-app/touchwood/internal/app/mood"
	"github.com/touchwood-app/touchwood/internal/app/notify"
	"github.com/touchwood-app/touchwood/internal/app/progress"
	"github.com/touchwood-app/touchwood/internal/app/seasonal"
	"github.com/touchwood-app/touchwood/internal/app/social"
	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/health"
	"github.com/touchwood-app/touchwood/internal/infra/catalog"
)

// Recorder is the orchestration surface the API drives: one call fans a
// completion (or share) out across every engine.
type Recorder interface {
	RecordRitual(ritualID string, mood int, note string, at time.Time) (domain.CompletionEvent, error)
	Stats(now time.Time) (domain.AggregateStats, error)
	Share(kind social.ShareKind, at time.Time) (social.SharePayload, error)
}

// Deps bundles everything the server serves.
type Deps struct {
	Recorder     Recorder
	Progress     *progress.Tracker
	Challenges   *challenge.Engine
	Achievements *achievement.Engine
	Seasonal     *seasonal.Engine
	Mood         *mood.Engine
	Level        *level.Service
	Social       *social.Manager
	Notifier     *notify.Service
	Catalog      *catalog.Catalog
	Health       *health.Checker
}

// Server is the Touchwood HTTP API server.
type Server struct {
	deps           Deps
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(deps Deps) *Server {
	return &Server{deps: deps}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		var checks []health.Status
		if s.deps.Health != nil {
			checks = s.deps.Health.Statuses()
			if !s.deps.Health.IsHealthy() {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		writeJSON(w, code, map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/rituals/complete", s.handleCompleteRitual)
		r.Get("/rituals", s.handleListRituals)
		r.Post("/rituals", s.handleCreateRitual)
		r.Post("/rituals/special/{id}/use", s.handleUseSpecialRitual)

		r.Get("/streak", s.handleStreak)
		r.Get("/summary", s.handleSummary)
		r.Get("/level", s.handleLevel)

		r.Get("/challenges", s.handleChallenges)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/events", s.handleEvents)
		r.Get("/events/{id}", s.handleEvent)

		r.Get("/mood/report", s.handleMoodReport)

		r.Post("/share", s.handleShare)
		r.Get("/friends", s.handleFriends)

		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
