package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"gorm.io/gorm"

	"solo-skies/skyledger/internal/api"
	"solo-skies/skyledger/internal/logging"
	"solo-skies/skyledger/internal/middleware"
)

// RegisterRoutes builds the full HTTP surface around an initialized
// dependency graph.
func RegisterRoutes(deps *api.Dependencies, journalDB *gorm.DB, jwtSecret []byte, upSince time.Time) http.Handler {

	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with request-id, rate-limit and CORS middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(journalDB, upSince))

	RegisterAPIRoutes(r, deps, jwtSecret)

	return r
}
