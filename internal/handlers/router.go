package handlers

import (
	"net/http"
	"time"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// LegacyPrefix is the route prefix kept for clients of the older players API
const LegacyPrefix = "/api/players"

// NewRouter wires the handler into a chi router with the service middleware
func NewRouter(h *Handler, corsOrigins []string, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)
	h.Routes(r)

	// /api/players/players, /api/players/players/{id}, /api/players/statistics
	r.Route(LegacyPrefix, h.Routes)

	return r
}

// Routes registers the player endpoints on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/players", h.GetPlayers)
	r.Get("/players/{id}", h.GetPlayer)
	r.Get("/statistics", h.GetStatistics)
}
