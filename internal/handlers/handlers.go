package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/service"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/internal/stats"
	"github.com/XavierBriggs/fortuna/services/player-stats-service/pkg/models"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// PlayerService is the read-only query surface used by the handlers
type PlayerService interface {
	Players() []models.Player
	Player(id int) (models.Player, error)
	Statistics() (models.Statistics, error)
	Dataset() *models.Dataset
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	svc PlayerService
	log logrus.FieldLogger
}

// NewHandler creates a new handler with dependencies
func NewHandler(svc PlayerService, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		svc: svc,
		log: log.WithField("component", "handlers"),
	}
}

// HealthCheck returns service health and dataset metadata
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ds := h.svc.Dataset()

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"service":     "player-stats-service",
		"timestamp":   time.Now().UTC(),
		"snapshot_id": ds.SnapshotID,
		"source":      ds.Source,
		"players":     ds.Len(),
		"loaded_at":   ds.LoadedAt,
	})
}

// GetPlayers returns all players sorted by points, highest first
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.svc.Players())
}

// GetPlayer returns a single player by id.
// Unknown ids get a 404 with an empty body.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idParam)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "player id must be an integer", nil)
		return
	}

	player, err := h.svc.Player(id)
	if errors.Is(err, service.ErrPlayerNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to retrieve player", err)
		return
	}

	h.respondJSON(w, http.StatusOK, player)
}

// GetStatistics returns the aggregate statistics of the dataset
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Statistics()
	if errors.Is(err, stats.ErrEmptyCollection) {
		h.respondError(w, http.StatusInternalServerError, "no players loaded, statistics are undefined", err)
		return
	}
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to compute statistics", err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Helper functions

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.WithError(err).Error("Failed to encode response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		h.log.WithError(err).WithField("status", status).Error(message)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		h.log.WithError(err).Error("Failed to encode error response")
	}
}
