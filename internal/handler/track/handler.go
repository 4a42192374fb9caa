// Package track ingests storefront behavior events.
package track

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	trackService "github.com/issac8080/aurashop/internal/service/track"
	"github.com/issac8080/aurashop/pkg/utils"
)

// Handler accepts behavior events and serves derived session state.
type Handler struct {
	tracker *trackService.Service
	log     zerolog.Logger
}

// New builds the handler.
func New(tracker *trackService.Service, log zerolog.Logger) *Handler {
	return &Handler{tracker: tracker, log: log}
}

// RegisterRoutes mounts the tracking endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/events", h.HandleEvent)
	r.Get("/session/{sessionID}/context", h.HandleContext)
	r.Get("/session/{sessionID}/cart", h.HandleCart)
}

// HandleEvent publishes one behavior event onto the session bus.
func (h *Handler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var ev trackService.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid event body")
		return
	}
	if ev.SessionID == "" || ev.EventType == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id and type are required")
		return
	}

	if err := h.tracker.Track(r.Context(), ev); err != nil {
		h.log.Error().Err(err).Str("type", ev.EventType).Msg("publish event")
		utils.RespondError(w, http.StatusInternalServerError, "failed to record event")
		return
	}
	utils.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

// HandleContext returns the folded behavior context for a session.
func (h *Handler) HandleContext(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	utils.RespondJSON(w, http.StatusOK, h.tracker.Context(sessionID))
}

// HandleCart returns the product ids currently in the session's cart.
func (h *Handler) HandleCart(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	ids := h.tracker.Cart(sessionID)
	if ids == nil {
		ids = []string{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"product_ids": ids})
}
