package handlers

import (
	"net/http"

	"github.com/gatherly/gatherly-be/internal/auth"
	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/gatherly/gatherly-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// RSVPHandler handles HTTP requests for RSVP tracking.
type RSVPHandler struct {
	service services.RSVPServiceProvider
}

// NewRSVPHandler creates a new RSVPHandler.
func NewRSVPHandler(service services.RSVPServiceProvider) *RSVPHandler {
	return &RSVPHandler{service: service}
}

// RSVPPayload defines the structure for RSVP requests.
type RSVPPayload struct {
	Status string `json:"status" validate:"required"`
}

// Respond handles a user responding to an event. Re-responding updates the
// existing response.
func (h *RSVPHandler) Respond(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload RSVPPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	status, err := models.ParseRSVPStatus(payload.Status)
	if err != nil {
		writeServiceError(w, services.ErrInvalidRSVPStatus)
		return
	}

	eventID := chi.URLParam(r, "id")
	rsvp, err := h.service.Respond(eventID, claims.UserID, status)
	if err != nil {
		log.Warn().Err(err).Str("event_id", eventID).Str("user_id", claims.UserID).Msg("Failed to record RSVP")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rsvp)
}

// ListForEvent handles listing an event's responses for its organizer or
// an admin.
func (h *RSVPHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	eventID := chi.URLParam(r, "id")
	rsvps, err := h.service.ListForEvent(eventID, claims.UserID, claims.Role == models.RoleAdmin)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rsvps)
}

// ListMine handles listing the caller's own responses.
func (h *RSVPHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	rsvps, err := h.service.ListForUser(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list RSVPs")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rsvps)
}
