package handlers

import (
	"net/http"
	"time"

	"github.com/gatherly/gatherly-be/internal/auth"
	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/gatherly/gatherly-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// EventHandler handles HTTP requests for event management.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// EventPayload defines the structure for event create/update requests.
type EventPayload struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"startsAt" validate:"required"`
	EndsAt      *time.Time `json:"endsAt"`
	Capacity    int        `json:"capacity" validate:"gte=0"`
}

// List handles the public event listing.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListEvents()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list events")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// Get handles retrieving a single event by its ID.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, err := h.service.GetEventByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Create handles event creation by an organizer or admin.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload EventPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	event, err := h.service.CreateEvent(models.Event{
		Title:       payload.Title,
		Description: payload.Description,
		Location:    payload.Location,
		StartsAt:    payload.StartsAt,
		EndsAt:      payload.EndsAt,
		Capacity:    payload.Capacity,
		OrganizerID: claims.UserID,
	})
	if err != nil {
		log.Error().Err(err).Str("organizer_id", claims.UserID).Msg("Failed to create event")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// Update handles event updates by the owning organizer or an admin.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	var payload EventPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	event, err := h.service.UpdateEvent(id, claims.UserID, claims.Role == models.RoleAdmin, models.Event{
		Title:       payload.Title,
		Description: payload.Description,
		Location:    payload.Location,
		StartsAt:    payload.StartsAt,
		EndsAt:      payload.EndsAt,
		Capacity:    payload.Capacity,
	})
	if err != nil {
		log.Warn().Err(err).Str("event_id", id).Str("caller_id", claims.UserID).Msg("Failed to update event")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Delete handles event cancellation by the owning organizer or an admin.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteEvent(id, claims.UserID, claims.Role == models.RoleAdmin); err != nil {
		log.Warn().Err(err).Str("event_id", id).Str("caller_id", claims.UserID).Msg("Failed to delete event")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
