package handlers

import (
	"net/http"

	"github.com/gatherly/gatherly-be/internal/auth"
	"github.com/gatherly/gatherly-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// NotificationHandler handles HTTP requests for a user's notifications.
type NotificationHandler struct {
	service services.NotificationServiceProvider
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service services.NotificationServiceProvider) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ListMine handles listing the caller's notifications. Pass ?unread=true
// to restrict to unread ones.
func (h *NotificationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.service.ListForUser(claims.UserID, unreadOnly)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list notifications")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// MarkRead handles marking one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.MarkRead(claims.UserID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// MarkAllRead handles marking all of the caller's notifications as read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.service.MarkAllRead(claims.UserID); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to mark notifications read")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}
