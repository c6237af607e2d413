package handlers

import (
	"net/http"

	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/gatherly/gatherly-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// AdminHandler handles admin-only HTTP requests.
type AdminHandler struct {
	users    services.UserServiceProvider
	notifier services.NotificationServiceProvider
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users services.UserServiceProvider, notifier services.NotificationServiceProvider) *AdminHandler {
	return &AdminHandler{users: users, notifier: notifier}
}

// Stats handles the admin dashboard stats request: entity counts plus a
// snapshot of host resource usage.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.Stats()
	if err != nil {
		log.Error().Err(err).Msg("Failed to collect admin stats")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"counts": stats,
		"host":   hostStats(),
	})
}

// ListUsers handles listing all user accounts.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// UpdateRole handles changing a user's role.
func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Role string `json:"role" validate:"required"`
	}
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	role, err := models.ParseRole(payload.Role)
	if err != nil {
		writeServiceError(w, services.ErrInvalidRole)
		return
	}

	id := chi.URLParam(r, "id")
	user, err := h.users.UpdateUserRole(id, role)
	if err != nil {
		log.Warn().Err(err).Str("user_id", id).Msg("Failed to update user role")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// CreateUser handles admin creation of an account with an explicit role.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	role := models.RoleAttendee
	if payload.Role != "" {
		parsed, err := models.ParseRole(payload.Role)
		if err != nil {
			writeServiceError(w, services.ErrInvalidRole)
			return
		}
		role = parsed
	}

	user, err := h.users.Signup(payload.Email, payload.Password, role)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to create user")
		writeServiceError(w, err)
		return
	}

	if err := h.notifier.Notify(user.ID, models.NotificationWelcome,
		"An administrator created this account for you.", nil); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create welcome notification")
	}

	writeJSON(w, http.StatusCreated, user)
}

// hostStats samples host CPU and memory usage. Failures degrade to zero
// values rather than failing the stats request.
func hostStats() models.HostStats {
	var stats models.HostStats
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsedMB = vm.Used / 1024 / 1024
		stats.MemoryTotalMB = vm.Total / 1024 / 1024
	}
	return stats
}
