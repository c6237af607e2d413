package handlers

import (
	"net/http"

	"github.com/gatherly/gatherly-be/internal/auth"
	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/gatherly/gatherly-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	service services.UserServiceProvider
	tokens  *auth.Tokens
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens}
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup handles new user registration. The role is optional and defaults
// to ATTENDEE; unknown role strings are rejected.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
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

	user, err := h.service.Signup(payload.Email, payload.Password, role)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed signup attempt")
		writeServiceError(w, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"token":   token,
		"user":    user,
	})
}

// Login handles user authentication and token issuance. Unknown email and
// wrong password produce identical responses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if !decodeAndValidate(w, r, &payload) {
		return
	}

	user, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		writeServiceError(w, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// GetMe retrieves the currently authenticated user from the token.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("User from token not found in DB")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
