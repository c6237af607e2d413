package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatherly/gatherly-be/internal/services"
	"github.com/go-playground/validator/v10"
)

// validate checks request payload structs against their struct tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// writeJSON writes a JSON response with a status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError sends an error payload. Clients inspect the "error" field;
// the status code carries the error kind as well.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps a service error to its HTTP status and payload.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "User already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "Insufficient permissions")
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrInvalidRole):
		writeError(w, http.StatusUnprocessableEntity, "Invalid role")
	case errors.Is(err, services.ErrInvalidRSVPStatus):
		writeError(w, http.StatusUnprocessableEntity, "Invalid RSVP status")
	case errors.Is(err, services.ErrEventFull):
		writeError(w, http.StatusConflict, "Event is full")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
	}
}

// decodeAndValidate decodes a JSON body into payload and runs validation.
// On failure it writes a 400 and reports false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, payload any) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
