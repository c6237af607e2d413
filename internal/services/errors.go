package services

import (
	"errors"
	"strings"
)

// Sentinel errors for the domain failure taxonomy. Handlers map these to
// HTTP statuses; services never write responses themselves.
var (
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidRSVPStatus  = errors.New("invalid rsvp status")
	ErrEventFull          = errors.New("event is full")
)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. The constraint, not the service-level pre-check, is the source
// of truth for uniqueness under concurrent requests.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
