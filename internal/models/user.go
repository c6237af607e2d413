package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the authorization level of a user account.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleOrganizer Role = "ORGANIZER"
	RoleAttendee  Role = "ATTENDEE"
)

// ParseRole validates a role string. Unknown values are rejected rather
// than silently cast.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleOrganizer:
		return RoleOrganizer, nil
	case RoleAttendee:
		return RoleAttendee, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User represents a user account in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
