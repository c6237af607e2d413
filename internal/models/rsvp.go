package models

import (
	"fmt"
	"strings"
	"time"
)

// RSVPStatus is the attendance intent of a user for an event.
type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "GOING"
	RSVPMaybe    RSVPStatus = "MAYBE"
	RSVPDeclined RSVPStatus = "DECLINED"
)

// ParseRSVPStatus validates an RSVP status string.
func ParseRSVPStatus(s string) (RSVPStatus, error) {
	switch RSVPStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case RSVPGoing:
		return RSVPGoing, nil
	case RSVPMaybe:
		return RSVPMaybe, nil
	case RSVPDeclined:
		return RSVPDeclined, nil
	default:
		return "", fmt.Errorf("unknown rsvp status %q", s)
	}
}

// RSVP records a single user's response to a single event. At most one
// row exists per (event, user) pair; re-responding updates it in place.
type RSVP struct {
	ID        string     `json:"id"`
	EventID   string     `json:"eventId"`
	UserID    string     `json:"userId"`
	Status    RSVPStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// UserEmail is joined in for attendee listings, not stored on the row.
	UserEmail string `json:"userEmail,omitempty"`
}
