package models

import "time"

// Event represents an event that users can RSVP to.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
	Capacity    int        `json:"capacity"` // 0 means unlimited
	OrganizerID string     `json:"organizerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// GoingCount is populated on reads, not stored.
	GoingCount int `json:"goingCount"`
}
