package models

import "time"

// Notification types emitted by the system.
const (
	NotificationRSVPReceived  = "rsvp.received"
	NotificationEventUpdated  = "event.updated"
	NotificationEventCanceled = "event.canceled"
	NotificationEventReminder = "event.reminder"
	NotificationRoleChanged   = "account.role_changed"
	NotificationWelcome       = "account.welcome"
)

// Notification is a per-user message about something that happened to an
// event or account they care about.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	EventID   *string   `json:"eventId,omitempty"` // Nullable for account-level notifications
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
