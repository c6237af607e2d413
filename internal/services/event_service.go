package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(event models.Event) (models.Event, error)
	GetEventByID(id string) (models.Event, error)
	ListEvents() ([]models.Event, error)
	UpdateEvent(id, callerID string, isAdmin bool, event models.Event) (models.Event, error)
	DeleteEvent(id, callerID string, isAdmin bool) error
	UpcomingUnreminded(within time.Duration) ([]models.Event, error)
	MarkReminderSent(id string) error
}

// EventService provides business logic for event management.
type EventService struct {
	db       *sql.DB
	notifier NotificationServiceProvider
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB, notifier NotificationServiceProvider) *EventService {
	return &EventService{db: db, notifier: notifier}
}

const eventColumns = `id, title, description, location, starts_at, ends_at, capacity, organizer_id, created_at, updated_at,
	(SELECT COUNT(*) FROM rsvps WHERE rsvps.event_id = events.id AND rsvps.status = 'GOING') AS going_count`

// CreateEvent persists a new event owned by its organizer.
func (s *EventService) CreateEvent(event models.Event) (models.Event, error) {
	event.ID = uuid.New().String()
	event.StartsAt = event.StartsAt.UTC()
	if event.EndsAt != nil {
		utc := event.EndsAt.UTC()
		event.EndsAt = &utc
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO events (id, title, description, location, starts_at, ends_at, capacity, organizer_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return models.Event{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Title, event.Description, event.Location, event.StartsAt, event.EndsAt, event.Capacity, event.OrganizerID)
	if err != nil {
		return models.Event{}, err
	}

	return s.GetEventByID(event.ID)
}

// GetEventByID retrieves a single event by its ID.
func (s *EventService) GetEventByID(id string) (models.Event, error) {
	row := s.db.QueryRow("SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	return s.scanEvent(row)
}

// ListEvents retrieves all events, soonest first.
func (s *EventService) ListEvents() ([]models.Event, error) {
	rows, err := s.db.Query("SELECT " + eventColumns + " FROM events ORDER BY starts_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanEvents(rows)
}

// UpdateEvent updates an event. Only the owning organizer or an admin may
// do so; attendees with a GOING or MAYBE response are notified.
func (s *EventService) UpdateEvent(id, callerID string, isAdmin bool, event models.Event) (models.Event, error) {
	existing, err := s.GetEventByID(id)
	if err != nil {
		return models.Event{}, err
	}
	if existing.OrganizerID != callerID && !isAdmin {
		return models.Event{}, ErrForbidden
	}

	event.StartsAt = event.StartsAt.UTC()
	if event.EndsAt != nil {
		utc := event.EndsAt.UTC()
		event.EndsAt = &utc
	}

	stmt, err := s.db.Prepare(`
		UPDATE events
		SET title = ?, description = ?, location = ?, starts_at = ?, ends_at = ?, capacity = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	if err != nil {
		return models.Event{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.Title, event.Description, event.Location, event.StartsAt, event.EndsAt, event.Capacity, id)
	if err != nil {
		return models.Event{}, err
	}

	s.notifyAttendees(id, models.NotificationEventUpdated,
		fmt.Sprintf("The event '%s' has been updated.", event.Title))
	return s.GetEventByID(id)
}

// DeleteEvent removes an event. Only the owning organizer or an admin may
// do so; attendees are notified of the cancellation first.
func (s *EventService) DeleteEvent(id, callerID string, isAdmin bool) error {
	existing, err := s.GetEventByID(id)
	if err != nil {
		return err
	}
	if existing.OrganizerID != callerID && !isAdmin {
		return ErrForbidden
	}

	s.notifyAttendees(id, models.NotificationEventCanceled,
		fmt.Sprintf("The event '%s' has been canceled.", existing.Title))

	_, err = s.db.Exec("DELETE FROM events WHERE id = ?", id)
	return err
}

// UpcomingUnreminded retrieves events starting within the window that have
// not had reminders sent yet.
func (s *EventService) UpcomingUnreminded(within time.Duration) ([]models.Event, error) {
	now := time.Now().UTC()
	rows, err := s.db.Query(
		"SELECT "+eventColumns+" FROM events WHERE reminder_sent = 0 AND starts_at > ? AND starts_at <= ?",
		now, now.Add(within))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return s.scanEvents(rows)
}

// MarkReminderSent records that reminders went out for an event.
func (s *EventService) MarkReminderSent(id string) error {
	_, err := s.db.Exec("UPDATE events SET reminder_sent = 1 WHERE id = ?", id)
	return err
}

// notifyAttendees notifies every GOING or MAYBE attendee of an event.
// Failures are logged, not propagated; the triggering write already
// succeeded.
func (s *EventService) notifyAttendees(eventID, notifType, message string) {
	rows, err := s.db.Query("SELECT user_id FROM rsvps WHERE event_id = ? AND status IN ('GOING', 'MAYBE')", eventID)
	if err != nil {
		log.Error().Err(err).Str("event_id", eventID).Msg("Failed to query attendees for notification")
		return
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			log.Error().Err(err).Str("event_id", eventID).Msg("Failed to scan attendee row")
			return
		}
		userIDs = append(userIDs, userID)
	}

	for _, userID := range userIDs {
		if err := s.notifier.Notify(userID, notifType, message, &eventID); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("event_id", eventID).Msg("Failed to create attendee notification")
		}
	}
}

// scanEvents is a helper to scan multiple rows into a slice of Events.
func (s *EventService) scanEvents(rows *sql.Rows) ([]models.Event, error) {
	var events []models.Event
	for rows.Next() {
		event, err := s.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// scanEvent is a helper to scan a single row into an Event struct.
func (s *EventService) scanEvent(scanner interface{ Scan(...interface{}) error }) (models.Event, error) {
	var event models.Event
	var description, location sql.NullString
	err := scanner.Scan(
		&event.ID,
		&event.Title,
		&description,
		&location,
		&event.StartsAt,
		&event.EndsAt,
		&event.Capacity,
		&event.OrganizerID,
		&event.CreatedAt,
		&event.UpdatedAt,
		&event.GoingCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Event{}, fmt.Errorf("event: %w", ErrNotFound)
		}
		return models.Event{}, err
	}
	event.Description = description.String
	event.Location = location.String
	return event, nil
}
