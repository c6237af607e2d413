package services

import (
	"database/sql"
	"fmt"

	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RSVPServiceProvider defines the interface for RSVP services.
type RSVPServiceProvider interface {
	Respond(eventID, userID string, status models.RSVPStatus) (models.RSVP, error)
	ListForEvent(eventID, callerID string, isAdmin bool) ([]models.RSVP, error)
	ListForUser(userID string) ([]models.RSVP, error)
	AttendeeIDs(eventID string) ([]string, error)
}

// RSVPService provides business logic for RSVP tracking.
type RSVPService struct {
	db       *sql.DB
	notifier NotificationServiceProvider
}

// NewRSVPService creates a new RSVPService.
func NewRSVPService(db *sql.DB, notifier NotificationServiceProvider) *RSVPService {
	return &RSVPService{db: db, notifier: notifier}
}

// Respond records or updates a user's response to an event. A GOING
// response against a full event is rejected. The UNIQUE (event_id, user_id)
// constraint makes re-responding an in-place update.
func (s *RSVPService) Respond(eventID, userID string, status models.RSVPStatus) (models.RSVP, error) {
	var capacity int
	var organizerID, title string
	row := s.db.QueryRow("SELECT capacity, organizer_id, title FROM events WHERE id = ?", eventID)
	if err := row.Scan(&capacity, &organizerID, &title); err != nil {
		if err == sql.ErrNoRows {
			return models.RSVP{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		return models.RSVP{}, err
	}

	if status == models.RSVPGoing && capacity > 0 {
		var going int
		err := s.db.QueryRow(
			"SELECT COUNT(*) FROM rsvps WHERE event_id = ? AND status = 'GOING' AND user_id != ?",
			eventID, userID).Scan(&going)
		if err != nil {
			return models.RSVP{}, err
		}
		if going >= capacity {
			return models.RSVP{}, ErrEventFull
		}
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO rsvps (id, event_id, user_id, status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (event_id, user_id)
		DO UPDATE SET status = excluded.status, updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return models.RSVP{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(uuid.New().String(), eventID, userID, status); err != nil {
		return models.RSVP{}, err
	}

	if organizerID != userID {
		if err := s.notifier.Notify(organizerID, models.NotificationRSVPReceived,
			fmt.Sprintf("An attendee responded %s to '%s'.", status, title), &eventID); err != nil {
			log.Error().Err(err).Str("event_id", eventID).Msg("Failed to notify organizer of RSVP")
		}
	}

	return s.getByEventAndUser(eventID, userID)
}

// ListForEvent retrieves the responses for an event. Only the owning
// organizer or an admin may see the attendee list.
func (s *RSVPService) ListForEvent(eventID, callerID string, isAdmin bool) ([]models.RSVP, error) {
	var organizerID string
	row := s.db.QueryRow("SELECT organizer_id FROM events WHERE id = ?", eventID)
	if err := row.Scan(&organizerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		return nil, err
	}
	if organizerID != callerID && !isAdmin {
		return nil, ErrForbidden
	}

	rows, err := s.db.Query(`
		SELECT r.id, r.event_id, r.user_id, r.status, r.created_at, r.updated_at, u.email
		FROM rsvps r JOIN users u ON u.id = r.user_id
		WHERE r.event_id = ? ORDER BY r.created_at ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rsvps []models.RSVP
	for rows.Next() {
		var rsvp models.RSVP
		if err := rows.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.UserID, &rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt, &rsvp.UserEmail); err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}

// ListForUser retrieves all of a user's own responses.
func (s *RSVPService) ListForUser(userID string) ([]models.RSVP, error) {
	rows, err := s.db.Query(`
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM rsvps WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rsvps []models.RSVP
	for rows.Next() {
		var rsvp models.RSVP
		if err := rows.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.UserID, &rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt); err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}

// AttendeeIDs returns the user IDs of everyone who responded GOING or
// MAYBE to an event. Used by the reminder worker.
func (s *RSVPService) AttendeeIDs(eventID string) ([]string, error) {
	rows, err := s.db.Query("SELECT user_id FROM rsvps WHERE event_id = ? AND status IN ('GOING', 'MAYBE')", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *RSVPService) getByEventAndUser(eventID, userID string) (models.RSVP, error) {
	row := s.db.QueryRow(`
		SELECT id, event_id, user_id, status, created_at, updated_at
		FROM rsvps WHERE event_id = ? AND user_id = ?`, eventID, userID)
	var rsvp models.RSVP
	err := row.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.UserID, &rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.RSVP{}, fmt.Errorf("rsvp: %w", ErrNotFound)
		}
		return models.RSVP{}, err
	}
	return rsvp, nil
}
