package services

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NotificationPusher delivers a payload to a connected user in real time.
// The websocket hub implements it; tests substitute their own.
type NotificationPusher interface {
	SendToUser(userID string, message []byte)
}

// NotificationServiceProvider defines the interface for notification services.
type NotificationServiceProvider interface {
	Notify(userID, notifType, message string, eventID *string) error
	ListForUser(userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) error
}

// NotificationService persists notifications and pushes them to connected
// clients.
type NotificationService struct {
	db     *sql.DB
	pusher NotificationPusher
}

// NewNotificationService creates a new NotificationService. The pusher may
// be nil when real-time delivery is not wanted.
func NewNotificationService(db *sql.DB, pusher NotificationPusher) *NotificationService {
	return &NotificationService{db: db, pusher: pusher}
}

// Notify stores a notification for a user and pushes it to their open
// websocket connections, if any.
func (s *NotificationService) Notify(userID, notifType, message string, eventID *string) error {
	notification := models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Type:    notifType,
		Message: message,
		EventID: eventID,
	}

	stmt, err := s.db.Prepare("INSERT INTO notifications (id, user_id, type, message, event_id) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(notification.ID, notification.UserID, notification.Type, notification.Message, notification.EventID); err != nil {
		return err
	}

	if s.pusher != nil {
		payload, err := json.Marshal(map[string]interface{}{
			"action":  "notification",
			"payload": notification,
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to encode notification for push")
			return nil
		}
		s.pusher.SendToUser(userID, payload)
	}
	return nil
}

// ListForUser retrieves a user's notifications, newest first.
func (s *NotificationService) ListForUser(userID string, unreadOnly bool) ([]models.Notification, error) {
	query := "SELECT id, user_id, type, message, event_id, read, created_at FROM notifications WHERE user_id = ?"
	if unreadOnly {
		query += " AND read = 0"
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.EventID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead marks a single notification as read. The user scoping prevents
// marking someone else's notification.
func (s *NotificationService) MarkRead(userID, notificationID string) error {
	res, err := s.db.Exec("UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?", notificationID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
	}
	return nil
}

// MarkAllRead marks all of a user's notifications as read.
func (s *NotificationService) MarkAllRead(userID string) error {
	_, err := s.db.Exec("UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0", userID)
	return err
}
