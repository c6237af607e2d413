package services

import (
	"database/sql"
	"testing"

	"github.com/gatherly/gatherly-be/internal/database"
	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated in-memory database. A single connection keeps
// every query on the same in-memory instance.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

// recordedNotification captures a Notify call on the fake notifier.
type recordedNotification struct {
	UserID  string
	Type    string
	Message string
	EventID *string
}

// fakeNotifier is a NotificationServiceProvider test double that records
// Notify calls.
type fakeNotifier struct {
	sent []recordedNotification
}

func (f *fakeNotifier) Notify(userID, notifType, message string, eventID *string) error {
	f.sent = append(f.sent, recordedNotification{UserID: userID, Type: notifType, Message: message, EventID: eventID})
	return nil
}

func (f *fakeNotifier) ListForUser(string, bool) ([]models.Notification, error) { return nil, nil }
func (f *fakeNotifier) MarkRead(string, string) error                           { return nil }
func (f *fakeNotifier) MarkAllRead(string) error                                { return nil }

func (f *fakeNotifier) sentTo(userID string) []recordedNotification {
	var out []recordedNotification
	for _, n := range f.sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
