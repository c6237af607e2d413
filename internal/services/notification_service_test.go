package services

import (
	"encoding/json"
	"testing"

	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePusher records real-time pushes.
type fakePusher struct {
	userIDs  []string
	payloads [][]byte
}

func (f *fakePusher) SendToUser(userID string, message []byte) {
	f.userIDs = append(f.userIDs, userID)
	f.payloads = append(f.payloads, message)
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	db := newTestDB(t)
	pusher := &fakePusher{}
	svc := NewNotificationService(db, pusher)

	eventID := "event-1"
	require.NoError(t, svc.Notify("user-1", models.NotificationEventReminder, "Starts soon", &eventID))

	stored, err := svc.ListForUser("user-1", false)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, models.NotificationEventReminder, stored[0].Type)
	assert.Equal(t, "Starts soon", stored[0].Message)
	require.NotNil(t, stored[0].EventID)
	assert.Equal(t, eventID, *stored[0].EventID)
	assert.False(t, stored[0].Read)

	require.Len(t, pusher.userIDs, 1)
	assert.Equal(t, "user-1", pusher.userIDs[0])

	var pushed struct {
		Action  string              `json:"action"`
		Payload models.Notification `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(pusher.payloads[0], &pushed))
	assert.Equal(t, "notification", pushed.Action)
	assert.Equal(t, stored[0].ID, pushed.Payload.ID)
}

func TestNotifyWithoutPusher(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	require.NoError(t, svc.Notify("user-1", models.NotificationWelcome, "Welcome", nil))

	stored, err := svc.ListForUser("user-1", false)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestUnreadFilterAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	require.NoError(t, svc.Notify("user-1", models.NotificationWelcome, "first", nil))
	require.NoError(t, svc.Notify("user-1", models.NotificationWelcome, "second", nil))
	require.NoError(t, svc.Notify("user-2", models.NotificationWelcome, "other user", nil))

	unread, err := svc.ListForUser("user-1", true)
	require.NoError(t, err)
	require.Len(t, unread, 2)

	require.NoError(t, svc.MarkRead("user-1", unread[0].ID))

	unread, err = svc.ListForUser("user-1", true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	all, err := svc.ListForUser("user-1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMarkReadScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	require.NoError(t, svc.Notify("user-1", models.NotificationWelcome, "mine", nil))
	mine, err := svc.ListForUser("user-1", false)
	require.NoError(t, err)

	// Another user cannot mark it read.
	assert.ErrorIs(t, svc.MarkRead("user-2", mine[0].ID), ErrNotFound)
	assert.ErrorIs(t, svc.MarkRead("user-1", "no-such-id"), ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	require.NoError(t, svc.Notify("user-1", models.NotificationWelcome, "first", nil))
	require.NoError(t, svc.Notify("user-1", models.NotificationWelcome, "second", nil))

	require.NoError(t, svc.MarkAllRead("user-1"))

	unread, err := svc.ListForUser("user-1", true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}
