package services

import (
	"testing"
	"time"

	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, svc *UserService, email string, role models.Role) models.User {
	t.Helper()
	user, err := svc.Signup(email, "secret123", role)
	require.NoError(t, err)
	return user
}

func TestEventCRUD(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	users := NewUserService(db, notifier)
	events := NewEventService(db, notifier)

	organizer := seedUser(t, users, "org@x.com", models.RoleOrganizer)

	created, err := events.CreateEvent(models.Event{
		Title:       "Go Meetup",
		Description: "Monthly meetup",
		Location:    "Room 4",
		StartsAt:    time.Now().Add(48 * time.Hour),
		Capacity:    10,
		OrganizerID: organizer.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, organizer.ID, created.OrganizerID)
	assert.Equal(t, 0, created.GoingCount)

	got, err := events.GetEventByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Meetup", got.Title)

	list, err := events.ListEvents()
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := events.UpdateEvent(created.ID, organizer.ID, false, models.Event{
		Title:    "Go Meetup (moved)",
		Location: "Room 5",
		StartsAt: created.StartsAt,
		Capacity: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "Go Meetup (moved)", updated.Title)
	assert.Equal(t, 20, updated.Capacity)

	require.NoError(t, events.DeleteEvent(created.ID, organizer.ID, false))
	_, err = events.GetEventByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	users := NewUserService(db, notifier)
	events := NewEventService(db, notifier)

	owner := seedUser(t, users, "owner@x.com", models.RoleOrganizer)
	other := seedUser(t, users, "other@x.com", models.RoleOrganizer)

	event, err := events.CreateEvent(models.Event{
		Title:       "Private planning",
		StartsAt:    time.Now().Add(24 * time.Hour),
		OrganizerID: owner.ID,
	})
	require.NoError(t, err)

	_, err = events.UpdateEvent(event.ID, other.ID, false, models.Event{Title: "Hijacked", StartsAt: event.StartsAt})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, events.DeleteEvent(event.ID, other.ID, false), ErrForbidden)

	// An admin may act on any event.
	_, err = events.UpdateEvent(event.ID, other.ID, true, models.Event{Title: "Renamed by admin", StartsAt: event.StartsAt})
	assert.NoError(t, err)
}

func TestEventMutationsNotifyAttendees(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	users := NewUserService(db, notifier)
	events := NewEventService(db, notifier)
	rsvps := NewRSVPService(db, notifier)

	organizer := seedUser(t, users, "org@x.com", models.RoleOrganizer)
	going := seedUser(t, users, "going@x.com", models.RoleAttendee)
	declined := seedUser(t, users, "declined@x.com", models.RoleAttendee)

	event, err := events.CreateEvent(models.Event{
		Title:       "Launch party",
		StartsAt:    time.Now().Add(24 * time.Hour),
		OrganizerID: organizer.ID,
	})
	require.NoError(t, err)

	_, err = rsvps.Respond(event.ID, going.ID, models.RSVPGoing)
	require.NoError(t, err)
	_, err = rsvps.Respond(event.ID, declined.ID, models.RSVPDeclined)
	require.NoError(t, err)

	_, err = events.UpdateEvent(event.ID, organizer.ID, false, models.Event{Title: "Launch party", StartsAt: event.StartsAt})
	require.NoError(t, err)

	updates := notifier.sentTo(going.ID)
	require.NotEmpty(t, updates)
	assert.Equal(t, models.NotificationEventUpdated, updates[len(updates)-1].Type)

	// DECLINED attendees are not notified of updates.
	for _, n := range notifier.sentTo(declined.ID) {
		assert.NotEqual(t, models.NotificationEventUpdated, n.Type)
	}

	require.NoError(t, events.DeleteEvent(event.ID, organizer.ID, false))
	canceled := notifier.sentTo(going.ID)
	assert.Equal(t, models.NotificationEventCanceled, canceled[len(canceled)-1].Type)
}

func TestUpcomingUnreminded(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	users := NewUserService(db, notifier)
	events := NewEventService(db, notifier)

	organizer := seedUser(t, users, "org@x.com", models.RoleOrganizer)

	soon, err := events.CreateEvent(models.Event{
		Title:       "Starts soon",
		StartsAt:    time.Now().Add(2 * time.Hour),
		OrganizerID: organizer.ID,
	})
	require.NoError(t, err)

	_, err = events.CreateEvent(models.Event{
		Title:       "Starts next month",
		StartsAt:    time.Now().Add(30 * 24 * time.Hour),
		OrganizerID: organizer.ID,
	})
	require.NoError(t, err)

	due, err := events.UpcomingUnreminded(24 * time.Hour)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, soon.ID, due[0].ID)

	require.NoError(t, events.MarkReminderSent(soon.ID))
	due, err = events.UpcomingUnreminded(24 * time.Hour)
	require.NoError(t, err)
	assert.Empty(t, due)
}
