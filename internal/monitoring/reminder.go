package monitoring

import (
	"fmt"
	"time"

	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/gatherly/gatherly-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Reminder periodically finds events starting soon and creates one
// reminder notification per GOING/MAYBE attendee. An event is reminded at
// most once (events.reminder_sent).
type Reminder struct {
	eventSvc services.EventServiceProvider
	rsvpSvc  services.RSVPServiceProvider
	notifier services.NotificationServiceProvider
	window   time.Duration
	schedule cron.Schedule
	done     chan bool
}

// NewReminder creates a reminder worker. cronSpec controls the check
// cadence; window is how far ahead an event must start to trigger a
// reminder.
func NewReminder(eventSvc services.EventServiceProvider, rsvpSvc services.RSVPServiceProvider, notifier services.NotificationServiceProvider, cronSpec string, window time.Duration) (*Reminder, error) {
	schedule, err := cron.ParseStandard(cronSpec)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder cron expression: %w", err)
	}
	return &Reminder{
		eventSvc: eventSvc,
		rsvpSvc:  rsvpSvc,
		notifier: notifier,
		window:   window,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the reminder loop. It blocks until Stop is called.
func (r *Reminder) Run() {
	log.Info().Dur("window", r.window).Msg("Starting background reminder worker...")

	// Run once immediately on start
	r.sendDueReminders()

	for {
		timer := time.NewTimer(time.Until(r.schedule.Next(time.Now())))
		select {
		case <-r.done:
			timer.Stop()
			log.Info().Msg("Stopping background reminder worker.")
			return
		case <-timer.C:
			r.sendDueReminders()
		}
	}
}

// Stop halts the reminder loop.
func (r *Reminder) Stop() {
	r.done <- true
}

// sendDueReminders finds events inside the reminder window and notifies
// their attendees.
func (r *Reminder) sendDueReminders() {
	events, err := r.eventSvc.UpcomingUnreminded(r.window)
	if err != nil {
		log.Error().Err(err).Msg("Reminder: failed to query upcoming events")
		return
	}

	for _, event := range events {
		attendees, err := r.rsvpSvc.AttendeeIDs(event.ID)
		if err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("Reminder: failed to query attendees")
			continue
		}

		message := fmt.Sprintf("Reminder: '%s' starts at %s.", event.Title, event.StartsAt.Format(time.RFC1123))
		for _, userID := range attendees {
			eventID := event.ID
			if err := r.notifier.Notify(userID, models.NotificationEventReminder, message, &eventID); err != nil {
				log.Error().Err(err).Str("user_id", userID).Str("event_id", event.ID).Msg("Reminder: failed to create notification")
			}
		}

		if err := r.eventSvc.MarkReminderSent(event.ID); err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("Reminder: failed to mark event reminded")
			continue
		}
		log.Info().Str("event_id", event.ID).Int("attendees", len(attendees)).Msg("Reminder: notified attendees of upcoming event")
	}
}
