package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prasetyarht/timesheet-management/internal/core/events"
	"github.com/prasetyarht/timesheet-management/internal/timesheet"
)

// RecipientSource lists users who still have a draft timesheet for the
// current week.
type RecipientSource interface {
	DraftTimesheetOwners() ([]timesheet.ReminderRecipient, error)
}

type Service struct {
	notifier Notifier
	source   RecipientSource
	logger   *slog.Logger
}

func NewService(notifier Notifier, source RecipientSource, logger *slog.Logger) *Service {
	return &Service{
		notifier: notifier,
		source:   source,
		logger:   logger,
	}
}

// SendWeeklyReminders nudges everyone whose current-week timesheet is
// still in Draft. Errors on individual sends are logged and skipped so
// one bad address does not starve the rest.
func (s *Service) SendWeeklyReminders(ctx context.Context) (int, error) {
	recipients, err := s.source.DraftTimesheetOwners()
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range recipients {
		msg := Message{
			Recipient: r.Email,
			Subject:   "Timesheet reminder",
			Body:      fmt.Sprintf("Hi %s, your timesheet for this week has not been submitted yet.", r.FullName),
		}
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.logger.Error("failed to send reminder", "recipient", r.Email, "error", err)
			continue
		}
		sent++
	}

	s.logger.Info("weekly reminders dispatched", "recipients", len(recipients), "sent", sent)
	return sent, nil
}

// RegisterEventHandlers subscribes the workflow events that should reach
// users: submission confirmations and review outcomes.
func (s *Service) RegisterEventHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeTimesheetSubmitted, s.handleSubmitted)
	bus.Subscribe(events.EventTypeTimesheetApproved, s.handleReviewed)
	bus.Subscribe(events.EventTypeTimesheetRejected, s.handleReviewed)
	bus.Subscribe(events.EventTypeTimesheetCancelled, s.handleCancelled)
}

func (s *Service) handleSubmitted(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.TimesheetSubmittedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}
	return s.notifier.Notify(ctx, Message{
		Recipient: e.OwnerCode,
		Subject:   "Timesheet submitted",
		Body:      fmt.Sprintf("Timesheet %s was submitted with %d entries.", e.TimesheetCode, e.EntryCount),
	})
}

func (s *Service) handleReviewed(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.TimesheetReviewedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}

	outcome := "approved"
	if event.EventType() == events.EventTypeTimesheetRejected {
		outcome = "rejected"
	}

	body := fmt.Sprintf("Entry %s on timesheet %s was %s.", e.EntryCode, e.TimesheetCode, outcome)
	if e.Comment != "" {
		body += " Comment: " + e.Comment
	}
	return s.notifier.Notify(ctx, Message{
		Recipient: e.OwnerCode,
		Subject:   "Timesheet " + outcome,
		Body:      body,
	})
}

func (s *Service) handleCancelled(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.TimesheetCancelledEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", event.EventType())
	}
	return s.notifier.Notify(ctx, Message{
		Recipient: e.OwnerCode,
		Subject:   "Timesheet recalled",
		Body:      fmt.Sprintf("Timesheet %s was recalled to draft.", e.TimesheetCode),
	})
}
