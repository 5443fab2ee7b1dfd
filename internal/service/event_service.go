package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/campushub/eventline/internal/domain"
	"github.com/campushub/eventline/internal/repository"
)

// EventService coordinates event lifecycle operations made by organizers.
// Background status transitions are owned by StatusUpdater, not here.
type EventService struct {
	eventRepo *repository.EventRepository
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo *repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// CreateEventParams holds the fields for event creation.
type CreateEventParams struct {
	OrganizerID string
	Title       string
	Description string
	Location    string
	ScheduledAt time.Time
}

// CreateEvent creates an event in upcoming status.
func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (*domain.Event, error) {
	if params.ScheduledAt.IsZero() {
		return nil, domain.ErrInvalidSchedule
	}

	event, err := s.eventRepo.Create(ctx, &domain.Event{
		OrganizerID: params.OrganizerID,
		Title:       strings.TrimSpace(params.Title),
		Description: params.Description,
		Location:    params.Location,
		ScheduledAt: params.ScheduledAt,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("event created",
		"event_id", event.ID,
		"organizer_id", event.OrganizerID,
		"scheduled_at", event.ScheduledAt,
	)

	return event, nil
}

// UpdateEventParams holds the organizer-editable fields. Nil pointers leave
// the current value unchanged.
type UpdateEventParams struct {
	Title       *string
	Description *string
	Location    *string
	ScheduledAt *time.Time
}

// UpdateEvent edits an event's details. Only the owning organizer (or an
// admin) may edit; rescheduling is rejected once the event is completed or
// cancelled. The next reconciliation pass re-derives the status from the new
// scheduled time.
func (s *EventService) UpdateEvent(ctx context.Context, eventID string, actor *domain.User, params UpdateEventParams) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !event.IsOwnedBy(actor.ID) && actor.Role != domain.UserRoleAdmin {
		return nil, domain.ErrNotEventOwner
	}

	if params.ScheduledAt != nil && !event.IsReschedulable() {
		return nil, domain.ErrEventFinished
	}

	if params.Title != nil {
		event.Title = strings.TrimSpace(*params.Title)
	}
	if params.Description != nil {
		event.Description = *params.Description
	}
	if params.Location != nil {
		event.Location = *params.Location
	}
	if params.ScheduledAt != nil {
		event.ScheduledAt = *params.ScheduledAt
	}

	if err := s.eventRepo.UpdateDetails(ctx, event); err != nil {
		return nil, err
	}

	slog.Info("event updated", "event_id", event.ID, "actor_id", actor.ID)

	return event, nil
}

// CancelEvent cancels an upcoming or ongoing event. Cancelled is terminal:
// the status updater never touches the record again.
func (s *EventService) CancelEvent(ctx context.Context, eventID string, actor *domain.User) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	if !event.IsOwnedBy(actor.ID) && actor.Role != domain.UserRoleAdmin {
		return domain.ErrNotEventOwner
	}

	if err := s.eventRepo.Cancel(ctx, eventID); err != nil {
		return err
	}

	slog.Info("event cancelled", "event_id", eventID, "actor_id", actor.ID)

	return nil
}
