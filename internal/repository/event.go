package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/campushub/eventline/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// eventColumns is the shared list of columns for event queries.
var eventColumns = []string{
	"id", "organizer_id", "title", "description", "location", "scheduled_at",
	"status", "completed_at", "last_status_update", "status_update_count",
	"created_at", "updated_at",
}

// EventRepository handles database operations for events.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// scanEvent scans a single row into an Event struct.
func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	err := row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.ScheduledAt,
		&event.Status,
		&event.CompletedAt,
		&event.LastStatusUpdate,
		&event.StatusUpdateCount,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &event, nil
}

// scanEvents scans multiple rows into a slice of Event structs.
func scanEvents(rows pgx.Rows) ([]*domain.Event, error) {
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return events, nil
}

// GetByID retrieves an event by ID.
func (r *EventRepository) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	query, args, err := psql.
		Select(eventColumns...).
		From("events").
		Where(sq.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for event: %w", err)
	}

	return scanEvent(r.pool.QueryRow(ctx, query, args...))
}

// Create creates a new event. The returned event has ID, CreatedAt and
// UpdatedAt populated; status always starts as upcoming.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	event.Status = domain.EventStatusUpcoming

	query, args, err := psql.
		Insert("events").
		Columns("organizer_id", "title", "description", "location", "scheduled_at", "status").
		Values(
			event.OrganizerID,
			event.Title,
			event.Description,
			event.Location,
			event.ScheduledAt,
			event.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for event: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return event, nil
}

// UpdateDetails updates the organizer-editable fields of an event.
func (r *EventRepository) UpdateDetails(ctx context.Context, event *domain.Event) error {
	query, args, err := psql.
		Update("events").
		Set("title", event.Title).
		Set("description", event.Description).
		Set("location", event.Location).
		Set("scheduled_at", event.ScheduledAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": event.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateDetails query for event %s: %w", event.ID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event details: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}

	return nil
}

// Cancel marks an event as cancelled. Guarded on the current status so a
// concurrently completed event is not cancelled underneath its certificate
// issuance.
func (r *EventRepository) Cancel(ctx context.Context, eventID string) error {
	query, args, err := psql.
		Update("events").
		Set("status", domain.EventStatusCancelled).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id": eventID,
			"status": []domain.EventStatus{
				domain.EventStatusUpcoming,
				domain.EventStatusOngoing,
			},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Cancel query for event %s: %w", eventID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("cancel event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventFinished
	}

	return nil
}

// FindStatusCandidates finds non-cancelled events whose status may be stale:
// never reconciled, or not reconciled since staleBefore.
func (r *EventRepository) FindStatusCandidates(ctx context.Context, staleBefore time.Time) ([]*domain.Event, error) {
	query, args, err := psql.
		Select(eventColumns...).
		From("events").
		Where(sq.NotEq{"status": domain.EventStatusCancelled}).
		Where(sq.Or{
			sq.Eq{"last_status_update": nil},
			sq.Lt{"last_status_update": staleBefore},
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build FindStatusCandidates query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query status candidates: %w", err)
	}

	return scanEvents(rows)
}

// UpdateStatusFields persists a status transition for a single event. The
// cancelled guard is repeated here so a cancellation racing the pass between
// its read and this write can never be overwritten.
func (r *EventRepository) UpdateStatusFields(ctx context.Context, eventID string, fields domain.EventStatusFields) error {
	query, args, err := psql.
		Update("events").
		Set("status", fields.Status).
		Set("completed_at", fields.CompletedAt).
		Set("last_status_update", fields.LastStatusUpdate).
		Set("status_update_count", fields.StatusUpdateCount).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": eventID}).
		Where(sq.NotEq{"status": domain.EventStatusCancelled}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build UpdateStatusFields query for event %s: %w", eventID, err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update event status fields: %w", err)
	}

	return nil
}

// CountByStatus returns the number of events per status.
func (r *EventRepository) CountByStatus(ctx context.Context) (map[domain.EventStatus]int, error) {
	query, args, err := psql.
		Select("status", "COUNT(*)").
		From("events").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build CountByStatus query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.EventStatus]int)
	for rows.Next() {
		var status domain.EventStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status rows: %w", err)
	}

	return counts, nil
}
