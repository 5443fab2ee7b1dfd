package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/campushub/eventline/internal/domain"
	"github.com/robfig/cron/v3"
)

const (
	// CompletionGrace is how long after its scheduled start an event stays
	// ongoing before it is considered finished.
	CompletionGrace = 30 * time.Minute

	// StalenessThreshold is the minimum age of last_status_update before a
	// record is reconsidered for reconciliation. Purely a throughput
	// optimization against back-to-back passes rewriting fresh records.
	StalenessThreshold = 5 * time.Minute

	// startupUpdateDelay is how long after Start the catch-up pass runs,
	// to pick up drift accumulated while the process was down.
	startupUpdateDelay = 10 * time.Second
)

// EventStatusStore is the persistence surface the status updater needs.
// Implemented by repository.EventRepository.
type EventStatusStore interface {
	FindStatusCandidates(ctx context.Context, staleBefore time.Time) ([]*domain.Event, error)
	UpdateStatusFields(ctx context.Context, eventID string, fields domain.EventStatusFields) error
	CountByStatus(ctx context.Context) (map[domain.EventStatus]int, error)
}

// StatusUpdaterConfig configures the recurring reconciliation.
type StatusUpdaterConfig struct {
	// UpdateInterval is the spacing between automatic passes. Must be at
	// least one minute.
	UpdateInterval time.Duration

	// Enabled controls whether the recurring timer is registered. Manual
	// triggers work either way.
	Enabled bool
}

// UpdateSummary reports the outcome of one reconciliation pass.
type UpdateSummary struct {
	Scanned        int
	Updated        int
	Failed         int
	Transitions    map[domain.EventStatus]int
	CountsByStatus map[domain.EventStatus]int
	RanAt          time.Time
}

// UpdaterStatus is the read-only introspection view of the updater.
type UpdaterStatus struct {
	IsRunning      bool
	Enabled        bool
	UpdateInterval time.Duration
	LastRun        *time.Time
	NextRun        *time.Time
}

// StatusUpdater keeps every non-cancelled event's status consistent with
// wall-clock time. One instance is constructed at startup and shared by the
// timer, the admin endpoints and the CLI trigger.
type StatusUpdater struct {
	store EventStatusStore
	cfg   StatusUpdaterConfig

	mu      sync.Mutex
	running bool
	lastRun *time.Time

	c       *cron.Cron
	entryID cron.EntryID
}

// NewStatusUpdater creates a StatusUpdater. Start must be called to register
// the recurring timer.
func NewStatusUpdater(store EventStatusStore, cfg StatusUpdaterConfig) *StatusUpdater {
	return &StatusUpdater{store: store, cfg: cfg}
}

// TargetStatus computes the correct status for an event at the given instant.
// Cancelled is terminal: the current status is returned unchanged.
func TargetStatus(now time.Time, scheduledAt time.Time, current domain.EventStatus) domain.EventStatus {
	if current == domain.EventStatusCancelled {
		return current
	}
	if scheduledAt.After(now) {
		return domain.EventStatusUpcoming
	}
	if now.Sub(scheduledAt) < CompletionGrace {
		return domain.EventStatusOngoing
	}
	return domain.EventStatusCompleted
}

// Start validates the configuration and registers the recurring timer plus a
// one-shot catch-up pass shortly after boot. When the updater is disabled no
// timer is registered; manual triggers still work.
func (u *StatusUpdater) Start(ctx context.Context) error {
	if u.cfg.UpdateInterval < time.Minute {
		return fmt.Errorf("status updater interval %s is below the 1m minimum", u.cfg.UpdateInterval)
	}

	if !u.cfg.Enabled {
		slog.Info("status updater disabled, automatic passes will not run")
		return nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.c != nil {
		return nil
	}

	u.c = cron.New()
	entryID, err := u.c.AddFunc(fmt.Sprintf("@every %s", u.cfg.UpdateInterval), func() {
		u.runScheduled(ctx)
	})
	if err != nil {
		u.c = nil
		return fmt.Errorf("register status update schedule: %w", err)
	}
	u.entryID = entryID
	u.c.Start()

	time.AfterFunc(startupUpdateDelay, func() {
		u.runScheduled(ctx)
	})

	slog.Info("status updater started", "interval", u.cfg.UpdateInterval.String())
	return nil
}

// Stop stops the recurring timer and waits for an in-flight pass to finish.
// The wait happens outside the mutex: a running pass needs it for its own
// cleanup.
func (u *StatusUpdater) Stop() {
	u.mu.Lock()
	c := u.c
	u.c = nil
	u.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	slog.Info("status updater stopped")
}

// runScheduled is the timer callback. A pass already in flight is not an
// error here: the overlapping tick is simply skipped.
func (u *StatusUpdater) runScheduled(ctx context.Context) {
	summary, err := u.TriggerUpdate(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUpdateInProgress) {
			slog.Debug("status update tick skipped, pass already running")
			return
		}
		slog.Error("scheduled status update failed", "error", err)
		return
	}
	if summary.Updated > 0 || summary.Failed > 0 {
		slog.Info("scheduled status update completed",
			"scanned", summary.Scanned,
			"updated", summary.Updated,
			"failed", summary.Failed,
		)
	}
}

// TriggerUpdate runs one reconciliation pass immediately. If a pass is
// already in flight it returns domain.ErrUpdateInProgress instead of starting
// a second overlapping pass.
func (u *StatusUpdater) TriggerUpdate(ctx context.Context) (*UpdateSummary, error) {
	u.mu.Lock()
	if u.running {
		u.mu.Unlock()
		return nil, domain.ErrUpdateInProgress
	}
	u.running = true
	u.mu.Unlock()

	now := time.Now()
	defer func() {
		u.mu.Lock()
		u.running = false
		u.lastRun = &now
		u.mu.Unlock()
	}()

	return u.runPass(ctx, now)
}

// runPass scans candidates and applies the transition rule to each record
// independently. Per-record failures are counted and skipped; only a failed
// candidate query aborts the pass.
func (u *StatusUpdater) runPass(ctx context.Context, now time.Time) (*UpdateSummary, error) {
	summary := &UpdateSummary{
		Transitions: make(map[domain.EventStatus]int),
		RanAt:       now,
	}

	candidates, err := u.store.FindStatusCandidates(ctx, now.Add(-StalenessThreshold))
	if err != nil {
		return nil, fmt.Errorf("find status candidates: %w", err)
	}
	summary.Scanned = len(candidates)

	for _, event := range candidates {
		target := TargetStatus(now, event.ScheduledAt, event.Status)
		if target == event.Status {
			continue
		}

		fields := domain.EventStatusFields{
			Status:            target,
			LastStatusUpdate:  now,
			StatusUpdateCount: event.StatusUpdateCount + 1,
		}
		if target == domain.EventStatusCompleted {
			completedAt := now
			fields.CompletedAt = &completedAt
		}

		if err := u.store.UpdateStatusFields(ctx, event.ID, fields); err != nil {
			slog.Error("failed to update event status",
				"event_id", event.ID,
				"target_status", target,
				"error", err,
			)
			summary.Failed++
			continue
		}

		summary.Updated++
		summary.Transitions[target]++
	}

	counts, err := u.store.CountByStatus(ctx)
	if err != nil {
		// The pass itself succeeded; report it without the totals.
		slog.Error("failed to count events by status", "error", err)
	} else {
		summary.CountsByStatus = counts
	}

	slog.Info("status reconciliation pass finished",
		"scanned", summary.Scanned,
		"updated", summary.Updated,
		"failed", summary.Failed,
	)

	return summary, nil
}

// Status returns the current updater state. Side-effect free.
func (u *StatusUpdater) Status() UpdaterStatus {
	u.mu.Lock()
	defer u.mu.Unlock()

	status := UpdaterStatus{
		IsRunning:      u.running,
		Enabled:        u.cfg.Enabled,
		UpdateInterval: u.cfg.UpdateInterval,
		LastRun:        u.lastRun,
	}
	if u.c != nil {
		next := u.c.Entry(u.entryID).Next
		if !next.IsZero() {
			status.NextRun = &next
		}
	}
	return status
}
