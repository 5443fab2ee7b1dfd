package service

import (
	"context"
	"testing"
	"time"

	"github.com/campushub/eventline/internal/domain"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedStore blocks every candidate read until the gate is released.
type gatedStore struct {
	gate chan struct{}
}

func (s *gatedStore) FindStatusCandidates(context.Context, time.Time) ([]*domain.Event, error) {
	<-s.gate
	return nil, nil
}

func (s *gatedStore) UpdateStatusFields(context.Context, string, domain.EventStatusFields) error {
	return nil
}

func (s *gatedStore) CountByStatus(context.Context) (map[domain.EventStatus]int, error) {
	return map[domain.EventStatus]int{}, nil
}

func TestStop_ReturnsWhileCronPassInFlight(t *testing.T) {
	store := &gatedStore{gate: make(chan struct{})}
	updater := NewStatusUpdater(store, StatusUpdaterConfig{
		UpdateInterval: 5 * time.Minute,
		Enabled:        true,
	})

	// Wire the timer directly with a sub-minute spec so a tick fires within
	// the test instead of waiting out the production minimum interval.
	ctx := context.Background()
	updater.c = cron.New()
	entryID, err := updater.c.AddFunc("@every 1s", func() { updater.runScheduled(ctx) })
	require.NoError(t, err)
	updater.entryID = entryID
	updater.c.Start()

	// Wait until a cron-driven pass is held open inside the store read.
	require.Eventually(t, func() bool {
		return updater.Status().IsRunning
	}, 3*time.Second, 10*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		updater.Stop()
		close(stopped)
	}()

	// Stop must reach its wait while the pass is still blocked, then come
	// back once the pass is released and runs its cleanup.
	time.Sleep(50 * time.Millisecond)
	close(store.gate)

	select {
	case <-stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return after the in-flight pass finished")
	}

	assert.False(t, updater.Status().IsRunning)
	assert.Nil(t, updater.Status().NextRun)
}
