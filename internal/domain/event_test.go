package domain_test

import (
	"testing"
	"time"

	"github.com/campushub/eventline/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEventStatus_IsValid(t *testing.T) {
	assert.True(t, domain.EventStatusUpcoming.IsValid())
	assert.True(t, domain.EventStatusOngoing.IsValid())
	assert.True(t, domain.EventStatusCompleted.IsValid())
	assert.True(t, domain.EventStatusCancelled.IsValid())
	assert.False(t, domain.EventStatus("archived").IsValid())
}

func TestEventStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.EventStatusCancelled.IsTerminal())
	assert.False(t, domain.EventStatusCompleted.IsTerminal())
	assert.False(t, domain.EventStatusUpcoming.IsTerminal())
}

func TestEvent_IsReschedulable(t *testing.T) {
	event := &domain.Event{Status: domain.EventStatusUpcoming}
	assert.True(t, event.IsReschedulable())

	event.Status = domain.EventStatusOngoing
	assert.True(t, event.IsReschedulable())

	event.Status = domain.EventStatusCompleted
	assert.False(t, event.IsReschedulable())

	event.Status = domain.EventStatusCancelled
	assert.False(t, event.IsReschedulable())
}

func TestUserRole_CanManageEvents(t *testing.T) {
	assert.False(t, domain.UserRoleParticipant.CanManageEvents())
	assert.True(t, domain.UserRoleOrganizer.CanManageEvents())
	assert.True(t, domain.UserRoleAdmin.CanManageEvents())
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	session := &domain.Session{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, session.IsExpired(now))
	assert.True(t, session.IsExpired(now.Add(2*time.Hour)))
}
