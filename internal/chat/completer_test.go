package chat_test

import (
	"context"
	"testing"

	"github.com/campushub/eventline/internal/chat"
	"github.com/campushub/eventline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticCompleter_AnswersByTopic(t *testing.T) {
	c := chat.NewStaticCompleter()

	tests := []struct {
		question string
		contains string
	}{
		{"How do I get my certificate?", "organizer"},
		{"Can I still enroll?", "upcoming event"},
		{"What happens if an event is cancelled?", "Cancelled events"},
		{"Hello there", "events, enrollment and certificates"},
	}

	for _, tt := range tests {
		reply, err := c.Complete(context.Background(), []*domain.ChatMessage{
			{Role: domain.ChatRoleUser, Content: tt.question},
		})
		require.NoError(t, err)
		assert.Contains(t, reply, tt.contains, "question %q", tt.question)
	}
}

func TestStaticCompleter_EmptyHistory(t *testing.T) {
	c := chat.NewStaticCompleter()

	reply, err := c.Complete(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}
