// Package chat abstracts the assistant's completion provider. The actual
// LLM integration lives outside this service; the chat service only ever
// sees the Completer interface.
package chat

import (
	"context"
	"strings"

	"github.com/campushub/eventline/internal/domain"
)

// Completer produces an assistant reply for a conversation history. The last
// message is the user's current question.
type Completer interface {
	Complete(ctx context.Context, history []*domain.ChatMessage) (string, error)
}

// staticCompleter answers from a small set of canned responses. Wired when no
// provider is configured so the endpoint stays functional in development.
type staticCompleter struct{}

var _ Completer = (*staticCompleter)(nil)

// NewStaticCompleter returns the fallback Completer.
func NewStaticCompleter() Completer {
	return &staticCompleter{}
}

func (c *staticCompleter) Complete(_ context.Context, history []*domain.ChatMessage) (string, error) {
	if len(history) == 0 {
		return "Hi! Ask me about events, enrollment or certificates.", nil
	}

	question := strings.ToLower(history[len(history)-1].Content)
	switch {
	case strings.Contains(question, "certificate"):
		return "Certificates are issued by the event organizer after an event completes. Check your profile once the event is marked completed.", nil
	case strings.Contains(question, "enroll"):
		return "You can enroll in any upcoming event from its detail page.", nil
	case strings.Contains(question, "cancel"):
		return "Cancelled events stay cancelled; enrolled participants are notified by the organizer.", nil
	default:
		return "I can help with questions about events, enrollment and certificates.", nil
	}
}
