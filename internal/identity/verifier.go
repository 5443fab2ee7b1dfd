// Package identity abstracts federated identity providers. The real provider
// integration lives outside this service; handlers only ever see the Verifier
// interface.
package identity

import (
	"context"
	"strings"

	"github.com/campushub/eventline/internal/domain"
)

// Claims is the identity asserted by a provider for a verified token.
type Claims struct {
	ProviderID string
	Email      string
	FullName   string
}

// Verifier validates a provider-issued token and returns the identity it
// asserts.
type Verifier interface {
	Verify(ctx context.Context, provider, token string) (*Claims, error)
}

// insecureVerifier accepts tokens of the form "id:email:name" without any
// provider round-trip. Development and test wiring only.
type insecureVerifier struct{}

var _ Verifier = (*insecureVerifier)(nil)

// NewInsecureVerifier returns the development Verifier.
func NewInsecureVerifier() Verifier {
	return &insecureVerifier{}
}

func (v *insecureVerifier) Verify(_ context.Context, provider, token string) (*Claims, error) {
	parts := strings.SplitN(token, ":", 3)
	if provider == "" || len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return &Claims{
		ProviderID: parts[0],
		Email:      parts[1],
		FullName:   parts[2],
	}, nil
}
