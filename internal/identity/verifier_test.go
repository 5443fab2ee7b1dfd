package identity_test

import (
	"context"
	"testing"

	"github.com/campushub/eventline/internal/domain"
	"github.com/campushub/eventline/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsecureVerifier_Verify(t *testing.T) {
	v := identity.NewInsecureVerifier()

	claims, err := v.Verify(context.Background(), "campus-sso", "u-42:ada@uni.edu:Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "u-42", claims.ProviderID)
	assert.Equal(t, "ada@uni.edu", claims.Email)
	assert.Equal(t, "Ada Lovelace", claims.FullName)
}

func TestInsecureVerifier_RejectsMalformedTokens(t *testing.T) {
	v := identity.NewInsecureVerifier()

	for _, token := range []string{"", "u-42", "u-42:ada@uni.edu", ":ada@uni.edu:Ada"} {
		_, err := v.Verify(context.Background(), "campus-sso", token)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "token %q", token)
	}

	_, err := v.Verify(context.Background(), "", "u-42:ada@uni.edu:Ada")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
