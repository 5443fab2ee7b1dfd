package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/campushub/eventline/internal/domain"
	"github.com/campushub/eventline/internal/repository"
)

type contextKey string

const (
	// ContextKeyUser is the key for storing the authenticated user in the
	// request context.
	ContextKeyUser contextKey = "user"
)

// AuthMiddleware handles Bearer session-token authentication.
type AuthMiddleware struct {
	userRepo *repository.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(userRepo *repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
	}
}

// Authenticate validates the Bearer token and adds the user to the request
// context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		user, err := m.userRepo.GetUserByToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidToken):
				http.Error(w, "invalid token", http.StatusUnauthorized)
			case errors.Is(err, domain.ErrSessionExpired):
				http.Error(w, "session expired", http.StatusUnauthorized)
			default:
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole wraps Authenticate and additionally rejects users whose role is
// not one of the allowed ones.
func (m *AuthMiddleware) RequireRole(next http.Handler, roles ...domain.UserRole) http.Handler {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := GetUserFromContext(r.Context())
		if err != nil {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}

		for _, role := range roles {
			if user.Role == role {
				next.ServeHTTP(w, r)
				return
			}
		}

		http.Error(w, "insufficient role", http.StatusForbidden)
	}))
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
