package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushub/eventline/internal/domain"
	"github.com/campushub/eventline/internal/identity"
	"github.com/campushub/eventline/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account signup, login and federated login.
type AuthService struct {
	userRepo   *repository.UserRepository
	verifier   identity.Verifier
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo *repository.UserRepository, verifier identity.Verifier, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		verifier:   verifier,
		sessionTTL: sessionTTL,
	}
}

// Signup registers a local account with a bcrypt-hashed password and opens a
// session for it.
func (s *AuthService) Signup(ctx context.Context, email, password, fullName string) (*domain.User, *domain.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	hashStr := string(hash)
	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     fullName,
		Role:         domain.UserRoleParticipant,
	})
	if err != nil {
		return nil, nil, err
	}

	session, err := s.userRepo.CreateSession(ctx, user.ID, time.Now().Add(s.sessionTTL))
	if err != nil {
		return nil, nil, err
	}

	slog.Info("user signed up", "user_id", user.ID)

	return user, session, nil
}

// Login verifies a local account's credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	// Federated accounts have no local password.
	if user.PasswordHash == nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.userRepo.CreateSession(ctx, user.ID, time.Now().Add(s.sessionTTL))
	if err != nil {
		return nil, nil, err
	}

	slog.Info("user logged in", "user_id", user.ID)

	return user, session, nil
}

// FederatedLogin verifies a provider token and finds or creates the matching
// account, then opens a session.
func (s *AuthService) FederatedLogin(ctx context.Context, provider, token string) (*domain.User, *domain.Session, error) {
	claims, err := s.verifier.Verify(ctx, provider, token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByProvider(ctx, provider, claims.ProviderID)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.userRepo.Create(ctx, &domain.User{
			Email:      claims.Email,
			FullName:   claims.FullName,
			Role:       domain.UserRoleParticipant,
			Provider:   &provider,
			ProviderID: &claims.ProviderID,
		})
	}
	if err != nil {
		return nil, nil, err
	}

	session, err := s.userRepo.CreateSession(ctx, user.ID, time.Now().Add(s.sessionTTL))
	if err != nil {
		return nil, nil, err
	}

	slog.Info("federated login", "user_id", user.ID, "provider", provider)

	return user, session, nil
}
