package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/phrazzld/vsconnect-api/internal/redact"
	"github.com/phrazzld/vsconnect-api/internal/store"
)

// Authenticator checks a username/password pair.
type Authenticator interface {
	// Verify returns the user owning email when password matches.
	// Returns ErrInvalidCredentials for an unknown email or a wrong password.
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// passwordAuthenticator verifies credentials against stored password hashes.
type passwordAuthenticator struct {
	users    store.UserStore
	verifier PasswordVerifier
}

// NewAuthenticator creates an Authenticator backed by the user store.
func NewAuthenticator(users store.UserStore, verifier PasswordVerifier) Authenticator {
	return &passwordAuthenticator{users: users, verifier: verifier}
}

// Verify implements Authenticator.Verify.
func (a *passwordAuthenticator) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email", "email", redact.Email(email))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load user for authentication",
			"error", redact.Error(err),
			"email", redact.Email(email))
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := a.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
