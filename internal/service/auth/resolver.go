package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/store"
)

// DefaultLookupTimeout bounds identity lookups when no timeout is configured.
const DefaultLookupTimeout = 2 * time.Second

// IdentityResolver maps a decoded identity claim to a user record.
type IdentityResolver interface {
	// Resolve returns the user for claim. Any failure, including the lookup
	// deadline passing, is reported as an error wrapping ErrIdentityUnresolved.
	Resolve(ctx context.Context, claim string) (*domain.User, error)
}

// storeIdentityResolver resolves claims through the user store.
type storeIdentityResolver struct {
	users   store.UserStore
	timeout time.Duration
}

// NewIdentityResolver creates a resolver backed by users. A non-positive
// timeout falls back to DefaultLookupTimeout.
func NewIdentityResolver(users store.UserStore, timeout time.Duration) IdentityResolver {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &storeIdentityResolver{users: users, timeout: timeout}
}

type lookupResult struct {
	user *domain.User
	err  error
}

// Resolve implements IdentityResolver.Resolve.
func (r *storeIdentityResolver) Resolve(ctx context.Context, claim string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// The store may not honour cancellation, so the deadline is enforced here too.
	done := make(chan lookupResult, 1)
	go func() {
		user, err := r.users.GetByEmail(ctx, claim)
		done <- lookupResult{user: user, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIdentityUnresolved, res.err)
		}
		if res.user == nil {
			return nil, fmt.Errorf("%w: %w", ErrIdentityUnresolved, store.ErrUserNotFound)
		}
		return res.user, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrIdentityUnresolved, ctx.Err())
	}
}
