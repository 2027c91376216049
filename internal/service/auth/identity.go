package auth

import (
	"context"
	"slices"

	"github.com/phrazzld/vsconnect-api/internal/domain"
)

// IdentityKind tags the outcome of request authentication.
type IdentityKind int

const (
	// KindAnonymous means no credential, or one that could not be verified or resolved.
	KindAnonymous IdentityKind = iota
	// KindAuthenticated means a valid credential resolved to an existing user.
	KindAuthenticated
)

// String returns a log-friendly name for the kind.
func (k IdentityKind) String() string {
	switch k {
	case KindAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Identity is the per-request authentication result. The zero value is anonymous.
type Identity struct {
	Kind        IdentityKind
	User        *domain.User
	Authorities []string
}

// Anonymous returns the identity attached when no user could be established.
func Anonymous() Identity {
	return Identity{Kind: KindAnonymous}
}

// Authenticated returns the identity for a resolved user.
func Authenticated(user *domain.User) Identity {
	if user == nil {
		return Anonymous()
	}
	return Identity{
		Kind:        KindAuthenticated,
		User:        user,
		Authorities: user.Authorities(),
	}
}

// IsAuthenticated reports whether the identity carries a user.
func (i Identity) IsAuthenticated() bool {
	return i.Kind == KindAuthenticated && i.User != nil
}

// Email returns the authenticated user's email, or "" for anonymous identities.
func (i Identity) Email() string {
	if !i.IsAuthenticated() {
		return ""
	}
	return i.User.Email
}

// HasAuthority reports whether the identity was granted authority.
func (i Identity) HasAuthority(authority string) bool {
	return slices.Contains(i.Authorities, authority)
}

type identityContextKey struct{}

// NewContext returns a copy of ctx carrying identity.
func NewContext(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// FromContext returns the identity attached to ctx. The boolean is false when
// authentication has not run for this request.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}
