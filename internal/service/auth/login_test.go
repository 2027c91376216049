package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/mocks"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/phrazzld/vsconnect-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginService_RoundTrip(t *testing.T) {
	t.Parallel()

	user := &domain.User{
		ID:             uuid.New(),
		Email:          "a@x.com",
		HashedPassword: auth.RequireTestHash(t, "pw123"),
		Role:           domain.RoleClient,
	}
	codec := auth.RequireTestTokenCodec(t, nil)
	l, _ := logger.NewTestLogger()
	login := auth.NewLoginService(
		auth.NewAuthenticator(mocks.NewMockUserStore(user), auth.NewBcryptVerifier(4)),
		codec,
		l,
	)

	issued, err := login.Login(context.Background(), "a@x.com", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)

	claim, err := codec.Decode(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claim)
}

func TestLoginService_Login(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Email: "a@x.com", Role: domain.RoleClient}

	tests := []struct {
		name          string
		authenticator *mocks.MockAuthenticator
		codec         func() *mocks.MockTokenCodec
		wantToken     string
		wantErr       error
		wantInternal  bool
	}{
		{
			name:          "success",
			authenticator: &mocks.MockAuthenticator{User: user},
			codec:         mocks.NewMockTokenCodec,
			wantToken:     "mock-token",
		},
		{
			name:          "rejected credentials",
			authenticator: &mocks.MockAuthenticator{VerifyErr: auth.ErrInvalidCredentials},
			codec:         mocks.NewMockTokenCodec,
			wantErr:       auth.ErrInvalidCredentials,
		},
		{
			name:          "authentication engine failure",
			authenticator: &mocks.MockAuthenticator{VerifyErr: errors.New("db down")},
			codec:         mocks.NewMockTokenCodec,
			wantInternal:  true,
		},
		{
			name:          "signing failure",
			authenticator: &mocks.MockAuthenticator{User: user},
			codec: func() *mocks.MockTokenCodec {
				c := mocks.NewMockTokenCodec()
				c.IssueErr = errors.New("key unavailable")
				return c
			},
			wantInternal: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			codec := tt.codec()
			login := auth.NewLoginService(tt.authenticator, codec, nil)

			issued, err := login.Login(context.Background(), "a@x.com", "pw123")
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, issued.Token)
			case tt.wantInternal:
				require.Error(t, err)
				assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
				assert.Empty(t, issued.Token)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, issued.Token)
			}
		})
	}
}

func TestLoginService_IssuesForStoredEmail(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Email: "a@x.com", Role: domain.RoleClient}
	codec := mocks.NewMockTokenCodec()
	var claimed string
	codec.IssueFn = func(ctx context.Context, claim string) (auth.IssuedToken, error) {
		claimed = claim
		return auth.IssuedToken{Token: "t"}, nil
	}

	login := auth.NewLoginService(&mocks.MockAuthenticator{User: user}, codec, nil)
	_, err := login.Login(context.Background(), "A@X.COM", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claimed)
}
