//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/platform/postgres"
	"github.com/phrazzld/vsconnect-api/internal/store"
	"github.com/phrazzld/vsconnect-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createIntegrationUser(t *testing.T, users store.UserStore) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Ana", uuid.NewString()+"@example.com", "pw1234", domain.RoleClient)
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$integrationhashvalue"
	user.Password = ""
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

// A failed statement aborts a Postgres transaction, so each case that
// expects a constraint violation gets its own transaction.
func TestIntegration_UserStore(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	ctx := context.Background()

	t.Run("create and look up", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(tx, newQuietLogger())
			user := createIntegrationUser(t, users)

			found, err := users.GetByEmail(ctx, "  "+user.Email+" ")
			require.NoError(t, err)
			assert.Equal(t, user.ID, found.ID)
			assert.Equal(t, domain.RoleClient, found.Role)

			byID, err := users.GetByID(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, user.Email, byID.Email)

			_, err = users.GetByEmail(ctx, "nobody@example.com")
			assert.ErrorIs(t, err, store.ErrUserNotFound)
		})
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(tx, newQuietLogger())
			user := createIntegrationUser(t, users)

			dup, err := domain.NewUser("Outra", user.Email, "pw1234", domain.RoleDeveloper)
			require.NoError(t, err)
			dup.HashedPassword = "$2a$10$integrationhashvalue"
			dup.Password = ""
			assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)
		})
	})
}

func TestIntegration_ServiceStore(t *testing.T) {
	t.Parallel()
	db := testdb.Open(t)
	ctx := context.Background()

	t.Run("create and read back technologies", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			user := createIntegrationUser(t, postgres.NewPostgresUserStore(tx, newQuietLogger()))
			services := postgres.NewPostgresServiceStore(tx, newQuietLogger())

			svc, err := domain.NewService(user.ID, "Loja", "Loja virtual", "R$ 10", "", []string{"Go", "Spring Boot"})
			require.NoError(t, err)
			require.NoError(t, services.Create(ctx, svc))

			got, err := services.GetByID(ctx, svc.ID)
			require.NoError(t, err)
			assert.Equal(t, []string{"Go", "Spring Boot"}, got.Technologies)
			assert.Equal(t, domain.StatusPending, got.Status)

			all, err := services.List(ctx)
			require.NoError(t, err)
			assert.NotEmpty(t, all)

			_, err = services.GetByID(ctx, uuid.New())
			assert.ErrorIs(t, err, store.ErrServiceNotFound)
		})
	})

	t.Run("unknown client", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			services := postgres.NewPostgresServiceStore(tx, newQuietLogger())

			orphan, err := domain.NewService(uuid.New(), "Orfao", "Sem cliente", "", "", nil)
			require.NoError(t, err)
			assert.ErrorIs(t, services.Create(ctx, orphan), store.ErrInvalidEntity)
		})
	})
}
