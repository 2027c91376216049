package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/phrazzld/vsconnect-api/internal/redact"
	"github.com/phrazzld/vsconnect-api/internal/service/auth"
	"github.com/phrazzld/vsconnect-api/internal/store"
)

// UserService provides user registration and listing.
type UserService interface {
	// ListUsers returns every registered user.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// RegisterUser validates the input, hashes the password and stores the user.
	// Returns a domain validation error for bad input and store.ErrEmailExists
	// when the email is taken.
	RegisterUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService. db may be nil, in which case
// registration runs without an explicit transaction.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// ListUsers implements UserService.ListUsers
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users",
			"error", redact.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// RegisterUser implements UserService.RegisterUser
func (s *UserServiceImpl) RegisterUser(
	ctx context.Context,
	name, email, password string,
	role domain.Role,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password, role)
	if err != nil {
		log.Debug("rejected user registration", "error", err)
		return nil, err
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	create := func(ctx context.Context, users store.UserStore) error {
		return users.Create(ctx, user)
	}
	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return create(ctx, s.userStore.WithTx(tx))
		})
	} else {
		err = create(ctx, s.userStore)
	}
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to register an existing email",
				"email", redact.Email(user.Email))
		} else {
			log.Error("failed to save user",
				"error", redact.Error(err),
				"email", redact.Email(user.Email))
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered",
		"user_id", user.ID,
		"role", user.Role)
	return user, nil
}
