package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/phrazzld/vsconnect-api/internal/redact"
	"github.com/phrazzld/vsconnect-api/internal/store"
)

// CreateServiceInput carries the fields of a new service record.
type CreateServiceInput struct {
	ClientID     uuid.UUID
	Title        string
	Description  string
	Proposal     string
	Status       domain.ProjectStatus
	Technologies []string
}

// ServiceRecordService manages service records posted by clients.
type ServiceRecordService interface {
	// ListServices returns all service records.
	ListServices(ctx context.Context) ([]*domain.Service, error)

	// GetService returns one record. Returns store.ErrServiceNotFound if absent.
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)

	// CreateService stores a record for an existing client. Returns
	// ErrClientNotFound when ClientID does not reference a user.
	CreateService(ctx context.Context, input CreateServiceInput) (*domain.Service, error)
}

// serviceRecordServiceImpl implements ServiceRecordService
type serviceRecordServiceImpl struct {
	services store.ServiceStore
	users    store.UserStore
	db       *sql.DB
	logger   *slog.Logger
}

// NewServiceRecordService creates a ServiceRecordService. db may be nil, in
// which case the client lookup and insert run without a transaction.
func NewServiceRecordService(
	services store.ServiceStore,
	users store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) ServiceRecordService {
	if logger == nil {
		logger = slog.Default()
	}
	return &serviceRecordServiceImpl{
		services: services,
		users:    users,
		db:       db,
		logger:   logger.With("component", "service_record_service"),
	}
}

// ListServices implements ServiceRecordService.ListServices
func (s *serviceRecordServiceImpl) ListServices(ctx context.Context) ([]*domain.Service, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list services",
			"error", redact.Error(err))
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// GetService implements ServiceRecordService.GetService
func (s *serviceRecordServiceImpl) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrServiceNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get service",
				"error", redact.Error(err),
				"service_id", id)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return svc, nil
}

// CreateService implements ServiceRecordService.CreateService
func (s *serviceRecordServiceImpl) CreateService(
	ctx context.Context,
	input CreateServiceInput,
) (*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	svc, err := domain.NewService(
		input.ClientID,
		input.Title,
		input.Description,
		input.Proposal,
		input.Status,
		input.Technologies,
	)
	if err != nil {
		log.Debug("rejected service record", "error", err)
		return nil, err
	}

	create := func(ctx context.Context, users store.UserStore, services store.ServiceStore) error {
		if _, err := users.GetByID(ctx, input.ClientID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return ErrClientNotFound
			}
			return err
		}
		if err := services.Create(ctx, svc); err != nil {
			// The client may vanish between lookup and insert.
			if errors.Is(err, store.ErrInvalidEntity) && !domain.IsValidationError(err) {
				return ErrClientNotFound
			}
			return err
		}
		return nil
	}

	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return create(ctx, s.users.WithTx(tx), s.services.WithTx(tx))
		})
	} else {
		err = create(ctx, s.users, s.services)
	}
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			log.Debug("service record references unknown client",
				"client_id", input.ClientID)
		} else {
			log.Error("failed to create service",
				"error", redact.Error(err),
				"client_id", input.ClientID)
		}
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	log.Info("service record created",
		"service_id", svc.ID,
		"client_id", svc.ClientID)
	return svc, nil
}
