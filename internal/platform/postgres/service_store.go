package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/phrazzld/vsconnect-api/internal/redact"
	"github.com/phrazzld/vsconnect-api/internal/store"
)

const serviceColumns = `id, client_id, title, description, proposal, status, technologies, created_at, updated_at`

// PostgresServiceStore implements the store.ServiceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresServiceStore struct {
	db     store.DBTX
	types  *pgtype.Map
	logger *slog.Logger
}

// NewPostgresServiceStore creates a new PostgreSQL implementation of the ServiceStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresServiceStore(db store.DBTX, logger *slog.Logger) *PostgresServiceStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresServiceStore{
		db:     db,
		types:  pgtype.NewMap(),
		logger: logger.With(slog.String("component", "service_store")),
	}
}

// Ensure PostgresServiceStore implements store.ServiceStore interface
var _ store.ServiceStore = (*PostgresServiceStore)(nil)

// WithTx implements store.ServiceStore.WithTx
func (s *PostgresServiceStore) WithTx(tx *sql.Tx) store.ServiceStore {
	return &PostgresServiceStore{db: tx, types: s.types, logger: s.logger}
}

// Create implements store.ServiceStore.Create
func (s *PostgresServiceStore) Create(ctx context.Context, svc *domain.Service) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := svc.Validate(); err != nil {
		log.Warn("service validation failed during create",
			slog.String("error", err.Error()),
			slog.String("service_id", svc.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	technologies := svc.Technologies
	if technologies == nil {
		technologies = []string{}
	}

	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		svc.ID,
		svc.ClientID,
		svc.Title,
		svc.Description,
		svc.Proposal,
		string(svc.Status),
		technologies,
		svc.CreatedAt,
		svc.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during service creation",
				slog.String("service_id", svc.ID.String()),
				slog.String("client_id", svc.ClientID.String()))
			return fmt.Errorf("%w: client with ID %s not found", store.ErrInvalidEntity, svc.ClientID)
		}
		log.Error("failed to create service",
			slog.String("error", redact.Error(err)),
			slog.String("service_id", svc.ID.String()))
		return store.NewStoreError("service", "create", "insert failed", MapError(err))
	}

	log.Info("service created",
		slog.String("service_id", svc.ID.String()),
		slog.String("client_id", svc.ClientID.String()))
	return nil
}

// GetByID implements store.ServiceStore.GetByID
func (s *PostgresServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id)
	svc, err := s.scanService(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("service not found", slog.String("service_id", id.String()))
			return nil, store.ErrServiceNotFound
		}
		log.Error("failed to get service",
			slog.String("error", redact.Error(err)),
			slog.String("service_id", id.String()))
		return nil, store.NewStoreError("service", "get", "query failed", MapError(err))
	}
	return svc, nil
}

// List implements store.ServiceStore.List
func (s *PostgresServiceStore) List(ctx context.Context) ([]*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY created_at, id`)
	if err != nil {
		log.Error("failed to list services", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("service", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := s.scanService(rows)
		if err != nil {
			return nil, store.NewStoreError("service", "list", "scan failed", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("service", "list", "iteration failed", err)
	}
	return services, nil
}

func (s *PostgresServiceStore) scanService(row rowScanner) (*domain.Service, error) {
	var (
		svc          domain.Service
		status       string
		technologies []string
	)
	if err := row.Scan(
		&svc.ID,
		&svc.ClientID,
		&svc.Title,
		&svc.Description,
		&svc.Proposal,
		&status,
		s.types.SQLScanner(&technologies),
		&svc.CreatedAt,
		&svc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	svc.Status = domain.ProjectStatus(status)
	if technologies == nil {
		technologies = []string{}
	}
	svc.Technologies = technologies
	return &svc, nil
}
