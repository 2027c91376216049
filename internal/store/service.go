package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/vsconnect-api/internal/domain"
)

// ServiceStore defines the interface for service record persistence.
type ServiceStore interface {
	// Create saves a new service record.
	// Returns ErrInvalidEntity if the referenced client does not exist.
	Create(ctx context.Context, service *domain.Service) error

	// GetByID retrieves a service by its ID.
	// Returns ErrServiceNotFound if the service does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)

	// List returns all service records ordered by creation time.
	List(ctx context.Context) ([]*domain.Service, error)

	// WithTx returns a new ServiceStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ServiceStore
}
