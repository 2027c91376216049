package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/store"
)

// MockServiceStore implements store.ServiceStore for testing
type MockServiceStore struct {
	CreateFn  func(ctx context.Context, svc *domain.Service) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListFn    func(ctx context.Context) ([]*domain.Service, error)

	Services    []*domain.Service
	CreateError error
	ListError   error

	mu sync.Mutex
}

// NewMockServiceStore creates a mock store seeded with services
func NewMockServiceStore(services ...*domain.Service) *MockServiceStore {
	return &MockServiceStore{Services: append([]*domain.Service(nil), services...)}
}

// Create implements the ServiceStore interface
func (m *MockServiceStore) Create(ctx context.Context, svc *domain.Service) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, svc)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Services = append(m.Services, svc)
	return nil
}

// GetByID implements the ServiceStore interface
func (m *MockServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, svc := range m.Services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return nil, store.ErrServiceNotFound
}

// List implements the ServiceStore interface
func (m *MockServiceStore) List(ctx context.Context) ([]*domain.Service, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return append([]*domain.Service{}, m.Services...), nil
}

// WithTx implements the ServiceStore interface. The mock is not transactional.
func (m *MockServiceStore) WithTx(tx *sql.Tx) store.ServiceStore {
	return m
}
