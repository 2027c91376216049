package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service validation errors.
var (
	ErrEmptyServiceID      = fmt.Errorf("%w: service ID cannot be empty", ErrValidation)
	ErrEmptyTitle          = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrEmptyDescription    = fmt.Errorf("%w: description cannot be empty", ErrValidation)
	ErrEmptyClientID       = fmt.Errorf("%w: client ID cannot be empty", ErrValidation)
	ErrInvalidStatus       = fmt.Errorf("%w: invalid project status", ErrValidation)
	ErrTooManyTechnologies = fmt.Errorf("%w: too many technologies", ErrValidation)
)

// MaxTechnologies caps the technology tags attached to one service.
const MaxTechnologies = 20

// ProjectStatus tracks where a service request is in its lifecycle.
type ProjectStatus string

const (
	StatusPending    ProjectStatus = "PENDENTE"
	StatusInProgress ProjectStatus = "ANDAMENTO"
	StatusDone       ProjectStatus = "CONCLUIDO"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Service is a job posted by a client user.
type Service struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"titulo"`
	Description  string        `json:"descricao"`
	Proposal     string        `json:"proposta"`
	Status       ProjectStatus `json:"status_projeto"`
	Technologies []string      `json:"tecnologias"`
	ClientID     uuid.UUID     `json:"id_cliente"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewService creates a Service owned by clientID. An empty status defaults to
// StatusPending. Technology tags are trimmed and de-duplicated.
func NewService(
	clientID uuid.UUID,
	title, description, proposal string,
	status ProjectStatus,
	technologies []string,
) (*Service, error) {
	if status == "" {
		status = StatusPending
	}

	now := time.Now().UTC()
	s := &Service{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(title),
		Description:  strings.TrimSpace(description),
		Proposal:     strings.TrimSpace(proposal),
		Status:       ProjectStatus(strings.ToUpper(string(status))),
		Technologies: normalizeTechnologies(technologies),
		ClientID:     clientID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the Service has valid data.
func (s *Service) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyServiceID
	}
	if s.ClientID == uuid.Nil {
		return ErrEmptyClientID
	}
	if s.Title == "" {
		return ErrEmptyTitle
	}
	if s.Description == "" {
		return ErrEmptyDescription
	}
	if !s.Status.Valid() {
		return ErrInvalidStatus
	}
	if len(s.Technologies) > MaxTechnologies {
		return ErrTooManyTechnologies
	}
	return nil
}

func normalizeTechnologies(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
