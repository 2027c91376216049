package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/vsconnect-api/internal/domain"
)

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 instant after which the token is rejected
	ExpiresAt string `json:"expires_at"`
}

// RegisterUserRequest defines the payload for user registration.
type RegisterUserRequest struct {
	Name     string `json:"nome"         validate:"required,max=255"`
	Email    string `json:"email"        validate:"required,email"`
	Password string `json:"senha"        validate:"required,min=6,max=72"`
	Role     string `json:"tipo_usuario" validate:"required"`
}

// UserResponse is the public view of a user. It never includes the password hash.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Role      string    `json:"tipo_usuario"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateServiceRequest defines the payload for posting a service record.
type CreateServiceRequest struct {
	Title        string   `json:"titulo"         validate:"required,max=255"`
	Description  string   `json:"descricao"      validate:"required"`
	Proposal     string   `json:"proposta"       validate:"max=255"`
	Status       string   `json:"status_projeto" validate:"max=20"`
	Technologies []string `json:"tecnologias"    validate:"max=20,dive,required,max=64"`
	ClientID     string   `json:"id_cliente"     validate:"required,uuid"`
}

// ServiceResponse is the public view of a service record.
type ServiceResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"titulo"`
	Description  string    `json:"descricao"`
	Proposal     string    `json:"proposta"`
	Status       string    `json:"status_projeto"`
	Technologies []string  `json:"tecnologias"`
	ClientID     uuid.UUID `json:"id_cliente"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func serviceToResponse(s *domain.Service) ServiceResponse {
	technologies := s.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	return ServiceResponse{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		Proposal:     s.Proposal,
		Status:       string(s.Status),
		Technologies: technologies,
		ClientID:     s.ClientID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
