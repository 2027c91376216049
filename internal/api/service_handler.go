package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/vsconnect-api/internal/api/shared"
	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
	"github.com/phrazzld/vsconnect-api/internal/redact"
	"github.com/phrazzld/vsconnect-api/internal/service"
	"github.com/phrazzld/vsconnect-api/internal/service/auth"
)

// ServiceHandler serves the /servicos endpoints. Handlers receive the request
// identity as a parameter; it is recorded in the logs but grants nothing.
type ServiceHandler struct {
	services service.ServiceRecordService
	logger   *slog.Logger
}

// NewServiceHandler creates a new ServiceHandler. If logger is nil, the default logger is used.
func NewServiceHandler(services service.ServiceRecordService, logger *slog.Logger) *ServiceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServiceHandler{
		services: services,
		logger:   logger.With(slog.String("component", "service_handler")),
	}
}

func (h *ServiceHandler) requestLogger(r *http.Request, identity auth.Identity) *slog.Logger {
	log := logger.FromContextOrDefault(r.Context(), h.logger).With(slog.String("identity", identity.Kind.String()))
	if identity.IsAuthenticated() {
		log = log.With(slog.String("email", redact.Email(identity.Email())))
	}
	return log
}

// List handles GET /servicos.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	log := h.requestLogger(r, identity)

	services, err := h.services.ListServices(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list services")
		return
	}

	response := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		response = append(response, serviceToResponse(s))
	}

	log.Debug("listed services", slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Get handles GET /servicos/{id}.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	log := h.requestLogger(r, identity)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Debug("invalid service id", slog.String("value", redact.String(chi.URLParam(r, "id"))))
		HandleAPIError(w, r, err, "")
		return
	}

	svc, err := h.services.GetService(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get service")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, serviceToResponse(svc))
}

// Create handles POST /servicos.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	log := h.requestLogger(r, identity)

	var req CreateServiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("id_cliente", "has invalid format", domain.ErrInvalidID), "")
		return
	}

	svc, err := h.services.CreateService(r.Context(), service.CreateServiceInput{
		ClientID:     clientID,
		Title:        req.Title,
		Description:  req.Description,
		Proposal:     req.Proposal,
		Status:       domain.ProjectStatus(req.Status),
		Technologies: req.Technologies,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create service")
		return
	}

	log.Info("service created",
		slog.String("service_id", svc.ID.String()),
		slog.String("client_id", svc.ClientID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, serviceToResponse(svc))
}
