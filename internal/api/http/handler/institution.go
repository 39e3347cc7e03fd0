package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/skillpass/skillpass-server/internal/logger"
	"github.com/skillpass/skillpass-server/internal/model"
	"github.com/skillpass/skillpass-server/internal/service"
)

// InstitutionService defines the institution operations needed by the handler.
type InstitutionService interface {
	Register(ctx context.Context, userID uuid.UUID, params service.RegisterInstitutionParams) (model.Institution, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (model.Institution, error)
}

// Institution handles institution profile requests.
type Institution struct {
	service        InstitutionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewInstitution creates a new Institution handler.
func NewInstitution(service InstitutionService, contextManager model.ContextManager, logger *logger.Logger) *Institution {
	return &Institution{service: service, contextManager: contextManager, logger: logger}
}

type registerInstitutionRequest struct {
	Name                string  `json:"institution_name"`
	Type                string  `json:"institution_type"`
	Country             string  `json:"country"`
	AccreditationNumber *string `json:"accreditation_number"`
}

// Register creates the institution profile for the authenticated user.
// Only institution-role users may register one.
func (h *Institution) Register(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.NewAuthenticationError("Missing authorization token"))
		return
	}

	if principal.Role != model.RoleInstitution {
		writeError(w, model.NewAuthorizationError("Only institutions can register"))
		return
	}

	var req registerInstitutionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	institution, err := h.service.Register(r.Context(), principal.UserID, service.RegisterInstitutionParams{
		Name:                req.Name,
		Type:                req.Type,
		Country:             req.Country,
		AccreditationNumber: req.AccreditationNumber,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInstitutionResponse(institution))
}

// Me returns the institution profile owned by the authenticated user.
func (h *Institution) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.NewAuthenticationError("Missing authorization token"))
		return
	}

	institution, err := h.service.GetByUser(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInstitutionResponse(institution))
}
