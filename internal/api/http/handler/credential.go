package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillpass/skillpass-server/internal/logger"
	"github.com/skillpass/skillpass-server/internal/model"
)

// CredentialService defines the credential operations needed by the handler.
type CredentialService interface {
	Issue(ctx context.Context, params model.IssueCredentialParams, issuerID, holderID uuid.UUID) (model.IssueCredentialResult, error)
	Verify(ctx context.Context, publicID string) (model.VerificationResult, error)
	Revoke(ctx context.Context, publicID string, callerID uuid.UUID) error
	Get(ctx context.Context, publicID string, callerID uuid.UUID) (model.Credential, error)
	ListByHolder(ctx context.Context, holderID uuid.UUID) ([]model.Credential, error)
	ListByIssuer(ctx context.Context, issuerID uuid.UUID) ([]model.Credential, error)
	ProofImage(ctx context.Context, publicID string, callerID uuid.UUID) ([]byte, error)
}

// HolderResolver maps a holder email to a user id.
type HolderResolver interface {
	ResolveHolder(ctx context.Context, email string) (uuid.UUID, error)
}

// Credential handles issuance, verification and lifecycle requests.
type Credential struct {
	service        CredentialService
	holderResolver HolderResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewCredential creates a new Credential handler.
func NewCredential(service CredentialService, holderResolver HolderResolver, contextManager model.ContextManager, logger *logger.Logger) *Credential {
	return &Credential{
		service:        service,
		holderResolver: holderResolver,
		contextManager: contextManager,
		logger:         logger,
	}
}

type issueCredentialRequest struct {
	HolderEmail  string          `json:"holder_email"`
	Type         string          `json:"credential_type"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	IssueDate    time.Time       `json:"issue_date"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	Metadata     json.RawMessage `json:"metadata"`
	DocumentData string          `json:"document_data"`
}

type issueCredentialResponse struct {
	PublicID   string `json:"public_id"`
	ContentRef string `json:"content_ref"`
	AnchorRef  string `json:"anchor_ref"`
	QRCode     string `json:"qr_code"`
}

type verificationResponse struct {
	Valid      bool                 `json:"valid"`
	Credential *credentialResponse  `json:"credential"`
	Issuer     *institutionResponse `json:"issuer"`
	Holder     *userResponse        `json:"holder"`
	Message    string               `json:"message"`
}

type verifyQRRequest struct {
	QRData string `json:"qr_data"`
}

type credentialListResponse struct {
	Credentials []credentialResponse `json:"credentials"`
	Total       int                  `json:"total"`
}

// Issue creates a new credential for the holder identified by email.
// Only institution-role users may issue.
func (h *Credential) Issue(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.NewAuthenticationError("Missing authorization token"))
		return
	}

	if principal.Role != model.RoleInstitution {
		writeError(w, model.NewAuthorizationError("Only institutions can issue credentials"))
		return
	}

	var req issueCredentialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	credentialType, err := model.ParseCredentialType(req.Type)
	if err != nil {
		writeError(w, model.NewValidationError("Invalid credential type", err))
		return
	}

	// The metadata field must be present; an explicit null or empty
	// object is acceptable, an absent field is not.
	if req.Metadata == nil {
		writeError(w, model.NewValidationError("Metadata is required", nil))
		return
	}

	holderID, err := h.holderResolver.ResolveHolder(r.Context(), req.HolderEmail)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.Issue(r.Context(), model.IssueCredentialParams{
		Type:         credentialType,
		Title:        req.Title,
		Description:  req.Description,
		IssueDate:    req.IssueDate,
		ExpiryDate:   req.ExpiryDate,
		Metadata:     req.Metadata,
		DocumentData: req.DocumentData,
	}, principal.UserID, holderID)
	if err != nil {
		h.logger.Error("issuance failed", "error", err, "issuer_id", principal.UserID)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, issueCredentialResponse{
		PublicID:   result.PublicID,
		ContentRef: result.ContentRef,
		AnchorRef:  result.AnchorRef,
		QRCode:     result.ProofArtifact,
	})
}

// Verify checks a credential by its public id. No authentication required;
// "not found" and "invalid" are reported in the body, not as errors.
func (h *Credential) Verify(w http.ResponseWriter, r *http.Request) {
	h.verifyAndRespond(w, r, chi.URLParam(r, "publicID"))
}

// VerifyQR verifies a credential from scanned QR content, which carries the
// public id.
func (h *Credential) VerifyQR(w http.ResponseWriter, r *http.Request) {
	var req verifyQRRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.verifyAndRespond(w, r, req.QRData)
}

func (h *Credential) verifyAndRespond(w http.ResponseWriter, r *http.Request, publicID string) {
	result, err := h.service.Verify(r.Context(), publicID)
	if err != nil {
		h.logger.Error("verification failed", "error", err, "public_id", publicID)
		writeError(w, err)
		return
	}

	resp := verificationResponse{
		Valid:   result.Valid,
		Message: result.Message,
	}
	if result.Credential != nil {
		credential := toCredentialResponse(*result.Credential)
		resp.Credential = &credential
	}
	if result.Issuer != nil {
		issuer := toInstitutionResponse(*result.Issuer)
		resp.Issuer = &issuer
	}
	if result.Holder != nil {
		holder := toUserResponse(*result.Holder)
		resp.Holder = &holder
	}

	writeJSON(w, http.StatusOK, resp)
}

// My lists credentials held by the authenticated user.
func (h *Credential) My(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.NewAuthenticationError("Missing authorization token"))
		return
	}

	credentials, err := h.service.ListByHolder(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, credentialListResponse{
		Credentials: toCredentialResponses(credentials),
		Total:       len(credentials),
	})
}

// Issued lists credentials issued by the authenticated institution user.
func (h *Credential) Issued(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.NewAuthenticationError("Missing authorization token"))
		return
	}

	if principal.Role != model.RoleInstitution {
		writeError(w, model.NewAuthorizationError("Only institutions can view issued credentials"))
		return
	}

	credentials, err := h.service.ListByIssuer(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, credentialListResponse{
		Credentials: toCredentialResponses(credentials),
		Total:       len(credentials),
	})
}

// Get returns a single credential to its holder or issuer.
func (h *Credential) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.NewAuthenticationError("Missing authorization token"))
		return
	}

	credential, err := h.service.Get(r.Context(), chi.URLParam(r, "publicID"), principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCredentialResponse(credential))
}

// Revoke marks a credential revoked. Only the issuing institution may revoke.
func (h *Credential) Revoke(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.NewAuthenticationError("Missing authorization token"))
		return
	}

	if principal.Role != model.RoleInstitution {
		writeError(w, model.NewAuthorizationError("Only institutions can revoke credentials"))
		return
	}

	publicID := chi.URLParam(r, "publicID")
	if err := h.service.Revoke(r.Context(), publicID, principal.UserID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Credential revoked successfully",
		"public_id": publicID,
	})
}

// QR serves the proof artifact as a downloadable PNG.
func (h *Credential) QR(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.contextManager.GetPrincipalFromContext(r.Context())
	if !ok {
		writeError(w, model.NewAuthenticationError("Missing authorization token"))
		return
	}

	publicID := chi.URLParam(r, "publicID")
	image, err := h.service.ProofImage(r.Context(), publicID, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("credential-%s-qr.png", publicID)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image)
}
