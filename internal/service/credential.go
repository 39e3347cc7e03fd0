package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skillpass/skillpass-server/internal/logger"
	"github.com/skillpass/skillpass-server/internal/model"
)

// externalCallTimeout bounds each call to the content store and ledger.
// Neither collaborator specifies its own deadline.
const externalCallTimeout = 10 * time.Second

// Verification outcome messages, selected in priority order.
const (
	msgValid    = "Credential is valid and verified"
	msgRevoked  = "Credential has been revoked"
	msgFailed   = "Credential verification failed"
	msgNotFound = "Credential not found"
)

// Credential orchestrates issuance, verification and revocation. It holds no
// request-spanning state; every read and write goes to the stores.
type Credential struct {
	credentialStore  model.CredentialStore
	userStore        model.UserStore
	institutionStore model.InstitutionStore
	contentStore     model.ContentStore
	ledger           model.LedgerAnchor
	proof            model.ProofGenerator
	logger           *logger.Logger
}

func NewCredential(
	credentialStore model.CredentialStore,
	userStore model.UserStore,
	institutionStore model.InstitutionStore,
	contentStore model.ContentStore,
	ledger model.LedgerAnchor,
	proof model.ProofGenerator,
	logger *logger.Logger,
) *Credential {
	return &Credential{
		credentialStore:  credentialStore,
		userStore:        userStore,
		institutionStore: institutionStore,
		contentStore:     contentStore,
		ledger:           ledger,
		proof:            proof,
		logger:           logger,
	}
}

// Issue runs the issuance pipeline: decode the document, store it, anchor the
// fingerprint, render the proof artifact and persist the record. Any step's
// failure aborts the whole operation; nothing observable is committed before
// the final repository write, so a failed call is safe to repeat.
//
// The caller's institution role and the holder id are resolved by the
// boundary before invocation.
func (s *Credential) Issue(ctx context.Context, params model.IssueCredentialParams, issuerID, holderID uuid.UUID) (model.IssueCredentialResult, error) {
	document, err := base64.StdEncoding.DecodeString(params.DocumentData)
	if err != nil {
		return model.IssueCredentialResult{}, model.NewValidationError("invalid base64 document data", err)
	}

	storeCtx, cancelStore := context.WithTimeout(ctx, externalCallTimeout)
	defer cancelStore()
	contentRef, err := s.contentStore.Store(storeCtx, document)
	if err != nil {
		if errors.Is(err, model.ErrInvalidPayload) {
			return model.IssueCredentialResult{}, model.NewValidationError("document data is empty", err)
		}
		return model.IssueCredentialResult{}, model.NewExternalServiceError("failed to store document", err)
	}

	// Collision probability across random UUIDs is treated as negligible;
	// there is no uniqueness retry loop.
	publicID := fmt.Sprintf("SSP-%s", uuid.New())

	anchorCtx, cancelAnchor := context.WithTimeout(ctx, externalCallTimeout)
	defer cancelAnchor()
	anchorRef, err := s.ledger.Anchor(anchorCtx, publicID, contentRef)
	if err != nil {
		return model.IssueCredentialResult{}, model.NewExternalServiceError("failed to anchor credential", err)
	}

	proofPNG, err := s.proof.Render(publicID)
	if err != nil {
		return model.IssueCredentialResult{}, model.NewInternalError("failed to render proof artifact", err)
	}
	proofArtifact := base64.StdEncoding.EncodeToString(proofPNG)

	credential := model.Credential{
		ID:            uuid.New(),
		PublicID:      publicID,
		HolderID:      holderID,
		IssuerID:      issuerID,
		Type:          params.Type,
		Title:         params.Title,
		Description:   params.Description,
		ContentRef:    contentRef,
		AnchorRef:     anchorRef,
		ProofArtifact: proofArtifact,
		IssueDate:     params.IssueDate,
		ExpiryDate:    params.ExpiryDate,
		Status:        model.CredentialStatusIssued,
		Metadata:      params.Metadata,
	}

	if _, err := s.credentialStore.Create(ctx, credential); err != nil {
		return model.IssueCredentialResult{}, model.NewStorageError("failed to persist credential", err)
	}

	s.logger.Info("credential issued",
		"public_id", publicID,
		"issuer_id", issuerID,
		"holder_id", holderID,
		"type", credential.Type)

	return model.IssueCredentialResult{
		PublicID:      publicID,
		ContentRef:    contentRef,
		AnchorRef:     anchorRef,
		ProofArtifact: proofArtifact,
	}, nil
}

// Verify reconstructs trust from the persisted record plus a ledger check.
// An unknown public id is a normal "not found" result, not an error.
func (s *Credential) Verify(ctx context.Context, publicID string) (model.VerificationResult, error) {
	credential, err := s.credentialStore.GetByPublicID(ctx, publicID)
	if errors.Is(err, model.ErrNotFound) {
		return model.VerificationResult{Valid: false, Message: msgNotFound}, nil
	}
	if err != nil {
		return model.VerificationResult{}, model.NewStorageError("failed to get credential", err)
	}

	confirmCtx, cancelConfirm := context.WithTimeout(ctx, externalCallTimeout)
	defer cancelConfirm()
	anchored, err := s.ledger.ConfirmAnchored(confirmCtx, credential.PublicID, credential.AnchorRef)
	if err != nil {
		return model.VerificationResult{}, model.NewExternalServiceError("failed to confirm ledger anchoring", err)
	}

	valid := credential.Status == model.CredentialStatusIssued && anchored

	// Display lookups are best-effort and independent of each other; a
	// missing issuer or holder never fails the call.
	var issuer *model.Institution
	var holder *model.User
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		institution, err := s.institutionStore.GetByUserID(ctx, credential.IssuerID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				s.logger.Warn("failed to resolve issuer institution", "public_id", publicID, "error", err)
			}
			return
		}
		issuer = &institution
	}()
	go func() {
		defer wg.Done()
		user, err := s.userStore.GetByID(ctx, credential.HolderID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				s.logger.Warn("failed to resolve holder", "public_id", publicID, "error", err)
			}
			return
		}
		holder = &user
	}()
	wg.Wait()

	message := msgFailed
	switch {
	case valid:
		message = msgValid
	case credential.Status == model.CredentialStatusRevoked:
		message = msgRevoked
	}

	return model.VerificationResult{
		Valid:      valid,
		Credential: &credential,
		Issuer:     issuer,
		Holder:     holder,
		Message:    message,
	}, nil
}

// Revoke transitions a credential to revoked. Only the issuing principal may
// revoke; the transition itself is unconditional, so revoking twice is
// harmless.
func (s *Credential) Revoke(ctx context.Context, publicID string, callerID uuid.UUID) error {
	credential, err := s.credentialStore.GetByPublicID(ctx, publicID)
	if errors.Is(err, model.ErrNotFound) {
		return model.NewNotFoundError("Credential not found")
	}
	if err != nil {
		return model.NewStorageError("failed to get credential", err)
	}

	if credential.IssuerID != callerID {
		return model.NewAuthorizationError("Not authorized to revoke this credential")
	}

	if err := s.credentialStore.UpdateStatus(ctx, credential.ID, model.CredentialStatusRevoked); err != nil {
		return model.NewStorageError("failed to update credential status", err)
	}

	s.logger.Info("credential revoked", "public_id", publicID, "issuer_id", callerID)

	return nil
}

// Get returns a single credential to its holder or issuer.
func (s *Credential) Get(ctx context.Context, publicID string, callerID uuid.UUID) (model.Credential, error) {
	credential, err := s.credentialStore.GetByPublicID(ctx, publicID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Credential{}, model.NewNotFoundError("Credential not found")
	}
	if err != nil {
		return model.Credential{}, model.NewStorageError("failed to get credential", err)
	}

	if credential.HolderID != callerID && credential.IssuerID != callerID {
		return model.Credential{}, model.NewAuthorizationError("Not authorized to view this credential")
	}

	return credential, nil
}

// ListByHolder returns the holder's credentials, newest first.
func (s *Credential) ListByHolder(ctx context.Context, holderID uuid.UUID) ([]model.Credential, error) {
	credentials, err := s.credentialStore.GetByHolder(ctx, holderID)
	if err != nil {
		return nil, model.NewStorageError("failed to list credentials by holder", err)
	}

	return credentials, nil
}

// ListByIssuer returns the issuer's credentials, newest first.
func (s *Credential) ListByIssuer(ctx context.Context, issuerID uuid.UUID) ([]model.Credential, error) {
	credentials, err := s.credentialStore.GetByIssuer(ctx, issuerID)
	if err != nil {
		return nil, model.NewStorageError("failed to list credentials by issuer", err)
	}

	return credentials, nil
}

// ProofImage returns the decoded proof artifact for download by the
// credential's holder or issuer.
func (s *Credential) ProofImage(ctx context.Context, publicID string, callerID uuid.UUID) ([]byte, error) {
	credential, err := s.Get(ctx, publicID, callerID)
	if err != nil {
		return nil, err
	}

	image, err := base64.StdEncoding.DecodeString(credential.ProofArtifact)
	if err != nil {
		return nil, model.NewInternalError("stored proof artifact is not valid base64", err)
	}

	return image, nil
}
