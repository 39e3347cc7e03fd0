package model

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CredentialStore defines persistence operations for credentials.
type CredentialStore interface {
	Create(ctx context.Context, credential Credential) (Credential, error)
	GetByID(ctx context.Context, id uuid.UUID) (Credential, error)
	GetByPublicID(ctx context.Context, publicID string) (Credential, error)
	GetByHolder(ctx context.Context, holderID uuid.UUID) ([]Credential, error)
	GetByIssuer(ctx context.Context, issuerID uuid.UUID) ([]Credential, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status CredentialStatus) error
}

// Credential represents an issued credential record.
type Credential struct {
	ID            uuid.UUID
	PublicID      string
	HolderID      uuid.UUID
	IssuerID      uuid.UUID
	Type          CredentialType
	Title         string
	Description   string
	ContentRef    string
	AnchorRef     string
	ProofArtifact string
	IssueDate     time.Time
	ExpiryDate    *time.Time
	Status        CredentialStatus
	Metadata      json.RawMessage
	CreatedAt     time.Time
}

// CredentialType enumerates credential kinds. Fixed at issuance.
type CredentialType string

const (
	// CredentialTypeCertificate is a course or training certificate.
	CredentialTypeCertificate CredentialType = "certificate"
	// CredentialTypeLicense is a professional license.
	CredentialTypeLicense CredentialType = "license"
	// CredentialTypeDegree is an academic degree.
	CredentialTypeDegree CredentialType = "degree"
	// CredentialTypeWorkExperience is an attested work experience.
	CredentialTypeWorkExperience CredentialType = "workexperience"
	// CredentialTypeSkill is an attested skill.
	CredentialTypeSkill CredentialType = "skill"
)

// ParseCredentialType converts a string into a CredentialType.
// An unrecognized value is an error, never defaulted or dropped.
func ParseCredentialType(s string) (CredentialType, error) {
	switch CredentialType(s) {
	case CredentialTypeCertificate, CredentialTypeLicense, CredentialTypeDegree,
		CredentialTypeWorkExperience, CredentialTypeSkill:
		return CredentialType(s), nil
	default:
		return "", fmt.Errorf("unknown credential type %q", s)
	}
}

// CredentialStatus enumerates credential lifecycle states.
type CredentialStatus string

const (
	// CredentialStatusPending is defined but never assigned by the issuance path.
	CredentialStatusPending CredentialStatus = "pending"
	// CredentialStatusIssued marks an active credential.
	CredentialStatusIssued CredentialStatus = "issued"
	// CredentialStatusRevoked marks a credential revoked by its issuer.
	CredentialStatusRevoked CredentialStatus = "revoked"
	// CredentialStatusExpired is defined but no transition into it is driven here.
	CredentialStatusExpired CredentialStatus = "expired"
)

// ParseCredentialStatus converts a string into a CredentialStatus.
// An unrecognized value is an error, never defaulted or dropped.
func ParseCredentialStatus(s string) (CredentialStatus, error) {
	switch CredentialStatus(s) {
	case CredentialStatusPending, CredentialStatusIssued,
		CredentialStatusRevoked, CredentialStatusExpired:
		return CredentialStatus(s), nil
	default:
		return "", fmt.Errorf("unknown credential status %q", s)
	}
}

// IssueCredentialParams contains caller-supplied inputs for issuance.
type IssueCredentialParams struct {
	Type         CredentialType
	Title        string
	Description  string
	IssueDate    time.Time
	ExpiryDate   *time.Time
	Metadata     json.RawMessage
	DocumentData string
}

// IssueCredentialResult is returned to the caller after a successful issuance.
type IssueCredentialResult struct {
	PublicID      string
	ContentRef    string
	AnchorRef     string
	ProofArtifact string
}

// VerificationResult carries the outcome of a public verification.
// "Not found" and "invalid" are normal outcomes, not errors.
type VerificationResult struct {
	Valid      bool
	Credential *Credential
	Issuer     *Institution
	Holder     *User
	Message    string
}
