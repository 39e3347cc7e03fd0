package handler

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/skillpass/skillpass-server/internal/model"
)

// userResponse is the public representation of a user. The password hash
// never leaves the service boundary.
type userResponse struct {
	ID            uuid.UUID `json:"id"`
	WalletAddress string    `json:"wallet_address"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:            user.ID,
		WalletAddress: user.WalletAddress,
		Email:         user.Email,
		Name:          user.Name,
		Role:          string(user.Role),
		IsVerified:    user.IsVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

type institutionResponse struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	Country             string    `json:"country"`
	AccreditationNumber *string   `json:"accreditation_number"`
	IsAccredited        bool      `json:"is_accredited"`
	CreatedAt           time.Time `json:"created_at"`
}

func toInstitutionResponse(institution model.Institution) institutionResponse {
	return institutionResponse{
		ID:                  institution.ID,
		UserID:              institution.UserID,
		Name:                institution.Name,
		Type:                institution.Type,
		Country:             institution.Country,
		AccreditationNumber: institution.AccreditationNumber,
		IsAccredited:        institution.IsAccredited,
		CreatedAt:           institution.CreatedAt,
	}
}

type credentialResponse struct {
	ID          uuid.UUID       `json:"id"`
	PublicID    string          `json:"public_id"`
	HolderID    uuid.UUID       `json:"holder_id"`
	IssuerID    uuid.UUID       `json:"issuer_id"`
	Type        string          `json:"credential_type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ContentRef  string          `json:"content_ref"`
	AnchorRef   string          `json:"anchor_ref"`
	IssueDate   time.Time       `json:"issue_date"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
	Status      string          `json:"status"`
	Metadata    json.RawMessage `json:"metadata"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toCredentialResponse(credential model.Credential) credentialResponse {
	return credentialResponse{
		ID:          credential.ID,
		PublicID:    credential.PublicID,
		HolderID:    credential.HolderID,
		IssuerID:    credential.IssuerID,
		Type:        string(credential.Type),
		Title:       credential.Title,
		Description: credential.Description,
		ContentRef:  credential.ContentRef,
		AnchorRef:   credential.AnchorRef,
		IssueDate:   credential.IssueDate,
		ExpiryDate:  credential.ExpiryDate,
		Status:      string(credential.Status),
		Metadata:    credential.Metadata,
		CreatedAt:   credential.CreatedAt,
	}
}

func toCredentialResponses(credentials []model.Credential) []credentialResponse {
	out := make([]credentialResponse, 0, len(credentials))
	for _, credential := range credentials {
		out = append(out, toCredentialResponse(credential))
	}
	return out
}
