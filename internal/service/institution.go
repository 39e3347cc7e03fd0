package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/skillpass/skillpass-server/internal/logger"
	"github.com/skillpass/skillpass-server/internal/model"
)

// Institution manages institution profiles attached to institution-role users.
type Institution struct {
	institutionStore model.InstitutionStore
	logger           *logger.Logger
}

func NewInstitution(institutionStore model.InstitutionStore, logger *logger.Logger) *Institution {
	return &Institution{
		institutionStore: institutionStore,
		logger:           logger,
	}
}

// RegisterInstitutionParams contains inputs for institution registration.
type RegisterInstitutionParams struct {
	Name                string
	Type                string
	Country             string
	AccreditationNumber *string
}

// Register creates the institution profile for a user. Accreditation starts
// false and changes only through an administrative action.
func (s *Institution) Register(ctx context.Context, userID uuid.UUID, params RegisterInstitutionParams) (model.Institution, error) {
	if params.Name == "" || params.Type == "" || params.Country == "" {
		return model.Institution{}, model.NewValidationError("Name, type and country are required", nil)
	}

	_, err := s.institutionStore.GetByUserID(ctx, userID)
	if err == nil {
		return model.Institution{}, model.NewValidationError("Institution already registered", nil)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.Institution{}, model.NewStorageError("failed to check existing institution", err)
	}

	institution := model.Institution{
		ID:                  uuid.New(),
		UserID:              userID,
		Name:                params.Name,
		Type:                params.Type,
		Country:             params.Country,
		AccreditationNumber: params.AccreditationNumber,
		IsAccredited:        false,
	}

	created, err := s.institutionStore.Create(ctx, institution)
	if err != nil {
		if errors.Is(err, model.ErrInstitutionExists) {
			return model.Institution{}, model.NewValidationError("Institution already registered", nil)
		}
		return model.Institution{}, model.NewStorageError("failed to create institution", err)
	}

	s.logger.Info("institution registered", "institution_id", created.ID, "user_id", userID)

	return created, nil
}

// GetByUser returns the institution profile owned by the user.
func (s *Institution) GetByUser(ctx context.Context, userID uuid.UUID) (model.Institution, error) {
	institution, err := s.institutionStore.GetByUserID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Institution{}, model.NewNotFoundError("Institution not found")
	}
	if err != nil {
		return model.Institution{}, model.NewStorageError("failed to get institution", err)
	}

	return institution, nil
}

// SetAccreditation flips the accreditation flag. This is the administrative
// action referenced by the institution model; it is not reachable from the
// public API surface.
func (s *Institution) SetAccreditation(ctx context.Context, institutionID uuid.UUID, accredited bool) error {
	if err := s.institutionStore.UpdateAccreditation(ctx, institutionID, accredited); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewNotFoundError("Institution not found")
		}
		return model.NewStorageError("failed to update accreditation", err)
	}

	return nil
}
