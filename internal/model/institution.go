package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InstitutionStore defines persistence operations for institutions.
type InstitutionStore interface {
	Create(ctx context.Context, institution Institution) (Institution, error)
	GetByID(ctx context.Context, id uuid.UUID) (Institution, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Institution, error)
	UpdateAccreditation(ctx context.Context, id uuid.UUID, accredited bool) error
}

// Institution holds accreditation metadata for a user with the institution role.
// One institution per user. IsAccredited starts false and changes only through
// an administrative action.
type Institution struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	Type                string
	Country             string
	AccreditationNumber *string
	IsAccredited        bool
	CreatedAt           time.Time
}
