package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered principal.
type User struct {
	ID            uuid.UUID
	WalletAddress string
	Email         string
	PasswordHash  string
	Name          string
	Role          UserRole
	IsVerified    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserRole enumerates principal roles. Fixed at registration.
type UserRole string

const (
	// RoleProfessional holds credentials.
	RoleProfessional UserRole = "professional"
	// RoleInstitution issues and revokes credentials.
	RoleInstitution UserRole = "institution"
	// RoleEmployer verifies credentials.
	RoleEmployer UserRole = "employer"
)

// ParseUserRole converts a string into a UserRole.
// An unrecognized value is an error, never defaulted.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleProfessional, RoleInstitution, RoleEmployer:
		return UserRole(s), nil
	default:
		return "", fmt.Errorf("unknown user role %q", s)
	}
}

// Principal identifies an authenticated caller and its role.
type Principal struct {
	UserID uuid.UUID
	Role   UserRole
}
