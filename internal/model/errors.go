package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken marks a registration with an already used email.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInstitutionExists marks a second institution registration for a user.
	ErrInstitutionExists = errors.New("institution already registered")
	// ErrInvalidPayload marks an empty or unusable content payload.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrStorageUnavailable marks an unreachable content store backend.
	ErrStorageUnavailable = errors.New("content store unavailable")
	// ErrAnchorUnavailable marks an anchoring call that could not be attempted.
	ErrAnchorUnavailable = errors.New("ledger anchor unavailable")
	// ErrCorruptRecord marks an unrecognized stored enum value. It indicates
	// data corruption or a schema/code mismatch and is always surfaced.
	ErrCorruptRecord = errors.New("corrupt record")
)

// ErrorCode classifies application errors for the transport boundary.
type ErrorCode string

const (
	CodeValidation     ErrorCode = "validation"
	CodeAuthentication ErrorCode = "authentication"
	CodeAuthorization  ErrorCode = "authorization"
	CodeNotFound       ErrorCode = "not_found"
	CodeConflict       ErrorCode = "conflict"
	CodeStorage        ErrorCode = "storage"
	CodeExternal       ErrorCode = "external"
	CodeInternal       ErrorCode = "internal"
)

// AppError carries a classified, caller-presentable error.
type AppError struct {
	Code    ErrorCode
	Message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewValidationError creates a user-correctable input error.
func NewValidationError(message string, err error) *AppError {
	return &AppError{Code: CodeValidation, Message: message, err: err}
}

// NewAuthenticationError creates an identity boundary error.
func NewAuthenticationError(message string) *AppError {
	return &AppError{Code: CodeAuthentication, Message: message}
}

// NewAuthorizationError creates a permission boundary error.
func NewAuthorizationError(message string) *AppError {
	return &AppError{Code: CodeAuthorization, Message: message}
}

// NewNotFoundError creates a missing-entity error.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewConflictError creates a duplicate-entity error.
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewStorageError creates a repository failure error.
func NewStorageError(message string, err error) *AppError {
	return &AppError{Code: CodeStorage, Message: message, err: err}
}

// NewExternalServiceError creates an error for an unreachable collaborator.
func NewExternalServiceError(message string, err error) *AppError {
	return &AppError{Code: CodeExternal, Message: message, err: err}
}

// NewInternalError creates an invariant violation error.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, err: err}
}
