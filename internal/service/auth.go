package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillpass/skillpass-server/internal/logger"
	"github.com/skillpass/skillpass-server/internal/model"
	"github.com/skillpass/skillpass-server/internal/wallet"
)

// Auth registers users and exchanges credentials for bearer tokens.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(userStore model.UserStore, tokenManager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// RegisterParams contains inputs for user registration.
type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Role     model.UserRole
}

// Register creates a user with a generated wallet address and returns the
// user along with a bearer token. The role is fixed at registration.
func (s *Auth) Register(ctx context.Context, params RegisterParams) (model.User, string, error) {
	if params.Email == "" || params.Password == "" || params.Name == "" {
		return model.User{}, "", model.NewValidationError("All fields are required", nil)
	}

	_, err := s.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		return model.User{}, "", model.NewConflictError("User already exists")
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", model.NewStorageError("failed to check existing user", err)
	}

	walletAddress, err := wallet.NewAddress()
	if err != nil {
		return model.User{}, "", model.NewInternalError("failed to generate wallet address", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", model.NewInternalError("failed to hash password", err)
	}

	user := model.User{
		ID:            uuid.New(),
		WalletAddress: walletAddress,
		Email:         params.Email,
		PasswordHash:  string(passwordHash),
		Name:          params.Name,
		Role:          params.Role,
		IsVerified:    false,
	}

	created, err := s.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return model.User{}, "", model.NewConflictError("User already exists")
		}
		return model.User{}, "", model.NewStorageError("failed to create user", err)
	}

	token, err := s.tokenManager.GenerateToken(created)
	if err != nil {
		return model.User{}, "", model.NewInternalError("failed to generate token", err)
	}

	s.logger.Info("user registered", "user_id", created.ID, "role", created.Role)

	return created, token, nil
}

// Login verifies email and password and returns the user with a bearer token.
func (s *Auth) Login(ctx context.Context, email, password string) (model.User, string, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", model.NewAuthenticationError("Invalid credentials")
	}
	if err != nil {
		return model.User{}, "", model.NewStorageError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, "", model.NewAuthenticationError("Invalid credentials")
	}

	token, err := s.tokenManager.GenerateToken(user)
	if err != nil {
		return model.User{}, "", model.NewInternalError("failed to generate token", err)
	}

	return user, token, nil
}

// ResolveHolder maps a holder email to the holder's user id for the issuance
// boundary.
func (s *Auth) ResolveHolder(ctx context.Context, email string) (uuid.UUID, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return uuid.Nil, model.NewNotFoundError("Holder not found")
	}
	if err != nil {
		return uuid.Nil, model.NewStorageError(fmt.Sprintf("failed to resolve holder %s", email), err)
	}

	return user.ID, nil
}
