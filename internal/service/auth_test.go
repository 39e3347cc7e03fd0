package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillpass/skillpass-server/internal/model"
	"github.com/skillpass/skillpass-server/internal/testutil"
	"github.com/skillpass/skillpass-server/internal/wallet"
)

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateToken(user model.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) ParseToken(token string) (model.Principal, error) {
	args := m.Called(token)
	return args.Get(0).(model.Principal), args.Error(1)
}

func registerParams() RegisterParams {
	return RegisterParams{
		Email:    "jane@example.com",
		Password: "s3cret",
		Name:     "Jane",
		Role:     model.RoleProfessional,
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		params    RegisterParams
		mockSetup func(*MockUserStore, *MockTokenManager)
		wantCode  model.ErrorCode
	}{
		{
			name:   "success",
			params: registerParams(),
			mockSetup: func(us *MockUserStore, tm *MockTokenManager) {
				us.On("GetByEmail", mock.Anything, "jane@example.com").Return(model.User{}, model.ErrNotFound)
				us.On("Create", mock.Anything, mock.AnythingOfType("model.User")).
					Return(model.User{ID: uuid.New(), Email: "jane@example.com", Role: model.RoleProfessional}, nil)
				tm.On("GenerateToken", mock.AnythingOfType("model.User")).Return("token", nil)
			},
		},
		{
			name: "missing fields",
			params: RegisterParams{
				Email: "jane@example.com",
			},
			mockSetup: func(*MockUserStore, *MockTokenManager) {},
			wantCode:  model.CodeValidation,
		},
		{
			name:   "email already registered",
			params: registerParams(),
			mockSetup: func(us *MockUserStore, tm *MockTokenManager) {
				us.On("GetByEmail", mock.Anything, "jane@example.com").Return(model.User{ID: uuid.New()}, nil)
			},
			wantCode: model.CodeConflict,
		},
		{
			name:   "concurrent registration loses the race",
			params: registerParams(),
			mockSetup: func(us *MockUserStore, tm *MockTokenManager) {
				us.On("GetByEmail", mock.Anything, "jane@example.com").Return(model.User{}, model.ErrNotFound)
				us.On("Create", mock.Anything, mock.AnythingOfType("model.User")).Return(model.User{}, model.ErrEmailTaken)
			},
			wantCode: model.CodeConflict,
		},
		{
			name:   "store failure",
			params: registerParams(),
			mockSetup: func(us *MockUserStore, tm *MockTokenManager) {
				us.On("GetByEmail", mock.Anything, "jane@example.com").Return(model.User{}, errors.New("connection reset"))
			},
			wantCode: model.CodeStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := &MockUserStore{}
			tm := &MockTokenManager{}
			tt.mockSetup(us, tm)

			svc := NewAuth(us, tm, testutil.MakeNoopLogger())
			user, token, err := svc.Register(context.Background(), tt.params)

			if tt.wantCode != "" {
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "token", token)
			assert.Equal(t, "jane@example.com", user.Email)
			us.AssertExpectations(t)
			tm.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_GeneratedUser(t *testing.T) {
	us := &MockUserStore{}
	tm := &MockTokenManager{}

	us.On("GetByEmail", mock.Anything, "jane@example.com").Return(model.User{}, model.ErrNotFound)

	var created model.User
	us.On("Create", mock.Anything, mock.AnythingOfType("model.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(model.User)
		}).
		Return(model.User{ID: uuid.New()}, nil)
	tm.On("GenerateToken", mock.AnythingOfType("model.User")).Return("token", nil)

	svc := NewAuth(us, tm, testutil.MakeNoopLogger())
	_, _, err := svc.Register(context.Background(), registerParams())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, strings.HasPrefix(created.WalletAddress, wallet.AddressPrefix))
	assert.False(t, created.IsVerified)
	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "s3cret", created.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret")))
}

func TestAuthService_Login(t *testing.T) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := model.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: string(passwordHash),
		Role:         model.RoleProfessional,
	}

	tests := []struct {
		name      string
		password  string
		mockSetup func(*MockUserStore, *MockTokenManager)
		wantCode  model.ErrorCode
	}{
		{
			name:     "success",
			password: "s3cret",
			mockSetup: func(us *MockUserStore, tm *MockTokenManager) {
				us.On("GetByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
				tm.On("GenerateToken", stored).Return("token", nil)
			},
		},
		{
			name:     "wrong password",
			password: "not-the-password",
			mockSetup: func(us *MockUserStore, tm *MockTokenManager) {
				us.On("GetByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
			},
			wantCode: model.CodeAuthentication,
		},
		{
			name:     "unknown email",
			password: "s3cret",
			mockSetup: func(us *MockUserStore, tm *MockTokenManager) {
				us.On("GetByEmail", mock.Anything, "jane@example.com").Return(model.User{}, model.ErrNotFound)
			},
			wantCode: model.CodeAuthentication,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			us := &MockUserStore{}
			tm := &MockTokenManager{}
			tt.mockSetup(us, tm)

			svc := NewAuth(us, tm, testutil.MakeNoopLogger())
			user, token, err := svc.Login(context.Background(), "jane@example.com", tt.password)

			if tt.wantCode != "" {
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
				assert.Equal(t, "Invalid credentials", appErr.Message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "token", token)
			assert.Equal(t, stored.ID, user.ID)
		})
	}
}

func TestAuthService_ResolveHolder(t *testing.T) {
	holderID := uuid.New()

	us := &MockUserStore{}
	us.On("GetByEmail", mock.Anything, "holder@example.com").Return(model.User{ID: holderID}, nil)
	us.On("GetByEmail", mock.Anything, "missing@example.com").Return(model.User{}, model.ErrNotFound)

	svc := NewAuth(us, &MockTokenManager{}, testutil.MakeNoopLogger())

	id, err := svc.ResolveHolder(context.Background(), "holder@example.com")
	require.NoError(t, err)
	assert.Equal(t, holderID, id)

	_, err = svc.ResolveHolder(context.Background(), "missing@example.com")
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, model.CodeNotFound, appErr.Code)
}
