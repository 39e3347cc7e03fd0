package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillpass/skillpass-server/internal/model"
	"github.com/skillpass/skillpass-server/internal/testutil"
)

func institutionParams() RegisterInstitutionParams {
	return RegisterInstitutionParams{
		Name:    "Example University",
		Type:    "university",
		Country: "KE",
	}
}

func TestInstitutionService_Register(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		params    RegisterInstitutionParams
		mockSetup func(*MockInstitutionStore)
		wantCode  model.ErrorCode
	}{
		{
			name:   "success",
			params: institutionParams(),
			mockSetup: func(is *MockInstitutionStore) {
				is.On("GetByUserID", mock.Anything, userID).Return(model.Institution{}, model.ErrNotFound)
				is.On("Create", mock.Anything, mock.AnythingOfType("model.Institution")).
					Return(model.Institution{ID: uuid.New(), UserID: userID, Name: "Example University"}, nil)
			},
		},
		{
			name: "missing fields",
			params: RegisterInstitutionParams{
				Name: "Example University",
			},
			mockSetup: func(*MockInstitutionStore) {},
			wantCode:  model.CodeValidation,
		},
		{
			name:   "already registered",
			params: institutionParams(),
			mockSetup: func(is *MockInstitutionStore) {
				is.On("GetByUserID", mock.Anything, userID).Return(model.Institution{ID: uuid.New()}, nil)
			},
			wantCode: model.CodeValidation,
		},
		{
			name:   "concurrent registration loses the race",
			params: institutionParams(),
			mockSetup: func(is *MockInstitutionStore) {
				is.On("GetByUserID", mock.Anything, userID).Return(model.Institution{}, model.ErrNotFound)
				is.On("Create", mock.Anything, mock.AnythingOfType("model.Institution")).
					Return(model.Institution{}, model.ErrInstitutionExists)
			},
			wantCode: model.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := &MockInstitutionStore{}
			tt.mockSetup(is)

			svc := NewInstitution(is, testutil.MakeNoopLogger())
			institution, err := svc.Register(context.Background(), userID, tt.params)

			if tt.wantCode != "" {
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, userID, institution.UserID)
			is.AssertExpectations(t)
		})
	}
}

func TestInstitutionService_Register_StartsUnaccredited(t *testing.T) {
	userID := uuid.New()

	is := &MockInstitutionStore{}
	is.On("GetByUserID", mock.Anything, userID).Return(model.Institution{}, model.ErrNotFound)

	var created model.Institution
	is.On("Create", mock.Anything, mock.AnythingOfType("model.Institution")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(model.Institution)
		}).
		Return(model.Institution{ID: uuid.New()}, nil)

	svc := NewInstitution(is, testutil.MakeNoopLogger())
	_, err := svc.Register(context.Background(), userID, institutionParams())
	require.NoError(t, err)

	assert.False(t, created.IsAccredited)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestInstitutionService_GetByUser(t *testing.T) {
	userID := uuid.New()
	stored := model.Institution{ID: uuid.New(), UserID: userID, Name: "Example University"}

	is := &MockInstitutionStore{}
	is.On("GetByUserID", mock.Anything, userID).Return(stored, nil)
	missing := uuid.New()
	is.On("GetByUserID", mock.Anything, missing).Return(model.Institution{}, model.ErrNotFound)

	svc := NewInstitution(is, testutil.MakeNoopLogger())

	institution, err := svc.GetByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, stored, institution)

	_, err = svc.GetByUser(context.Background(), missing)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, model.CodeNotFound, appErr.Code)
}

func TestInstitutionService_SetAccreditation(t *testing.T) {
	institutionID := uuid.New()

	is := &MockInstitutionStore{}
	is.On("UpdateAccreditation", mock.Anything, institutionID, true).Return(nil)
	missing := uuid.New()
	is.On("UpdateAccreditation", mock.Anything, missing, true).Return(model.ErrNotFound)

	svc := NewInstitution(is, testutil.MakeNoopLogger())

	require.NoError(t, svc.SetAccreditation(context.Background(), institutionID, true))

	err := svc.SetAccreditation(context.Background(), missing, true)
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, model.CodeNotFound, appErr.Code)
}
