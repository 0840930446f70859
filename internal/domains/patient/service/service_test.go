package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"medreg/config"
	"medreg/infras/jwt"
	jwtMocks "medreg/infras/jwt/mocks"
	"medreg/infras/otel/mocks"
	patientMocks "medreg/internal/domains/patient/mocks"
	"medreg/internal/domains/patient/model"
	"medreg/internal/domains/patient/model/dto"
	"medreg/internal/domains/patient/service"
	"medreg/shared/password"
)

func activePatient(t *testing.T) model.Patient {
	t.Helper()

	hash, err := password.Hash("correct-password")
	assert.NoError(t, err)

	return model.Patient{
		ID:           "patient-1",
		Name:         "Test Patient",
		IDCardNo:     "110101199001011234",
		Phone:        "13800001111",
		PasswordHash: hash,
		Status:       model.StatusActive,
	}
}

func TestPatientService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := patientMocks.NewMockPatient(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockOtel, mockJWT)

	req := dto.RegisterPatientRequest{
		Name:     "Test Patient",
		IDCardNo: "110101199001011234",
		Phone:    "13800001111",
		Password: "correct-password",
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
		wantAny   bool
	}{
		{
			name: "successful registration",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, patient model.Patient) error {
						assert.NotEqual(t, req.Password, patient.PasswordHash)
						assert.NoError(t, password.Verify(req.Password, patient.PasswordHash))
						assert.Equal(t, model.StatusActive, patient.Status)

						return nil
					})
			},
		},
		{
			name: "id card or phone already taken",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: service.ErrPatientExists,
		},
		{
			name: "existence check error",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Register(context.Background(), req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestPatientService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := patientMocks.NewMockPatient(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.LoginPatientRequest
		setupMock func()
		wantErr   error
	}{
		{
			name: "successful login",
			req: dto.LoginPatientRequest{
				IDCardNo: "110101199001011234",
				Password: "correct-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activePatient(t), nil)

				mockJWT.EXPECT().
					GenerateTokenPair("patient-1", "110101199001011234", "patient").
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
						ExpiresIn:    900,
					}, nil)
			},
		},
		{
			name: "wrong password",
			req: dto.LoginPatientRequest{
				IDCardNo: "110101199001011234",
				Password: "wrong-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activePatient(t), nil)
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "unknown id card number",
			req: dto.LoginPatientRequest{
				IDCardNo: "999999999999999999",
				Password: "correct-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Patient{}, nil)
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "deactivated patient cannot log in",
			req: dto.LoginPatientRequest{
				IDCardNo: "110101199001011234",
				Password: "correct-password",
			},
			setupMock: func() {
				patient := activePatient(t)
				patient.Status = model.StatusDeleted

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(patient, nil)
			},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access-token", res.AccessToken)
				assert.Equal(t, "refresh-token", res.RefreshToken)
			}
		})
	}
}

func TestPatientService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := patientMocks.NewMockPatient(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockOtel, mockJWT)

	t.Run("successful refresh", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("valid-refresh-token").
			Return(&jwt.TokenPair{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
				ExpiresIn:    900,
			}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access-token", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("garbage").
			Return(nil, errors.New("token is malformed"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})

		assert.Error(t, err)
	})
}

func TestPatientService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := patientMocks.NewMockPatient(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.UpdatePatientRequest
		setupMock func()
		wantErr   error
		wantAny   bool
	}{
		{
			name: "successful update",
			req:  dto.UpdatePatientRequest{Phone: "13800002222"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activePatient(t), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:      "empty update request",
			req:       dto.UpdatePatientRequest{},
			setupMock: func() {},
			wantAny:   true,
		},
		{
			name: "patient not found",
			req:  dto.UpdatePatientRequest{Phone: "13800002222"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Patient{}, nil)
			},
			wantErr: service.ErrPatientNotFound,
		},
		{
			name: "invalid birth date format",
			req:  dto.UpdatePatientRequest{BirthDate: "01/02/1990"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activePatient(t), nil)
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(context.Background(), tt.req, "patient-1")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
