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
	adminMocks "medreg/internal/domains/admin/mocks"
	"medreg/internal/domains/admin/model"
	"medreg/internal/domains/admin/model/dto"
	"medreg/internal/domains/admin/service"
	"medreg/shared/password"
)

func activeAdmin(t *testing.T) model.Admin {
	t.Helper()

	hash, err := password.Hash("current-password")
	assert.NoError(t, err)

	return model.Admin{
		ID:           "admin-1",
		Username:     "frontdesk",
		PasswordHash: hash,
		Name:         "Front Desk",
		Status:       model.StatusActive,
	}
}

func TestAdminService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := adminMocks.NewMockAdmin(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.LoginAdminRequest
		setupMock func()
		wantErr   error
	}{
		{
			name: "successful login",
			req: dto.LoginAdminRequest{
				Username: "frontdesk",
				Password: "current-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeAdmin(t), nil)

				mockJWT.EXPECT().
					GenerateTokenPair("admin-1", "frontdesk", "admin").
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
						ExpiresIn:    900,
					}, nil)
			},
		},
		{
			name: "wrong password",
			req: dto.LoginAdminRequest{
				Username: "frontdesk",
				Password: "wrong-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeAdmin(t), nil)
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "unknown username",
			req: dto.LoginAdminRequest{
				Username: "nobody",
				Password: "current-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{}, nil)
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
			}
		})
	}
}

func TestAdminService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := adminMocks.NewMockAdmin(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful change",
			req: dto.ChangePasswordRequest{
				CurrentPassword: "current-password",
				NewPassword:     "brand-new-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeAdmin(t), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						hash, ok := fields["password_hash"].(string)
						assert.True(t, ok)
						assert.NoError(t, password.Verify("brand-new-password", hash))

						return nil
					})
			},
		},
		{
			name: "wrong current password",
			req: dto.ChangePasswordRequest{
				CurrentPassword: "wrong-password",
				NewPassword:     "brand-new-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeAdmin(t), nil)
			},
			wantErr: true,
		},
		{
			name: "admin not found",
			req: dto.ChangePasswordRequest{
				CurrentPassword: "current-password",
				NewPassword:     "brand-new-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{}, nil)
			},
			wantErr: true,
		},
		{
			name: "lookup error",
			req: dto.ChangePasswordRequest{
				CurrentPassword: "current-password",
				NewPassword:     "brand-new-password",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ChangePassword(context.Background(), tt.req, "admin-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
