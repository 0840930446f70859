package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"medreg/config"
	"medreg/infras/jwt"
	"medreg/infras/otel"
	"medreg/internal/domains/admin/model"
	"medreg/internal/domains/admin/model/dto"
	"medreg/internal/domains/admin/repository"
	"medreg/shared"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/failure"
	"medreg/shared/password"
)

var (
	ErrInvalidCredentials = failure.BadRequestFromString("invalid username or password")
)

type Admin interface {
	Login(ctx context.Context, req dto.LoginAdminRequest) (dto.LoginAdminResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) error
}

type serviceImpl struct {
	repo       repository.Admin
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(repo repository.Admin, cfg *config.Config, otel otel.Otel, jwtService jwt.JWT) Admin {
	return &serviceImpl{
		repo:       repo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwtService,
	}
}

func filterByUsername(username string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    username,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginAdminRequest) (res dto.LoginAdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, err := s.repo.Get(ctx, filterByUsername(req.Username))
	if err != nil {
		log.Warn().Msg("login attempt with non-existent username")

		return res, ErrInvalidCredentials // nolint:wrapcheck
	}

	if admin.ID == constant.Empty || admin.Status != model.StatusActive {
		return res, ErrInvalidCredentials // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, admin.PasswordHash); err != nil {
		log.Warn().Msg("login attempt with wrong password")

		return res, ErrInvalidCredentials // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(admin.ID, admin.Username, constant.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(adminID, model.FieldID, model.TableName)

	admin, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return failure.NotFound("admin not found") // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, admin.PasswordHash); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatePassword := dto.UpdatePasswordRequest{PasswordHash: hashedPassword}
	updatedFields := shared.TransformFields(updatePassword)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
