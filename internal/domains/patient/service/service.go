package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"medreg/config"
	"medreg/infras/jwt"
	"medreg/infras/otel"
	"medreg/internal/domains/patient/model"
	"medreg/internal/domains/patient/model/dto"
	"medreg/internal/domains/patient/repository"
	"medreg/shared"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/failure"
	"medreg/shared/password"
)

var (
	ErrPatientNotFound    = failure.NotFound("patient not found")
	ErrPatientExists      = failure.Conflict("id card or phone already registered")
	ErrInvalidCredentials = failure.BadRequestFromString("invalid id card number or password")
)

type Patient interface {
	Register(ctx context.Context, req dto.RegisterPatientRequest) error
	Login(ctx context.Context, req dto.LoginPatientRequest) (dto.LoginPatientResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginPatientResponse, error)
	Get(ctx context.Context, id string) (dto.PatientResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPatientsResponse, error)
	Update(ctx context.Context, req dto.UpdatePatientRequest, id string) error
}

type serviceImpl struct {
	repo       repository.Patient
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(repo repository.Patient, cfg *config.Config, otel otel.Otel, jwtService jwt.JWT) Patient {
	return &serviceImpl{
		repo:       repo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwtService,
	}
}

func filterByIDCard(idCardNo string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIDCardNo,
				Operator: gDto.FilterOperatorEq,
				Value:    idCardNo,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterPatientRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	taken := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIDCardNo,
				Operator: gDto.FilterOperatorEq,
				Value:    req.IDCardNo,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldPhone,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Phone,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, taken)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if patient exists")

		return fmt.Errorf("failed to check if patient exists: %w", err)
	}

	if exists {
		return ErrPatientExists // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.repo.Insert(ctx, req.ToModel(hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create patient")

		return fmt.Errorf("failed to create patient: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginPatientRequest) (res dto.LoginPatientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	patient, err := s.repo.Get(ctx, filterByIDCard(req.IDCardNo))
	if err != nil {
		log.Warn().Msg("login attempt with non-existent id card number")

		return res, ErrInvalidCredentials // nolint:wrapcheck
	}

	if patient.ID == constant.Empty || patient.Status != model.StatusActive {
		return res, ErrInvalidCredentials // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, patient.PasswordHash); err != nil {
		log.Warn().Msg("login attempt with wrong password")

		return res, ErrInvalidCredentials // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(patient.ID, patient.IDCardNo, constant.RolePatient)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginPatientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PatientResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	patient, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get patient")

		return res, fmt.Errorf("failed to get patient: %w", err)
	}

	if patient.ID == constant.Empty || patient.Status != model.StatusActive {
		return res, ErrPatientNotFound // nolint:wrapcheck
	}

	res.FromModel(patient)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPatientsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count patients")

		return res, fmt.Errorf("failed to count patients: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get patients")

		return res, fmt.Errorf("failed to get patients: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePatientRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdatePatientRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	patient, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get patient")

		return fmt.Errorf("failed to get patient: %w", err)
	}

	if patient.ID == constant.Empty || patient.Status != model.StatusActive {
		return ErrPatientNotFound // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req)

	if req.BirthDate != constant.Empty {
		birthDate, err := time.Parse(constant.WorkDateFormat, req.BirthDate)
		if err != nil {
			return failure.BadRequestFromString("invalid birth date format") // nolint:wrapcheck
		}

		updatedFields[model.FieldBirthDate] = birthDate
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update patient")

		return fmt.Errorf("failed to update patient: %w", err)
	}

	return nil
}
