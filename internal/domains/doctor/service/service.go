package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"medreg/config"
	"medreg/infras/otel"
	deptModel "medreg/internal/domains/department/model"
	deptRepo "medreg/internal/domains/department/repository"
	"medreg/internal/domains/doctor/model"
	"medreg/internal/domains/doctor/model/dto"
	"medreg/internal/domains/doctor/repository"
	"medreg/shared"
	"medreg/shared/cache"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/failure"
	"medreg/shared/timezone"
)

const (
	cacheGetDoctor    = "doctor:get"
	cacheGetAllDoctor = "doctor:gets"
	cacheCountDoctor  = "doctor:count"
)

var (
	ErrDoctorNotFound = failure.NotFound("doctor not found")
)

type Doctor interface {
	Create(ctx context.Context, req dto.CreateDoctorRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDoctorsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.DoctorResponse, error)
	Update(ctx context.Context, req dto.UpdateDoctorRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Doctor
	deptRepo deptRepo.Department
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Doctor, deptRepo deptRepo.Department, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Doctor {
	return &serviceImpl{
		repo:     repo,
		deptRepo: deptRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) checkDepartment(ctx context.Context, departmentID string) error {
	department, err := s.deptRepo.Get(ctx, shared.FilterByID(departmentID, deptModel.FieldID, deptModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check department")

		return fmt.Errorf("failed to check department: %w", err)
	}

	if department.ID == constant.Empty || department.Status != deptModel.StatusActive {
		return failure.BadRequestFromString("department does not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDoctorRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.checkDepartment(ctx, req.DepartmentID); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel()); err != nil {
		log.Error().Err(err).Msg("failed to create doctor")

		return fmt.Errorf("failed to create doctor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDoctor)
		shared.InvalidateCaches(c, s.cache, cacheCountDoctor)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDoctorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDoctor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for doctors")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count doctors")

		return res, fmt.Errorf("failed to count doctors: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctors")

		return res, fmt.Errorf("failed to get doctors: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountDoctor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count doctors")

		return res, fmt.Errorf("failed to count doctors: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctor count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DoctorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDoctor, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for doctor")

		return res, nil
	}

	doctor, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor")

		return res, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctor.ID == constant.Empty || doctor.Status != model.StatusActive {
		return res, ErrDoctorNotFound // nolint:wrapcheck
	}

	res.FromModel(doctor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctor to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDoctorRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateDoctorRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	doctor, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor")

		return fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctor.ID == constant.Empty || doctor.Status != model.StatusActive {
		return ErrDoctorNotFound // nolint:wrapcheck
	}

	if req.DepartmentID != constant.Empty {
		if err = s.checkDepartment(ctx, req.DepartmentID); err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update doctor")

		return fmt.Errorf("failed to update doctor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDoctor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete doctor from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDoctor)
		shared.InvalidateCaches(c, s.cache, cacheCountDoctor)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	doctor, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor")

		return fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctor.ID == constant.Empty || doctor.Status != model.StatusActive {
		return ErrDoctorNotFound // nolint:wrapcheck
	}

	deleted := map[string]any{
		model.FieldStatus:        model.StatusDeleted,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err := s.repo.Update(ctx, deleted, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete doctor")

		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDoctor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete doctor from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDoctor)
		shared.InvalidateCaches(c, s.cache, cacheCountDoctor)
	}()

	return nil
}
