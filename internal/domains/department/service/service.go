package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"medreg/config"
	"medreg/infras/otel"
	"medreg/internal/domains/department/model"
	"medreg/internal/domains/department/model/dto"
	"medreg/internal/domains/department/repository"
	"medreg/shared"
	"medreg/shared/cache"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/failure"
	"medreg/shared/timezone"
)

const (
	cacheGetDepartment    = "department:get"
	cacheGetAllDepartment = "department:gets"
	cacheCountDepartment  = "department:count"
)

var (
	ErrDepartmentNotFound = failure.NotFound("department not found")
	ErrDepartmentExists   = failure.Conflict("department name already in use")
)

type Department interface {
	Create(ctx context.Context, req dto.CreateDepartmentRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDepartmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.DepartmentResponse, error)
	Update(ctx context.Context, req dto.UpdateDepartmentRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Department
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Department, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Department {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func filterByName(name string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    name,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDepartmentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	existing, err := s.repo.Get(ctx, filterByName(req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to check department name")

		return fmt.Errorf("failed to check department name: %w", err)
	}

	if existing.ID != constant.Empty {
		if existing.Status == model.StatusActive {
			return ErrDepartmentExists // nolint:wrapcheck
		}

		// A soft-deleted department with the same name is reactivated
		// instead of inserting a second row.
		restored := map[string]any{
			model.FieldIntro:    req.Intro,
			model.FieldLocation: req.Location,
			model.FieldStatus:   model.StatusActive,
			constant.FieldModifiedAt: timezone.Now(),
		}

		if err = s.repo.Update(ctx, restored, shared.FilterByID(existing.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to restore department")

			return fmt.Errorf("failed to restore department: %w", err)
		}
	} else {
		if err = s.repo.Insert(ctx, req.ToModel()); err != nil {
			log.Error().Err(err).Msg("failed to create department")

			return fmt.Errorf("failed to create department: %w", err)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDepartment)
		shared.InvalidateCaches(c, s.cache, cacheCountDepartment)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDepartmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDepartment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for departments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count departments")

		return res, fmt.Errorf("failed to count departments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get departments")

		return res, fmt.Errorf("failed to get departments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save departments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountDepartment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count departments")

		return res, fmt.Errorf("failed to count departments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save department count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DepartmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDepartment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for department")

		return res, nil
	}

	department, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get department")

		return res, fmt.Errorf("failed to get department: %w", err)
	}

	if department.ID == constant.Empty || department.Status != model.StatusActive {
		return res, ErrDepartmentNotFound // nolint:wrapcheck
	}

	res.FromModel(department)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save department to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDepartmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateDepartmentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	department, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get department")

		return fmt.Errorf("failed to get department: %w", err)
	}

	if department.ID == constant.Empty || department.Status != model.StatusActive {
		return ErrDepartmentNotFound // nolint:wrapcheck
	}

	if req.Name != constant.Empty && req.Name != department.Name {
		taken, err := s.repo.Exist(ctx, filterByName(req.Name))
		if err != nil {
			log.Error().Err(err).Msg("failed to check department name")

			return fmt.Errorf("failed to check department name: %w", err)
		}

		if taken {
			return ErrDepartmentExists // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update department")

		return fmt.Errorf("failed to update department: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDepartment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete department from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDepartment)
		shared.InvalidateCaches(c, s.cache, cacheCountDepartment)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	department, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get department")

		return fmt.Errorf("failed to get department: %w", err)
	}

	if department.ID == constant.Empty || department.Status != model.StatusActive {
		return ErrDepartmentNotFound // nolint:wrapcheck
	}

	// Departments hold historical doctors and schedules, so removal is a
	// status flip rather than a row delete.
	deleted := map[string]any{
		model.FieldStatus:        model.StatusDeleted,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err := s.repo.Update(ctx, deleted, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete department")

		return fmt.Errorf("failed to delete department: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetDepartment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete department from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllDepartment)
		shared.InvalidateCaches(c, s.cache, cacheCountDepartment)
	}()

	return nil
}
