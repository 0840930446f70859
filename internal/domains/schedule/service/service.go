package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"medreg/config"
	"medreg/infras/otel"
	doctorModel "medreg/internal/domains/doctor/model"
	doctorRepo "medreg/internal/domains/doctor/repository"
	regRepo "medreg/internal/domains/registration/repository"
	"medreg/internal/domains/schedule/model"
	"medreg/internal/domains/schedule/model/dto"
	"medreg/internal/domains/schedule/repository"
	"medreg/shared"
	"medreg/shared/cache"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/failure"
	"medreg/shared/timezone"
)

const (
	cacheGetSchedule    = "schedule:get"
	cacheGetAllSchedule = "schedule:gets"
	cacheCountSchedule  = "schedule:count"
)

var (
	ErrScheduleNotFound   = failure.NotFound("schedule not found")
	ErrScheduleExists     = failure.Conflict("schedule already exists for this doctor, date and slot")
	ErrQuotaBelowOccupied = failure.BadRequestFromString("total quota cannot be lower than the number of occupied slots")
)

type Schedule interface {
	Create(ctx context.Context, req dto.CreateScheduleRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSchedulesResponse, error)
	GetAvailable(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSchedulesResponse, error)
	GetDoctorWeek(ctx context.Context, doctorID string, from string) (dto.GetSchedulesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ScheduleResponse, error)
	Update(ctx context.Context, req dto.UpdateScheduleRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Schedule
	doctorRepo doctorRepo.Doctor
	regRepo    regRepo.Registration
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Schedule, doctorRepo doctorRepo.Doctor, regRepo regRepo.Registration, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Schedule {
	return &serviceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		regRepo:    regRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) checkDoctor(ctx context.Context, doctorID string) error {
	doctor, err := s.doctorRepo.Get(ctx, shared.FilterByID(doctorID, doctorModel.FieldID, doctorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check doctor")

		return fmt.Errorf("failed to check doctor: %w", err)
	}

	if doctor.ID == constant.Empty || doctor.Status != doctorModel.StatusActive {
		return failure.BadRequestFromString("doctor does not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheGetAllSchedule)
	shared.InvalidateCaches(c, s.cache, cacheCountSchedule)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateScheduleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.checkDoctor(ctx, req.DoctorID); err != nil {
		return err
	}

	schedule, err := req.ToModel()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse schedule request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid work date format: %v", err)) // nolint:wrapcheck
	}

	existing, err := s.repo.FindByDoctorDateSlot(ctx, schedule.DoctorID, schedule.WorkDate, schedule.TimeSlot)
	if err != nil {
		log.Error().Err(err).Msg("failed to find existing schedule")

		return fmt.Errorf("failed to find existing schedule: %w", err)
	}

	if existing.ID != constant.Empty {
		if existing.Status == model.StatusActive {
			return ErrScheduleExists // nolint:wrapcheck
		}

		return s.restore(ctx, existing, req)
	}

	if err = s.repo.Insert(ctx, schedule); err != nil {
		log.Error().Err(err).Msg("failed to create schedule")

		return fmt.Errorf("failed to create schedule: %w", err)
	}

	go s.invalidateListCaches(ctx)

	return nil
}

// restore reactivates a soft-deleted schedule. Registrations taken before
// the delete still count against the new quota.
func (s *serviceImpl) restore(ctx context.Context, existing model.Schedule, req dto.CreateScheduleRequest) error {
	occupied, err := s.regRepo.CountOccupiedBySchedule(ctx, existing.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to count occupied slots")

		return fmt.Errorf("failed to count occupied slots: %w", err)
	}

	if req.TotalQuota < occupied {
		return ErrQuotaBelowOccupied // nolint:wrapcheck
	}

	restored := map[string]any{
		model.FieldTotalQuota:     req.TotalQuota,
		model.FieldRemainingQuota: req.TotalQuota - occupied,
		model.FieldFee:            req.Fee,
		model.FieldStatus:         model.StatusActive,
		constant.FieldModifiedAt:  timezone.Now(),
	}

	if err := s.repo.Update(ctx, restored, shared.FilterByID(existing.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to restore schedule")

		return fmt.Errorf("failed to restore schedule: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSchedule, existing.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete schedule from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSchedule)
		shared.InvalidateCaches(c, s.cache, cacheCountSchedule)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSchedulesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSchedule, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedules")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count schedules")

		return res, fmt.Errorf("failed to count schedules: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedules")

		return res, fmt.Errorf("failed to get schedules: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedules to cache")
		}
	}()

	return res, nil
}

// GetAvailable narrows the listing to active schedules with quota left.
func (s *serviceImpl) GetAvailable(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSchedulesResponse, err error) {
	available := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRemainingQuota,
				Value:    1,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusActive,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	if len(filter.Filters) > 0 {
		available.Filters = append(available.Filters, filter)
	}

	return s.GetAll(ctx, req, available)
}

// GetDoctorWeek lists one doctor's active schedules for the seven days
// starting at from.
func (s *serviceImpl) GetDoctorWeek(ctx context.Context, doctorID string, from string) (res dto.GetSchedulesResponse, err error) {
	fromDate, err := timezone.Parse(constant.WorkDateFormat, from)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDoctorID,
				Value:    doctorID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "work_date_from",
				Field:    model.FieldWorkDate,
				Value:    fromDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "work_date_to",
				Field:    model.FieldWorkDate,
				Value:    fromDate.AddDate(0, 0, 6),
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusActive,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		Page:    constant.DefaultValuePage,
		Limit:   constant.MaxValueLimit,
		SortBy:  model.FieldWorkDate,
		SortDir: gDto.SortDirAsc,
	}

	return s.GetAll(ctx, params, filter)
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSchedule, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count schedules")

		return res, fmt.Errorf("failed to count schedules: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSchedule, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedule")

		return res, nil
	}

	schedule, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return res, fmt.Errorf("failed to get schedule: %w", err)
	}

	if schedule.ID == constant.Empty || schedule.Status != model.StatusActive {
		return res, ErrScheduleNotFound // nolint:wrapcheck
	}

	res.FromModel(schedule)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateScheduleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateScheduleRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	schedule, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return fmt.Errorf("failed to get schedule: %w", err)
	}

	if schedule.ID == constant.Empty || schedule.Status != model.StatusActive {
		return ErrScheduleNotFound // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
	}

	if req.TotalQuota != 0 {
		occupied, err := s.regRepo.CountOccupiedBySchedule(ctx, schedule.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to count occupied slots")

			return fmt.Errorf("failed to count occupied slots: %w", err)
		}

		if req.TotalQuota < occupied {
			return ErrQuotaBelowOccupied // nolint:wrapcheck
		}

		updatedFields[model.FieldTotalQuota] = req.TotalQuota
		updatedFields[model.FieldRemainingQuota] = req.TotalQuota - occupied
	}

	if req.Fee != 0 {
		updatedFields[model.FieldFee] = req.Fee
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update schedule")

		return fmt.Errorf("failed to update schedule: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSchedule, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete schedule from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSchedule)
		shared.InvalidateCaches(c, s.cache, cacheCountSchedule)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	schedule, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return fmt.Errorf("failed to get schedule: %w", err)
	}

	if schedule.ID == constant.Empty || schedule.Status != model.StatusActive {
		return ErrScheduleNotFound // nolint:wrapcheck
	}

	deleted := map[string]any{
		model.FieldStatus:        model.StatusDeleted,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err := s.repo.Update(ctx, deleted, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete schedule")

		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSchedule, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete schedule from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSchedule)
		shared.InvalidateCaches(c, s.cache, cacheCountSchedule)
	}()

	return nil
}
