package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"medreg/config"
	"medreg/infras/kafka"
	"medreg/infras/otel"
	"medreg/infras/postgres"
	"medreg/internal/domains/registration/model"
	"medreg/internal/domains/registration/model/dto"
	"medreg/internal/domains/registration/repository"
	schedModel "medreg/internal/domains/schedule/model"
	schedRepo "medreg/internal/domains/schedule/repository"
	"medreg/shared"
	"medreg/shared/cache"
	"medreg/shared/clock"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/failure"
	gModel "medreg/shared/model"
	"medreg/shared/timezone"
)

const (
	cacheGetRegistration    = "registration:get"
	cacheGetAllRegistration = "registration:gets"
	cacheCountRegistration  = "registration:count"
	cacheStatistics         = "registration:stats"
)

const (
	eventRegistrationCreated   = "registration.created"
	eventRegistrationCancelled = "registration.cancelled"
	eventRegistrationFinished  = "registration.finished"
)

var (
	ErrScheduleNotFound      = failure.NotFound("schedule not found")
	ErrScheduleFull          = failure.Conflict("schedule has no remaining quota")
	ErrScheduleInactive      = failure.BadRequestFromString("schedule is not open for registration")
	ErrDuplicateRegistration = failure.Conflict("patient already has an active registration for this schedule")
	ErrSystemBusy            = failure.Unavailable("registration is busy, please retry")
	ErrRegistrationNotFound  = failure.NotFound("registration not found")
	ErrInvalidStatus         = failure.Conflict("registration is not in a modifiable status")
	ErrCancelWindowClosed    = failure.BadRequestFromString("cancellation closes one hour before the visit")

	// ErrConcurrentModification means another actor won the race on the
	// same status transition. No capacity compensation happens for the
	// loser.
	ErrConcurrentModification = failure.Conflict("registration was modified concurrently")
)

type Registration interface {
	Create(ctx context.Context, req dto.CreateRegistrationRequest) (dto.RegistrationResponse, error)
	Cancel(ctx context.Context, id string) error
	Finish(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.RegistrationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRegistrationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetByPatient(ctx context.Context, patientID string, req gDto.QueryParams) (dto.GetRegistrationsResponse, error)
	Statistics(ctx context.Context) (dto.StatisticsResponse, error)
}

type serviceImpl struct {
	repo      repository.Registration
	schedRepo schedRepo.Schedule
	db        postgres.TxRunner
	gen       identifierGenerator
	clock     clock.Clock
	kafka     kafka.Client
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Registration,
	schedRepo schedRepo.Schedule,
	db postgres.TxRunner,
	clk clock.Clock,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Registration {
	return &serviceImpl{
		repo:      repo,
		schedRepo: schedRepo,
		db:        db,
		gen:       identifierGenerator{repo: repo, clock: clk},
		clock:     clk,
		kafka:     kafkaClient,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Create runs the whole reservation protocol in one transaction: validate
// the schedule, consume one unit of quota, assign identifiers and insert
// with a bounded retry. Domain failures after a successful reservation
// release the unit inside the same transaction and commit the compensated
// state; only infrastructure errors roll the transaction back.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRegistrationRequest) (res dto.RegistrationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	patientID := req.PatientID

	// Patients only ever book for themselves; the body's patient_id is an
	// admin-only field.
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RolePatient {
		userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
		if patientID != constant.Empty && patientID != userID {
			return res, failure.Forbidden("cannot register on behalf of another patient") // nolint:wrapcheck
		}

		patientID = userID
	} else if patientID == constant.Empty {
		patientID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	}

	if patientID == constant.Empty {
		return res, failure.BadRequestFromString("patient id is required") // nolint:wrapcheck
	}

	var (
		domainErr error
		created   model.Registration
	)

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		registration, err := s.createInTx(ctx, tx, patientID, req.ScheduleID)

		switch {
		case err == nil:
			created = registration

			return nil
		case isCreateOutcome(err):
			// Compensating release (when one was needed) already ran in
			// this transaction; commit it.
			domainErr = err

			return nil
		default:
			return err
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create registration")

		return res, fmt.Errorf("failed to create registration: %w", err)
	}

	if domainErr != nil {
		return res, domainErr // nolint:wrapcheck
	}

	res, err = s.Get(ctx, created.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load created registration")

		return res, fmt.Errorf("failed to load created registration: %w", err)
	}

	s.afterWrite(ctx, eventRegistrationCreated, created)

	return res, nil
}

// isCreateOutcome reports whether err is one of the create protocol's
// terminal domain results, which commit the transaction instead of rolling
// it back.
func isCreateOutcome(err error) bool {
	return errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrScheduleInactive) ||
		errors.Is(err, ErrScheduleFull) ||
		errors.Is(err, ErrDuplicateRegistration) ||
		errors.Is(err, ErrSystemBusy)
}

func (s *serviceImpl) createInTx(ctx context.Context, tx *sqlx.Tx, patientID, scheduleID string) (model.Registration, error) {
	var zero model.Registration

	schedule, err := s.schedRepo.GetByIDTx(ctx, tx, scheduleID)
	if err != nil {
		return zero, err
	}

	if schedule.ID == constant.Empty {
		return zero, ErrScheduleNotFound // nolint:wrapcheck
	}

	if schedule.RemainingQuota <= 0 {
		return zero, ErrScheduleFull // nolint:wrapcheck
	}

	if schedule.Status != schedModel.StatusActive {
		return zero, ErrScheduleInactive // nolint:wrapcheck
	}

	// Fast-path duplicate check. Not sufficient alone; the partial unique
	// index catches races at insert time.
	exists, err := s.repo.ExistActiveByPatientAndScheduleTx(ctx, tx, patientID, scheduleID)
	if err != nil {
		return zero, err
	}

	if exists {
		return zero, ErrDuplicateRegistration // nolint:wrapcheck
	}

	reserved, err := s.schedRepo.TryReserveTx(ctx, tx, scheduleID)
	if err != nil {
		return zero, err
	}

	if !reserved {
		return zero, ErrScheduleFull // nolint:wrapcheck
	}

	for attempt := 1; attempt <= constant.CreateMaxAttempts; attempt++ {
		regNo, err := s.gen.nextRegNo(ctx, tx)
		if err != nil {
			return zero, err
		}

		queueNo, err := s.gen.nextQueueNo(ctx, tx, scheduleID)
		if err != nil {
			return zero, err
		}

		registration := model.Registration{
			ID:         uuid.NewString(),
			RegNo:      regNo,
			PatientID:  patientID,
			ScheduleID: scheduleID,
			WorkDate:   schedule.WorkDate,
			TimeSlot:   schedule.TimeSlot,
			Fee:        schedule.Fee,
			QueueNo:    queueNo,
			Status:     constant.StatusBooked,
			Metadata: gModel.Metadata{
				CreatedAt:  s.clock.Now(),
				ModifiedAt: s.clock.Now(),
			},
		}

		err = s.repo.InsertTx(ctx, tx, registration)
		if err == nil {
			return registration, nil
		}

		if errors.Is(err, repository.ErrActiveDuplicate) {
			if relErr := s.schedRepo.ReleaseTx(ctx, tx, scheduleID); relErr != nil {
				return zero, fmt.Errorf("failed to release reserved quota: %w", relErr)
			}

			return zero, ErrDuplicateRegistration // nolint:wrapcheck
		}

		if errors.Is(err, repository.ErrQueueNoConflict) || errors.Is(err, repository.ErrRegNoConflict) {
			log.Warn().
				Err(err).
				Int("attempt", attempt).
				Str("scheduleID", scheduleID).
				Msg("identifier conflict on registration insert, regenerating")

			continue
		}

		return zero, err
	}

	if relErr := s.schedRepo.ReleaseTx(ctx, tx, scheduleID); relErr != nil {
		return zero, fmt.Errorf("failed to release reserved quota: %w", relErr)
	}

	return zero, ErrSystemBusy // nolint:wrapcheck
}

// Cancel flips a BOOKED registration to CANCELLED and restores its quota
// unit, but only while the cancellation window is still open. Restoration
// happens iff the conditional transition flipped the row.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	registration, err := s.loadOwned(ctx, id)
	if err != nil {
		return err
	}

	if !registration.Active() {
		return ErrInvalidStatus // nolint:wrapcheck
	}

	if s.clock.Now().After(visitInstant(registration.WorkDate, registration.TimeSlot).Add(-constant.CancelCutoff)) {
		return ErrCancelWindowClosed // nolint:wrapcheck
	}

	var domainErr error

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		affected, err := s.repo.TransitionStatusTx(ctx, tx, id, constant.StatusBooked, constant.StatusCancelled)
		if err != nil {
			return err
		}

		if affected == 0 {
			domainErr = ErrConcurrentModification

			return nil
		}

		return s.schedRepo.ReleaseTx(ctx, tx, registration.ScheduleID)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel registration")

		return fmt.Errorf("failed to cancel registration: %w", err)
	}

	if domainErr != nil {
		return domainErr // nolint:wrapcheck
	}

	s.afterWrite(ctx, eventRegistrationCancelled, registration.Registration)

	return nil
}

// Finish marks a BOOKED registration as attended. Capacity stays consumed.
func (s *serviceImpl) Finish(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Finish")
	defer scope.End()
	defer scope.TraceIfError(err)

	registration, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if !registration.Active() {
		return ErrInvalidStatus // nolint:wrapcheck
	}

	affected, err := s.repo.TransitionStatus(ctx, id, constant.StatusBooked, constant.StatusFinished)
	if err != nil {
		log.Error().Err(err).Msg("failed to finish registration")

		return fmt.Errorf("failed to finish registration: %w", err)
	}

	if affected == 0 {
		return ErrConcurrentModification // nolint:wrapcheck
	}

	s.afterWrite(ctx, eventRegistrationFinished, registration.Registration)

	return nil
}

// visitInstant resolves the wall-clock start of the visit from its date and
// half-day slot, in the application timezone.
func visitInstant(workDate time.Time, timeSlot string) time.Time {
	hour := constant.VisitHourMorning
	if timeSlot == constant.TimeSlotAfternoon {
		hour = constant.VisitHourAfternoon
	}

	return time.Date(workDate.Year(), workDate.Month(), workDate.Day(), hour, 0, 0, 0, timezone.GetLocation())
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.RegistrationDetail, error) {
	registration, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get registration")

		return registration, fmt.Errorf("failed to get registration: %w", err)
	}

	if registration.ID == constant.Empty {
		return registration, ErrRegistrationNotFound // nolint:wrapcheck
	}

	return registration, nil
}

// loadOwned loads a registration and rejects patients touching records that
// are not theirs. Admin callers skip the ownership check.
func (s *serviceImpl) loadOwned(ctx context.Context, id string) (model.RegistrationDetail, error) {
	registration, err := s.load(ctx, id)
	if err != nil {
		return registration, err
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if role == constant.RolePatient && registration.PatientID != userID {
		return registration, failure.Forbidden("registration does not belong to you") // nolint:wrapcheck
	}

	return registration, nil
}

// afterWrite publishes the lifecycle event and drops stale cache entries.
// Both are best-effort and never affect the caller's result.
func (s *serviceImpl) afterWrite(ctx context.Context, event string, registration model.Registration) {
	go func() {
		c := context.WithoutCancel(ctx)

		if s.cfg.Kafka.Enable {
			payload := dto.RegistrationEvent{
				Event:          event,
				RegistrationID: registration.ID,
				RegNo:          registration.RegNo,
				PatientID:      registration.PatientID,
				ScheduleID:     registration.ScheduleID,
				WorkDate:       registration.WorkDate.Format(constant.WorkDateFormat),
				TimeSlot:       registration.TimeSlot,
				QueueNo:        registration.QueueNo,
				Fee:            registration.Fee,
				OccurredAt:     s.clock.Now().Format(time.RFC3339),
			}

			message := kafka.Message{Key: registration.ID, Value: payload}
			if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.RegistrationEvents, message); err != nil {
				log.Error().Err(err).Str("event", event).Msg("failed to publish registration event")
			}
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRegistration, registration.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete registration from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRegistration)
		shared.InvalidateCaches(c, s.cache, cacheCountRegistration)
		shared.InvalidateCaches(c, s.cache, cacheStatistics)
		shared.InvalidateCaches(c, s.cache, "schedule:get")
		shared.InvalidateCaches(c, s.cache, "schedule:gets")
	}()
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RegistrationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRegistration, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for registration")

		return res, nil
	}

	registration, err := s.loadOwned(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(registration)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save registration to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRegistrationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRegistration, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for registrations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count registrations")

		return res, fmt.Errorf("failed to count registrations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get registrations")

		return res, fmt.Errorf("failed to get registrations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save registrations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRegistration, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count registrations")

		return res, fmt.Errorf("failed to count registrations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save registration count to cache")
		}
	}()

	return res, nil
}

// GetByPatient lists one patient's registrations, newest first.
func (s *serviceImpl) GetByPatient(ctx context.Context, patientID string, req gDto.QueryParams) (res dto.GetRegistrationsResponse, err error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPatientID,
				Value:    patientID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	if req.SortBy == constant.Empty {
		req.SortBy = constant.FieldCreatedAt
		req.SortDir = gDto.SortDirDesc
	}

	return s.GetAll(ctx, req, filter)
}

// Statistics builds the admin dashboard rollup: counts per status, total
// fee over non-cancelled registrations and a per-department breakdown.
func (s *serviceImpl) Statistics(ctx context.Context) (res dto.StatisticsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Statistics")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheStatistics, "summary")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count registrations by status")

		return res, fmt.Errorf("failed to count registrations by status: %w", err)
	}

	totalFee, err := s.repo.SumFeeNonCancelled(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum registration fees")

		return res, fmt.Errorf("failed to sum registration fees: %w", err)
	}

	byDept, err := s.repo.CountByDepartment(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count registrations by department")

		return res, fmt.Errorf("failed to count registrations by department: %w", err)
	}

	res.FromModels(byStatus, totalFee, byDept)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save statistics to cache")
		}
	}()

	return res, nil
}
