package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"medreg/infras/otel"
	"medreg/infras/postgres"
	"medreg/internal/domains/schedule/model"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/logger"
	gRepo "medreg/shared/repository"
)

type Schedule interface {
	Insert(ctx context.Context, model model.Schedule) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ScheduleDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ScheduleDetail, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, scheduleID string) (model.Schedule, error)
	TryReserveTx(ctx context.Context, tx *sqlx.Tx, scheduleID string) (bool, error)
	ReleaseTx(ctx context.Context, tx *sqlx.Tx, scheduleID string) error
	Release(ctx context.Context, scheduleID string) error
	FindByDoctorDateSlot(ctx context.Context, doctorID string, workDate time.Time, timeSlot string) (model.Schedule, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ScheduleDetail]
	base gRepo.Repository[model.Schedule]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ScheduleDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		base:       gRepo.NewRepository[model.Schedule](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, model model.Schedule) error {
	return repo.base.Insert(ctx, model) //nolint:wrapcheck
}

func (repo *repositoryImpl) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	return repo.base.Update(ctx, req, filter) //nolint:wrapcheck
}

// GetByIDTx reads a schedule through the write transaction so the create
// protocol sees its own reservation.
func (repo *repositoryImpl) GetByIDTx(ctx context.Context, tx *sqlx.Tx, scheduleID string) (sched model.Schedule, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".schedule.GetByIDTx")
	defer scope.End()

	query := "SELECT * FROM schedules WHERE schedule_id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = tx.GetContext(ctx, &sched, query, scheduleID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Schedule{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}

	return sched, nil
}

// TryReserveTx consumes one unit of quota. The decrement and its guard are
// a single statement so concurrent callers cannot both take the last unit.
func (repo *repositoryImpl) TryReserveTx(ctx context.Context, tx *sqlx.Tx, scheduleID string) (reserved bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".schedule.TryReserveTx")
	defer scope.End()

	query := `UPDATE schedules
		SET remaining_quota = remaining_quota - 1, modified_at = NOW()
		WHERE schedule_id = $1 AND remaining_quota > 0 AND status = $2`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.ExecContext(ctx, query, scheduleID, model.StatusActive)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to reserve schedule quota: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read reserve result: %w", err)
	}

	return affected == 1, nil
}

func (repo *repositoryImpl) release(ctx context.Context, exec sqlx.ExecerContext, scheduleID string) error {
	query := `UPDATE schedules
		SET remaining_quota = remaining_quota + 1, modified_at = NOW()
		WHERE schedule_id = $1`

	result, err := exec.ExecContext(ctx, query, scheduleID)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to release schedule quota: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to read release result: %w", err)
	}

	if affected != 1 {
		return fmt.Errorf("failed to release schedule quota: schedule %s not found", scheduleID)
	}

	return nil
}

// ReleaseTx restores one unit of quota. Callers pair it 1:1 with a prior
// successful TryReserveTx or a cancelled registration.
func (repo *repositoryImpl) ReleaseTx(ctx context.Context, tx *sqlx.Tx, scheduleID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".schedule.ReleaseTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	return repo.release(ctx, tx, scheduleID)
}

func (repo *repositoryImpl) Release(ctx context.Context, scheduleID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".schedule.Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	return repo.release(ctx, repo.db.Write, scheduleID)
}

// FindByDoctorDateSlot looks up a schedule regardless of status, used to
// reactivate a soft-deleted row for the same doctor, date and slot.
func (repo *repositoryImpl) FindByDoctorDateSlot(ctx context.Context, doctorID string, workDate time.Time, timeSlot string) (sched model.Schedule, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".schedule.FindByDoctorDateSlot")
	defer scope.End()

	query := "SELECT * FROM schedules WHERE doctor_id = $1 AND work_date = $2 AND time_slot = $3"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &sched, query, doctorID, workDate, timeSlot)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Schedule{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.Schedule{}, fmt.Errorf("failed to find schedule: %w", err)
	}

	return sched, nil
}
