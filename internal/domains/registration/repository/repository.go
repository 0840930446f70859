package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"medreg/infras/otel"
	"medreg/infras/postgres"
	"medreg/internal/domains/registration/model"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/logger"
	gRepo "medreg/shared/repository"
)

// Insert conflicts, told apart by the violated constraint so the caller can
// decide between regenerating identifiers and giving up.
var (
	ErrQueueNoConflict = errors.New("queue number already taken")
	ErrRegNoConflict   = errors.New("registration number already taken")
	ErrActiveDuplicate = errors.New("patient already has an active registration for this schedule")
)

type Registration interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Registration) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RegistrationDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RegistrationDetail, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	TransitionStatus(ctx context.Context, registrationID, fromStatus, toStatus string) (int64, error)
	TransitionStatusTx(ctx context.Context, tx *sqlx.Tx, registrationID, fromStatus, toStatus string) (int64, error)
	MaxQueueNoTx(ctx context.Context, tx *sqlx.Tx, scheduleID string) (int, error)
	MaxRegSeqByDateTx(ctx context.Context, tx *sqlx.Tx, prefix string) (int, error)
	ExistActiveByPatientAndScheduleTx(ctx context.Context, tx *sqlx.Tx, patientID, scheduleID string) (bool, error)
	CountOccupiedBySchedule(ctx context.Context, scheduleID string) (int, error)
	CountByStatus(ctx context.Context) ([]model.StatisticsByStatus, error)
	SumFeeNonCancelled(ctx context.Context) (float64, error)
	CountByDepartment(ctx context.Context) ([]model.StatisticsByDepartment, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.RegistrationDetail]
	base gRepo.Repository[model.Registration]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Registration {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RegistrationDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		base:       gRepo.NewRepository[model.Registration](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// conflictFromPq maps a unique violation to its sentinel, or nil when the
// error is not a unique violation on a known constraint.
func conflictFromPq(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != constant.PqErrorCodeUniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case model.ConstraintScheduleQueue:
		return ErrQueueNoConflict
	case model.ConstraintRegNo:
		return ErrRegNoConflict
	case model.ConstraintPatientScheduleActive:
		return ErrActiveDuplicate
	default:
		return nil
	}
}

// InsertTx inserts inside a savepoint so a unique violation does not abort
// the enclosing transaction and the caller can retry or compensate in it.
func (repo *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, registration model.Registration) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".registration.InsertTx")
	defer scope.End()

	if _, err = tx.ExecContext(ctx, "SAVEPOINT registration_insert"); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to create savepoint: %w", err)
	}

	query := `INSERT INTO registrations
		(registration_id, reg_no, patient_id, schedule_id, work_date, time_slot, fee, queue_no, status, created_at, modified_at)
		VALUES (:registration_id, :reg_no, :patient_id, :schedule_id, :work_date, :time_slot, :fee, :queue_no, :status, :created_at, :modified_at)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err = tx.NamedExecContext(ctx, query, registration)
	if err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT registration_insert"); rbErr != nil {
			logger.ErrorWithStack(rbErr)
			scope.TraceError(rbErr)

			return fmt.Errorf("failed to roll back to savepoint: %w", rbErr)
		}

		if conflict := conflictFromPq(err); conflict != nil {
			return conflict // nolint:wrapcheck
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert registration: %w", err)
	}

	if _, err = tx.ExecContext(ctx, "RELEASE SAVEPOINT registration_insert"); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to release savepoint: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) transitionStatus(ctx context.Context, exec sqlx.ExecerContext, registrationID, fromStatus, toStatus string) (int64, error) {
	query := `UPDATE registrations
		SET status = $1, modified_at = NOW()
		WHERE registration_id = $2 AND status = $3`

	result, err := exec.ExecContext(ctx, query, toStatus, registrationID, fromStatus)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to transition registration status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to read transition result: %w", err)
	}

	return affected, nil
}

// TransitionStatus moves a registration between statuses only when it is
// still in fromStatus. Zero affected rows means the record moved first.
func (repo *repositoryImpl) TransitionStatus(ctx context.Context, registrationID, fromStatus, toStatus string) (affected int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".registration.TransitionStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	return repo.transitionStatus(ctx, repo.db.Write, registrationID, fromStatus, toStatus)
}

func (repo *repositoryImpl) TransitionStatusTx(ctx context.Context, tx *sqlx.Tx, registrationID, fromStatus, toStatus string) (affected int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".registration.TransitionStatusTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	return repo.transitionStatus(ctx, tx, registrationID, fromStatus, toStatus)
}

func (repo *repositoryImpl) MaxQueueNoTx(ctx context.Context, tx *sqlx.Tx, scheduleID string) (maxQueueNo int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".registration.MaxQueueNoTx")
	defer scope.End()

	query := "SELECT COALESCE(MAX(queue_no), 0) FROM registrations WHERE schedule_id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.GetContext(ctx, &maxQueueNo, query, scheduleID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to get max queue number: %w", err)
	}

	return maxQueueNo, nil
}

// MaxRegSeqByDateTx reads the highest sequence already issued under a day
// prefix by parsing the trailing digits of the registration number.
func (repo *repositoryImpl) MaxRegSeqByDateTx(ctx context.Context, tx *sqlx.Tx, prefix string) (maxSeq int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".registration.MaxRegSeqByDateTx")
	defer scope.End()

	query := fmt.Sprintf(`SELECT COALESCE(MAX(CAST(RIGHT(reg_no, %d) AS INTEGER)), 0)
		FROM registrations WHERE reg_no LIKE $1 || '%%'`, constant.RegNoSeqDigits)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.GetContext(ctx, &maxSeq, query, prefix); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to get max registration sequence: %w", err)
	}

	return maxSeq, nil
}

func (repo *repositoryImpl) ExistActiveByPatientAndScheduleTx(ctx context.Context, tx *sqlx.Tx, patientID, scheduleID string) (exists bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".registration.ExistActiveByPatientAndScheduleTx")
	defer scope.End()

	query := `SELECT EXISTS (SELECT 1 FROM registrations
		WHERE patient_id = $1 AND schedule_id = $2 AND status = $3)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.GetContext(ctx, &exists, query, patientID, scheduleID, constant.StatusBooked); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check active registration: %w", err)
	}

	return exists, nil
}

// CountOccupiedBySchedule counts registrations that consumed quota and never
// gave it back, i.e. everything except cancellations.
func (repo *repositoryImpl) CountOccupiedBySchedule(ctx context.Context, scheduleID string) (occupied int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".registration.CountOccupiedBySchedule")
	defer scope.End()

	query := `SELECT COUNT(*) FROM registrations
		WHERE schedule_id = $1 AND status IN ($2, $3)`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.GetContext(ctx, &occupied, query, scheduleID, constant.StatusBooked, constant.StatusFinished); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count occupied slots: %w", err)
	}

	return occupied, nil
}

func (repo *repositoryImpl) CountByStatus(ctx context.Context) (rows []model.StatisticsByStatus, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".registration.CountByStatus")
	defer scope.End()

	query := "SELECT status, COUNT(*) AS total FROM registrations GROUP BY status"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &rows, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count registrations by status: %w", err)
	}

	return rows, nil
}

func (repo *repositoryImpl) SumFeeNonCancelled(ctx context.Context) (totalFee float64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".registration.SumFeeNonCancelled")
	defer scope.End()

	query := "SELECT COALESCE(SUM(fee), 0) FROM registrations WHERE status != $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.GetContext(ctx, &totalFee, query, constant.StatusCancelled); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum registration fees: %w", err)
	}

	return totalFee, nil
}

func (repo *repositoryImpl) CountByDepartment(ctx context.Context) (rows []model.StatisticsByDepartment, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".registration.CountByDepartment")
	defer scope.End()

	query := `SELECT departments.department_id, departments.name AS department_name,
			COUNT(*) AS total, COALESCE(SUM(registrations.fee), 0) AS total_fee
		FROM registrations
		JOIN schedules ON schedules.schedule_id = registrations.schedule_id
		JOIN doctors ON doctors.doctor_id = schedules.doctor_id
		JOIN departments ON departments.department_id = doctors.department_id
		WHERE registrations.status != $1
		GROUP BY departments.department_id, departments.name
		ORDER BY total DESC`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &rows, query, constant.StatusCancelled); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count registrations by department: %w", err)
	}

	return rows, nil
}
