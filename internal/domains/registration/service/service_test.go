package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"medreg/config"
	kafkaMocks "medreg/infras/kafka/mocks"
	"medreg/infras/otel/mocks"
	regMocks "medreg/internal/domains/registration/mocks"
	"medreg/internal/domains/registration/model"
	"medreg/internal/domains/registration/model/dto"
	"medreg/internal/domains/registration/repository"
	"medreg/internal/domains/registration/service"
	schedModel "medreg/internal/domains/schedule/model"
	schedMocks "medreg/internal/domains/schedule/mocks"
	cacheMocks "medreg/shared/cache/mocks"
	"medreg/shared/clock"
	"medreg/shared/constant"
	"medreg/shared/failure"
	gModel "medreg/shared/model"
	"medreg/shared/timezone"
)

// fakeTxRunner drives the transactional closure without a database. The
// nil tx is opaque to the service because every repository call is mocked.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, timezone.GetLocation())

func activeSchedule(remaining int) schedModel.Schedule {
	return schedModel.Schedule{
		ID:             "schedule-1",
		DoctorID:       "doctor-1",
		WorkDate:       time.Date(2026, 3, 12, 0, 0, 0, 0, timezone.GetLocation()),
		TimeSlot:       constant.TimeSlotMorning,
		TotalQuota:     30,
		RemainingQuota: remaining,
		Fee:            50,
		Status:         schedModel.StatusActive,
	}
}

func bookedDetail(patientID string, workDate time.Time, timeSlot string) model.RegistrationDetail {
	return model.RegistrationDetail{
		Registration: model.Registration{
			ID:         "registration-1",
			RegNo:      "GH20260310000001",
			PatientID:  patientID,
			ScheduleID: "schedule-1",
			WorkDate:   workDate,
			TimeSlot:   timeSlot,
			Fee:        50,
			QueueNo:    1,
			Status:     constant.StatusBooked,
			Metadata: gModel.Metadata{
				CreatedAt:  testNow,
				ModifiedAt: testNow,
			},
		},
		PatientName:    "Test Patient",
		DoctorID:       "doctor-1",
		DoctorName:     "Dr. Test",
		DepartmentID:   "department-1",
		DepartmentName: "Cardiology",
	}
}

func TestRegistrationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := regMocks.NewMockRegistration(ctrl)
	mockSchedRepo := schedMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockSchedRepo, fakeTxRunner{}, clock.NewFixed(testNow), mockKafka, cfg, mockCache, mockOtel)

	expectAsyncInvalidation := func() {
		mockCache.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockCache.EXPECT().
			Clear(gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()
	}

	tests := []struct {
		name       string
		req        dto.CreateRegistrationRequest
		ctxRole    string
		ctxUserID  string
		setupMock  func()
		wantErr    error
		wantErrAny bool
		wantCode   int
		wantRegNo  string
	}{
		{
			name:      "successful creation",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			ctxUserID: "patient-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(activeSchedule(5), nil)

				mockRepo.EXPECT().
					ExistActiveByPatientAndScheduleTx(gomock.Any(), gomock.Any(), "patient-1", "schedule-1").
					Return(false, nil)

				mockSchedRepo.EXPECT().
					TryReserveTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(true, nil)

				mockRepo.EXPECT().
					MaxRegSeqByDateTx(gomock.Any(), gomock.Any(), "GH20260310").
					Return(0, nil)

				mockRepo.EXPECT().
					MaxQueueNoTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(0, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, registration model.Registration) error {
						assert.Equal(t, "GH20260310000001", registration.RegNo)
						assert.Equal(t, 1, registration.QueueNo)
						assert.Equal(t, constant.StatusBooked, registration.Status)
						assert.Equal(t, "patient-1", registration.PatientID)

						return nil
					})

				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-1", time.Date(2026, 3, 12, 0, 0, 0, 0, timezone.GetLocation()), constant.TimeSlotMorning), nil)

				expectAsyncInvalidation()
			},
			wantRegNo: "GH20260310000001",
		},
		{
			name:      "schedule not found",
			req:       dto.CreateRegistrationRequest{ScheduleID: "missing"},
			ctxUserID: "patient-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "missing").
					Return(schedModel.Schedule{}, nil)
			},
			wantErr: service.ErrScheduleNotFound,
		},
		{
			name:      "schedule inactive",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			ctxUserID: "patient-1",
			setupMock: func() {
				schedule := activeSchedule(5)
				schedule.Status = schedModel.StatusDeleted

				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(schedule, nil)
			},
			wantErr: service.ErrScheduleInactive,
		},
		{
			name:      "schedule already full",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			ctxUserID: "patient-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(activeSchedule(0), nil)
			},
			wantErr: service.ErrScheduleFull,
		},
		{
			name:      "active registration already exists",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			ctxUserID: "patient-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(activeSchedule(5), nil)

				mockRepo.EXPECT().
					ExistActiveByPatientAndScheduleTx(gomock.Any(), gomock.Any(), "patient-1", "schedule-1").
					Return(true, nil)
			},
			wantErr: service.ErrDuplicateRegistration,
		},
		{
			name:      "loses the last quota unit to a concurrent booking",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			ctxUserID: "patient-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(activeSchedule(1), nil)

				mockRepo.EXPECT().
					ExistActiveByPatientAndScheduleTx(gomock.Any(), gomock.Any(), "patient-1", "schedule-1").
					Return(false, nil)

				mockSchedRepo.EXPECT().
					TryReserveTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(false, nil)
			},
			wantErr: service.ErrScheduleFull,
		},
		{
			name:      "identifier conflict resolved on second attempt",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			ctxUserID: "patient-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(activeSchedule(5), nil)

				mockRepo.EXPECT().
					ExistActiveByPatientAndScheduleTx(gomock.Any(), gomock.Any(), "patient-1", "schedule-1").
					Return(false, nil)

				mockSchedRepo.EXPECT().
					TryReserveTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(true, nil)

				mockRepo.EXPECT().
					MaxRegSeqByDateTx(gomock.Any(), gomock.Any(), "GH20260310").
					Return(3, nil)

				mockRepo.EXPECT().
					MaxQueueNoTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(3, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("insert conflict: %w", repository.ErrQueueNoConflict))

				mockRepo.EXPECT().
					MaxRegSeqByDateTx(gomock.Any(), gomock.Any(), "GH20260310").
					Return(4, nil)

				mockRepo.EXPECT().
					MaxQueueNoTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(4, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, registration model.Registration) error {
						assert.Equal(t, "GH20260310000005", registration.RegNo)
						assert.Equal(t, 5, registration.QueueNo)

						return nil
					})

				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-1", time.Date(2026, 3, 12, 0, 0, 0, 0, timezone.GetLocation()), constant.TimeSlotMorning), nil)

				expectAsyncInvalidation()
			},
			wantRegNo: "GH20260310000001",
		},
		{
			name:      "identifier conflicts exhaust all attempts",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			ctxUserID: "patient-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(activeSchedule(5), nil)

				mockRepo.EXPECT().
					ExistActiveByPatientAndScheduleTx(gomock.Any(), gomock.Any(), "patient-1", "schedule-1").
					Return(false, nil)

				mockSchedRepo.EXPECT().
					TryReserveTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(true, nil)

				mockRepo.EXPECT().
					MaxRegSeqByDateTx(gomock.Any(), gomock.Any(), "GH20260310").
					Return(0, nil).
					Times(constant.CreateMaxAttempts)

				mockRepo.EXPECT().
					MaxQueueNoTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(0, nil).
					Times(constant.CreateMaxAttempts)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("insert conflict: %w", repository.ErrRegNoConflict)).
					Times(constant.CreateMaxAttempts)

				mockSchedRepo.EXPECT().
					ReleaseTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(nil).
					Times(1)
			},
			wantErr: service.ErrSystemBusy,
		},
		{
			name:      "duplicate surfaces at insert time",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			ctxUserID: "patient-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(activeSchedule(5), nil)

				mockRepo.EXPECT().
					ExistActiveByPatientAndScheduleTx(gomock.Any(), gomock.Any(), "patient-1", "schedule-1").
					Return(false, nil)

				mockSchedRepo.EXPECT().
					TryReserveTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(true, nil)

				mockRepo.EXPECT().
					MaxRegSeqByDateTx(gomock.Any(), gomock.Any(), "GH20260310").
					Return(0, nil)

				mockRepo.EXPECT().
					MaxQueueNoTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(0, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("insert conflict: %w", repository.ErrActiveDuplicate))

				mockSchedRepo.EXPECT().
					ReleaseTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(nil).
					Times(1)
			},
			wantErr: service.ErrDuplicateRegistration,
		},
		{
			name:      "patient cannot book on behalf of another patient",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1", PatientID: "patient-2"},
			ctxRole:   constant.RolePatient,
			ctxUserID: "patient-1",
			setupMock: func() {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "patient supplying their own id books for themselves",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1", PatientID: "patient-1"},
			ctxRole:   constant.RolePatient,
			ctxUserID: "patient-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(activeSchedule(5), nil)

				mockRepo.EXPECT().
					ExistActiveByPatientAndScheduleTx(gomock.Any(), gomock.Any(), "patient-1", "schedule-1").
					Return(false, nil)

				mockSchedRepo.EXPECT().
					TryReserveTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(true, nil)

				mockRepo.EXPECT().
					MaxRegSeqByDateTx(gomock.Any(), gomock.Any(), "GH20260310").
					Return(0, nil)

				mockRepo.EXPECT().
					MaxQueueNoTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(0, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, registration model.Registration) error {
						assert.Equal(t, "patient-1", registration.PatientID)

						return nil
					})

				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-1", time.Date(2026, 3, 12, 0, 0, 0, 0, timezone.GetLocation()), constant.TimeSlotMorning), nil)

				expectAsyncInvalidation()
			},
			wantRegNo: "GH20260310000001",
		},
		{
			name:      "admin books on a patient's behalf",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1", PatientID: "patient-2"},
			ctxRole:   constant.RoleAdmin,
			ctxUserID: "admin-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(activeSchedule(5), nil)

				mockRepo.EXPECT().
					ExistActiveByPatientAndScheduleTx(gomock.Any(), gomock.Any(), "patient-2", "schedule-1").
					Return(false, nil)

				mockSchedRepo.EXPECT().
					TryReserveTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(true, nil)

				mockRepo.EXPECT().
					MaxRegSeqByDateTx(gomock.Any(), gomock.Any(), "GH20260310").
					Return(0, nil)

				mockRepo.EXPECT().
					MaxQueueNoTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(0, nil)

				mockRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, registration model.Registration) error {
						assert.Equal(t, "patient-2", registration.PatientID)

						return nil
					})

				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-2", time.Date(2026, 3, 12, 0, 0, 0, 0, timezone.GetLocation()), constant.TimeSlotMorning), nil)

				expectAsyncInvalidation()
			},
			wantRegNo: "GH20260310000001",
		},
		{
			name:      "full wins over inactive when both apply",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			ctxUserID: "patient-1",
			setupMock: func() {
				schedule := activeSchedule(0)
				schedule.Status = schedModel.StatusDeleted

				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(schedule, nil)
			},
			wantErr: service.ErrScheduleFull,
		},
		{
			name:       "missing patient id",
			req:        dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			setupMock:  func() {},
			wantErrAny: true,
		},
		{
			name:      "infrastructure error rolls back",
			req:       dto.CreateRegistrationRequest{ScheduleID: "schedule-1"},
			ctxUserID: "patient-1",
			setupMock: func() {
				mockSchedRepo.EXPECT().
					GetByIDTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(schedModel.Schedule{}, errors.New("database error"))
			},
			wantErrAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			if tt.ctxUserID != "" {
				ctx = context.WithValue(ctx, constant.ContextKeyUserID, tt.ctxUserID)
			}
			if tt.ctxRole != "" {
				ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.ctxRole)
			}

			res, err := svc.Create(ctx, tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			case tt.wantErrAny:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.wantRegNo, res.RegNo)
				assert.Equal(t, constant.StatusBooked, res.Status)
			}
		})
	}
}

func TestRegistrationService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := regMocks.NewMockRegistration(ctrl)
	mockSchedRepo := schedMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockSchedRepo, fakeTxRunner{}, clock.NewFixed(testNow), mockKafka, cfg, mockCache, mockOtel)

	futureDate := time.Date(2026, 3, 12, 0, 0, 0, 0, timezone.GetLocation())
	// Exactly one hour before an afternoon visit on the same day: still open.
	edgeDate := time.Date(2026, 3, 10, 0, 0, 0, 0, timezone.GetLocation())

	tests := []struct {
		name       string
		ctxRole    string
		ctxUserID  string
		setupMock  func()
		wantErr    error
		wantErrAny bool
	}{
		{
			name:      "successful cancellation",
			ctxRole:   constant.RolePatient,
			ctxUserID: "patient-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-1", futureDate, constant.TimeSlotMorning), nil)

				mockRepo.EXPECT().
					TransitionStatusTx(gomock.Any(), gomock.Any(), "registration-1", constant.StatusBooked, constant.StatusCancelled).
					Return(int64(1), nil)

				mockSchedRepo.EXPECT().
					ReleaseTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:      "same-day afternoon visit is still cancellable in the morning",
			ctxRole:   constant.RolePatient,
			ctxUserID: "patient-1",
			setupMock: func() {
				// Visit at 14:00, clock fixed at 09:00. Cutoff instant is
				// 13:00, comfortably ahead.
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-1", edgeDate, constant.TimeSlotAfternoon), nil)

				mockRepo.EXPECT().
					TransitionStatusTx(gomock.Any(), gomock.Any(), "registration-1", constant.StatusBooked, constant.StatusCancelled).
					Return(int64(1), nil)

				mockSchedRepo.EXPECT().
					ReleaseTx(gomock.Any(), gomock.Any(), "schedule-1").
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name:      "window closed",
			ctxRole:   constant.RolePatient,
			ctxUserID: "patient-1",
			setupMock: func() {
				// Morning visit at 08:00 on the fixed clock's day; it is
				// already 09:00, so the window has passed.
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-1", edgeDate, constant.TimeSlotMorning), nil)
			},
			wantErr: service.ErrCancelWindowClosed,
		},
		{
			name:      "already cancelled",
			ctxRole:   constant.RolePatient,
			ctxUserID: "patient-1",
			setupMock: func() {
				detail := bookedDetail("patient-1", futureDate, constant.TimeSlotMorning)
				detail.Status = constant.StatusCancelled

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(detail, nil)
			},
			wantErr: service.ErrInvalidStatus,
		},
		{
			name:      "not the owner",
			ctxRole:   constant.RolePatient,
			ctxUserID: "patient-2",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-1", futureDate, constant.TimeSlotMorning), nil)
			},
			wantErrAny: true,
		},
		{
			name:      "concurrent transition wins, no quota restored",
			ctxRole:   constant.RoleAdmin,
			ctxUserID: "admin-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-1", futureDate, constant.TimeSlotMorning), nil)

				mockRepo.EXPECT().
					TransitionStatusTx(gomock.Any(), gomock.Any(), "registration-1", constant.StatusBooked, constant.StatusCancelled).
					Return(int64(0), nil)
			},
			wantErr: service.ErrConcurrentModification,
		},
		{
			name:      "registration not found",
			ctxRole:   constant.RolePatient,
			ctxUserID: "patient-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.RegistrationDetail{}, nil)
			},
			wantErr: service.ErrRegistrationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.ctxUserID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.ctxRole)

			err := svc.Cancel(ctx, "registration-1")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrAny:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

// The window check is inclusive: cancelling at the exact cutoff instant,
// one hour before the visit, must still go through.
func TestRegistrationService_CancelAtCutoffInstant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := regMocks.NewMockRegistration(ctrl)
	mockSchedRepo := schedMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Afternoon visit starts at 14:00; the clock sits exactly on the
	// 13:00 cutoff.
	cutoff := time.Date(2026, 3, 10, 13, 0, 0, 0, timezone.GetLocation())
	visitDate := time.Date(2026, 3, 10, 0, 0, 0, 0, timezone.GetLocation())

	svc := service.New(mockRepo, mockSchedRepo, fakeTxRunner{}, clock.NewFixed(cutoff), mockKafka, cfg, mockCache, mockOtel)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(bookedDetail("patient-1", visitDate, constant.TimeSlotAfternoon), nil)

	mockRepo.EXPECT().
		TransitionStatusTx(gomock.Any(), gomock.Any(), "registration-1", constant.StatusBooked, constant.StatusCancelled).
		Return(int64(1), nil)

	mockSchedRepo.EXPECT().
		ReleaseTx(gomock.Any(), gomock.Any(), "schedule-1").
		Return(nil)

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "patient-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RolePatient)

	assert.NoError(t, svc.Cancel(ctx, "registration-1"))
}

func TestRegistrationService_Finish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := regMocks.NewMockRegistration(ctrl)
	mockSchedRepo := schedMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockSchedRepo, fakeTxRunner{}, clock.NewFixed(testNow), mockKafka, cfg, mockCache, mockOtel)

	futureDate := time.Date(2026, 3, 12, 0, 0, 0, 0, timezone.GetLocation())

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "successful finish",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-1", futureDate, constant.TimeSlotMorning), nil)

				mockRepo.EXPECT().
					TransitionStatus(gomock.Any(), "registration-1", constant.StatusBooked, constant.StatusFinished).
					Return(int64(1), nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "already finished",
			setupMock: func() {
				detail := bookedDetail("patient-1", futureDate, constant.TimeSlotMorning)
				detail.Status = constant.StatusFinished

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(detail, nil)
			},
			wantErr: service.ErrInvalidStatus,
		},
		{
			name: "cancelled registration cannot be finished",
			setupMock: func() {
				detail := bookedDetail("patient-1", futureDate, constant.TimeSlotMorning)
				detail.Status = constant.StatusCancelled

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(detail, nil)
			},
			wantErr: service.ErrInvalidStatus,
		},
		{
			name: "concurrent transition wins",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookedDetail("patient-1", futureDate, constant.TimeSlotMorning), nil)

				mockRepo.EXPECT().
					TransitionStatus(gomock.Any(), "registration-1", constant.StatusBooked, constant.StatusFinished).
					Return(int64(0), nil)
			},
			wantErr: service.ErrConcurrentModification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

			err := svc.Finish(ctx, "registration-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistrationService_Statistics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := regMocks.NewMockRegistration(ctrl)
	mockSchedRepo := schedMocks.NewMockSchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockSchedRepo, fakeTxRunner{}, clock.NewFixed(testNow), mockKafka, cfg, mockCache, mockOtel)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockRepo.EXPECT().
		CountByStatus(gomock.Any()).
		Return([]model.StatisticsByStatus{
			{Status: constant.StatusBooked, Total: 4},
			{Status: constant.StatusCancelled, Total: 1},
			{Status: constant.StatusFinished, Total: 7},
		}, nil)

	mockRepo.EXPECT().
		SumFeeNonCancelled(gomock.Any()).
		Return(550.0, nil)

	mockRepo.EXPECT().
		CountByDepartment(gomock.Any()).
		Return([]model.StatisticsByDepartment{
			{DepartmentID: "department-1", DepartmentName: "Cardiology", Total: 8, TotalFee: 400},
		}, nil)

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	res, err := svc.Statistics(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 4, res.Booked)
	assert.Equal(t, 1, res.Cancelled)
	assert.Equal(t, 7, res.Finished)
	assert.Equal(t, 550.0, res.TotalFee)
	assert.Len(t, res.Departments, 1)
}
