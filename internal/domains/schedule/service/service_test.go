package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"medreg/config"
	"medreg/infras/otel/mocks"
	doctorMocks "medreg/internal/domains/doctor/mocks"
	doctorModel "medreg/internal/domains/doctor/model"
	regMocks "medreg/internal/domains/registration/mocks"
	schedMocks "medreg/internal/domains/schedule/mocks"
	"medreg/internal/domains/schedule/model"
	"medreg/internal/domains/schedule/model/dto"
	"medreg/internal/domains/schedule/service"
	cacheMocks "medreg/shared/cache/mocks"
	gDto "medreg/shared/dto"
	"medreg/shared/timezone"
)

func activeDoctor() doctorModel.DoctorDetail {
	return doctorModel.DoctorDetail{
		Doctor: doctorModel.Doctor{
			ID:           "doctor-1",
			DepartmentID: "department-1",
			Name:         "Dr. Test",
			Status:       doctorModel.StatusActive,
		},
	}
}

func storedSchedule(status int) model.Schedule {
	return model.Schedule{
		ID:             "schedule-1",
		DoctorID:       "doctor-1",
		WorkDate:       time.Date(2026, 3, 12, 0, 0, 0, 0, timezone.GetLocation()),
		TimeSlot:       "AM",
		TotalQuota:     30,
		RemainingQuota: 30,
		Fee:            50,
		Status:         status,
	}
}

func TestScheduleService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := schedMocks.NewMockSchedule(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockRegRepo := regMocks.NewMockRegistration(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDoctorRepo, mockRegRepo, cfg, mockCache, mockOtel)

	validReq := dto.CreateScheduleRequest{
		DoctorID:   "doctor-1",
		WorkDate:   "2026-03-12",
		TimeSlot:   "AM",
		TotalQuota: 30,
		Fee:        50,
	}

	tests := []struct {
		name      string
		req       dto.CreateScheduleRequest
		setupMock func()
		wantErr   error
		wantAny   bool
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeDoctor(), nil)

				mockRepo.EXPECT().
					FindByDoctorDateSlot(gomock.Any(), "doctor-1", gomock.Any(), "AM").
					Return(model.Schedule{}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, schedule model.Schedule) error {
						assert.Equal(t, 30, schedule.TotalQuota)
						assert.Equal(t, 30, schedule.RemainingQuota)
						assert.Equal(t, model.StatusActive, schedule.Status)

						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "doctor does not exist",
			req:  validReq,
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(doctorModel.DoctorDetail{}, nil)
			},
			wantAny: true,
		},
		{
			name: "active schedule already exists",
			req:  validReq,
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeDoctor(), nil)

				mockRepo.EXPECT().
					FindByDoctorDateSlot(gomock.Any(), "doctor-1", gomock.Any(), "AM").
					Return(storedSchedule(model.StatusActive), nil)
			},
			wantErr: service.ErrScheduleExists,
		},
		{
			name: "soft-deleted schedule is restored with recomputed quota",
			req:  validReq,
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeDoctor(), nil)

				mockRepo.EXPECT().
					FindByDoctorDateSlot(gomock.Any(), "doctor-1", gomock.Any(), "AM").
					Return(storedSchedule(model.StatusDeleted), nil)

				mockRegRepo.EXPECT().
					CountOccupiedBySchedule(gomock.Any(), "schedule-1").
					Return(12, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 30, fields[model.FieldTotalQuota])
						assert.Equal(t, 18, fields[model.FieldRemainingQuota])
						assert.Equal(t, model.StatusActive, fields[model.FieldStatus])

						return nil
					})

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
			name: "restore rejected when quota is below occupied slots",
			req:  validReq,
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeDoctor(), nil)

				mockRepo.EXPECT().
					FindByDoctorDateSlot(gomock.Any(), "doctor-1", gomock.Any(), "AM").
					Return(storedSchedule(model.StatusDeleted), nil)

				mockRegRepo.EXPECT().
					CountOccupiedBySchedule(gomock.Any(), "schedule-1").
					Return(31, nil)
			},
			wantErr: service.ErrQuotaBelowOccupied,
		},
		{
			name: "lookup error",
			req:  validReq,
			setupMock: func() {
				mockDoctorRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeDoctor(), nil)

				mockRepo.EXPECT().
					FindByDoctorDateSlot(gomock.Any(), "doctor-1", gomock.Any(), "AM").
					Return(model.Schedule{}, errors.New("database error"))
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(context.Background(), tt.req)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := schedMocks.NewMockSchedule(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockRegRepo := regMocks.NewMockRegistration(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDoctorRepo, mockRegRepo, cfg, mockCache, mockOtel)

	activeDetail := model.ScheduleDetail{Schedule: storedSchedule(model.StatusActive)}

	tests := []struct {
		name      string
		req       dto.UpdateScheduleRequest
		setupMock func()
		wantErr   error
		wantAny   bool
	}{
		{
			name: "quota raise recomputes remaining from occupancy",
			req:  dto.UpdateScheduleRequest{TotalQuota: 40},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeDetail, nil)

				mockRegRepo.EXPECT().
					CountOccupiedBySchedule(gomock.Any(), "schedule-1").
					Return(25, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 40, fields[model.FieldTotalQuota])
						assert.Equal(t, 15, fields[model.FieldRemainingQuota])

						return nil
					})

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
			name: "quota cut below occupancy is rejected",
			req:  dto.UpdateScheduleRequest{TotalQuota: 10},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeDetail, nil)

				mockRegRepo.EXPECT().
					CountOccupiedBySchedule(gomock.Any(), "schedule-1").
					Return(25, nil)
			},
			wantErr: service.ErrQuotaBelowOccupied,
		},
		{
			name: "fee-only update leaves quota untouched",
			req:  dto.UpdateScheduleRequest{Fee: 80},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeDetail, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 80.0, fields[model.FieldFee])
						assert.NotContains(t, fields, model.FieldTotalQuota)
						assert.NotContains(t, fields, model.FieldRemainingQuota)

						return nil
					})

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
			name:      "empty update request",
			req:       dto.UpdateScheduleRequest{},
			setupMock: func() {},
			wantAny:   true,
		},
		{
			name: "schedule not found",
			req:  dto.UpdateScheduleRequest{Fee: 80},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.ScheduleDetail{}, nil)
			},
			wantErr: service.ErrScheduleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(context.Background(), tt.req, "schedule-1")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAny:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := schedMocks.NewMockSchedule(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockRegRepo := regMocks.NewMockRegistration(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDoctorRepo, mockRegRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
		wantID    string
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "cache miss, loaded from db",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.ScheduleDetail{Schedule: storedSchedule(model.StatusActive)}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantID: "schedule-1",
		},
		{
			name: "deleted schedule reads as not found",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.ScheduleDetail{Schedule: storedSchedule(model.StatusDeleted)}, nil)
			},
			wantErr: service.ErrScheduleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "schedule-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, res.ID)
			}
		})
	}
}

func TestScheduleService_GetDoctorWeek(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := schedMocks.NewMockSchedule(ctrl)
	mockDoctorRepo := doctorMocks.NewMockDoctor(ctrl)
	mockRegRepo := regMocks.NewMockRegistration(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockDoctorRepo, mockRegRepo, cfg, mockCache, mockOtel)

	t.Run("invalid date format", func(t *testing.T) {
		_, err := svc.GetDoctorWeek(context.Background(), "doctor-1", "12-03-2026")
		assert.Error(t, err)
	})

	t.Run("seven day window", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.ScheduleDetail, error) {
				assert.Len(t, filter.Filters, 4)

				return []model.ScheduleDetail{{Schedule: storedSchedule(model.StatusActive)}}, nil
			})

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.GetDoctorWeek(context.Background(), "doctor-1", "2026-03-09")

		assert.NoError(t, err)
		assert.Len(t, res.Schedules, 1)
		assert.Equal(t, 1, res.TotalData)
	})
}
