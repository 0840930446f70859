package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medreg/internal/domains/schedule/model"
	"medreg/internal/domains/schedule/model/dto"
	gModel "medreg/shared/model"
	"medreg/shared/timezone"
)

func TestCreateScheduleRequest_ToModel(t *testing.T) {
	req := dto.CreateScheduleRequest{
		DoctorID:   "doctor-1",
		WorkDate:   "2026-03-12",
		TimeSlot:   "AM",
		TotalQuota: 30,
		Fee:        50,
	}

	schedule, err := req.ToModel()

	assert.NoError(t, err)
	assert.NotEmpty(t, schedule.ID, "expected ID to be generated")
	assert.Equal(t, req.DoctorID, schedule.DoctorID)
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), schedule.WorkDate)
	assert.Equal(t, req.TimeSlot, schedule.TimeSlot)
	assert.Equal(t, req.TotalQuota, schedule.TotalQuota)
	assert.Equal(t, req.TotalQuota, schedule.RemainingQuota, "remaining quota starts at total")
	assert.Equal(t, model.StatusActive, schedule.Status)
	assert.False(t, schedule.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestCreateScheduleRequest_ToModelInvalidDate(t *testing.T) {
	req := dto.CreateScheduleRequest{
		DoctorID:   "doctor-1",
		WorkDate:   "12/03/2026",
		TimeSlot:   "AM",
		TotalQuota: 30,
	}

	_, err := req.ToModel()

	assert.Error(t, err)
}

func TestScheduleResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	detail := model.ScheduleDetail{
		Schedule: model.Schedule{
			ID:             "schedule-1",
			DoctorID:       "doctor-1",
			WorkDate:       time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			TimeSlot:       "PM",
			TotalQuota:     30,
			RemainingQuota: 12,
			Fee:            50,
			Status:         model.StatusActive,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
			},
		},
		DoctorName:     "Dr. Test",
		DoctorTitle:    "Attending Physician",
		DepartmentID:   "department-1",
		DepartmentName: "Cardiology",
	}

	var response dto.ScheduleResponse
	response.FromModel(detail)

	assert.Equal(t, detail.ID, response.ID)
	assert.Equal(t, "2026-03-12", response.WorkDate)
	assert.Equal(t, detail.TimeSlot, response.TimeSlot)
	assert.Equal(t, detail.RemainingQuota, response.RemainingQuota)
	assert.Equal(t, detail.DoctorName, response.DoctorName)
	assert.Equal(t, detail.DepartmentName, response.DepartmentName)
}

func TestGetSchedulesResponse_FromModels(t *testing.T) {
	models := []model.ScheduleDetail{
		{Schedule: model.Schedule{ID: "schedule-1"}},
		{Schedule: model.Schedule{ID: "schedule-2"}},
		{Schedule: model.Schedule{ID: "schedule-3"}},
	}

	var response dto.GetSchedulesResponse
	response.FromModels(models, 3, 2)

	assert.Len(t, response.Schedules, 3)
	assert.Equal(t, 3, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
}
