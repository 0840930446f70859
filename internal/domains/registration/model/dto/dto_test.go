package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medreg/internal/domains/registration/model"
	"medreg/internal/domains/registration/model/dto"
	"medreg/shared/constant"
	gModel "medreg/shared/model"
	"medreg/shared/timezone"
)

func TestRegistrationResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	detail := model.RegistrationDetail{
		Registration: model.Registration{
			ID:         "registration-1",
			RegNo:      "GH20260310000007",
			PatientID:  "patient-1",
			ScheduleID: "schedule-1",
			WorkDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			TimeSlot:   constant.TimeSlotMorning,
			Fee:        50,
			QueueNo:    7,
			Status:     constant.StatusBooked,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
			},
		},
		PatientName:    "Test Patient",
		DoctorID:       "doctor-1",
		DoctorName:     "Dr. Test",
		DoctorTitle:    "Chief Physician",
		DepartmentID:   "department-1",
		DepartmentName: "Cardiology",
	}

	var response dto.RegistrationResponse
	response.FromModel(detail)

	assert.Equal(t, detail.ID, response.ID)
	assert.Equal(t, detail.RegNo, response.RegNo)
	assert.Equal(t, "2026-03-12", response.WorkDate)
	assert.Equal(t, detail.TimeSlot, response.TimeSlot)
	assert.Equal(t, detail.QueueNo, response.QueueNo)
	assert.Equal(t, detail.Status, response.Status)
	assert.Equal(t, detail.DoctorName, response.DoctorName)
	assert.Equal(t, detail.DepartmentName, response.DepartmentName)
}

func TestGetRegistrationsResponse_FromModels(t *testing.T) {
	models := []model.RegistrationDetail{
		{Registration: model.Registration{ID: "registration-1"}},
		{Registration: model.Registration{ID: "registration-2"}},
	}

	var response dto.GetRegistrationsResponse
	response.FromModels(models, 12, 10)

	assert.Len(t, response.Registrations, 2)
	assert.Equal(t, 12, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
}

func TestStatisticsResponse_FromModels(t *testing.T) {
	byStatus := []model.StatisticsByStatus{
		{Status: constant.StatusBooked, Total: 3},
		{Status: constant.StatusCancelled, Total: 2},
		{Status: constant.StatusFinished, Total: 5},
	}

	byDept := []model.StatisticsByDepartment{
		{DepartmentID: "department-1", DepartmentName: "Cardiology", Total: 6, TotalFee: 300},
		{DepartmentID: "department-2", DepartmentName: "Neurology", Total: 2, TotalFee: 160},
	}

	var response dto.StatisticsResponse
	response.FromModels(byStatus, 460, byDept)

	assert.Equal(t, 3, response.Booked)
	assert.Equal(t, 2, response.Cancelled)
	assert.Equal(t, 5, response.Finished)
	assert.Equal(t, 460.0, response.TotalFee)
	assert.Len(t, response.Departments, 2)
	assert.Equal(t, "Cardiology", response.Departments[0].DepartmentName)
	assert.Equal(t, 300.0, response.Departments[0].TotalFee)
}
