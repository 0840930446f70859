package dto

import (
	"time"

	"github.com/google/uuid"

	"medreg/internal/domains/schedule/model"
	"medreg/shared"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	gModel "medreg/shared/model"
	"medreg/shared/timezone"
)

type CreateScheduleRequest struct {
	DoctorID   string  `json:"doctor_id"   validate:"required"`
	WorkDate   string  `json:"work_date"   validate:"required,workdate"`
	TimeSlot   string  `json:"time_slot"   validate:"required,timeslot"`
	TotalQuota int     `json:"total_quota" validate:"required,gte=1,lte=500"`
	Fee        float64 `json:"fee"         validate:"gte=0"`
}

func (c *CreateScheduleRequest) ToModel() (model.Schedule, error) {
	workDate, err := time.Parse(constant.WorkDateFormat, c.WorkDate)
	if err != nil {
		return model.Schedule{}, err
	}

	return model.Schedule{
		ID:             uuid.NewString(),
		DoctorID:       c.DoctorID,
		WorkDate:       workDate,
		TimeSlot:       c.TimeSlot,
		TotalQuota:     c.TotalQuota,
		RemainingQuota: c.TotalQuota,
		Fee:            c.Fee,
		Status:         model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}, nil
}

type UpdateScheduleRequest struct {
	TotalQuota int     `json:"total_quota" validate:"omitempty,gte=1,lte=500"`
	Fee        float64 `json:"fee"         validate:"omitempty,gte=0"`
}

type ScheduleResponse struct {
	ID             string  `json:"id"`
	DoctorID       string  `json:"doctor_id"`
	DoctorName     string  `json:"doctor_name,omitempty"`
	DoctorTitle    string  `json:"doctor_title,omitempty"`
	DepartmentID   string  `json:"department_id,omitempty"`
	DepartmentName string  `json:"department_name,omitempty"`
	WorkDate       string  `json:"work_date"`
	TimeSlot       string  `json:"time_slot"`
	TotalQuota     int     `json:"total_quota"`
	RemainingQuota int     `json:"remaining_quota"`
	Fee            float64 `json:"fee"`
	gDto.Metadata
}

func (r *ScheduleResponse) FromModel(model model.ScheduleDetail) {
	r.ID = model.ID
	r.DoctorID = model.DoctorID
	r.DoctorName = model.DoctorName
	r.DoctorTitle = model.DoctorTitle
	r.DepartmentID = model.DepartmentID
	r.DepartmentName = model.DepartmentName
	r.WorkDate = model.WorkDate.Format(constant.WorkDateFormat)
	r.TimeSlot = model.TimeSlot
	r.TotalQuota = model.TotalQuota
	r.RemainingQuota = model.RemainingQuota
	r.Fee = model.Fee
	r.Metadata.FromModel(model.Metadata)
}

type GetSchedulesResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetSchedulesResponse) FromModels(models []model.ScheduleDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Schedules = make([]ScheduleResponse, len(models))
	for i, mod := range models {
		r.Schedules[i].FromModel(mod)
	}
}
