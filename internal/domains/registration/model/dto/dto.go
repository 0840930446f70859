package dto

import (
	"medreg/internal/domains/registration/model"
	"medreg/shared"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
)

type CreateRegistrationRequest struct {
	ScheduleID string `json:"schedule_id" validate:"required"`
	// PatientID is taken from the access token for patient callers; admins
	// may register on a patient's behalf.
	PatientID string `json:"patient_id" validate:"omitempty"`
}

type RegistrationResponse struct {
	ID             string  `json:"id"`
	RegNo          string  `json:"reg_no"`
	PatientID      string  `json:"patient_id"`
	PatientName    string  `json:"patient_name,omitempty"`
	ScheduleID     string  `json:"schedule_id"`
	DoctorID       string  `json:"doctor_id,omitempty"`
	DoctorName     string  `json:"doctor_name,omitempty"`
	DoctorTitle    string  `json:"doctor_title,omitempty"`
	DepartmentID   string  `json:"department_id,omitempty"`
	DepartmentName string  `json:"department_name,omitempty"`
	WorkDate       string  `json:"work_date"`
	TimeSlot       string  `json:"time_slot"`
	Fee            float64 `json:"fee"`
	QueueNo        int     `json:"queue_no"`
	Status         string  `json:"status"`
	gDto.Metadata
}

func (r *RegistrationResponse) FromModel(model model.RegistrationDetail) {
	r.ID = model.ID
	r.RegNo = model.RegNo
	r.PatientID = model.PatientID
	r.PatientName = model.PatientName
	r.ScheduleID = model.ScheduleID
	r.DoctorID = model.DoctorID
	r.DoctorName = model.DoctorName
	r.DoctorTitle = model.DoctorTitle
	r.DepartmentID = model.DepartmentID
	r.DepartmentName = model.DepartmentName
	r.WorkDate = model.WorkDate.Format(constant.WorkDateFormat)
	r.TimeSlot = model.TimeSlot
	r.Fee = model.Fee
	r.QueueNo = model.QueueNo
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRegistrationsResponse struct {
	Registrations []RegistrationResponse `json:"registrations"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetRegistrationsResponse) FromModels(models []model.RegistrationDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Registrations = make([]RegistrationResponse, len(models))
	for i, mod := range models {
		r.Registrations[i].FromModel(mod)
	}
}

type DepartmentStatistic struct {
	DepartmentID   string  `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	Total          int     `json:"total"`
	TotalFee       float64 `json:"total_fee"`
}

type StatisticsResponse struct {
	Booked      int                   `json:"booked"`
	Cancelled   int                   `json:"cancelled"`
	Finished    int                   `json:"finished"`
	TotalFee    float64               `json:"total_fee"`
	Departments []DepartmentStatistic `json:"departments"`
}

func (r *StatisticsResponse) FromModels(byStatus []model.StatisticsByStatus, totalFee float64, byDept []model.StatisticsByDepartment) {
	for _, row := range byStatus {
		switch row.Status {
		case constant.StatusBooked:
			r.Booked = row.Total
		case constant.StatusCancelled:
			r.Cancelled = row.Total
		case constant.StatusFinished:
			r.Finished = row.Total
		}
	}

	r.TotalFee = totalFee

	r.Departments = make([]DepartmentStatistic, len(byDept))
	for i, row := range byDept {
		r.Departments[i] = DepartmentStatistic{
			DepartmentID:   row.DepartmentID,
			DepartmentName: row.DepartmentName,
			Total:          row.Total,
			TotalFee:       row.TotalFee,
		}
	}
}

// RegistrationEvent is the payload published to kafka on lifecycle changes.
type RegistrationEvent struct {
	Event          string  `json:"event"`
	RegistrationID string  `json:"registration_id"`
	RegNo          string  `json:"reg_no"`
	PatientID      string  `json:"patient_id"`
	ScheduleID     string  `json:"schedule_id"`
	WorkDate       string  `json:"work_date"`
	TimeSlot       string  `json:"time_slot"`
	QueueNo        int     `json:"queue_no"`
	Fee            float64 `json:"fee"`
	OccurredAt     string  `json:"occurred_at"`
}
