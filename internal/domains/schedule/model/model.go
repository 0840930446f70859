package model

import (
	"time"

	"medreg/shared/model"
)

const (
	TableName  = "schedules"
	EntityName = "schedule"

	FieldID             = "schedule_id"
	FieldDoctorID       = "doctor_id"
	FieldWorkDate       = "work_date"
	FieldTimeSlot       = "time_slot"
	FieldTotalQuota     = "total_quota"
	FieldRemainingQuota = "remaining_quota"
	FieldFee            = "fee"
	FieldStatus         = "status"
)

const (
	StatusActive  = 1
	StatusDeleted = 0
)

// Schedule is one bookable capacity unit: a doctor on a date and half-day
// time slot with a fixed quota. RemainingQuota only moves through the
// conditional decrement/increment queries, never a blind overwrite.
type Schedule struct {
	ID             string    `db:"schedule_id"`
	DoctorID       string    `db:"doctor_id"`
	WorkDate       time.Time `db:"work_date"`
	TimeSlot       string    `db:"time_slot"`
	TotalQuota     int       `db:"total_quota"`
	RemainingQuota int       `db:"remaining_quota"`
	Fee            float64   `db:"fee"`
	Status         int       `db:"status"`
	model.Metadata
}

// ScheduleDetail is the read view joined with the doctor and owning
// department for listings.
type ScheduleDetail struct {
	Schedule
	DoctorName     string `db:"doctor_name"     table:"doctors"     column:"name"`
	DoctorTitle    string `db:"doctor_title"    table:"doctors"     column:"title"`
	DepartmentID   string `db:"dept_id"         table:"departments" column:"department_id"`
	DepartmentName string `db:"department_name" table:"departments" column:"name"`
}

func (ScheduleDetail) GetJoinQuery() string {
	return "JOIN doctors ON doctors.doctor_id = schedules.doctor_id JOIN departments ON departments.department_id = doctors.department_id"
}
