package model

import (
	"time"

	"medreg/shared/constant"
	"medreg/shared/model"
)

const (
	TableName  = "registrations"
	EntityName = "registration"

	FieldID         = "registration_id"
	FieldRegNo      = "reg_no"
	FieldPatientID  = "patient_id"
	FieldScheduleID = "schedule_id"
	FieldWorkDate   = "work_date"
	FieldTimeSlot   = "time_slot"
	FieldQueueNo    = "queue_no"
	FieldStatus     = "status"
)

// Unique constraint names, matched against pq.Error.Constraint to tell the
// conflict kinds apart during insert.
const (
	ConstraintScheduleQueue         = "uk_registrations_schedule_queue"
	ConstraintRegNo                 = "uk_registrations_reg_no"
	ConstraintPatientScheduleActive = "uk_registrations_patient_schedule_active"
)

// Registration is one patient's claim on one unit of schedule quota.
// Fee, work date and time slot are copied from the schedule at create time
// so the record stays meaningful after schedule edits.
type Registration struct {
	ID         string    `db:"registration_id"`
	RegNo      string    `db:"reg_no"`
	PatientID  string    `db:"patient_id"`
	ScheduleID string    `db:"schedule_id"`
	WorkDate   time.Time `db:"work_date"`
	TimeSlot   string    `db:"time_slot"`
	Fee        float64   `db:"fee"`
	QueueNo    int       `db:"queue_no"`
	Status     string    `db:"status"`
	model.Metadata
}

// Active reports whether the registration still holds its quota unit.
func (r *Registration) Active() bool {
	return r.Status == constant.StatusBooked
}

type RegistrationDetail struct {
	Registration
	PatientName    string `db:"patient_name"    table:"patients"    column:"name"`
	DoctorID       string `db:"doctor_id"       table:"schedules"   column:"doctor_id"`
	DoctorName     string `db:"doctor_name"     table:"doctors"     column:"name"`
	DoctorTitle    string `db:"doctor_title"    table:"doctors"     column:"title"`
	DepartmentID   string `db:"dept_id"         table:"departments" column:"department_id"`
	DepartmentName string `db:"department_name" table:"departments" column:"name"`
}

func (r RegistrationDetail) GetJoinQuery() string {
	return ` JOIN patients ON patients.patient_id = registrations.patient_id
		JOIN schedules ON schedules.schedule_id = registrations.schedule_id
		JOIN doctors ON doctors.doctor_id = schedules.doctor_id
		JOIN departments ON departments.department_id = doctors.department_id`
}

// StatisticsByStatus is one row of the status rollup.
type StatisticsByStatus struct {
	Status string `db:"status"`
	Total  int    `db:"total"`
}

// StatisticsByDepartment is one row of the per-department rollup over
// non-cancelled registrations.
type StatisticsByDepartment struct {
	DepartmentID   string  `db:"department_id"`
	DepartmentName string  `db:"department_name"`
	Total          int     `db:"total"`
	TotalFee       float64 `db:"total_fee"`
}
