package model

import (
	"medreg/shared/model"
)

const (
	TableName  = "doctors"
	EntityName = "doctor"

	FieldID           = "doctor_id"
	FieldDepartmentID = "department_id"
	FieldName         = "name"
	FieldTitle        = "title"
	FieldSpecialty    = "specialty"
	FieldIntro        = "intro"
	FieldStatus       = "status"
)

const (
	StatusActive  = 1
	StatusDeleted = 0
)

type Doctor struct {
	ID           string `db:"doctor_id"`
	DepartmentID string `db:"department_id"`
	Name         string `db:"name"`
	Title        string `db:"title"`
	Specialty    string `db:"specialty"`
	Intro        string `db:"intro"`
	Status       int    `db:"status"`
	model.Metadata
}

// DoctorDetail is the read view joined with the owning department.
type DoctorDetail struct {
	Doctor
	DepartmentName string `db:"department_name" table:"departments" column:"name"`
}

func (DoctorDetail) GetJoinQuery() string {
	return "JOIN departments ON departments.department_id = doctors.department_id"
}
