package model

import (
	"time"

	"medreg/shared/model"
)

const (
	TableName  = "patients"
	EntityName = "patient"

	FieldID        = "patient_id"
	FieldName      = "name"
	FieldIDCardNo  = "id_card_no"
	FieldPhone     = "phone"
	FieldPassword  = "password_hash"
	FieldGender    = "gender"
	FieldBirthDate = "birth_date"
	FieldStatus    = "status"
)

const (
	StatusActive  = 1
	StatusDeleted = 0
)

type Patient struct {
	ID           string     `db:"patient_id"`
	Name         string     `db:"name"`
	IDCardNo     string     `db:"id_card_no"`
	Phone        string     `db:"phone"`
	PasswordHash string     `db:"password_hash"`
	Gender       string     `db:"gender"`
	BirthDate    *time.Time `db:"birth_date"`
	Status       int        `db:"status"`
	model.Metadata
}
