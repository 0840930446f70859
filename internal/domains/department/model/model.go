package model

import (
	"medreg/shared/model"
)

const (
	TableName  = "departments"
	EntityName = "department"

	FieldID       = "department_id"
	FieldName     = "name"
	FieldIntro    = "intro"
	FieldLocation = "location"
	FieldStatus   = "status"
)

const (
	StatusActive  = 1
	StatusDeleted = 0
)

type Department struct {
	ID       string `db:"department_id"`
	Name     string `db:"name"`
	Intro    string `db:"intro"`
	Location string `db:"location"`
	Status   int    `db:"status"`
	model.Metadata
}
