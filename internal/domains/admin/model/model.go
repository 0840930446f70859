package model

import (
	"medreg/shared/model"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID       = "admin_id"
	FieldUsername = "username"
	FieldPassword = "password_hash"
	FieldName     = "name"
	FieldStatus   = "status"
)

const (
	StatusActive  = 1
	StatusDeleted = 0
)

type Admin struct {
	ID           string `db:"admin_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	Status       int    `db:"status"`
	model.Metadata
}
