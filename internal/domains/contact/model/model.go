package model

import (
	"hotel/shared/model"
)

const (
	TableName  = "contacts"
	EntityName = "contact"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldFullName = "full_name"
	FieldMessage  = "message"
	FieldNumber   = "number"
)

const (
	CacheGetAllContact = "contact:gets"
	CacheCountContact  = "contact:count"
)

type Contact struct {
	ID       string  `db:"id"`
	Email    string  `db:"email"`
	FullName string  `db:"full_name"`
	Message  string  `db:"message"`
	Number   *string `db:"number"`
	model.Metadata
}
