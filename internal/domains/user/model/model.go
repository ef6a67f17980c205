package model

import (
	"hotel/shared/model"
	"strings"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldRole       = "role"
	FieldIsVerified = "is_verified"
	FieldLastLogin  = "last_login"
	FieldActive     = "active"
)

const (
	CacheGetUser    = "user:get"
	CacheGetAllUser = "user:gets"
	CacheCountUser  = "user:count"
)

type User struct {
	ID         string     `db:"id"`
	FirstName  string     `db:"first_name"`
	LastName   *string    `db:"last_name"`
	Email      string     `db:"email"`
	Password   string     `db:"password"`
	Role       string     `db:"role"`
	IsVerified bool       `db:"is_verified"`
	LastLogin  *time.Time `db:"last_login"`
	Active     bool       `db:"active"`
	model.Metadata
}

// ResolveDisplayName prefers the account's stored first name and falls back to supplied.
// A missing account or a blank stored name is not an error.
func ResolveDisplayName(account *User, supplied string) string {
	if account == nil || account.ID == "" {
		return supplied
	}

	if name := strings.TrimSpace(account.FirstName); name != "" {
		return name
	}

	return supplied
}
