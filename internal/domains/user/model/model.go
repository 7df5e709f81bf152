package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

type User struct {
	ID             string     `db:"id"         bson:"_id"`
	Name           string     `db:"name"       bson:"name"`
	Email          string     `db:"email"      bson:"email"`
	Password       string     `db:"password"   bson:"password"`
	Role           string     `db:"role"       bson:"role"`
	Active         bool       `db:"active"     bson:"active"`
	LastLogin      *time.Time `db:"last_login" bson:"last_login,omitempty"`
	model.Metadata `bson:",inline"`
}
