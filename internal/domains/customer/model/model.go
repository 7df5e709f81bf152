package model

import (
	"hotel/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID      = "id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldAddress = "address"
)

type Customer struct {
	ID      string `db:"id"      bson:"_id"`
	Name    string `db:"name"    bson:"name"`
	Email   string `db:"email"   bson:"email"`
	Phone   string `db:"phone"   bson:"phone"`
	Address string `db:"address" bson:"address"`
	model.Metadata `bson:",inline"`
}
