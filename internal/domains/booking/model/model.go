package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldCustomerID      = "customer_id"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldGuests          = "guests"
	FieldTotalPrice      = "total_price"
	FieldStatus          = "status"
	FieldSpecialRequests = "special_requests"
)

type Booking struct {
	ID              string    `db:"id"               bson:"_id"`
	RoomID          string    `db:"room_id"          bson:"room_id"`
	CustomerID      string    `db:"customer_id"      bson:"customer_id"`
	CheckIn         time.Time `db:"check_in"         bson:"check_in"`
	CheckOut        time.Time `db:"check_out"        bson:"check_out"`
	Guests          int       `db:"guests"           bson:"guests"`
	TotalPrice      float64   `db:"total_price"      bson:"total_price"`
	Status          Status    `db:"status"           bson:"status"`
	SpecialRequests string    `db:"special_requests" bson:"special_requests"`
	model.Metadata  `bson:",inline"`
}
