package model

import (
	"slices"

	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldType        = "type"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldAmenities   = "amenities"
	FieldImages      = "images"
	FieldFeatured    = "featured"
	FieldAvailable   = "available"
)

type Type string

const (
	TypeSingle       Type = "single"
	TypeDouble       Type = "double"
	TypeSuite        Type = "suite"
	TypeDeluxe       Type = "deluxe"
	TypeHoneymoon    Type = "honeymoon"
	TypeFamily       Type = "family"
	TypeAccessible   Type = "accessible"
	TypePresidential Type = "presidential"
	TypePenthouse    Type = "penthouse"
	TypeVilla        Type = "villa"
)

var Types = []Type{
	TypeSingle, TypeDouble, TypeSuite, TypeDeluxe, TypeHoneymoon,
	TypeFamily, TypeAccessible, TypePresidential, TypePenthouse, TypeVilla,
}

func (t Type) Valid() bool {
	return slices.Contains(Types, t)
}

type Room struct {
	ID          string         `db:"id"          bson:"_id"`
	Name        string         `db:"name"        bson:"name"`
	Type        Type           `db:"type"        bson:"type"`
	Description string         `db:"description" bson:"description"`
	Price       float64        `db:"price"       bson:"price"`
	Capacity    int            `db:"capacity"    bson:"capacity"`
	Amenities   pq.StringArray `db:"amenities"   bson:"amenities"`
	Images      pq.StringArray `db:"images"      bson:"images"`
	Featured    bool           `db:"featured"    bson:"featured"`
	Available   bool           `db:"available"   bson:"available"`
	model.Metadata `bson:",inline"`
}
