package model

import "time"

// Metadata is embedded by every stored entity. Mongo documents inline it.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  bson:"created_at"`
	ModifiedAt time.Time `db:"modified_at" bson:"modified_at"`
	CreatedBy  string    `db:"created_by"  bson:"created_by"`
	ModifiedBy string    `db:"modified_by" bson:"modified_by"`
}

func NewMetadata(user string, now time.Time) Metadata {
	return Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user,
		ModifiedBy: user,
	}
}
