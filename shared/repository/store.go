package repository

import (
	"context"

	"hotel/infras/database"
	"hotel/infras/otel"
	"hotel/shared/dto"
)

// Store is the entity store contract shared by the postgres and mongo backends.
// Get returns the zero value and no error when nothing matches.
type Store[T any] interface {
	Insert(ctx context.Context, model T) error
	InsertBulk(ctx context.Context, models []T) error
	Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error)
	GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error)
	Exist(ctx context.Context, filter dto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter dto.FilterGroup) (int, error)
	Sum(ctx context.Context, column string, filter dto.FilterGroup) (float64, error)
	Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error
	Delete(ctx context.Context, filter dto.FilterGroup) error
}

// NewStore picks the backend configured on the connection.
func NewStore[T any](entitasName, tableName, primaryColumn string, db *database.Connection, otl otel.Otel) Store[T] {
	if db.IsMongo() {
		repo := NewMongoRepository[T](entitasName, tableName, primaryColumn, db.Mongo, otl)

		return &repo
	}

	repo := NewRepository[T](entitasName, tableName, primaryColumn, db.Postgres, otl)

	return &repo
}
