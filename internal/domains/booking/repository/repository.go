package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/database"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertBulk(ctx context.Context, models []model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Sum(ctx context.Context, column string, filter gDto.FilterGroup) (float64, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Store[model.Booking]
}

func New(db *database.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Store: gRepo.NewStore[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
