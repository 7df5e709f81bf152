package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/database"
	"hotel/infras/otel"
	"hotel/internal/domains/customer/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Customer interface {
	Insert(ctx context.Context, model model.Customer) error
	InsertBulk(ctx context.Context, models []model.Customer) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Customer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Customer, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Store[model.Customer]
}

func New(db *database.Connection, otel otel.Otel) Customer {
	return &repositoryImpl{
		Store: gRepo.NewStore[model.Customer](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
