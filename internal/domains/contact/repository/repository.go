package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/contact/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Contact interface {
	Insert(ctx context.Context, model model.Contact) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Contact, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Contact]
}

func New(db *postgres.Connection, otel otel.Otel) Contact {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Contact](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
