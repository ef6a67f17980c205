package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

// BookingDetail reads bookings joined with their room and optional account.
type BookingDetail interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingDetail, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type detailRepositoryImpl struct {
	gRepo.Repository[model.BookingDetail]
}

func NewDetail(db *postgres.Connection, otel otel.Otel) BookingDetail {
	return &detailRepositoryImpl{
		Repository: gRepo.NewRepository[model.BookingDetail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
	}
}
