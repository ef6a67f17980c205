package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

const argExcludeID = "exclude_id"

type Room interface {
	Insert(ctx context.Context, room model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, fields map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// RoomNumberTaken reports whether another live room already carries number. excludeID may be empty.
	RoomNumberTaken(ctx context.Context, number, excludeID string) (bool, error)
}

type rooms struct {
	gRepo.Repository[model.Room]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &rooms{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *rooms) RoomNumberTaken(ctx context.Context, number, excludeID string) (bool, error) {
	filter := gDto.FilterGroup{Filters: []any{
		gDto.Filter{Field: model.FieldRoomNumber, Operator: gDto.FilterOperatorEq, Value: number, Table: model.TableName},
	}}

	filter.AppendIfSet(gDto.Filter{
		ArgName:  argExcludeID,
		Field:    model.FieldID,
		Operator: gDto.FilterOperatorNotEq,
		Value:    excludeID,
		Table:    model.TableName,
	})

	taken, err := r.Exist(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check room number %s: %w", number, err)
	}

	return taken, nil
}
