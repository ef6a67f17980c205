package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/user/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
	"strings"
)

type User interface {
	Insert(ctx context.Context, user model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, fields map[string]any, filter gDto.FilterGroup) error
	// FindByEmail matches case-insensitively and returns a zero User when nobody is registered under email.
	FindByEmail(ctx context.Context, email string) (model.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type users struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &users{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func byEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{Filters: []any{
		gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    strings.ToLower(strings.TrimSpace(email)),
			Table:    model.TableName,
		},
	}}
}

func (r *users) FindByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := r.Get(ctx, byEmail(email))
	if err != nil {
		return user, fmt.Errorf("failed to find user by email: %w", err)
	}

	return user, nil
}

func (r *users) EmailTaken(ctx context.Context, email string) (bool, error) {
	taken, err := r.Exist(ctx, byEmail(email))
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return taken, nil
}
