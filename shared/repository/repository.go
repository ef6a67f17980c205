package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/logger"
	"reflect"

	"github.com/lib/pq"
)

var ErrRequiredFilter = errors.New("a filter is required for this statement")

// joiner is implemented by read models that select across tables.
type joiner interface {
	GetJoinQuery() string
}

// Repository maps a tagged struct onto one table, optionally joined with others for reads.
type Repository[T any] struct {
	db         *postgres.Connection
	otel       otel.Otel
	table      string
	entity     string
	primaryKey string
	columns    []column
	insertable []string
	join       string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertable := scanColumns(tableName, reflect.TypeOf(zero))

	var join string
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	return Repository[T]{
		db:         dbConnection,
		otel:       otl,
		table:      tableName,
		entity:     entityName,
		primaryKey: primaryColumn,
		columns:    columns,
		insertable: insertable,
		join:       join,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
}

// unmatchable reports a value that can never equal a row key, such as a malformed uuid.
func unmatchable(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeInvalidText
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	query := insertQuery(repo.table, repo.insertable)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return false, ErrRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool

	err := repo.namedGet(ctx, query, &exist, args)
	if unmatchable(err) {
		return false, nil
	}

	if err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Get returns the zero value of T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	where, args := whereClause(filter)
	query := joinSQL("SELECT", selectClause(repo.columns, columns...), "FROM", repo.table, repo.join, where, "LIMIT 1")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var model T

	err := repo.namedGet(ctx, query, &model, args)
	if errors.Is(err, sql.ErrNoRows) || unmatchable(err) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := whereClause(filter)
	query := joinSQL("SELECT", selectClause(repo.columns, columns...), "FROM", repo.table, repo.join, where, orderAndPage(params, args))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, "prepare statement", err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &models, args)
	if unmatchable(err) {
		return []T{}, nil
	}

	if err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := whereClause(filter)
	query := joinSQL(fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s", repo.table, repo.primaryKey, repo.table), repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := repo.namedGet(ctx, query, &count, args)
	if unmatchable(err) {
		return 0, nil
	}

	if err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

// Update sets the given columns on every matching row. An empty filter is rejected.
func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return ErrRequiredFilter
	}

	query := joinSQL("UPDATE", repo.table, "SET", setClause(fields), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	for col, value := range fields {
		args[argSet+col] = value
	}

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update data", err)
	}

	return nil
}

// Delete removes every matching row. An empty filter is rejected.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return ErrRequiredFilter
	}

	query := joinSQL("DELETE FROM", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}

func (repo *Repository[T]) namedGet(ctx context.Context, query string, dest any, args map[string]any) error {
	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer prepare.Close()

	return prepare.GetContext(ctx, dest, args) //nolint:wrapcheck
}
