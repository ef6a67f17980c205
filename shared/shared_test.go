package shared_test

import (
	"context"
	"errors"
	"fmt"
	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertString(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))
	require.NotNil(t, shared.ConvertStringToBool("true"))
	assert.True(t, *shared.ConvertStringToBool("true"))

	assert.Nil(t, shared.ConvertStringToInt("two"))
	require.NotNil(t, shared.ConvertStringToInt("2"))
	assert.Equal(t, 2, *shared.ConvertStringToInt("2"))

	assert.Nil(t, shared.ConvertStringToFloat(""))
	require.NotNil(t, shared.ConvertStringToFloat("149.5"))
	assert.InDelta(t, 149.5, *shared.ConvertStringToFloat("149.5"), 1e-9)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{total: 0, limit: 10, want: 1},
		{total: 10, limit: 0, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 95, limit: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d over %d", tt.total, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type statusUpdate struct {
	Status        *string `db:"status"`
	PaymentStatus *string `db:"payment_status"`
	Adults        *int    `db:"max_number_of_adults"`
	Note          string  `db:"-"`
	Untagged      string
}

func TestTransformFields(t *testing.T) {
	confirmed := "confirmed"
	zero := 0

	fields := shared.TransformFields(statusUpdate{
		Status:   &confirmed,
		Adults:   &zero,
		Note:     "ignored",
		Untagged: "ignored",
	}, "admin-1")

	assert.Equal(t, "confirmed", fields["status"])
	assert.Equal(t, 0, fields["max_number_of_adults"])
	assert.NotContains(t, fields, "payment_status")
	assert.NotContains(t, fields, "-")
	assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
	assert.Len(t, fields, 4)
}

func TestTransformFields_AcceptsPointer(t *testing.T) {
	paid := "paid"

	fields := shared.TransformFields(&statusUpdate{PaymentStatus: &paid}, "admin-1")

	assert.Equal(t, "paid", fields["payment_status"])
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b-1", "id", "bookings")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:b-1", shared.BuildCacheKey("booking:get", "b-1"))
	assert.Equal(t, "limiter:10.0.0.1:curl", shared.BuildCacheKey("limiter", "10.0.0.1", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "bookings.created_at", SortDir: dto.SortDirDesc}
	pending := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
	}}
	paid := dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "status", Value: "paid", Operator: dto.FilterOperatorEq, Table: "bookings"},
	}}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, pending)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, pending))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, paid))
	assert.Contains(t, first, "booking:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))

	redisCache.EXPECT().Clear(gomock.Any(), "booking:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "booking:gets")

	redisCache.EXPECT().Clear(gomock.Any(), "booking:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "booking:count")
}

func TestIsPqError(t *testing.T) {
	unique := fmt.Errorf("failed to insert data (room): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation})

	assert.True(t, shared.IsPqError(unique, constant.PqErrorCodeUniqueViolation))
	assert.False(t, shared.IsPqError(unique, "23503"))
	assert.False(t, shared.IsPqError(errors.New("plain"), constant.PqErrorCodeUniqueViolation))
}
