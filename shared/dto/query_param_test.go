package dto_test

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		expected     dto.QueryParams
	}{
		{
			name:     "every parameter set",
			query:    "page=2&limit=20&sort_by=check_in&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults fill page and limit only",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "nothing set without defaults",
			expected: dto.QueryParams{},
		},
		{
			name:         "malformed numbers are ignored",
			query:        "page=two&limit=-5",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:         "zero page falls back",
			query:        "page=0&limit=5",
			withDefaults: true,
			expected:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: 5},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "unknown direction is dropped",
			query:    "sort_by=price_per_night&sort_dir=sideways",
			expected: dto.QueryParams{SortBy: "price_per_night"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/bookings?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.withDefaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_ResolveSort(t *testing.T) {
	allowed := map[string]string{
		"created_at": "bookings.created_at",
		"check_in":   "bookings.check_in",
	}

	tests := []struct {
		name     string
		params   dto.QueryParams
		expected dto.QueryParams
	}{
		{
			name:     "allowed column is mapped",
			params:   dto.QueryParams{SortBy: "check_in", SortDir: dto.SortDirAsc},
			expected: dto.QueryParams{SortBy: "bookings.check_in", SortDir: dto.SortDirAsc},
		},
		{
			name:     "unknown column falls back",
			params:   dto.QueryParams{SortBy: "id; DROP TABLE bookings"},
			expected: dto.QueryParams{SortBy: "bookings.created_at", SortDir: dto.SortDirDesc},
		},
		{
			name:     "empty column falls back",
			expected: dto.QueryParams{SortBy: "bookings.created_at", SortDir: dto.SortDirDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			params.ResolveSort(allowed, "bookings.created_at")

			assert.Equal(t, tt.expected, params)
		})
	}
}
