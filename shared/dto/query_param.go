package dto

import (
	"hotel/shared/constant"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams is the pagination and ordering shared by every listing endpoint.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,min=1"`
	Limit   int    `json:"limit"    validate:"omitempty,min=1"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir. Malformed or non-positive numbers are ignored,
// limit is capped at constant.MaxValueLimit, and withDefaults fills an unset page and limit.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page, ok := positive(values, constant.RequestParamPage); ok {
		q.Page = page
	}

	if limit, ok := positive(values, constant.RequestParamLimit); ok {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// ResolveSort maps SortBy onto a whitelisted column so raw query input never reaches ORDER BY.
// Unknown or empty values fall back to fallback, and an empty direction defaults to DESC.
func (q *QueryParams) ResolveSort(allowed map[string]string, fallback string) {
	column, ok := allowed[q.SortBy]
	if !ok {
		column = fallback
	}

	q.SortBy = column

	if q.SortDir == "" {
		q.SortDir = constant.DefaultValueSortDir
	}
}

func positive(values url.Values, key string) (int, bool) {
	parsed, err := strconv.Atoi(values.Get(key))
	if err != nil || parsed <= 0 {
		return 0, false
	}

	return parsed, true
}
