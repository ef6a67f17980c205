package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNotNull         = "is_not_null"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Filter is one bound predicate. ArgName overrides the placeholder when a field appears twice in a statement.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null is_not_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName != "" {
		return f.ArgName
	}

	return f.Field
}

// GetWhereClause renders the predicate with named placeholders. Values are always bound, never inlined.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, name := f.column(), f.argName()

	if symbol, ok := comparisons[f.Operator]; ok {
		args[name] = f.Value

		return fmt.Sprintf("%s %s :%s", column, symbol, name), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[name] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, name), args
	case FilterOperatorIn:
		values := reflect.ValueOf(f.Value)
		if values.Kind() != reflect.Array && values.Kind() != reflect.Slice {
			args[name] = f.Value

			return fmt.Sprintf("%s = :%s", column, name), args
		}

		if values.Len() == 0 {
			return "FALSE", args
		}

		placeholders := make([]string, values.Len())
		for idx := range values.Len() {
			key := fmt.Sprintf("%s_%d", name, idx)
			args[key] = values.Index(idx).Interface()
			placeholders[idx] = ":" + key
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")), args
	case FilterIsNotNull:
		return column + " IS NOT NULL", args
	case FilterIsNull:
		return column + " IS NULL", args
	default:
		return "", args
	}
}

// FilterGroup joins filters and nested groups with one operator, AND when unset. Empty members are skipped.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, member := range f.Filters {
		var (
			where string
			arg   map[string]any
		)

		switch typed := member.(type) {
		case Filter:
			where, arg = typed.GetWhereClause()
		case FilterGroup:
			where, arg = typed.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		clauses = append(clauses, where)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return fmt.Sprintf("(%s)", strings.Join(clauses, " "+operator+" ")), args
}

// AppendIfSet adds the filter unless its value is nil or an empty string.
func (f *FilterGroup) AppendIfSet(filter Filter) {
	if filter.Value == nil {
		return
	}

	if value, ok := filter.Value.(string); ok && value == "" {
		return
	}

	f.Filters = append(f.Filters, filter)
}
