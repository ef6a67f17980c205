package repository

import (
	"fmt"
	"hotel/shared/dto"
	"reflect"
	"slices"
	"strings"
)

const (
	tagDB     = "db"
	tagTable  = "table"
	tagColumn = "column"

	argLimit  = "limit"
	argOffset = "offset"
	argSet    = "set_"
)

// column is one selectable field. A non-empty alias means the model reads a joined column under another name.
type column struct {
	name  string
	table string
	alias string
}

func (c column) expression() string {
	if c.table == "" {
		return c.name
	}

	if c.alias != "" {
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	}

	return c.table + "." + c.name
}

// key is the name the model scans the column into.
func (c column) key() string {
	if c.alias != "" {
		return c.alias
	}

	return c.name
}

// scanColumns walks the struct tags of a model. Fields owned by another table are readable but never inserted.
func scanColumns(table string, reflectType reflect.Type) (columns []column, insertable []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInsertable := scanColumns(table, field.Type)
			columns = append(columns, nested...)
			insertable = append(insertable, nestedInsertable...)

			continue
		}

		dbTag := field.Tag.Get(tagDB)
		if dbTag == "" || dbTag == "-" {
			continue
		}

		owner := field.Tag.Get(tagTable)
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertable = append(insertable, dbTag)
		}

		if name := field.Tag.Get(tagColumn); name != "" {
			columns = append(columns, column{name: name, table: owner, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: owner})
		}
	}

	return columns, insertable
}

// selectClause lists every column, or only those named in only.
func selectClause(columns []column, only ...string) string {
	expressions := make([]string, 0, len(columns))

	for _, col := range columns {
		if len(only) > 0 && !slices.Contains(only, col.key()) {
			continue
		}

		expressions = append(expressions, col.expression())
	}

	return strings.Join(expressions, ", ")
}

func insertQuery(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

// setClause renders assignments in column order. Placeholders are prefixed so they never collide with filter arguments.
func setClause(fields map[string]any) string {
	columns := make([]string, 0, len(fields))
	for col := range fields {
		columns = append(columns, col)
	}

	slices.Sort(columns)

	assignments := make([]string, len(columns))
	for i, col := range columns {
		assignments[i] = fmt.Sprintf("%s = :%s%s", col, argSet, col)
	}

	return strings.Join(assignments, ", ")
}

func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

// orderAndPage adds ORDER BY and LIMIT/OFFSET. SortBy must already be a whitelisted column.
func orderAndPage(params dto.QueryParams, args map[string]any) string {
	var parts []string

	if params.SortBy != "" && params.SortDir != "" {
		parts = append(parts, fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir))
	}

	if params.Limit > 0 {
		args[argLimit] = params.Limit
		parts = append(parts, "LIMIT :"+argLimit)

		if params.Page > 0 {
			args[argOffset] = (params.Page - 1) * params.Limit
			parts = append(parts, "OFFSET :"+argOffset)
		}
	}

	return strings.Join(parts, " ")
}

// joinSQL drops empty fragments so generated statements carry no stray whitespace.
func joinSQL(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}
