package database

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

type assignment struct {
	column string
	value  any
}

// UpdateBuilder accumulates the columns a caller actually supplied and renders
// a parameterized `UPDATE <table> SET ... WHERE <id>=?`. Columns keep the order
// they were added in.
type UpdateBuilder struct {
	table       string
	idColumn    string
	id          any
	assignments []assignment
}

func NewUpdateBuilder(table, idColumn string, id any) *UpdateBuilder {
	return &UpdateBuilder{table: table, idColumn: idColumn, id: id}
}

// Set always includes column.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.assignments = append(b.assignments, assignment{column: column, value: value})
	return b
}

// SetIfPresent includes column when v is non-nil, even if it points at a zero value.
func SetIfPresent[T any](b *UpdateBuilder, column string, v *T) *UpdateBuilder {
	if v != nil {
		b.Set(column, *v)
	}
	return b
}

// SetIfNotEmpty includes column when v is non-nil and not the empty string.
// Required text columns use it so "" never overwrites a stored value.
func (b *UpdateBuilder) SetIfNotEmpty(column string, v *string) *UpdateBuilder {
	if v != nil && *v != "" {
		b.Set(column, *v)
	}
	return b
}

// Len returns the number of columns collected so far.
func (b *UpdateBuilder) Len() int {
	return len(b.assignments)
}

// Columns returns the collected column names in order.
func (b *UpdateBuilder) Columns() []string {
	cols := make([]string, len(b.assignments))
	for i, a := range b.assignments {
		cols[i] = a.column
	}
	return cols
}

// Map returns the collected assignments keyed by column.
func (b *UpdateBuilder) Map() map[string]any {
	m := make(map[string]any, len(b.assignments))
	for _, a := range b.assignments {
		m[a.column] = a.value
	}
	return m
}

// ToSql renders the statement. An update with no columns is rejected with
// ErrNoFieldsToUpdate rather than producing an empty SET clause.
func (b *UpdateBuilder) ToSql() (string, []any, error) {
	if len(b.assignments) == 0 {
		return "", nil, fmt.Errorf("%w: %s %s=%v", ErrNoFieldsToUpdate, b.table, b.idColumn, b.id)
	}
	// Set, not SetMap: SetMap sorts columns alphabetically
	qb := psql.Update(b.table)
	for _, a := range b.assignments {
		qb = qb.Set(a.column, a.value)
	}
	return qb.Where(sq.Eq{b.idColumn: b.id}).ToSql()
}
