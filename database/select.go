package database

import (
	"database/sql"
	"fmt"
)

// Record is a row keyed by column name.
type Record map[string]any

// selectColumns lists, per table, the projection used by SelectAll. BirthDate
// is cast so the driver returns the stored text instead of parsing a DATE.
var selectColumns = map[string][]string{
	LanguagesTable: languageColumns,
	GendersTable:   genderColumns,
	BlessesTable:   blessColumns,
	PersonsTable:   personColumns,
	ConfigTable:    {"ConfigId", "WhatsappApiUrl", "WhatsappApiToken", "WhatsappApiSessionName"},
}

// SelectAll reads the whole table, ordered by primary key, and returns either
// positional tuples ([]any) or name-keyed Records depending on projectToMap.
// The result is fully materialized before the connection is released.
func SelectAll(s *Store, table string, projectToMap bool) ([]any, error) {
	columns, ok := selectColumns[table]
	if !ok {
		return nil, fmt.Errorf("%w: unknown table %q", ErrInvalidField, table)
	}

	result := []any{}
	var names []string
	err := s.queryAll(psql.Select(columns...).From(table).OrderBy(columns[0]+" ASC"), "SelectAll "+table,
		func(rows *sql.Rows) error {
			if names == nil {
				var err error
				if names, err = rows.Columns(); err != nil {
					return err
				}
			}
			values := make([]any, len(names))
			ptrs := make([]any, len(names))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return err
			}
			for i, v := range values {
				if b, ok := v.([]byte); ok {
					values[i] = string(b)
				}
			}
			if !projectToMap {
				result = append(result, values)
				return nil
			}
			rec := make(Record, len(names))
			for i, name := range names {
				rec[name] = values[i]
			}
			result = append(result, rec)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return result, nil
}
