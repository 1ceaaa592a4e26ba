package database

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const driverName = "sqlite3"

// Open modes for the store file. Regular operations never create the file, so
// a store removed by a failed restore reports as unavailable instead of being
// recreated empty.
const (
	modeReadWrite       = "rw"
	modeReadWriteCreate = "rwc"
)

// Store is the connection manager for the on-disk SQLite file. It holds no
// open handle: every operation acquires its own connection and releases it
// before returning, so the file stays unlocked between requests.
type Store struct {
	path          string
	busyTimeoutMS int
}

// NewStore returns a Store for the database file at path. Nothing is opened
// until the first operation.
func NewStore(path string, busyTimeoutMS int) *Store {
	return &Store{path: path, busyTimeoutMS: busyTimeoutMS}
}

// Path returns the location of the store file.
func (s *Store) Path() string {
	return s.path
}

// DSN returns the driver data source name used for regular operations.
func (s *Store) DSN() string {
	return s.dsn(modeReadWrite)
}

func (s *Store) dsn(mode string) string {
	dsn := "file:" + s.path
	params := []string{"mode=" + mode}
	if s.busyTimeoutMS > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", s.busyTimeoutMS))
	}
	return dsn + "?" + strings.Join(params, "&")
}

// Acquire opens a live handle to an existing store file. The caller must
// Release it.
func (s *Store) Acquire() (*sql.DB, error) {
	return s.acquire(modeReadWrite)
}

func (s *Store) acquire(mode string) (*sql.DB, error) {
	db, err := sql.Open(driverName, s.dsn(mode))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database %s: %v", ErrStorageUnavailable, s.path, err)
	}
	// a single connection per acquisition; nothing is pooled across operations
	db.SetMaxOpenConns(1)

	// sql.Open is lazy, ping forces the file to be opened
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to open database %s: %v", ErrStorageUnavailable, s.path, err)
	}
	return db, nil
}

// Release closes a handle obtained from Acquire.
func (s *Store) Release(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Printf("warning: failed to close database %s: %v", s.path, err)
	}
}

// withConn runs fn against a freshly acquired connection and always releases it.
func (s *Store) withConn(fn func(db *sql.DB) error) error {
	return s.withConnMode(modeReadWrite, fn)
}

func (s *Store) withConnMode(mode string, fn func(db *sql.DB) error) error {
	db, err := s.acquire(mode)
	if err != nil {
		return err
	}
	defer s.Release(db)
	return fn(db)
}

// exec runs a single built statement and returns its result.
func (s *Store) exec(builder sq.Sqlizer, op string) (sql.Result, error) {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for %s: %w", op, err)
	}
	var result sql.Result
	err = s.withConn(func(db *sql.DB) error {
		var execErr error
		result, execErr = db.Exec(sqlStr, args...)
		return execErr
	})
	if err != nil {
		return nil, classify(err, op)
	}
	return result, nil
}

// insert runs a fixed-column INSERT and returns the store-assigned id.
func (s *Store) insert(builder sq.InsertBuilder, op string) (int64, error) {
	result, err := s.exec(builder, op)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id for %s: %w", op, err)
	}
	return id, nil
}

// deleteByID removes a row by primary key. Zero matching rows is not an error.
func (s *Store) deleteByID(table, idColumn string, id int64, op string) error {
	result, err := s.exec(psql.Delete(table).Where(sq.Eq{idColumn: id}), op)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Printf("%s: no row in %s with %s=%d", op, table, idColumn, id)
	}
	return nil
}

// update renders and runs a partial update. Zero matching rows is not an error.
func (s *Store) update(b *UpdateBuilder, op string) error {
	result, err := s.exec(b, op)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Printf("%s: no row in %s with %s=%v", op, b.table, b.idColumn, b.id)
	}
	return nil
}

// queryAll runs a SELECT and materializes every row through scan before the
// connection is released; no cursor outlives the call.
func (s *Store) queryAll(builder sq.SelectBuilder, op string, scan func(rows *sql.Rows) error) error {
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for %s: %w", op, err)
	}
	err = s.withConn(func(db *sql.DB) error {
		rows, err := db.Query(sqlStr, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			if err := scan(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	})
	if err != nil {
		return classify(err, op)
	}
	return nil
}

// queryOne runs a SELECT expected to return at most one row.
func (s *Store) queryOne(builder sq.SelectBuilder, op string, dest ...any) error {
	sqlStr, args, err := builder.Limit(1).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for %s: %w", op, err)
	}
	err = s.withConn(func(db *sql.DB) error {
		return db.QueryRow(sqlStr, args...).Scan(dest...)
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return classify(err, op)
	}
	return nil
}
