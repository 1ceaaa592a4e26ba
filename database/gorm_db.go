package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var gormLogger = logger.New(
	log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
	logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	},
)

// AcquireGorm opens a GORM handle over the same store file. Like Acquire, it
// never creates the file, and the handle belongs to a single operation and
// must be passed to ReleaseGorm.
func (s *Store) AcquireGorm() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(s.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to database using GORM: %v", ErrStorageUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		if pool, ok := db.ConnPool.(interface{ Close() error }); ok {
			pool.Close()
		}
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: failed to open database %s: %v", ErrStorageUnavailable, s.path, err)
	}
	return db, nil
}

// ReleaseGorm closes the connection behind a handle from AcquireGorm.
func (s *Store) ReleaseGorm(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("warning: failed to get underlying sql.DB for %s: %v", s.path, err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("warning: failed to close database %s: %v", s.path, err)
	}
}

// WithGorm runs fn against a freshly acquired GORM handle and always releases
// it. Driver errors are mapped onto the package's sentinel errors.
func (s *Store) WithGorm(op string, fn func(db *gorm.DB) error) error {
	db, err := s.AcquireGorm()
	if err != nil {
		return err
	}
	defer s.ReleaseGorm(db)
	if err := fn(db); err != nil {
		return classify(err, op)
	}
	return nil
}
