package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Table and column names of the persisted layout.
const (
	LanguagesTable = "Languages"
	GendersTable   = "Genders"
	BlessesTable   = "Blesses"
	PersonsTable   = "Persons"
	ConfigTable    = "Configuration"
)

// Foreign keys are declared but not enforced (foreign_keys stays off), so
// deleting a Gender or Language leaves orphaned ids in Blesses and Persons.
var schemaStatements = []struct {
	table string
	stmt  string
}{
	{LanguagesTable, `
	CREATE TABLE IF NOT EXISTS Languages (
		LanguageId INTEGER PRIMARY KEY AUTOINCREMENT,
		Language TEXT NOT NULL UNIQUE
	);`},
	{GendersTable, `
	CREATE TABLE IF NOT EXISTS Genders (
		GenderId INTEGER PRIMARY KEY AUTOINCREMENT,
		Gender TEXT NOT NULL UNIQUE
	);`},
	{BlessesTable, `
	CREATE TABLE IF NOT EXISTS Blesses (
		BlessId INTEGER PRIMARY KEY AUTOINCREMENT,
		GenderId INTEGER,
		LanguageId INTEGER,
		Bless TEXT NOT NULL,
		FOREIGN KEY(GenderId) REFERENCES Genders(GenderId),
		FOREIGN KEY(LanguageId) REFERENCES Languages(LanguageId)
	);`},
	{PersonsTable, `
	CREATE TABLE IF NOT EXISTS Persons (
		PersonId INTEGER PRIMARY KEY AUTOINCREMENT,
		FirstName TEXT NOT NULL,
		LastName TEXT NOT NULL,
		BirthDate DATE NOT NULL,
		GenderId INTEGER,
		LanguageId INTEGER,
		PhoneNumber TEXT NOT NULL,
		PreferredHour INTEGER NOT NULL,
		Intro TEXT,
		FOREIGN KEY(GenderId) REFERENCES Genders(GenderId),
		FOREIGN KEY(LanguageId) REFERENCES Languages(LanguageId)
	);`},
	{ConfigTable, `
	CREATE TABLE IF NOT EXISTS Configuration (
		ConfigId INTEGER PRIMARY KEY CHECK (ConfigId = 1),
		WhatsappApiUrl TEXT NOT NULL DEFAULT '',
		WhatsappApiToken TEXT NOT NULL DEFAULT '',
		WhatsappApiSessionName TEXT NOT NULL DEFAULT ''
	);`},
}

// EnsureSchema creates every table that does not exist yet, creating the store
// file itself when needed. Safe to call on every startup.
func (s *Store) EnsureSchema() error {
	err := s.withConnMode(modeReadWriteCreate, func(db *sql.DB) error {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		for _, ss := range schemaStatements {
			if _, err := tx.Exec(ss.stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to create %s table: %w", ss.table, err)
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return classify(err, "EnsureSchema")
	}

	log.Println("database schema ensured at", s.path)
	return nil
}

// coreTables must exist in any store file; Configuration is created on demand.
var coreTables = []string{LanguagesTable, GendersTable, BlessesTable, PersonsTable}

// Verify checks that the file is a readable SQLite database holding the core
// tables, without modifying it.
func (s *Store) Verify() error {
	var missing []string
	err := s.withConn(func(db *sql.DB) error {
		for _, table := range coreTables {
			var n int
			err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&n)
			if err != nil {
				return err
			}
			if n == 0 {
				missing = append(missing, table)
			}
		}
		return nil
	})
	if err != nil {
		return classify(err, "Verify")
	}
	if len(missing) > 0 {
		return fmt.Errorf("database %s is missing tables %v", s.path, missing)
	}
	return nil
}
