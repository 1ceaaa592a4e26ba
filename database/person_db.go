package database

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Person is a bless recipient.
type Person struct {
	PersonID      int64   `json:"PersonId"`
	FirstName     string  `json:"FirstName"`
	LastName      string  `json:"LastName"`
	BirthDate     string  `json:"BirthDate"`
	GenderID      int64   `json:"GenderId"`
	LanguageID    int64   `json:"LanguageId"`
	PhoneNumber   string  `json:"PhoneNumber"`
	PreferredHour int     `json:"PreferredHour"`
	Intro         *string `json:"Intro"`
}

// PersonPatch carries the fields of a partial update; nil means not supplied.
type PersonPatch struct {
	FirstName     *string `json:"FirstName"`
	LastName      *string `json:"LastName"`
	BirthDate     *string `json:"BirthDate"`
	GenderID      *int64  `json:"GenderId"`
	LanguageID    *int64  `json:"LanguageId"`
	PhoneNumber   *string `json:"PhoneNumber"`
	PreferredHour *int    `json:"PreferredHour"`
	Intro         *string `json:"Intro"`
}

var personColumns = []string{
	"PersonId", "FirstName", "LastName", "CAST(BirthDate AS TEXT) AS BirthDate",
	"GenderId", "LanguageId", "PhoneNumber", "PreferredHour", "Intro",
}

func validPreferredHour(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: PreferredHour must be between 0 and 23, got %d", ErrInvalidField, hour)
	}
	return nil
}

func (p Person) validate() error {
	required := []struct{ name, value string }{
		{"FirstName", p.FirstName},
		{"LastName", p.LastName},
		{"BirthDate", p.BirthDate},
		{"PhoneNumber", p.PhoneNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidField, f.name)
		}
	}
	return validPreferredHour(p.PreferredHour)
}

type personScanner struct {
	p                    Person
	genderID, languageID sql.NullInt64
	intro                sql.NullString
}

func (ps *personScanner) dest() []any {
	return []any{&ps.p.PersonID, &ps.p.FirstName, &ps.p.LastName, &ps.p.BirthDate,
		&ps.genderID, &ps.languageID, &ps.p.PhoneNumber, &ps.p.PreferredHour, &ps.intro}
}

func (ps *personScanner) person() Person {
	p := ps.p
	p.GenderID = ps.genderID.Int64
	p.LanguageID = ps.languageID.Int64
	if ps.intro.Valid {
		intro := ps.intro.String
		p.Intro = &intro
	}
	return p
}

// InsertPerson stores p and returns the new PersonId. p.PersonID is ignored.
func InsertPerson(s *Store, p Person) (int64, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	return s.insert(psql.Insert(PersonsTable).
		Columns("FirstName", "LastName", "BirthDate", "GenderId", "LanguageId", "PhoneNumber", "PreferredHour", "Intro").
		Values(p.FirstName, p.LastName, p.BirthDate, p.GenderID, p.LanguageID, p.PhoneNumber, p.PreferredHour, p.Intro),
		"InsertPerson")
}

func ListPersons(s *Store) ([]Person, error) {
	persons := []Person{}
	err := s.queryAll(psql.Select(personColumns...).From(PersonsTable).OrderBy("PersonId ASC"), "ListPersons",
		func(rows *sql.Rows) error {
			var ps personScanner
			if err := rows.Scan(ps.dest()...); err != nil {
				return err
			}
			persons = append(persons, ps.person())
			return nil
		})
	if err != nil {
		return nil, err
	}
	return persons, nil
}

func GetPerson(s *Store, personID int64) (Person, error) {
	var ps personScanner
	err := s.queryOne(psql.Select(personColumns...).From(PersonsTable).Where(sq.Eq{"PersonId": personID}),
		"GetPerson", ps.dest()...)
	if err != nil {
		return Person{}, err
	}
	return ps.person(), nil
}

func UpdatePerson(s *Store, personID int64, patch PersonPatch) error {
	if patch.PreferredHour != nil {
		if err := validPreferredHour(*patch.PreferredHour); err != nil {
			return err
		}
	}
	b := NewUpdateBuilder(PersonsTable, "PersonId", personID)
	b.SetIfNotEmpty("FirstName", patch.FirstName)
	b.SetIfNotEmpty("LastName", patch.LastName)
	b.SetIfNotEmpty("BirthDate", patch.BirthDate)
	SetIfPresent(b, "GenderId", patch.GenderID)
	SetIfPresent(b, "LanguageId", patch.LanguageID)
	b.SetIfNotEmpty("PhoneNumber", patch.PhoneNumber)
	SetIfPresent(b, "PreferredHour", patch.PreferredHour)
	SetIfPresent(b, "Intro", patch.Intro)
	return s.update(b, "UpdatePerson")
}

func DeletePerson(s *Store, personID int64) error {
	return s.deleteByID(PersonsTable, "PersonId", personID, "DeletePerson")
}
