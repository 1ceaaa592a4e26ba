package database

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

type Gender struct {
	GenderID int64  `json:"GenderId"`
	Gender   string `json:"Gender"`
}

var genderColumns = []string{"GenderId", "Gender"}

func InsertGender(s *Store, name string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: Gender must not be empty", ErrInvalidField)
	}
	return s.insert(psql.Insert(GendersTable).Columns("Gender").Values(name), "InsertGender")
}

func ListGenders(s *Store) ([]Gender, error) {
	genders := []Gender{}
	err := s.queryAll(psql.Select(genderColumns...).From(GendersTable).OrderBy("GenderId ASC"), "ListGenders",
		func(rows *sql.Rows) error {
			var g Gender
			if err := rows.Scan(&g.GenderID, &g.Gender); err != nil {
				return err
			}
			genders = append(genders, g)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return genders, nil
}

func GetGender(s *Store, genderID int64) (Gender, error) {
	var g Gender
	err := s.queryOne(psql.Select(genderColumns...).From(GendersTable).Where(sq.Eq{"GenderId": genderID}),
		"GetGender", &g.GenderID, &g.Gender)
	if err != nil {
		return Gender{}, err
	}
	return g, nil
}

func UpdateGender(s *Store, genderID int64, name *string) error {
	b := NewUpdateBuilder(GendersTable, "GenderId", genderID).SetIfNotEmpty("Gender", name)
	return s.update(b, "UpdateGender")
}

func DeleteGender(s *Store, genderID int64) error {
	return s.deleteByID(GendersTable, "GenderId", genderID, "DeleteGender")
}
