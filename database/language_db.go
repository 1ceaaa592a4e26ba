package database

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

type Language struct {
	LanguageID int64  `json:"LanguageId"`
	Language   string `json:"Language"`
}

var languageColumns = []string{"LanguageId", "Language"}

func InsertLanguage(s *Store, name string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: Language must not be empty", ErrInvalidField)
	}
	return s.insert(psql.Insert(LanguagesTable).Columns("Language").Values(name), "InsertLanguage")
}

func ListLanguages(s *Store) ([]Language, error) {
	languages := []Language{}
	err := s.queryAll(psql.Select(languageColumns...).From(LanguagesTable).OrderBy("LanguageId ASC"), "ListLanguages",
		func(rows *sql.Rows) error {
			var l Language
			if err := rows.Scan(&l.LanguageID, &l.Language); err != nil {
				return err
			}
			languages = append(languages, l)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return languages, nil
}

func GetLanguage(s *Store, languageID int64) (Language, error) {
	var l Language
	err := s.queryOne(psql.Select(languageColumns...).From(LanguagesTable).Where(sq.Eq{"LanguageId": languageID}),
		"GetLanguage", &l.LanguageID, &l.Language)
	if err != nil {
		return Language{}, err
	}
	return l, nil
}

func UpdateLanguage(s *Store, languageID int64, name *string) error {
	b := NewUpdateBuilder(LanguagesTable, "LanguageId", languageID).SetIfNotEmpty("Language", name)
	return s.update(b, "UpdateLanguage")
}

func DeleteLanguage(s *Store, languageID int64) error {
	return s.deleteByID(LanguagesTable, "LanguageId", languageID, "DeleteLanguage")
}
