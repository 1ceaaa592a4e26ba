package database

import (
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Bless is a message template for a gender/language pair. GenderID and
// LanguageID are soft references; deleting the referenced rows leaves them dangling.
type Bless struct {
	BlessID    int64  `json:"BlessId"`
	GenderID   int64  `json:"GenderId"`
	LanguageID int64  `json:"LanguageId"`
	Bless      string `json:"Bless"`
}

// BlessPatch carries the fields of a partial update; nil means not supplied.
type BlessPatch struct {
	GenderID   *int64  `json:"GenderId"`
	LanguageID *int64  `json:"LanguageId"`
	Bless      *string `json:"Bless"`
}

var blessColumns = []string{"BlessId", "GenderId", "LanguageId", "Bless"}

func scanBless(row interface{ Scan(...any) error }) (Bless, error) {
	var b Bless
	var genderID, languageID sql.NullInt64
	if err := row.Scan(&b.BlessID, &genderID, &languageID, &b.Bless); err != nil {
		return Bless{}, err
	}
	b.GenderID = genderID.Int64
	b.LanguageID = languageID.Int64
	return b, nil
}

func InsertBless(s *Store, genderID, languageID int64, text string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%w: Bless must not be empty", ErrInvalidField)
	}
	return s.insert(psql.Insert(BlessesTable).
		Columns("GenderId", "LanguageId", "Bless").
		Values(genderID, languageID, text), "InsertBless")
}

func ListBlesses(s *Store) ([]Bless, error) {
	blesses := []Bless{}
	err := s.queryAll(psql.Select(blessColumns...).From(BlessesTable).OrderBy("BlessId ASC"), "ListBlesses",
		func(rows *sql.Rows) error {
			b, err := scanBless(rows)
			if err != nil {
				return err
			}
			blesses = append(blesses, b)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return blesses, nil
}

func GetBless(s *Store, blessID int64) (Bless, error) {
	var genderID, languageID sql.NullInt64
	var b Bless
	err := s.queryOne(psql.Select(blessColumns...).From(BlessesTable).Where(sq.Eq{"BlessId": blessID}),
		"GetBless", &b.BlessID, &genderID, &languageID, &b.Bless)
	if err != nil {
		return Bless{}, err
	}
	b.GenderID = genderID.Int64
	b.LanguageID = languageID.Int64
	return b, nil
}

func UpdateBless(s *Store, blessID int64, patch BlessPatch) error {
	b := NewUpdateBuilder(BlessesTable, "BlessId", blessID)
	SetIfPresent(b, "GenderId", patch.GenderID)
	SetIfPresent(b, "LanguageId", patch.LanguageID)
	b.SetIfNotEmpty("Bless", patch.Bless)
	return s.update(b, "UpdateBless")
}

func DeleteBless(s *Store, blessID int64) error {
	return s.deleteByID(BlessesTable, "BlessId", blessID, "DeleteBless")
}
