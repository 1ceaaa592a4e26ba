package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePerson(first string, hour int) Person {
	return Person{
		FirstName:     first,
		LastName:      "Cohen",
		BirthDate:     "1990-05-17",
		GenderID:      1,
		LanguageID:    1,
		PhoneNumber:   "+972501234567",
		PreferredHour: hour,
	}
}

func TestLanguage_InsertListUpdateDelete(t *testing.T) {
	s := newTestStore(t)

	englishID, err := InsertLanguage(s, "English")
	require.NoError(t, err)
	hebrewID, err := InsertLanguage(s, "Hebrew")
	require.NoError(t, err)
	assert.NotEqual(t, englishID, hebrewID)

	languages, err := ListLanguages(s)
	require.NoError(t, err)
	assert.Equal(t, []Language{{englishID, "English"}, {hebrewID, "Hebrew"}}, languages)

	require.NoError(t, UpdateLanguage(s, hebrewID, strPtr("Ivrit")))
	got, err := GetLanguage(s, hebrewID)
	require.NoError(t, err)
	assert.Equal(t, "Ivrit", got.Language)

	require.NoError(t, DeleteLanguage(s, englishID))
	languages, err = ListLanguages(s)
	require.NoError(t, err)
	assert.Equal(t, []Language{{hebrewID, "Ivrit"}}, languages)

	_, err = GetLanguage(s, englishID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLanguage_DuplicateNameLeavesTableUnchanged(t *testing.T) {
	s := newTestStore(t)

	_, err := InsertLanguage(s, "English")
	require.NoError(t, err)
	before, err := ListLanguages(s)
	require.NoError(t, err)

	_, err = InsertLanguage(s, "English")
	assert.ErrorIs(t, err, ErrConstraintViolation)

	after, err := ListLanguages(s)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGender_DuplicateNameOnUpdateIsConstraintViolation(t *testing.T) {
	s := newTestStore(t)

	_, err := InsertGender(s, "Male")
	require.NoError(t, err)
	femaleID, err := InsertGender(s, "Female")
	require.NoError(t, err)

	err = UpdateGender(s, femaleID, strPtr("Male"))
	assert.ErrorIs(t, err, ErrConstraintViolation)
}

func TestInsert_RejectsEmptyNames(t *testing.T) {
	s := newTestStore(t)

	_, err := InsertLanguage(s, "")
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = InsertGender(s, "  ")
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = InsertBless(s, 1, 1, "")
	assert.ErrorIs(t, err, ErrInvalidField)

	p := samplePerson("", 9)
	_, err = InsertPerson(s, p)
	assert.ErrorIs(t, err, ErrInvalidField)

	p = samplePerson("A", 24)
	_, err = InsertPerson(s, p)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestBless_Scenario(t *testing.T) {
	s := newTestStore(t)

	languageID, err := InsertLanguage(s, "English")
	require.NoError(t, err)
	assert.Equal(t, int64(1), languageID)

	genderID, err := InsertGender(s, "Male")
	require.NoError(t, err)
	assert.Equal(t, int64(1), genderID)

	blessID, err := InsertBless(s, genderID, languageID, "Happy birthday!")
	require.NoError(t, err)
	assert.Equal(t, int64(1), blessID)

	rows, err := SelectAll(s, BlessesTable, true)
	require.NoError(t, err)
	assert.Equal(t, []any{
		Record{"BlessId": int64(1), "GenderId": int64(1), "LanguageId": int64(1), "Bless": "Happy birthday!"},
	}, rows)
}

func TestBless_PartialUpdateKeepsOtherColumns(t *testing.T) {
	s := newTestStore(t)

	blessID, err := InsertBless(s, 1, 2, "Mazal tov")
	require.NoError(t, err)

	require.NoError(t, UpdateBless(s, blessID, BlessPatch{LanguageID: int64Ptr(3)}))
	got, err := GetBless(s, blessID)
	require.NoError(t, err)
	assert.Equal(t, Bless{BlessID: blessID, GenderID: 1, LanguageID: 3, Bless: "Mazal tov"}, got)

	// an empty text is treated as not supplied
	err = UpdateBless(s, blessID, BlessPatch{Bless: strPtr("")})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	blesses, err := ListBlesses(s)
	require.NoError(t, err)
	assert.Equal(t, []Bless{got}, blesses)
}

func TestPerson_UpdatePreferredHourScenario(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 4; i++ {
		_, err := InsertPerson(s, samplePerson(fmt.Sprintf("P%d", i), 12))
		require.NoError(t, err)
	}
	personID, err := InsertPerson(s, samplePerson("A", 18))
	require.NoError(t, err)
	require.Equal(t, int64(5), personID)

	before, err := GetPerson(s, personID)
	require.NoError(t, err)

	require.NoError(t, UpdatePerson(s, personID, PersonPatch{PreferredHour: intPtr(9)}))

	after, err := GetPerson(s, personID)
	require.NoError(t, err)
	assert.Equal(t, 9, after.PreferredHour)
	assert.Equal(t, "A", after.FirstName)

	before.PreferredHour = 9
	assert.Equal(t, before, after)
}

func TestPerson_ZeroAndEmptyValuesAreIncludedWhenSupplied(t *testing.T) {
	s := newTestStore(t)

	p := samplePerson("A", 18)
	p.Intro = strPtr("Loves football")
	personID, err := InsertPerson(s, p)
	require.NoError(t, err)

	require.NoError(t, UpdatePerson(s, personID, PersonPatch{PreferredHour: intPtr(0), Intro: strPtr(""), GenderID: int64Ptr(0)}))

	got, err := GetPerson(s, personID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PreferredHour)
	assert.Equal(t, int64(0), got.GenderID)
	require.NotNil(t, got.Intro)
	assert.Equal(t, "", *got.Intro)
	assert.Equal(t, "1990-05-17", got.BirthDate)
}

func TestPerson_UpdateRejectsInvalidHour(t *testing.T) {
	s := newTestStore(t)
	personID, err := InsertPerson(s, samplePerson("A", 18))
	require.NoError(t, err)

	err = UpdatePerson(s, personID, PersonPatch{PreferredHour: intPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestUpdateAndDelete_MissingIDIsSilent(t *testing.T) {
	s := newTestStore(t)

	personID, err := InsertPerson(s, samplePerson("A", 18))
	require.NoError(t, err)
	before, err := ListPersons(s)
	require.NoError(t, err)

	assert.NoError(t, UpdatePerson(s, 999, PersonPatch{FirstName: strPtr("Ghost")}))
	assert.NoError(t, DeletePerson(s, 999))
	assert.NoError(t, UpdateLanguage(s, 42, strPtr("Nothing")))
	assert.NoError(t, DeleteGender(s, 42))
	assert.NoError(t, DeleteBless(s, 42))

	after, err := ListPersons(s)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, personID, after[0].PersonID)
}

func TestDelete_ReferencedGenderLeavesOrphans(t *testing.T) {
	s := newTestStore(t)

	genderID, err := InsertGender(s, "Male")
	require.NoError(t, err)
	languageID, err := InsertLanguage(s, "English")
	require.NoError(t, err)
	_, err = InsertBless(s, genderID, languageID, "Happy birthday!")
	require.NoError(t, err)

	require.NoError(t, DeleteGender(s, genderID))

	blesses, err := ListBlesses(s)
	require.NoError(t, err)
	require.Len(t, blesses, 1)
	assert.Equal(t, genderID, blesses[0].GenderID)
}

func TestInsert_FreshIDsAfterDelete(t *testing.T) {
	s := newTestStore(t)

	firstID, err := InsertLanguage(s, "English")
	require.NoError(t, err)
	require.NoError(t, DeleteLanguage(s, firstID))

	secondID, err := InsertLanguage(s, "English")
	require.NoError(t, err)
	assert.Greater(t, secondID, firstID)
}

func TestSelectAll_TuplesAndRecords(t *testing.T) {
	s := newTestStore(t)

	p := samplePerson("A", 18)
	personID, err := InsertPerson(s, p)
	require.NoError(t, err)

	tuples, err := SelectAll(s, PersonsTable, false)
	require.NoError(t, err)
	assert.Equal(t, []any{
		[]any{personID, "A", "Cohen", "1990-05-17", int64(1), int64(1), "+972501234567", int64(18), nil},
	}, tuples)

	records, err := SelectAll(s, PersonsTable, true)
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0].(Record)
	assert.Equal(t, "1990-05-17", rec["BirthDate"])
	assert.Equal(t, int64(18), rec["PreferredHour"])
	assert.Nil(t, rec["Intro"])

	empty, err := SelectAll(s, LanguagesTable, true)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = SelectAll(s, "sqlite_master", true)
	assert.ErrorIs(t, err, ErrInvalidField)
}
