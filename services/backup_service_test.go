package services

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/blessedbot/blessbackend/config"
	"github.com/blessedbot/blessbackend/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	cfg     config.Config
	store   *database.Store
	backups *BackupService
}

func newFixture(t *testing.T, restoreMode string) fixture {
	t.Helper()
	workDir := t.TempDir()
	cfg := config.Config{
		WorkDirectory: workDir,
		DatabaseFile:  filepath.Join("db", "data.db"),
		DatabasePath:  filepath.Join(workDir, "db", "data.db"),
		TempDirectory: t.TempDir(),
		RestoreMode:   restoreMode,
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755))
	store := database.NewStore(cfg.DatabasePath, 5000)
	require.NoError(t, store.EnsureSchema())
	return fixture{cfg: cfg, store: store, backups: NewBackupService(store, cfg)}
}

func (f fixture) seed(t *testing.T) {
	t.Helper()
	languageID, err := database.InsertLanguage(f.store, "English")
	require.NoError(t, err)
	genderID, err := database.InsertGender(f.store, "Female")
	require.NoError(t, err)
	_, err = database.InsertBless(f.store, genderID, languageID, "Happy birthday!")
	require.NoError(t, err)
	_, err = database.InsertPerson(f.store, database.Person{
		FirstName: "Dana", LastName: "Levi", BirthDate: "1985-02-03",
		GenderID: genderID, LanguageID: languageID, PhoneNumber: "+972521111111", PreferredHour: 8,
	})
	require.NoError(t, err)
}

func (f fixture) snapshot(t *testing.T) map[string][]any {
	t.Helper()
	snap := map[string][]any{}
	for _, table := range []string{database.LanguagesTable, database.GendersTable, database.BlessesTable, database.PersonsTable} {
		rows, err := database.SelectAll(f.store, table, true)
		require.NoError(t, err)
		snap[table] = rows
	}
	return snap
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func zipBytes(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestBackup_SingleEntryArchive(t *testing.T) {
	f := newFixture(t, config.RestoreModeDestructive)
	f.seed(t)

	var seen *Archive
	err := f.backups.Backup(func(a *Archive) error {
		seen = a
		assert.Equal(t, BackupMimeType, a.MimeType)
		assert.Equal(t, BackupFilename, a.Filename)

		zr, err := zip.OpenReader(a.Path)
		require.NoError(t, err)
		defer zr.Close()
		require.Len(t, zr.File, 1)
		assert.Equal(t, "db/data.db", zr.File[0].Name)

		rc, err := zr.File[0].Open()
		require.NoError(t, err)
		defer rc.Close()
		archived, err := io.ReadAll(rc)
		require.NoError(t, err)
		live, err := os.ReadFile(f.store.Path())
		require.NoError(t, err)
		assert.Equal(t, live, archived)
		return nil
	})
	require.NoError(t, err)

	_, err = os.Stat(seen.Path)
	assert.True(t, os.IsNotExist(err), "temporary archive should be removed")
	assertDirEmpty(t, f.cfg.TempDirectory)
}

func TestBackup_CleansUpWhenSendFails(t *testing.T) {
	f := newFixture(t, config.RestoreModeDestructive)

	err := f.backups.Backup(func(a *Archive) error {
		return io.ErrClosedPipe
	})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assertDirEmpty(t, f.cfg.TempDirectory)
}

func TestBackup_MissingStore(t *testing.T) {
	f := newFixture(t, config.RestoreModeDestructive)
	require.NoError(t, os.Remove(f.store.Path()))

	_, err := f.backups.BackupBytes()
	assert.ErrorIs(t, err, database.ErrStorageUnavailable)
}

func TestRestore_RoundTrip(t *testing.T) {
	for _, mode := range []string{config.RestoreModeDestructive, config.RestoreModeStaged} {
		t.Run(mode, func(t *testing.T) {
			f := newFixture(t, mode)
			f.seed(t)
			before := f.snapshot(t)

			archive, err := f.backups.BackupBytes()
			require.NoError(t, err)

			// diverge from the backed up state
			_, err = database.InsertLanguage(f.store, "French")
			require.NoError(t, err)
			require.NoError(t, database.DeletePerson(f.store, 1))

			require.NoError(t, f.backups.Restore(bytes.NewReader(archive)))

			assert.Equal(t, before, f.snapshot(t))
			assertDirEmpty(t, f.cfg.TempDirectory)
		})
	}
}

func TestRestore_DestructiveCorruptArchiveLeavesNoStore(t *testing.T) {
	f := newFixture(t, config.RestoreModeDestructive)
	f.seed(t)

	err := f.backups.Restore(bytes.NewReader([]byte("definitely not a zip")))
	assert.ErrorIs(t, err, database.ErrRestoreFailed)

	_, statErr := os.Stat(f.store.Path())
	assert.True(t, os.IsNotExist(statErr), "destructive restore removes the store before extracting")
	assertDirEmpty(t, f.cfg.TempDirectory)

	// later reads report the missing store and leave it missing
	_, err = database.ListLanguages(f.store)
	assert.ErrorIs(t, err, database.ErrStorageUnavailable)
	_, err = f.backups.BackupBytes()
	assert.ErrorIs(t, err, database.ErrStorageUnavailable)
	_, statErr = os.Stat(f.store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRestore_DestructiveMismatchedEntry(t *testing.T) {
	f := newFixture(t, config.RestoreModeDestructive)

	archive := zipBytes(t, map[string][]byte{"other.db": []byte("x")})
	err := f.backups.Restore(bytes.NewReader(archive))
	assert.ErrorIs(t, err, database.ErrRestoreFailed)

	_, statErr := os.Stat(f.store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRestore_RejectsEscapingEntries(t *testing.T) {
	f := newFixture(t, config.RestoreModeDestructive)

	archive := zipBytes(t, map[string][]byte{"../escape.db": []byte("x")})
	err := f.backups.Restore(bytes.NewReader(archive))
	assert.ErrorIs(t, err, database.ErrRestoreFailed)

	_, statErr := os.Stat(filepath.Join(filepath.Dir(f.cfg.WorkDirectory), "escape.db"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRestore_StagedKeepsStoreOnBadArchive(t *testing.T) {
	f := newFixture(t, config.RestoreModeStaged)
	f.seed(t)
	before := f.snapshot(t)

	cases := map[string][]byte{
		"not a zip":     []byte("definitely not a zip"),
		"missing entry": zipBytes(t, map[string][]byte{"other.db": []byte("x")}),
		"not sqlite":    zipBytes(t, map[string][]byte{"db/data.db": bytes.Repeat([]byte("garbage!"), 128)}),
	}
	for name, archive := range cases {
		t.Run(name, func(t *testing.T) {
			err := f.backups.Restore(bytes.NewReader(archive))
			assert.ErrorIs(t, err, database.ErrRestoreFailed)
			assert.Equal(t, before, f.snapshot(t))
			assertDirEmpty(t, f.cfg.TempDirectory)

			_, statErr := os.Stat(f.store.Path() + ".restore")
			assert.True(t, os.IsNotExist(statErr), "staging file should be removed")
		})
	}
}
