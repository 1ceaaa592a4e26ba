package services

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/blessedbot/blessbackend/config"
	"github.com/blessedbot/blessbackend/database"
	"github.com/blessedbot/blessbackend/utils"
)

const (
	BackupFilename = "backup.zip"
	BackupMimeType = "application/zip"
)

// Archive is a backup snapshot on disk, valid only inside the Backup callback.
type Archive struct {
	Path     string
	Filename string
	MimeType string
	Size     int64
}

// WriteTo streams the archive contents to w.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive %s: %w", a.Path, err)
	}
	defer f.Close()
	return io.Copy(w, f)
}

// BackupService archives the store file and replaces it from an uploaded archive.
// It does not guard against writes running concurrently with a restore.
type BackupService struct {
	store     *database.Store
	workDir   string
	entryName string
	tempDir   string
	staged    bool
}

// NewBackupService creates a backup service for the store described by cfg.
func NewBackupService(store *database.Store, cfg config.Config) *BackupService {
	return &BackupService{
		store:     store,
		workDir:   cfg.WorkDirectory,
		entryName: filepath.ToSlash(cfg.DatabaseFile),
		tempDir:   cfg.TempDirectory,
		staged:    cfg.RestoreMode == config.RestoreModeStaged,
	}
}

// Backup snapshots the store into a single-entry archive and passes it to
// send. The temporary archive is deleted once send returns, whatever happens.
func (s *BackupService) Backup(send func(a *Archive) error) error {
	if _, err := os.Stat(s.store.Path()); err != nil {
		return fmt.Errorf("%w: cannot back up %s: %v", database.ErrStorageUnavailable, s.store.Path(), err)
	}

	zipPath := utils.TempFilePath(s.tempDir, "backup")
	defer utils.RemoveFile(zipPath)

	size, err := utils.CreateFileZip(s.store.Path(), s.entryName, zipPath)
	if err != nil {
		return fmt.Errorf("failed to create backup archive: %w", err)
	}
	log.Printf("backup: created archive %s (Size: %d bytes)", zipPath, size)

	return send(&Archive{
		Path:     zipPath,
		Filename: BackupFilename,
		MimeType: BackupMimeType,
		Size:     size,
	})
}

// BackupBytes returns the backup archive as a byte slice.
func (s *BackupService) BackupBytes() ([]byte, error) {
	var buf bytes.Buffer
	err := s.Backup(func(a *Archive) error {
		_, err := a.WriteTo(&buf)
		return err
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Restore replaces the live store with the contents of the uploaded archive.
//
// In the default destructive mode the live file is deleted before the archive
// is extracted, so a corrupt or mismatched archive leaves no store at all. In
// staged mode the store entry is extracted next to the live file, checked, and
// renamed over it. The temporary upload file is removed in both modes.
func (s *BackupService) Restore(upload io.Reader) error {
	zipPath := utils.TempFilePath(s.tempDir, "restore")
	defer utils.RemoveFile(zipPath)

	if err := writeUpload(upload, zipPath); err != nil {
		return fmt.Errorf("%w: %v", database.ErrRestoreFailed, err)
	}

	if s.staged {
		return s.restoreStaged(zipPath)
	}
	return s.restoreDestructive(zipPath)
}

func writeUpload(upload io.Reader, zipPath string) error {
	if err := os.MkdirAll(filepath.Dir(zipPath), 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file %s: %w", zipPath, err)
	}
	if _, err := io.Copy(f, upload); err != nil {
		f.Close()
		return fmt.Errorf("failed to write uploaded archive: %w", err)
	}
	return f.Close()
}

func (s *BackupService) restoreDestructive(zipPath string) error {
	livePath := s.store.Path()
	if err := os.Remove(livePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to delete %s: %v", database.ErrRestoreFailed, livePath, err)
	}
	log.Printf("restore: deleted live store %s", livePath)

	extracted, err := utils.ExtractZip(zipPath, s.workDir)
	if err != nil {
		return fmt.Errorf("%w: %v", database.ErrRestoreFailed, err)
	}
	if _, err := os.Stat(livePath); err != nil {
		return fmt.Errorf("%w: archive did not contain %s (entries: %v)", database.ErrRestoreFailed, s.entryName, extracted)
	}

	log.Printf("restore: extracted %d entries into %s", len(extracted), s.workDir)
	return s.ensureSchema()
}

func (s *BackupService) restoreStaged(zipPath string) error {
	livePath := s.store.Path()
	stagingPath := livePath + ".restore"
	defer utils.RemoveFile(stagingPath)

	if err := utils.ExtractZipEntry(zipPath, s.entryName, stagingPath); err != nil {
		return fmt.Errorf("%w: %v", database.ErrRestoreFailed, err)
	}
	if err := database.NewStore(stagingPath, 0).Verify(); err != nil {
		return fmt.Errorf("%w: staged store is not usable: %v", database.ErrRestoreFailed, err)
	}
	if err := os.Rename(stagingPath, livePath); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %v", database.ErrRestoreFailed, livePath, err)
	}

	log.Printf("restore: replaced live store %s from staged archive", livePath)
	return s.ensureSchema()
}

// ensureSchema adds tables an older archive may lack, such as Configuration.
func (s *BackupService) ensureSchema() error {
	if err := s.store.EnsureSchema(); err != nil {
		return fmt.Errorf("%w: restored store is not usable: %v", database.ErrRestoreFailed, err)
	}
	return nil
}
