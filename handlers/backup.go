package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/blessedbot/blessbackend/services"
)

type BackupHandler struct {
	Backups        *services.BackupService
	MaxUploadBytes int64
}

// DownloadBackup streams a zip archive of the store as an attachment.
func (bh *BackupHandler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	streaming := false
	err := bh.Backups.Backup(func(a *services.Archive) error {
		w.Header().Set("Content-Type", a.MimeType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
		w.Header().Set("Content-Length", strconv.FormatInt(a.Size, 10))
		w.WriteHeader(http.StatusOK)
		streaming = true
		_, err := a.WriteTo(w)
		return err
	})
	if err == nil {
		return
	}
	if streaming {
		// headers are already sent, nothing left to report to the client
		log.Printf("Error streaming backup archive: %v", err)
		return
	}
	writeStoreError(w, err, "create backup")
}

// RestoreBackup replaces the store from the multipart field "file".
func (bh *BackupHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	if bh.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, bh.MaxUploadBytes)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_upload", "Missing or unreadable upload field 'file': "+err.Error())
		return
	}
	defer file.Close()

	if err := bh.Backups.Restore(file); err != nil {
		writeStoreError(w, err, "restore database")
		return
	}
	writeMessage(w, "Database restored successfully.")
}
