package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/blessedbot/blessbackend/database"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// writeStoreError translates a persistence error into a client-facing response.
// action describes what failed, e.g. "create language".
func writeStoreError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, database.ErrInvalidField),
		errors.Is(err, database.ErrNoFieldsToUpdate),
		errors.Is(err, database.ErrConfigIDImmutable):
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, database.ErrConstraintViolation):
		WriteAPIError(w, http.StatusConflict, "conflict", "Failed to "+action+": value already exists")
	case errors.Is(err, database.ErrNotFound):
		WriteAPIError(w, http.StatusNotFound, "not_found", "Failed to "+action+": not found")
	case errors.Is(err, database.ErrStorageUnavailable):
		log.Printf("Storage unavailable while trying to %s: %v", action, err)
		WriteAPIError(w, http.StatusServiceUnavailable, "storage_unavailable", "Failed to "+action+": storage unavailable")
	case errors.Is(err, database.ErrRestoreFailed):
		log.Printf("Error trying to %s: %v", action, err)
		WriteAPIError(w, http.StatusInternalServerError, "restore_failed", err.Error())
	default:
		log.Printf("Error trying to %s: %v", action, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to "+action)
	}
}
