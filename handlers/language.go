package handlers

import (
	"errors"
	"net/http"

	"github.com/blessedbot/blessbackend/database"
)

type LanguageHandler struct {
	Store *database.Store
}

type languageRequest struct {
	Language *string `json:"Language"`
}

func (lh *LanguageHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	listTable(w, r, lh.Store, database.LanguagesTable)
}

func (lh *LanguageHandler) CreateLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Language == nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Missing required field: Language")
		return
	}

	languageID, err := database.InsertLanguage(lh.Store, *req.Language)
	if err != nil {
		writeStoreError(w, err, "create language")
		return
	}
	writeJSON(w, http.StatusCreated, database.Language{LanguageID: languageID, Language: *req.Language})
}

func (lh *LanguageHandler) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	languageID, ok := parseID(w, r, "language_id", "language")
	if !ok {
		return
	}
	var req languageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := database.UpdateLanguage(lh.Store, languageID, req.Language); err != nil {
		writeStoreError(w, err, "update language")
		return
	}

	// updates of a missing id succeed silently, the read back tells the client
	language, err := database.GetLanguage(lh.Store, languageID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Language not found")
			return
		}
		writeStoreError(w, err, "fetch updated language")
		return
	}
	writeJSON(w, http.StatusOK, language)
}

func (lh *LanguageHandler) DeleteLanguage(w http.ResponseWriter, r *http.Request) {
	languageID, ok := parseID(w, r, "language_id", "language")
	if !ok {
		return
	}
	if err := database.DeleteLanguage(lh.Store, languageID); err != nil {
		writeStoreError(w, err, "delete language")
		return
	}
	writeMessage(w, "Language deleted successfully")
}
