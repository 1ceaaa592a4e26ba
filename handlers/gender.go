package handlers

import (
	"errors"
	"net/http"

	"github.com/blessedbot/blessbackend/database"
)

type GenderHandler struct {
	Store *database.Store
}

type genderRequest struct {
	Gender *string `json:"Gender"`
}

func (gh *GenderHandler) ListGenders(w http.ResponseWriter, r *http.Request) {
	listTable(w, r, gh.Store, database.GendersTable)
}

func (gh *GenderHandler) CreateGender(w http.ResponseWriter, r *http.Request) {
	var req genderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Gender == nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Missing required field: Gender")
		return
	}

	genderID, err := database.InsertGender(gh.Store, *req.Gender)
	if err != nil {
		writeStoreError(w, err, "create gender")
		return
	}
	writeJSON(w, http.StatusCreated, database.Gender{GenderID: genderID, Gender: *req.Gender})
}

func (gh *GenderHandler) UpdateGender(w http.ResponseWriter, r *http.Request) {
	genderID, ok := parseID(w, r, "gender_id", "gender")
	if !ok {
		return
	}
	var req genderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := database.UpdateGender(gh.Store, genderID, req.Gender); err != nil {
		writeStoreError(w, err, "update gender")
		return
	}

	// updates of a missing id succeed silently, the read back tells the client
	gender, err := database.GetGender(gh.Store, genderID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Gender not found")
			return
		}
		writeStoreError(w, err, "fetch updated gender")
		return
	}
	writeJSON(w, http.StatusOK, gender)
}

func (gh *GenderHandler) DeleteGender(w http.ResponseWriter, r *http.Request) {
	genderID, ok := parseID(w, r, "gender_id", "gender")
	if !ok {
		return
	}
	if err := database.DeleteGender(gh.Store, genderID); err != nil {
		writeStoreError(w, err, "delete gender")
		return
	}
	writeMessage(w, "Gender deleted successfully")
}
