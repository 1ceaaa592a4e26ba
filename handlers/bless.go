package handlers

import (
	"errors"
	"net/http"

	"github.com/blessedbot/blessbackend/database"
)

type BlessHandler struct {
	Store *database.Store
}

func (bh *BlessHandler) ListBlesses(w http.ResponseWriter, r *http.Request) {
	listTable(w, r, bh.Store, database.BlessesTable)
}

func (bh *BlessHandler) CreateBless(w http.ResponseWriter, r *http.Request) {
	var req database.BlessPatch
	if !decodeBody(w, r, &req) {
		return
	}
	if req.GenderID == nil || req.LanguageID == nil || req.Bless == nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request", "Missing required fields: GenderId, LanguageId, Bless")
		return
	}

	blessID, err := database.InsertBless(bh.Store, *req.GenderID, *req.LanguageID, *req.Bless)
	if err != nil {
		writeStoreError(w, err, "create bless")
		return
	}
	writeJSON(w, http.StatusCreated, database.Bless{
		BlessID:    blessID,
		GenderID:   *req.GenderID,
		LanguageID: *req.LanguageID,
		Bless:      *req.Bless,
	})
}

func (bh *BlessHandler) UpdateBless(w http.ResponseWriter, r *http.Request) {
	blessID, ok := parseID(w, r, "bless_id", "bless")
	if !ok {
		return
	}
	var req database.BlessPatch
	if !decodeBody(w, r, &req) {
		return
	}

	if err := database.UpdateBless(bh.Store, blessID, req); err != nil {
		writeStoreError(w, err, "update bless")
		return
	}

	bless, err := database.GetBless(bh.Store, blessID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Bless not found")
			return
		}
		writeStoreError(w, err, "fetch updated bless")
		return
	}
	writeJSON(w, http.StatusOK, bless)
}

func (bh *BlessHandler) DeleteBless(w http.ResponseWriter, r *http.Request) {
	blessID, ok := parseID(w, r, "bless_id", "bless")
	if !ok {
		return
	}
	if err := database.DeleteBless(bh.Store, blessID); err != nil {
		writeStoreError(w, err, "delete bless")
		return
	}
	writeMessage(w, "Bless deleted successfully")
}
