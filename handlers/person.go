package handlers

import (
	"errors"
	"net/http"

	"github.com/blessedbot/blessbackend/database"
)

type PersonHandler struct {
	Store *database.Store
}

func (ph *PersonHandler) ListPersons(w http.ResponseWriter, r *http.Request) {
	listTable(w, r, ph.Store, database.PersonsTable)
}

func (ph *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req database.PersonPatch
	if !decodeBody(w, r, &req) {
		return
	}
	if req.FirstName == nil || req.LastName == nil || req.BirthDate == nil ||
		req.GenderID == nil || req.LanguageID == nil || req.PhoneNumber == nil || req.PreferredHour == nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_request",
			"Missing required fields: FirstName, LastName, BirthDate, GenderId, LanguageId, PhoneNumber, PreferredHour")
		return
	}

	person := database.Person{
		FirstName:     *req.FirstName,
		LastName:      *req.LastName,
		BirthDate:     *req.BirthDate,
		GenderID:      *req.GenderID,
		LanguageID:    *req.LanguageID,
		PhoneNumber:   *req.PhoneNumber,
		PreferredHour: *req.PreferredHour,
		Intro:         req.Intro,
	}
	personID, err := database.InsertPerson(ph.Store, person)
	if err != nil {
		writeStoreError(w, err, "create person")
		return
	}
	person.PersonID = personID
	writeJSON(w, http.StatusCreated, person)
}

func (ph *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	personID, ok := parseID(w, r, "person_id", "person")
	if !ok {
		return
	}
	var req database.PersonPatch
	if !decodeBody(w, r, &req) {
		return
	}

	if err := database.UpdatePerson(ph.Store, personID, req); err != nil {
		writeStoreError(w, err, "update person")
		return
	}

	person, err := database.GetPerson(ph.Store, personID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Person not found")
			return
		}
		writeStoreError(w, err, "fetch updated person")
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (ph *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	personID, ok := parseID(w, r, "person_id", "person")
	if !ok {
		return
	}
	if err := database.DeletePerson(ph.Store, personID); err != nil {
		writeStoreError(w, err, "delete person")
		return
	}
	writeMessage(w, "Person deleted successfully")
}
