package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/blessedbot/blessbackend/database"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// parseID reads a positive integer id from the named URL parameter. On
// failure it writes a 400 response and returns false.
func parseID(w http.ResponseWriter, r *http.Request, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid "+label+" ID format")
		return 0, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into dst. On failure it writes a
// 400 response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// listTable writes every row of table. `?format=tuples` returns positional
// tuples, anything else returns records keyed by column name.
func listTable(w http.ResponseWriter, r *http.Request, store *database.Store, table string) {
	projectToMap := r.URL.Query().Get("format") != "tuples"
	rows, err := database.SelectAll(store, table, projectToMap)
	if err != nil {
		writeStoreError(w, err, "list "+table)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
