package handlers

import (
	"net/http"

	"github.com/blessedbot/blessbackend/models"
	"github.com/blessedbot/blessbackend/repository"
)

type ConfigurationHandler struct {
	ConfigRepo repository.ConfigurationRepositoryInterface
}

func NewConfigurationHandler(configRepo repository.ConfigurationRepositoryInterface) *ConfigurationHandler {
	return &ConfigurationHandler{ConfigRepo: configRepo}
}

func (ch *ConfigurationHandler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg, err := ch.ConfigRepo.Get()
	if err != nil {
		writeStoreError(w, err, "get configuration")
		return
	}
	if cfg == nil {
		WriteAPIError(w, http.StatusNotFound, "not_found", "Configuration has not been set")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// SetConfiguration stores every field, creating the row on first use.
func (ch *ConfigurationHandler) SetConfiguration(w http.ResponseWriter, r *http.Request) {
	var req models.Configuration
	if !decodeBody(w, r, &req) {
		return
	}
	if err := ch.ConfigRepo.Set(&req); err != nil {
		writeStoreError(w, err, "set configuration")
		return
	}
	writeMessage(w, "Configuration saved successfully")
}

// PatchConfiguration updates only the supplied fields of an existing row.
func (ch *ConfigurationHandler) PatchConfiguration(w http.ResponseWriter, r *http.Request) {
	var req models.ConfigurationPatch
	if !decodeBody(w, r, &req) {
		return
	}
	if err := ch.ConfigRepo.Update(req); err != nil {
		writeStoreError(w, err, "update configuration")
		return
	}

	cfg, err := ch.ConfigRepo.Get()
	if err != nil {
		writeStoreError(w, err, "fetch updated configuration")
		return
	}
	if cfg == nil {
		WriteAPIError(w, http.StatusNotFound, "not_found", "Configuration has not been set")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
