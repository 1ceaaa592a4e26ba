package repository

import (
	"github.com/blessedbot/blessbackend/models"
)

// ConfigurationRepositoryInterface defines the methods for the singleton configuration row
type ConfigurationRepositoryInterface interface {
	Get() (*models.Configuration, error)
	Insert(cfg *models.Configuration) error
	Update(patch models.ConfigurationPatch) error
	Set(cfg *models.Configuration) error
}

var _ ConfigurationRepositoryInterface = (*ConfigurationRepository)(nil)
