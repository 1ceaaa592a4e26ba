package repository

import (
	"errors"
	"fmt"

	"github.com/blessedbot/blessbackend/database"
	"github.com/blessedbot/blessbackend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfigurationRepository handles the singleton Configuration row. Every call
// opens its own connection through the store and closes it before returning.
type ConfigurationRepository struct {
	Store *database.Store
}

// NewConfigurationRepository creates a new instance of ConfigurationRepository
func NewConfigurationRepository(store *database.Store) *ConfigurationRepository {
	return &ConfigurationRepository{Store: store}
}

func checkConfigID(id uint) error {
	if id != models.ConfigurationID {
		return fmt.Errorf("%w: got %d, must be %d", database.ErrConfigIDImmutable, id, models.ConfigurationID)
	}
	return nil
}

// Get returns the configuration row, or nil when none has been stored yet.
func (r *ConfigurationRepository) Get() (*models.Configuration, error) {
	var cfg models.Configuration
	found := true
	err := r.Store.WithGorm("GetConfiguration", func(db *gorm.DB) error {
		err := db.First(&cfg, models.ConfigurationID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &cfg, nil
}

// Insert stores the configuration row. It is only valid once; a second insert
// fails with ErrConstraintViolation.
func (r *ConfigurationRepository) Insert(cfg *models.Configuration) error {
	if cfg.ConfigID == 0 {
		cfg.ConfigID = models.ConfigurationID
	}
	if err := checkConfigID(cfg.ConfigID); err != nil {
		return err
	}
	err := r.Store.WithGorm("InsertConfiguration", func(db *gorm.DB) error {
		return db.Create(cfg).Error
	})
	if err != nil {
		return fmt.Errorf("failed to insert configuration: %w", err)
	}
	return nil
}

// Update applies a partial update to the configuration row. Changing the id
// is rejected; a missing row is not an error.
func (r *ConfigurationRepository) Update(patch models.ConfigurationPatch) error {
	if patch.ConfigID != nil {
		if err := checkConfigID(*patch.ConfigID); err != nil {
			return err
		}
	}

	b := database.NewUpdateBuilder(database.ConfigTable, "ConfigId", models.ConfigurationID)
	database.SetIfPresent(b, "WhatsappApiUrl", patch.WhatsappAPIURL)
	database.SetIfPresent(b, "WhatsappApiToken", patch.WhatsappAPIToken)
	database.SetIfPresent(b, "WhatsappApiSessionName", patch.WhatsappAPISessionName)
	if b.Len() == 0 {
		return fmt.Errorf("%w: configuration", database.ErrNoFieldsToUpdate)
	}

	err := r.Store.WithGorm("UpdateConfiguration", func(db *gorm.DB) error {
		return db.Model(&models.Configuration{ConfigID: models.ConfigurationID}).Updates(b.Map()).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update configuration: %w", err)
	}
	return nil
}

// Set inserts the configuration row, or overwrites every field when it
// already exists.
func (r *ConfigurationRepository) Set(cfg *models.Configuration) error {
	if cfg.ConfigID == 0 {
		cfg.ConfigID = models.ConfigurationID
	}
	if err := checkConfigID(cfg.ConfigID); err != nil {
		return err
	}
	err := r.Store.WithGorm("SetConfiguration", func(db *gorm.DB) error {
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ConfigId"}},
			UpdateAll: true,
		}).Create(cfg).Error
	})
	if err != nil {
		return fmt.Errorf("failed to set configuration: %w", err)
	}
	return nil
}
