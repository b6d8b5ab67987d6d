package db

import (
	"errors"
	"fmt"

	"github.com/cfstools/schedtab/internal/models"
	"github.com/cfstools/schedtab/internal/params"
	"gorm.io/gorm"
)

// AllModels returns every GORM model for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.ReservedID{},
		&models.Application{},
		&models.TimeSlot{},
		&models.SlotAssignment{},
		&models.SchedParam{},
	}
}

// AutoMigrate creates or updates all project tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedDefaults writes the default scheduler-parameter row if the project
// database does not have one yet.
func SeedDefaults(db *gorm.DB) error {
	var row models.SchedParam
	err := db.First(&row, models.SchedParamRowID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("db: read scheduler parameters: %w", err)
	}

	row = models.SchedParam{ID: models.SchedParamRowID, Value: params.Defaults().String()}
	if err := db.Create(&row).Error; err != nil {
		return fmt.Errorf("db: seed scheduler parameters: %w", err)
	}
	return nil
}
