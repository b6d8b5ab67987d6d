// Package store is the persistence provider: it moves reserved IDs,
// applications, scheduler parameters and message definitions between the
// project database and the in-memory types the compiler consumes.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cfstools/schedtab/internal/catalog"
	"github.com/cfstools/schedtab/internal/models"
	"github.com/cfstools/schedtab/internal/params"
	"github.com/cfstools/schedtab/internal/reserve"
	"github.com/cfstools/schedtab/internal/validator"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadParams reads and parses the scheduler parameters. A missing or
// malformed row yields the documented defaults plus a non-nil warning;
// a database failure is wrapped and surfaced as such. The returned
// Params are always usable.
func LoadParams(db *gorm.DB) (params.Params, error) {
	var row models.SchedParam
	if err := db.First(&row, models.SchedParamRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return params.Defaults(), fmt.Errorf("store: scheduler parameters not stored: using defaults")
		}
		return params.Defaults(), fmt.Errorf("store: load scheduler parameters: %w", err)
	}
	return params.ParseJoined(row.Value)
}

// SaveParams validates and persists the scheduler parameters. Unlike the
// load path, bad values are rejected here rather than defaulted.
func SaveParams(db *gorm.DB, p params.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	row := models.SchedParam{ID: models.SchedParamRowID, Value: p.String()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("store: save scheduler parameters: %w", err)
	}
	return nil
}

// LoadReserved reads the reserved message ID table into a Set. In lenient
// mode malformed rows are returned in bad for the caller to report.
func LoadReserved(db *gorm.DB, strict bool) (*reserve.Set, []string, error) {
	var rows []models.ReservedID
	if err := db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("store: load reserved IDs: %w", err)
	}

	raw := make([][2]string, len(rows))
	for i, r := range rows {
		raw[i] = [2]string{r.MsgID, r.Description}
	}

	entries, bad, err := reserve.LoadEntries(raw, strict)
	if err != nil {
		return nil, nil, err
	}
	return reserve.NewSet(entries), bad, nil
}

// AddReserved reserves each candidate that does not overlap an existing
// reservation, persisting the survivors. Overlapping candidates are
// already covered and are dropped silently; the count of new reservations
// is returned.
func AddReserved(db *gorm.DB, set *reserve.Set, candidates []reserve.Entry) (int, error) {
	added := 0
	for _, c := range candidates {
		if set.Contains(c) {
			continue
		}
		row := models.ReservedID{MsgID: c.String(), Description: c.Description}
		if err := db.Create(&row).Error; err != nil {
			return added, fmt.Errorf("store: reserve %s: %w", c, err)
		}
		set.AddAllNew([]reserve.Entry{c})
		added++
	}
	return added, nil
}

// LoadCatalog reads the application table and builds the validated
// catalog. Rows whose wake-up ID cannot be decoded are skipped and
// reported in warnings; duplicate wake-up IDs fail the load.
func LoadCatalog(db *gorm.DB) (*catalog.Catalog, []string, error) {
	var rows []models.Application
	if err := db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("store: load applications: %w", err)
	}

	var apps []catalog.Application
	var warnings []string
	for _, r := range rows {
		id, err := strconv.ParseInt(strings.TrimSpace(r.WakeUpID), 0, 32)
		if err != nil {
			warnings = append(warnings,
				fmt.Sprintf("application %q: invalid wake-up ID %q skipped", r.Name, r.WakeUpID))
			continue
		}
		apps = append(apps, catalog.Application{
			Name:     r.Name,
			WakeUpID: int(id),
			Priority: r.Priority,
			Group:    r.SchGroup,
		})
	}

	cat, err := catalog.New(apps)
	if err != nil {
		return nil, warnings, err
	}
	return cat, warnings, nil
}

// SaveApplication upserts an application row by name. The wake-up ID is
// stored in its hex form.
func SaveApplication(db *gorm.DB, app catalog.Application) error {
	row := models.Application{
		Name:     app.Name,
		WakeUpID: fmt.Sprintf("0x%04X", app.WakeUpID),
		Priority: app.Priority,
		SchGroup: app.Group,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"wake_up_id", "priority", "sch_group"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("store: save application %q: %w", app.Name, err)
	}
	return nil
}

// DeleteApplication removes an application row by name.
func DeleteApplication(db *gorm.DB, name string) error {
	result := db.Where("name = ?", name).Delete(&models.Application{})
	if result.Error != nil {
		return fmt.Errorf("store: delete application %q: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("store: application %q not found", name)
	}
	return nil
}

// LoadDefinitions reads the stored message definitions in slot-position
// order, each with its application names in assignment order.
func LoadDefinitions(db *gorm.DB) ([]validator.Definition, error) {
	var slots []models.TimeSlot
	err := db.Preload("Assignments", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Order("position ASC").Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("store: load message definitions: %w", err)
	}

	defs := make([]validator.Definition, len(slots))
	for i, slot := range slots {
		def := validator.Definition{Name: slot.Name}
		if def.Name == "" {
			def.Name = fmt.Sprintf("slot_%d", slot.Position)
		}
		for _, a := range slot.Assignments {
			def.AppNames = append(def.AppNames, a.AppName)
		}
		defs[i] = def
	}
	return defs, nil
}

// SaveDefinition replaces the message definition at the given slot
// position with the named applications, in order.
func SaveDefinition(db *gorm.DB, position int, name string, appNames []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var slot models.TimeSlot
		err := tx.Where("position = ?", position).First(&slot).Error
		switch {
		case err == nil:
			slot.Name = name
			if err := tx.Save(&slot).Error; err != nil {
				return fmt.Errorf("store: update slot %d: %w", position, err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			slot = models.TimeSlot{Position: position, Name: name}
			if err := tx.Create(&slot).Error; err != nil {
				return fmt.Errorf("store: create slot %d: %w", position, err)
			}
		default:
			return fmt.Errorf("store: read slot %d: %w", position, err)
		}

		if err := tx.Where("time_slot_id = ?", slot.ID).Delete(&models.SlotAssignment{}).Error; err != nil {
			return fmt.Errorf("store: clear slot %d: %w", position, err)
		}
		for i, appName := range appNames {
			a := models.SlotAssignment{TimeSlotID: slot.ID, Position: i, AppName: appName}
			if err := tx.Create(&a).Error; err != nil {
				return fmt.Errorf("store: assign %q to slot %d: %w", appName, position, err)
			}
		}
		return nil
	})
}
