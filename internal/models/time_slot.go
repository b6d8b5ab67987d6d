package models

import "time"

// TimeSlot is one stored message definition: a named row of the schedule
// table at a fixed position.
type TimeSlot struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Position  int    `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Assignments []SlotAssignment `gorm:"foreignKey:TimeSlotID"`
}

// SlotAssignment places one application at a position within a time slot.
type SlotAssignment struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	TimeSlotID uint   `gorm:"index;not null"`
	Position   int    `gorm:"not null"`
	AppName    string `gorm:"size:64;not null"`
}
