package models

import "time"

// Application is one schedulable application row. WakeUpID is persisted
// as a 0x-prefixed hex string, matching how flight software documents
// message IDs.
type Application struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:64;uniqueIndex;not null"`
	WakeUpID  string `gorm:"size:16;not null"`
	Priority  int    `gorm:"default:0"`
	SchGroup  string `gorm:"size:64;default:SCH_GROUP_NONE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
