package models

import "time"

// ReservedID is one reserved message ID row. MsgID holds the single value
// or "low - high" range text exactly as entered.
type ReservedID struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	MsgID       string `gorm:"size:64;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
}
