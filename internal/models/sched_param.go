package models

// SchedParam is the single scheduler-parameter row. Value holds the four
// capacity parameters comma-joined in their fixed order.
type SchedParam struct {
	ID    uint   `gorm:"primaryKey"`
	Value string `gorm:"size:64;not null"`
}

// SchedParamRowID is the fixed primary key of the singleton row.
const SchedParamRowID = 1
