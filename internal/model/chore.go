package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Chore urgency levels, ordered so the maximum is meaningful.
const (
	UrgencyLow    int8 = 0
	UrgencyMedium int8 = 1
	UrgencyHigh   int8 = 2
)

// Chore is a to-do item belonging to a room.
type Chore struct {
	gorm.Model
	RoomID      uint   `gorm:"column:room_id;index;not null"`
	Description string `gorm:"column:description;type:varchar(700);not null"`
	Urgency     int8   `gorm:"column:urgency;not null"`
	Done        bool   `gorm:"column:done;not null"`

	// DoerUuid and DoneAt are set when a member completes the chore.
	DoerUuid sql.NullString `gorm:"column:doer_uuid;type:char(20)"`
	DoneAt   sql.NullTime   `gorm:"column:done_at;type:datetime"`
}

func (Chore) TableName() string {
	return "chore"
}
