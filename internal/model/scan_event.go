package model

import (
	"time"

	"github.com/google/uuid"
)

type ScanStatus string

const (
	ScanStatusIn  ScanStatus = "IN"
	ScanStatusOut ScanStatus = "OUT"
)

// ScanEvent is one scan of a box entering or leaving the baking room.
// Date is nil when the source value could not be parsed. Model is nil when the
// source has no model column or the cell is blank.
type ScanEvent struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"-"`
	Date     *time.Time `gorm:"column:scanned_at;index" json:"date"`
	Status   ScanStatus `gorm:"type:varchar(8);not null;index" json:"status"`
	PalletID string     `gorm:"column:pallet_id;type:varchar(64)" json:"pallet_id"`
	BoxID    string     `gorm:"column:box_id;type:varchar(64);index" json:"box_id"`
	Model    *string    `gorm:"type:varchar(128)" json:"model,omitempty"`
}

func (ScanEvent) TableName() string {
	return "scan_events"
}
