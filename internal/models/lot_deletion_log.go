package models

import "time"

type DeletionAction string

const (
	DeletionActionMove       DeletionAction = "move"        // animals transferred to another lot
	DeletionActionFinalize   DeletionAction = "finalize"    // animals removed, end of cycle
	DeletionActionHardDelete DeletionAction = "hard_delete" // empty lot removed
)

// LotDeletionLog records how a lot's animals were disposed of when the
// lot was removed. Append-only.
type LotDeletionLog struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"`

	LotID   uint   `gorm:"index;not null"` // id of the removed lot (row no longer exists)
	LotName string `gorm:"size:100;not null"`

	Action          DeletionAction `gorm:"size:20;not null"`
	AnimalsAffected int            `gorm:"not null"`

	DestinationLotID *uint // set when Action == move
	Detail           string `gorm:"size:255"`

	CreatedAt time.Time
}
