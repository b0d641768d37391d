package models

import "time"

// LotMovement is an append-only trail of an animal's lot changes.
// Rows are only ever inserted, never updated or deleted on their own;
// they go away with the animal's cascade delete.
type LotMovement struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"index;not null"`
	AnimalID uint `gorm:"index;not null"`

	FromLotID *uint // nil on first assignment
	ToLotID   *uint // nil when leaving the lot system

	Date   time.Time `gorm:"index;not null"`
	Reason string    `gorm:"size:255"`

	CreatedAt time.Time
}
