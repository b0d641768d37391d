package models

import "time"

type Animal struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex:idx_animals_user_brinco"`
	User   User

	// Brinco: ear-tag identifier, unique within a tenant
	Brinco string `gorm:"size:50;not null;uniqueIndex:idx_animals_user_brinco"`

	EntryWeight float64   `gorm:"not null"` // kg
	EntryDate   time.Time `gorm:"index;not null"`

	LotID *uint `gorm:"index"`
	Lot   *Lot

	AcquisitionCost *float64 // purchase value, nil when born on site

	Sex   string `gorm:"size:10"`
	Breed string `gorm:"size:50"`

	Active bool `gorm:"default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
