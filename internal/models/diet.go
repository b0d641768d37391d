package models

import "time"

type Diet struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"`

	Name               string  `gorm:"size:100;not null"`
	DailyConsumptionKg float64 `gorm:"not null"` // per head per day
	CostPerKg          float64 `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
