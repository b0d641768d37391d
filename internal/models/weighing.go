package models

import "time"

type Weighing struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"index;not null"`
	AnimalID uint `gorm:"index;not null"`
	Animal   Animal

	Date     time.Time `gorm:"index;not null"` // day precision
	WeightKg float64   `gorm:"not null"`

	OperatorName string `gorm:"size:100"`
	Note         string `gorm:"size:255"`

	// CreatedAt breaks ties between same-day weighings (last write wins)
	CreatedAt time.Time
}
