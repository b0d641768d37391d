package models

import "time"

type Lot struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex:idx_lots_user_name"`
	User   User

	Name     string `gorm:"size:100;not null;uniqueIndex:idx_lots_user_name"`
	Capacity *int

	DietID *uint
	Diet   *Diet

	Active bool `gorm:"default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
