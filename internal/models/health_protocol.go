package models

import "time"

// HealthProtocol is a veterinary intervention record (vaccine, vermifuge,
// antibiotic and so on) applied to a single animal.
type HealthProtocol struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"index;not null"`
	AnimalID uint `gorm:"index;not null"`
	Animal   Animal

	Date    time.Time `gorm:"index;not null"`
	Kind    string    `gorm:"size:50;not null"` // vacina / vermífugo / antibiótico / outro
	Product string    `gorm:"size:100"`
	DoseMl  *float64
	Note    string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
