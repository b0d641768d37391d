package models

import "time"

type ExpenseScope string

const (
	ScopeAllAnimals   ExpenseScope = "all_animals"   // rateio: split across the whole herd
	ScopeSingleLot    ExpenseScope = "single_lot"    // charged to one lot
	ScopeSingleAnimal ExpenseScope = "single_animal" // charged to one animal
)

// CategoryAcquisition is synthesized in reports from Animal.AcquisitionCost;
// expense rows with this category are excluded from cost tiers so the value
// is never counted twice.
const CategoryAcquisition = "Aquisição"

type Expense struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"`
	User   User

	Date        time.Time `gorm:"index;not null"`
	Category    string    `gorm:"size:100;not null"`
	Amount      float64   `gorm:"not null"`
	Description string    `gorm:"size:255"`

	Scope ExpenseScope `gorm:"size:20;not null"`

	// exactly one of the two below may be set, matching Scope
	LotID    *uint `gorm:"index"`
	Lot      *Lot
	AnimalID *uint `gorm:"index"`
	Animal   *Animal

	CreatedAt time.Time
	UpdatedAt time.Time
}
