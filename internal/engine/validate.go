package engine

import (
	"time"

	"feedlot-backend/internal/models"
)

// ValidateExpense checks scope/reference agreement before anything is
// written: a lot-scoped expense needs a lot and forbids an animal, an
// animal-scoped one the reverse, and a rateio expense takes neither.
func ValidateExpense(scope models.ExpenseScope, lotID, animalID *uint, amount float64) *Error {
	if amount <= 0 {
		return Validation("amount", "amount must be greater than zero")
	}

	switch scope {
	case models.ScopeAllAnimals:
		if lotID != nil || animalID != nil {
			return Validation("scope", "all_animals expense must not reference a lot or animal")
		}
	case models.ScopeSingleLot:
		if lotID == nil {
			return Validation("lot_id", "single_lot expense requires a lot")
		}
		if animalID != nil {
			return Validation("animal_id", "single_lot expense must not reference an animal")
		}
	case models.ScopeSingleAnimal:
		if animalID == nil {
			return Validation("animal_id", "single_animal expense requires an animal")
		}
		if lotID != nil {
			return Validation("lot_id", "single_animal expense must not reference a lot")
		}
	default:
		return Validation("scope", "unknown scope: "+string(scope))
	}

	return nil
}

// ValidateWeighing rejects non-positive weights and future dates.
// Date comparison is at day precision, matching how weighings are
// stored.
func ValidateWeighing(weightKg float64, date, now time.Time) *Error {
	if weightKg <= 0 {
		return Validation("weight_kg", "weight must be greater than zero")
	}
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	if day(date).After(day(now)) {
		return Validation("date", "weighing date cannot be in the future")
	}
	return nil
}
