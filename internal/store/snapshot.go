// Package store loads request-scoped record snapshots for the engine.
// Every metric endpoint goes through LoadSnapshot so the whole request
// computes from one consistent read.
package store

import (
	"time"

	"feedlot-backend/internal/engine"
	"feedlot-backend/internal/models"

	"gorm.io/gorm"
)

// LoadSnapshot fetches a tenant's active animals, their weighings and
// all expenses, and wraps them in an engine snapshot. The active-animal
// count is taken from the same query so the rateio denominator matches
// the animal list.
func LoadSnapshot(db *gorm.DB, userID uint, now time.Time) (*engine.Snapshot, error) {
	var animals []models.Animal
	if err := db.Where("user_id = ? AND active = ?", userID, true).
		Order("brinco asc").
		Find(&animals).Error; err != nil {
		return nil, engine.Storage("could not load animals", err)
	}

	ids := make([]uint, 0, len(animals))
	for _, a := range animals {
		ids = append(ids, a.ID)
	}

	var weighings []models.Weighing
	if len(ids) > 0 {
		if err := db.Where("user_id = ? AND animal_id IN ?", userID, ids).
			Order("date asc, created_at asc").
			Find(&weighings).Error; err != nil {
			return nil, engine.Storage("could not load weighings", err)
		}
	}

	var expenses []models.Expense
	if err := db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, engine.Storage("could not load expenses", err)
	}

	return engine.NewSnapshot(animals, weighings, expenses, len(animals), now), nil
}

// LoadAnimalSnapshot is LoadSnapshot plus the weighing history of one
// specific animal. Detail views use it because the animal in question
// may already be inactive and therefore outside the snapshot's active
// set; its weighings are fetched separately so its metrics still come
// from the real history.
func LoadAnimalSnapshot(db *gorm.DB, userID uint, animal *models.Animal, now time.Time) (*engine.Snapshot, error) {
	snap, err := LoadSnapshot(db, userID, now)
	if err != nil {
		return nil, err
	}

	if _, ok := snap.Weighings[animal.ID]; !ok {
		var ws []models.Weighing
		if err := db.Where("user_id = ? AND animal_id = ?", userID, animal.ID).
			Order("date asc, created_at asc").
			Find(&ws).Error; err != nil {
			return nil, engine.Storage("could not load weighings", err)
		}
		snap.IncludeWeighings(animal.ID, ws)
	}

	return snap, nil
}

// LotNames maps lot id to name for the tenant, for report rows.
func LotNames(db *gorm.DB, userID uint) (map[uint]string, error) {
	var lots []models.Lot
	if err := db.Where("user_id = ?", userID).Find(&lots).Error; err != nil {
		return nil, engine.Storage("could not load lots", err)
	}
	names := make(map[uint]string, len(lots))
	for _, l := range lots {
		names[l.ID] = l.Name
	}
	return names, nil
}
