package animal

import (
	"errors"
	"time"

	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/engine"
	"feedlot-backend/internal/httperr"
	"feedlot-backend/internal/models"
	"feedlot-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateAnimalRequest struct {
	Brinco          string   `json:"brinco"`
	EntryWeight     float64  `json:"entry_weight"`
	EntryDate       string   `json:"entry_date"` // "2025-12-09"
	LotID           *uint    `json:"lot_id"`
	AcquisitionCost *float64 `json:"acquisition_cost"`
	Sex             string   `json:"sex"`
	Breed           string   `json:"breed"`
}

type UpdateAnimalRequest struct {
	Brinco          *string  `json:"brinco"`
	LotID           *uint    `json:"lot_id"`
	ClearLot        bool     `json:"clear_lot"`
	AcquisitionCost *float64 `json:"acquisition_cost"`
	Sex             *string  `json:"sex"`
	Breed           *string  `json:"breed"`
	Active          *bool    `json:"active"`
	MoveReason      string   `json:"move_reason"`
}

type AnimalResponse struct {
	ID              uint     `json:"id"`
	Brinco          string   `json:"brinco"`
	EntryWeight     float64  `json:"entry_weight"`
	EntryDate       string   `json:"entry_date"`
	LotID           *uint    `json:"lot_id"`
	AcquisitionCost *float64 `json:"acquisition_cost"`
	Sex             string   `json:"sex"`
	Breed           string   `json:"breed"`
	Active          bool     `json:"active"`

	CurrentWeight float64 `json:"current_weight"`
	GainKg        float64 `json:"gain_kg"`
	ElapsedDays   int     `json:"elapsed_days"`
	ADG           float64 `json:"adg"`
	TotalCost     float64 `json:"total_cost"`
	CostPerKg     float64 `json:"cost_per_kg"`
}

func toResponse(a *models.Animal, m *engine.AnimalMetrics) AnimalResponse {
	r := AnimalResponse{
		ID:              a.ID,
		Brinco:          a.Brinco,
		EntryWeight:     a.EntryWeight,
		EntryDate:       a.EntryDate.Format("2006-01-02"),
		LotID:           a.LotID,
		AcquisitionCost: a.AcquisitionCost,
		Sex:             a.Sex,
		Breed:           a.Breed,
		Active:          a.Active,
	}
	if m != nil {
		r.CurrentWeight = engine.Round2(m.CurrentWeight)
		r.GainKg = engine.Round2(m.TotalGain)
		r.ElapsedDays = m.ElapsedDays
		r.ADG = engine.Round2(m.ADG)
		r.TotalCost = engine.Round2(m.Cost.Total)
		r.CostPerKg = engine.Round2(m.CostPerKg)
	}
	return r
}

// POST /api/animals
// The entry weighing is created in the same transaction so every
// animal has its baseline weighing from the start.
func CreateAnimalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateAnimalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Brinco == "" {
			return fiber.NewError(fiber.StatusBadRequest, "brinco is required")
		}
		if body.EntryWeight <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "entry_weight must be greater than zero")
		}
		if body.AcquisitionCost != nil && *body.AcquisitionCost < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "acquisition_cost cannot be negative")
		}

		entryDate, err := time.Parse("2006-01-02", body.EntryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "entry_date must be 'YYYY-MM-DD'")
		}
		if vErr := engine.ValidateWeighing(body.EntryWeight, entryDate, time.Now()); vErr != nil {
			return httperr.Engine(vErr)
		}

		if body.LotID != nil {
			var lot models.Lot
			if err := database.DB.First(&lot, "id = ? AND user_id = ?", *body.LotID, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Lot not found")
			}
		}

		var dupCount int64
		database.DB.Model(&models.Animal{}).
			Where("user_id = ? AND brinco = ?", userID, body.Brinco).
			Count(&dupCount)
		if dupCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "An animal with this brinco already exists")
		}

		animal := models.Animal{
			UserID:          userID,
			Brinco:          body.Brinco,
			EntryWeight:     body.EntryWeight,
			EntryDate:       entryDate,
			LotID:           body.LotID,
			AcquisitionCost: body.AcquisitionCost,
			Sex:             body.Sex,
			Breed:           body.Breed,
			Active:          true,
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&animal).Error; err != nil {
				return err
			}

			entry := models.Weighing{
				UserID:   userID,
				AnimalID: animal.ID,
				Date:     entryDate,
				WeightKg: body.EntryWeight,
				Note:     "entry weighing",
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}

			if body.LotID != nil {
				move := models.LotMovement{
					UserID:   userID,
					AnimalID: animal.ID,
					ToLotID:  body.LotID,
					Date:     entryDate,
					Reason:   "entry",
				}
				if err := tx.Create(&move).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not register animal")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&animal, nil))
	}
}

// GET /api/animals
// Returns the active herd with derived metrics, all computed from one
// snapshot so the list agrees with detail views and the dashboard.
func ListAnimalsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		snap, loadErr := store.LoadSnapshot(database.DB, userID, time.Now())
		if loadErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load records")
		}

		resp := make([]AnimalResponse, 0, len(snap.Animals))
		for i := range snap.Animals {
			m := snap.MetricsFor(&snap.Animals[i])
			resp = append(resp, toResponse(&snap.Animals[i], &m))
		}

		return c.JSON(resp)
	}
}

// GET /api/animals/:id
// Works for inactive animals too: the snapshot only carries the active
// herd, so the requested animal's weighings are backfilled before the
// metrics are computed.
func GetAnimalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var animal models.Animal
		if err := database.DB.First(&animal, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Animal not found")
		}

		snap, loadErr := store.LoadAnimalSnapshot(database.DB, userID, &animal, time.Now())
		if loadErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load records")
		}

		m := snap.MetricsFor(&animal)
		resp := toResponse(&animal, &m)

		cost := snap.CostFor(&animal)
		return c.JSON(fiber.Map{
			"animal": resp,
			"cost_breakdown": fiber.Map{
				"acquisition":    engine.Round2(cost.Acquisition),
				"direct":         engine.Round2(cost.Direct),
				"lot":            engine.Round2(cost.Lot),
				"rateable_share": engine.Round2(cost.RateableShare),
				"total":          engine.Round2(cost.Total),
			},
		})
	}
}

// PUT /api/animals/:id
// A lot change records a LotMovement in the same transaction.
func UpdateAnimalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var animal models.Animal
		if err := database.DB.First(&animal, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Animal not found")
		}

		var body UpdateAnimalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		fromLot := animal.LotID
		lotChanged := false

		if body.ClearLot {
			if animal.LotID != nil {
				animal.LotID = nil
				lotChanged = true
			}
		} else if body.LotID != nil {
			if animal.LotID == nil || *animal.LotID != *body.LotID {
				var lot models.Lot
				if err := database.DB.First(&lot, "id = ? AND user_id = ?", *body.LotID, userID).Error; err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Lot not found")
				}
				animal.LotID = body.LotID
				lotChanged = true
			}
		}

		if body.Brinco != nil && *body.Brinco != "" && *body.Brinco != animal.Brinco {
			var dupCount int64
			database.DB.Model(&models.Animal{}).
				Where("user_id = ? AND brinco = ? AND id <> ?", userID, *body.Brinco, animal.ID).
				Count(&dupCount)
			if dupCount > 0 {
				return fiber.NewError(fiber.StatusConflict, "An animal with this brinco already exists")
			}
			animal.Brinco = *body.Brinco
		}
		if body.AcquisitionCost != nil {
			if *body.AcquisitionCost < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "acquisition_cost cannot be negative")
			}
			animal.AcquisitionCost = body.AcquisitionCost
		}
		if body.Sex != nil {
			animal.Sex = *body.Sex
		}
		if body.Breed != nil {
			animal.Breed = *body.Breed
		}
		if body.Active != nil {
			animal.Active = *body.Active
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&animal).Error; err != nil {
				return err
			}
			if lotChanged {
				reason := body.MoveReason
				if reason == "" {
					reason = "manual transfer"
				}
				move := models.LotMovement{
					UserID:    userID,
					AnimalID:  animal.ID,
					FromLotID: fromLot,
					ToLotID:   animal.LotID,
					Date:      time.Now(),
					Reason:    reason,
				}
				if err := tx.Create(&move).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update animal")
		}

		return c.JSON(toResponse(&animal, nil))
	}
}

// DELETE /api/animals/:id
// Permanent removal cascades over the dependent tables in one
// transaction, in fixed order: weighings, expenses, protocols,
// movements, then the animal row.
func DeleteAnimalHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var animal models.Animal
		if err := database.DB.First(&animal, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Animal not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load animal")
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			return deleteAnimalsCascade(tx, userID, []uint{animal.ID})
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete animal")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// deleteAnimalsCascade removes the animals and every dependent row.
// Must run inside a transaction; partial deletion is never acceptable.
func deleteAnimalsCascade(tx *gorm.DB, userID uint, animalIDs []uint) error {
	if len(animalIDs) == 0 {
		return nil
	}
	if err := tx.Where("user_id = ? AND animal_id IN ?", userID, animalIDs).
		Delete(&models.Weighing{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ? AND animal_id IN ?", userID, animalIDs).
		Delete(&models.Expense{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ? AND animal_id IN ?", userID, animalIDs).
		Delete(&models.HealthProtocol{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ? AND animal_id IN ?", userID, animalIDs).
		Delete(&models.LotMovement{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ? AND id IN ?", userID, animalIDs).
		Delete(&models.Animal{}).Error
}

// DeleteCascade is the bulk entry point used by lot termination.
func DeleteCascade(tx *gorm.DB, userID uint, animalIDs []uint) error {
	return deleteAnimalsCascade(tx, userID, animalIDs)
}
