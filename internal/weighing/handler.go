package weighing

import (
	"time"

	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/config"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/engine"
	"feedlot-backend/internal/httperr"
	"feedlot-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateWeighingRequest struct {
	AnimalID     uint    `json:"animal_id"`
	Date         string  `json:"date"` // "2025-12-09"
	WeightKg     float64 `json:"weight_kg"`
	OperatorName string  `json:"operator_name"`
	Note         string  `json:"note"`
}

type WeighingResponse struct {
	ID           uint    `json:"id"`
	AnimalID     uint    `json:"animal_id"`
	Date         string  `json:"date"`
	WeightKg     float64 `json:"weight_kg"`
	OperatorName string  `json:"operator_name"`
	Note         string  `json:"note"`

	Warning      string  `json:"warning,omitempty"`
	GMDSinceLast float64 `json:"gmd_since_last,omitempty"`
}

// singleAnimalSnapshot builds the minimal snapshot the anomaly check
// needs: one animal and its weighings.
func singleAnimalSnapshot(cfg *config.Config, userID uint, animal *models.Animal) (*engine.Snapshot, error) {
	var weighings []models.Weighing
	if err := database.DB.
		Where("user_id = ? AND animal_id = ?", userID, animal.ID).
		Order("date asc, created_at asc").
		Find(&weighings).Error; err != nil {
		return nil, err
	}

	snap := engine.NewSnapshot([]models.Animal{*animal}, weighings, nil, 1, time.Now())
	snap.Thresholds = engine.Thresholds{
		DropLimit:  cfg.WeighingDropLimit,
		SpikeLimit: cfg.WeighingSpikeLimit,
	}
	return snap, nil
}

// POST /api/weighings
// The anomaly check runs against the resolved latest weighing before
// the insert. Warnings are returned with the created row; they never
// block the write; the front end decides whether to ask first via
// POST /api/weighings/check.
func CreateWeighingHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateWeighingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.AnimalID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "animal_id is required")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
		}
		if vErr := engine.ValidateWeighing(body.WeightKg, date, time.Now()); vErr != nil {
			return httperr.Engine(vErr)
		}

		var animal models.Animal
		if err := database.DB.First(&animal, "id = ? AND user_id = ?", body.AnimalID, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Animal not found")
		}

		snap, snapErr := singleAnimalSnapshot(cfg, userID, &animal)
		if snapErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load weighings")
		}
		check := snap.CheckNew(animal.ID, animal.EntryWeight, animal.EntryDate, body.WeightKg)

		w := models.Weighing{
			UserID:       userID,
			AnimalID:     animal.ID,
			Date:         date,
			WeightKg:     body.WeightKg,
			OperatorName: body.OperatorName,
			Note:         body.Note,
		}
		if err := database.DB.Create(&w).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save weighing")
		}

		return c.Status(fiber.StatusCreated).JSON(WeighingResponse{
			ID:           w.ID,
			AnimalID:     w.AnimalID,
			Date:         w.Date.Format("2006-01-02"),
			WeightKg:     w.WeightKg,
			OperatorName: w.OperatorName,
			Note:         w.Note,
			Warning:      string(check.Warning),
			GMDSinceLast: engine.Round2(check.GMDSinceLast),
		})
	}
}

// POST /api/weighings/check
// Dry-run classification, for the confirmation dialog before saving.
func CheckWeighingHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateWeighingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.AnimalID == 0 || body.WeightKg <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "animal_id and a positive weight_kg are required")
		}

		var animal models.Animal
		if err := database.DB.First(&animal, "id = ? AND user_id = ?", body.AnimalID, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Animal not found")
		}

		snap, snapErr := singleAnimalSnapshot(cfg, userID, &animal)
		if snapErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load weighings")
		}

		check := snap.CheckNew(animal.ID, animal.EntryWeight, animal.EntryDate, body.WeightKg)
		return c.JSON(fiber.Map{
			"warning":        string(check.Warning),
			"gmd_since_last": engine.Round2(check.GMDSinceLast),
			"days_since":     check.DaysSince,
		})
	}
}

// GET /api/animals/:id/weighings
func ListWeighingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var animal models.Animal
		if err := database.DB.First(&animal, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Animal not found")
		}

		var rows []models.Weighing
		if err := database.DB.
			Where("user_id = ? AND animal_id = ?", userID, animal.ID).
			Order("date desc, created_at desc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list weighings")
		}

		resp := make([]WeighingResponse, 0, len(rows))
		for _, w := range rows {
			resp = append(resp, WeighingResponse{
				ID:           w.ID,
				AnimalID:     w.AnimalID,
				Date:         w.Date.Format("2006-01-02"),
				WeightKg:     w.WeightKg,
				OperatorName: w.OperatorName,
				Note:         w.Note,
			})
		}

		return c.JSON(resp)
	}
}

// DELETE /api/weighings/:id
func DeleteWeighingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var w models.Weighing
		if err := database.DB.First(&w, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Weighing not found")
		}

		if err := database.DB.Delete(&w).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete weighing")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
