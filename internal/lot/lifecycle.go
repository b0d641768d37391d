package lot

import (
	"log"
	"time"

	"feedlot-backend/internal/animal"
	"feedlot-backend/internal/audit"
	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/engine"
	"feedlot-backend/internal/httperr"
	"feedlot-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DeleteLotRequest struct {
	Strategy         string `json:"strategy"` // "", "transfer", "terminate"
	DestinationLotID *uint  `json:"destination_lot_id"`
}

// DELETE /api/lots/:id
//
// The engine validates the transition and produces a plan; everything
// the plan implies (reassignment, movement rows, deletion log, lot
// removal, animal removal) runs in ONE transaction. If any step fails
// the whole operation is rolled back and reported as failed; callers
// must re-fetch before retrying.
//
// Behavior is undefined if two deletion strategies race on the same
// lot; serialize destructive lot operations per lot.
func DeleteLotHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body DeleteLotRequest
		// body is optional for empty lots
		_ = c.BodyParser(&body)

		var lot models.Lot
		if err := database.DB.First(&lot, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Lot not found")
		}

		var actives []models.Animal
		if err := database.DB.
			Where("user_id = ? AND lot_id = ? AND active = ?", userID, lot.ID, true).
			Find(&actives).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load lot animals")
		}

		plan, planErr := engine.PlanLotDeletion(&lot, len(actives), engine.DeletionStrategy(body.Strategy), body.DestinationLotID)
		if planErr != nil {
			return httperr.Engine(planErr)
		}

		if plan.DestinationLotID != nil {
			var dest models.Lot
			if err := database.DB.First(&dest, "id = ? AND user_id = ?", *plan.DestinationLotID, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Destination lot not found")
			}
		}

		animalIDs := make([]uint, 0, len(actives))
		for _, a := range actives {
			animalIDs = append(animalIDs, a.ID)
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			switch plan.Action {
			case models.DeletionActionMove:
				if err := tx.Model(&models.Animal{}).
					Where("user_id = ? AND id IN ?", userID, animalIDs).
					Update("lot_id", *plan.DestinationLotID).Error; err != nil {
					return err
				}
				now := time.Now()
				moves := make([]models.LotMovement, 0, len(actives))
				for _, a := range actives {
					moves = append(moves, models.LotMovement{
						UserID:    userID,
						AnimalID:  a.ID,
						FromLotID: &lot.ID,
						ToLotID:   plan.DestinationLotID,
						Date:      now,
						Reason:    engine.MovementReasonArchived,
					})
				}
				if err := tx.Create(&moves).Error; err != nil {
					return err
				}

			case models.DeletionActionFinalize:
				if err := animal.DeleteCascade(tx, userID, animalIDs); err != nil {
					return err
				}
			}

			if err := audit.WriteLotDeletion(tx, userID, &lot, plan); err != nil {
				return err
			}

			return tx.Delete(&models.Lot{}, "id = ? AND user_id = ?", lot.ID, userID).Error
		})
		if txErr != nil {
			log.Printf("lot %d deletion failed, rolled back: %v", lot.ID, txErr)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete lot; nothing was changed")
		}

		return c.JSON(fiber.Map{
			"action":           string(plan.Action),
			"animals_affected": plan.AnimalsAffected,
		})
	}
}
