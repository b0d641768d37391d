package audit

import (
	"fmt"

	"feedlot-backend/internal/engine"
	"feedlot-backend/internal/models"

	"gorm.io/gorm"
)

// WriteLotDeletion appends the deletion-log row for an executed plan.
// Called inside the lot-removal transaction so a log row never exists
// without the deletion it describes.
func WriteLotDeletion(tx *gorm.DB, userID uint, lot *models.Lot, plan *engine.DeletionPlan) error {
	row := models.LotDeletionLog{
		UserID:           userID,
		LotID:            lot.ID,
		LotName:          lot.Name,
		Action:           plan.Action,
		AnimalsAffected:  plan.AnimalsAffected,
		DestinationLotID: plan.DestinationLotID,
		Detail:           plan.Detail,
	}

	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("could not write deletion log: %w", err)
	}

	return nil
}
