package audit

import (
	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DeletionLogResponse struct {
	ID               uint   `json:"id"`
	LotID            uint   `json:"lot_id"`
	LotName          string `json:"lot_name"`
	Action           string `json:"action"`
	AnimalsAffected  int    `json:"animals_affected"`
	DestinationLotID *uint  `json:"destination_lot_id"`
	Detail           string `json:"detail"`
	CreatedAt        string `json:"created_at"`
}

// GET /api/lot-deletion-logs
func ListDeletionLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var rows []models.LotDeletionLog
		if err := database.DB.
			Where("user_id = ?", userID).
			Order("created_at desc").
			Limit(200).
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list deletion logs")
		}

		resp := make([]DeletionLogResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, DeletionLogResponse{
				ID:               r.ID,
				LotID:            r.LotID,
				LotName:          r.LotName,
				Action:           string(r.Action),
				AnimalsAffected:  r.AnimalsAffected,
				DestinationLotID: r.DestinationLotID,
				Detail:           r.Detail,
				CreatedAt:        r.CreatedAt.Format("2006-01-02 15:04"),
			})
		}

		return c.JSON(resp)
	}
}
