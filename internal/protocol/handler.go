package protocol

import (
	"strings"
	"time"

	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateProtocolRequest struct {
	AnimalID uint     `json:"animal_id"`
	Date     string   `json:"date"`
	Kind     string   `json:"kind"`
	Product  string   `json:"product"`
	DoseMl   *float64 `json:"dose_ml"`
	Note     string   `json:"note"`
}

type ProtocolResponse struct {
	ID       uint     `json:"id"`
	AnimalID uint     `json:"animal_id"`
	Date     string   `json:"date"`
	Kind     string   `json:"kind"`
	Product  string   `json:"product"`
	DoseMl   *float64 `json:"dose_ml"`
	Note     string   `json:"note"`
}

// POST /api/protocols
func CreateProtocolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateProtocolRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.AnimalID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "animal_id is required")
		}
		body.Kind = strings.TrimSpace(body.Kind)
		if body.Kind == "" {
			return fiber.NewError(fiber.StatusBadRequest, "kind is required")
		}
		if body.DoseMl != nil && *body.DoseMl <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "dose_ml must be greater than zero")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
		}

		var animal models.Animal
		if err := database.DB.First(&animal, "id = ? AND user_id = ?", body.AnimalID, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Animal not found")
		}

		p := models.HealthProtocol{
			UserID:   userID,
			AnimalID: animal.ID,
			Date:     date,
			Kind:     body.Kind,
			Product:  body.Product,
			DoseMl:   body.DoseMl,
			Note:     body.Note,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save protocol")
		}

		return c.Status(fiber.StatusCreated).JSON(ProtocolResponse{
			ID:       p.ID,
			AnimalID: p.AnimalID,
			Date:     p.Date.Format("2006-01-02"),
			Kind:     p.Kind,
			Product:  p.Product,
			DoseMl:   p.DoseMl,
			Note:     p.Note,
		})
	}
}

// GET /api/animals/:id/protocols
func ListProtocolsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var animal models.Animal
		if err := database.DB.First(&animal, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Animal not found")
		}

		var rows []models.HealthProtocol
		if err := database.DB.
			Where("user_id = ? AND animal_id = ?", userID, animal.ID).
			Order("date desc, id desc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list protocols")
		}

		resp := make([]ProtocolResponse, 0, len(rows))
		for _, p := range rows {
			resp = append(resp, ProtocolResponse{
				ID:       p.ID,
				AnimalID: p.AnimalID,
				Date:     p.Date.Format("2006-01-02"),
				Kind:     p.Kind,
				Product:  p.Product,
				DoseMl:   p.DoseMl,
				Note:     p.Note,
			})
		}

		return c.JSON(resp)
	}
}

// DELETE /api/protocols/:id
func DeleteProtocolHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var p models.HealthProtocol
		if err := database.DB.First(&p, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Protocol not found")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete protocol")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
