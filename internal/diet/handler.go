package diet

import (
	"strings"

	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DietRequest struct {
	Name               *string  `json:"name"`
	DailyConsumptionKg *float64 `json:"daily_consumption_kg"`
	CostPerKg          *float64 `json:"cost_per_kg"`
}

type DietResponse struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	DailyConsumptionKg float64 `json:"daily_consumption_kg"`
	CostPerKg          float64 `json:"cost_per_kg"`
}

func toResponse(d *models.Diet) DietResponse {
	return DietResponse{
		ID:                 d.ID,
		Name:               d.Name,
		DailyConsumptionKg: d.DailyConsumptionKg,
		CostPerKg:          d.CostPerKg,
	}
}

// POST /api/diets
func CreateDietHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body DietRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if body.DailyConsumptionKg == nil || *body.DailyConsumptionKg <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "daily_consumption_kg must be greater than zero")
		}
		if body.CostPerKg == nil || *body.CostPerKg < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "cost_per_kg cannot be negative")
		}

		d := models.Diet{
			UserID:             userID,
			Name:               strings.TrimSpace(*body.Name),
			DailyConsumptionKg: *body.DailyConsumptionKg,
			CostPerKg:          *body.CostPerKg,
		}

		if err := database.DB.Create(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create diet")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&d))
	}
}

// GET /api/diets
func ListDietsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var diets []models.Diet
		if err := database.DB.Where("user_id = ?", userID).Order("name asc").Find(&diets).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list diets")
		}

		resp := make([]DietResponse, 0, len(diets))
		for i := range diets {
			resp = append(resp, toResponse(&diets[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/diets/:id
func UpdateDietHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var d models.Diet
		if err := database.DB.First(&d, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Diet not found")
		}

		var body DietRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			d.Name = name
		}
		if body.DailyConsumptionKg != nil {
			if *body.DailyConsumptionKg <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "daily_consumption_kg must be greater than zero")
			}
			d.DailyConsumptionKg = *body.DailyConsumptionKg
		}
		if body.CostPerKg != nil {
			if *body.CostPerKg < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "cost_per_kg cannot be negative")
			}
			d.CostPerKg = *body.CostPerKg
		}

		if err := database.DB.Save(&d).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update diet")
		}

		return c.JSON(toResponse(&d))
	}
}
