package expense

import (
	"fmt"
	"strings"
	"time"

	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/engine"
	"feedlot-backend/internal/httperr"
	"feedlot-backend/internal/models"
	"feedlot-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateExpenseRequest struct {
	Date        string  `json:"date"` // "2025-12-09"
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Scope       string  `json:"scope"` // all_animals | single_lot | single_animal
	LotID       *uint   `json:"lot_id"`
	AnimalID    *uint   `json:"animal_id"`
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Scope       string  `json:"scope"`
	LotID       *uint   `json:"lot_id"`
	AnimalID    *uint   `json:"animal_id"`
}

func toResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date.Format("2006-01-02"),
		Category:    e.Category,
		Amount:      engine.Round2(e.Amount),
		Description: e.Description,
		Scope:       string(e.Scope),
		LotID:       e.LotID,
		AnimalID:    e.AnimalID,
	}
}

// POST /api/expenses
// The scope decides which reference is allowed: a rateio expense takes
// none, a lot expense a lot, an animal expense an animal.
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Category = strings.TrimSpace(body.Category)
		if body.Category == "" {
			return fiber.NewError(fiber.StatusBadRequest, "category is required")
		}

		scope := models.ExpenseScope(body.Scope)
		if vErr := engine.ValidateExpense(scope, body.LotID, body.AnimalID, body.Amount); vErr != nil {
			return httperr.Engine(vErr)
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
		}

		if body.LotID != nil {
			var lot models.Lot
			if err := database.DB.First(&lot, "id = ? AND user_id = ?", *body.LotID, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Lot not found")
			}
		}
		if body.AnimalID != nil {
			var animal models.Animal
			if err := database.DB.First(&animal, "id = ? AND user_id = ?", *body.AnimalID, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Animal not found")
			}
		}

		exp := models.Expense{
			UserID:      userID,
			Date:        date,
			Category:    body.Category,
			Amount:      body.Amount,
			Description: body.Description,
			Scope:       scope,
			LotID:       body.LotID,
			AnimalID:    body.AnimalID,
		}

		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save expense")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&exp))
	}
}

// GET /api/expenses?from=...&to=...&category=...&scope=...&lot_id=...&animal_id=...
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Expense{}).Where("user_id = ?", userID)

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from is invalid")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to is invalid")
			}
			dbq = dbq.Where("date <= ?", to)
		}
		if cat := c.Query("category"); cat != "" {
			dbq = dbq.Where("category = ?", cat)
		}
		if scope := c.Query("scope"); scope != "" {
			dbq = dbq.Where("scope = ?", scope)
		}
		if lotStr := c.Query("lot_id"); lotStr != "" {
			var lid uint
			if _, err := fmt.Sscan(lotStr, &lid); err != nil || lid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "lot_id is invalid")
			}
			dbq = dbq.Where("lot_id = ?", lid)
		}
		if animalStr := c.Query("animal_id"); animalStr != "" {
			var aid uint
			if _, err := fmt.Sscan(animalStr, &aid); err != nil || aid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "animal_id is invalid")
			}
			dbq = dbq.Where("animal_id = ?", aid)
		}

		var rows []models.Expense
		if err := dbq.Order("date asc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}

		resp := make([]ExpenseResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}

		return c.JSON(resp)
	}
}

// GET /api/expenses/summary/categories
// Herd-wide cost breakdown. Acquisition is synthesized from the animal
// records by the engine, not read from expense rows.
func CategorySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		snap, loadErr := store.LoadSnapshot(database.DB, userID, time.Now())
		if loadErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load records")
		}

		breakdown := snap.CategoryBreakdown()
		var grandTotal float64

		items := make([]fiber.Map, 0, len(breakdown))
		for _, b := range breakdown {
			items = append(items, fiber.Map{
				"category": b.Category,
				"total":    engine.Round2(b.Total),
			})
			grandTotal += b.Total
		}

		return c.JSON(fiber.Map{
			"items":       items,
			"grand_total": engine.Round2(grandTotal),
		})
	}
}

// DELETE /api/expenses/:id
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}

		if err := database.DB.Delete(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete expense")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
