package lot

import (
	"strings"
	"time"

	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/engine"
	"feedlot-backend/internal/models"
	"feedlot-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type CreateLotRequest struct {
	Name     string `json:"name"`
	Capacity *int   `json:"capacity"`
	DietID   *uint  `json:"diet_id"`
}

type UpdateLotRequest struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
	DietID   *uint   `json:"diet_id"`
	Active   *bool   `json:"active"`
}

type LotResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Capacity *int   `json:"capacity"`
	DietID   *uint  `json:"diet_id"`
	Active   bool   `json:"active"`

	AnimalCount   int     `json:"animal_count"`
	MeanADG       float64 `json:"mean_adg"`
	MeanWeight    float64 `json:"mean_weight"`
	DailyDietCost float64 `json:"daily_diet_cost"`
	MonthlyDiet   float64 `json:"monthly_diet_cost"`
}

func toResponse(l *models.Lot, s *engine.LotSummary) LotResponse {
	r := LotResponse{
		ID:       l.ID,
		Name:     l.Name,
		Capacity: l.Capacity,
		DietID:   l.DietID,
		Active:   l.Active,
	}
	if s != nil {
		r.AnimalCount = s.AnimalCount
		r.MeanADG = engine.Round2(s.MeanADG)
		r.MeanWeight = engine.Round2(s.MeanWeight)
		r.DailyDietCost = engine.Round2(s.DailyDietCost)
		r.MonthlyDiet = engine.Round2(s.MonthlyDiet)
	}
	return r
}

// metricsByLot groups a snapshot's per-animal metrics by lot id.
func metricsByLot(snap *engine.Snapshot) map[uint][]engine.AnimalMetrics {
	grouped := make(map[uint][]engine.AnimalMetrics)
	for _, m := range snap.MetricsAll() {
		if m.LotID != nil {
			grouped[*m.LotID] = append(grouped[*m.LotID], m)
		}
	}
	return grouped
}

// POST /api/lots
func CreateLotHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateLotRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if body.Capacity != nil && *body.Capacity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "capacity must be greater than zero")
		}

		if body.DietID != nil {
			var diet models.Diet
			if err := database.DB.First(&diet, "id = ? AND user_id = ?", *body.DietID, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Diet not found")
			}
		}

		var dupCount int64
		database.DB.Model(&models.Lot{}).
			Where("user_id = ? AND name = ?", userID, body.Name).
			Count(&dupCount)
		if dupCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "A lot with this name already exists")
		}

		lot := models.Lot{
			UserID:   userID,
			Name:     body.Name,
			Capacity: body.Capacity,
			DietID:   body.DietID,
			Active:   true,
		}

		if err := database.DB.Create(&lot).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create lot")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&lot, nil))
	}
}

// GET /api/lots
// Every lot card carries the engine's lot summary (mean of per-animal
// ADGs, mean weight, projected diet cost).
func ListLotsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var lots []models.Lot
		if err := database.DB.
			Preload("Diet").
			Where("user_id = ?", userID).
			Order("name asc").
			Find(&lots).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list lots")
		}

		snap, loadErr := store.LoadSnapshot(database.DB, userID, time.Now())
		if loadErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load records")
		}
		grouped := metricsByLot(snap)

		resp := make([]LotResponse, 0, len(lots))
		for i := range lots {
			summary := engine.BuildLotSummary(&lots[i], grouped[lots[i].ID])
			resp = append(resp, toResponse(&lots[i], &summary))
		}

		return c.JSON(resp)
	}
}

// GET /api/lots/:id
func GetLotHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var lot models.Lot
		if err := database.DB.Preload("Diet").
			First(&lot, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Lot not found")
		}

		snap, loadErr := store.LoadSnapshot(database.DB, userID, time.Now())
		if loadErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load records")
		}
		metrics := metricsByLot(snap)[lot.ID]
		summary := engine.BuildLotSummary(&lot, metrics)

		animals := make([]fiber.Map, 0, len(metrics))
		for _, m := range metrics {
			animals = append(animals, fiber.Map{
				"id":             m.AnimalID,
				"brinco":         m.Brinco,
				"current_weight": engine.Round2(m.CurrentWeight),
				"gain_kg":        engine.Round2(m.TotalGain),
				"adg":            engine.Round2(m.ADG),
				"elapsed_days":   m.ElapsedDays,
			})
		}

		return c.JSON(fiber.Map{
			"lot":     toResponse(&lot, &summary),
			"animals": animals,
		})
	}
}

// PUT /api/lots/:id
func UpdateLotHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var lot models.Lot
		if err := database.DB.First(&lot, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Lot not found")
		}

		var body UpdateLotRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			lot.Name = name
		}
		if body.Capacity != nil {
			if *body.Capacity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "capacity must be greater than zero")
			}
			lot.Capacity = body.Capacity
		}
		if body.DietID != nil {
			var diet models.Diet
			if err := database.DB.First(&diet, "id = ? AND user_id = ?", *body.DietID, userID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Diet not found")
			}
			lot.DietID = body.DietID
		}
		if body.Active != nil {
			lot.Active = *body.Active
		}

		if err := database.DB.Save(&lot).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update lot")
		}

		return c.JSON(toResponse(&lot, nil))
	}
}

// GET /api/animals/:id/movements
func ListAnimalMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var animal models.Animal
		if err := database.DB.First(&animal, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Animal not found")
		}

		var rows []models.LotMovement
		if err := database.DB.
			Where("user_id = ? AND animal_id = ?", userID, animal.ID).
			Order("date desc, id desc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list movements")
		}

		resp := make([]fiber.Map, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, fiber.Map{
				"id":          r.ID,
				"from_lot_id": r.FromLotID,
				"to_lot_id":   r.ToLotID,
				"date":        r.Date.Format("2006-01-02"),
				"reason":      r.Reason,
			})
		}

		return c.JSON(resp)
	}
}
