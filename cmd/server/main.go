package main

import (
	"log"
	"strings"

	"feedlot-backend/internal/animal"
	"feedlot-backend/internal/audit"
	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/config"
	"feedlot-backend/internal/dashboard"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/diet"
	"feedlot-backend/internal/expense"
	"feedlot-backend/internal/lot"
	"feedlot-backend/internal/protocol"
	"feedlot-backend/internal/report"
	"feedlot-backend/internal/weighing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Animals
	protected.Post("/animals", animal.CreateAnimalHandler())
	protected.Get("/animals", animal.ListAnimalsHandler())
	protected.Get("/animals/:id", animal.GetAnimalHandler())
	protected.Put("/animals/:id", animal.UpdateAnimalHandler())
	protected.Delete("/animals/:id", animal.DeleteAnimalHandler())

	// Weighings
	protected.Post("/weighings", weighing.CreateWeighingHandler(cfg))
	protected.Post("/weighings/check", weighing.CheckWeighingHandler(cfg))
	protected.Get("/animals/:id/weighings", weighing.ListWeighingsHandler())
	protected.Delete("/weighings/:id", weighing.DeleteWeighingHandler())

	// Expenses
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Get("/expenses/summary/categories", expense.CategorySummaryHandler())
	protected.Delete("/expenses/:id", expense.DeleteExpenseHandler())

	// Lots
	protected.Post("/lots", lot.CreateLotHandler())
	protected.Get("/lots", lot.ListLotsHandler())
	protected.Get("/lots/:id", lot.GetLotHandler())
	protected.Put("/lots/:id", lot.UpdateLotHandler())
	protected.Delete("/lots/:id", lot.DeleteLotHandler())
	protected.Get("/animals/:id/movements", lot.ListAnimalMovementsHandler())

	// Diets
	protected.Post("/diets", diet.CreateDietHandler())
	protected.Get("/diets", diet.ListDietsHandler())
	protected.Put("/diets/:id", diet.UpdateDietHandler())

	// Health protocols
	protected.Post("/protocols", protocol.CreateProtocolHandler())
	protected.Get("/animals/:id/protocols", protocol.ListProtocolsHandler())
	protected.Delete("/protocols/:id", protocol.DeleteProtocolHandler())

	// Dashboard
	protected.Get("/dashboard/summary", dashboard.SummaryHandler())
	protected.Get("/dashboard/weight-chart", dashboard.WeightChartHandler())

	// Reports
	protected.Get("/reports/herd", report.HerdReportHandler())
	protected.Get("/reports/herd/export", report.ExportHerdReportHandler())

	// Deletion audit trail
	protected.Get("/lot-deletion-logs", audit.ListDeletionLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
