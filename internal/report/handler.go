package report

import (
	"fmt"
	"time"

	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/engine"
	"feedlot-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/reports/herd
// One row per animal plus the herd summary, everything from a single
// snapshot so the report totals match the dashboard.
func HerdReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		snap, loadErr := store.LoadSnapshot(database.DB, userID, time.Now())
		if loadErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load records")
		}

		lotNames, nameErr := store.LotNames(database.DB, userID)
		if nameErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load lots")
		}

		rows := snap.BuildExportRows(lotNames)
		herd := engine.BuildHerdSummary(snap.MetricsAll())

		return c.JSON(fiber.Map{
			"rows": rows,
			"summary": fiber.Map{
				"animal_count":   herd.AnimalCount,
				"aggregate_adg":  engine.Round2(herd.AggregateADG),
				"mean_weight":    engine.Round2(herd.MeanWeight),
				"total_invested": engine.Round2(herd.TotalInvested),
				"cost_per_kg":    engine.Round2(herd.CostPerKg),
			},
		})
	}
}

var exportHeader = []string{
	"Brinco", "Lote", "Peso Entrada (kg)", "Peso Atual (kg)",
	"Ganho (kg)", "GMD (kg/dia)", "Dias", "Custo Total", "Custo/kg",
}

// GET /api/reports/herd/export
// Same rows as the JSON report, written to an .xlsx download.
func ExportHerdReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		snap, loadErr := store.LoadSnapshot(database.DB, userID, time.Now())
		if loadErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load records")
		}

		lotNames, nameErr := store.LotNames(database.DB, userID)
		if nameErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load lots")
		}

		rows := snap.BuildExportRows(lotNames)

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		for col, title := range exportHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, title)
		}

		for i, r := range rows {
			values := []interface{}{
				r.Brinco, r.LotName, r.EntryWeight, r.CurrentWeight,
				r.GainKg, r.ADG, r.ElapsedDays, r.TotalCost, r.CostPerKg,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build spreadsheet")
		}

		filename := fmt.Sprintf("rebanho-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
