package dashboard

import (
	"fmt"
	"time"

	"feedlot-backend/internal/auth"
	"feedlot-backend/internal/database"
	"feedlot-backend/internal/engine"
	"feedlot-backend/internal/models"
	"feedlot-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/summary
// Herd top line. The ADG here is the gain-weighted aggregate figure;
// the per-lot cards use the arithmetic mean of per-animal ADGs. The
// two are different on purpose.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		snap, loadErr := store.LoadSnapshot(database.DB, userID, time.Now())
		if loadErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load records")
		}

		herd := engine.BuildHerdSummary(snap.MetricsAll())

		return c.JSON(fiber.Map{
			"animal_count":   herd.AnimalCount,
			"aggregate_adg":  engine.Round2(herd.AggregateADG),
			"mean_weight":    engine.Round2(herd.MeanWeight),
			"total_gain_kg":  engine.Round2(herd.TotalGainKg),
			"total_invested": engine.Round2(herd.TotalInvested),
			"cost_per_kg":    engine.Round2(herd.CostPerKg),
		})
	}
}

type WeightChartPoint struct {
	Label      string  `json:"label"`
	MeanWeight float64 `json:"mean_weight"`
	ADG        float64 `json:"adg"`
	Weighings  int     `json:"weighings"`
}

type WeightChartResponse struct {
	Period string             `json:"period"` // daily | weekly | monthly
	From   string             `json:"from"`
	To     string             `json:"to"`
	Points []WeightChartPoint `json:"points"`
}

// GET /api/dashboard/weight-chart?period=weekly&count=8
// Buckets the herd's weighings by period and charts the mean weight
// and the gain-weighted ADG per bucket. Daily buckets carry adg 0:
// a one-day window has no gain span to divide over.
func WeightChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		period := c.Query("period", "weekly") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "daily":
				count = 14
			case "monthly":
				count = 12
			default:
				period = "weekly"
				count = 8
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count is invalid")
			}
		}

		now := time.Now()
		loc := now.Location()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time

		switch period {
		case "daily":
			start = end.AddDate(0, 0, -(count - 1))
		case "monthly":
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = end.AddDate(0, -(count - 1), 0)
			end = start.AddDate(0, count, 0).AddDate(0, 0, -1)
		default:
			period = "weekly"
			days := 7 * (count - 1)
			start = end.AddDate(0, 0, -days)
		}

		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Mean   float64   `gorm:"column:mean"`
			N      int       `gorm:"column:n"`
		}
		var rows []row

		var sql string
		switch period {
		case "daily":
			sql = `
				SELECT date::date AS bucket,
					   AVG(weight_kg) AS mean,
					   COUNT(*) AS n
				FROM weighings
				WHERE user_id = ? AND date >= ? AND date <= ?
				GROUP BY bucket
				ORDER BY bucket ASC;
			`
		case "monthly":
			sql = `
				SELECT date_trunc('month', date)::date AS bucket,
					   AVG(weight_kg) AS mean,
					   COUNT(*) AS n
				FROM weighings
				WHERE user_id = ? AND date >= ? AND date <= ?
				GROUP BY bucket
				ORDER BY bucket ASC;
			`
		default:
			sql = `
				SELECT date_trunc('week', date)::date AS bucket,
					   AVG(weight_kg) AS mean,
					   COUNT(*) AS n
				FROM weighings
				WHERE user_id = ? AND date >= ? AND date <= ?
				GROUP BY bucket
				ORDER BY bucket ASC;
			`
		}

		if err := database.DB.Raw(sql, userID, start, end).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not aggregate weighings")
		}

		// the ADG fold needs the individual weighings, not the SQL
		// aggregate, so the window is loaded once and bucketed in Go
		var weighings []models.Weighing
		if err := database.DB.
			Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
			Order("date asc, created_at asc").
			Find(&weighings).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load weighings")
		}
		byAnimal := make(map[uint][]models.Weighing)
		for _, w := range weighings {
			byAnimal[w.AnimalID] = append(byAnimal[w.AnimalID], w)
		}

		points := make([]WeightChartPoint, 0, len(rows))
		for _, r := range rows {
			bucketEnd := r.Bucket
			switch period {
			case "monthly":
				bucketEnd = r.Bucket.AddDate(0, 1, -1)
			case "weekly":
				bucketEnd = r.Bucket.AddDate(0, 0, 6)
			}
			points = append(points, WeightChartPoint{
				Label:      r.Bucket.Format("2006-01-02"),
				MeanWeight: engine.Round2(r.Mean),
				ADG:        engine.Round2(engine.BucketADG(byAnimal, r.Bucket, bucketEnd)),
				Weighings:  r.N,
			})
		}

		return c.JSON(WeightChartResponse{
			Period: period,
			From:   start.Format("2006-01-02"),
			To:     end.Format("2006-01-02"),
			Points: points,
		})
	}
}
