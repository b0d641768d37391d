package engine

import (
	"time"

	"feedlot-backend/internal/models"
)

// ElapsedDays returns whole days between entry and ref, floored to a
// minimum of 1 so day-count denominators never divide by zero.
func ElapsedDays(entry, ref time.Time) int {
	days := int(ref.Sub(entry).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// ADG is total gain over elapsed days, in kg/day.
func ADG(entryWeight, currentWeight float64, entry, ref time.Time) float64 {
	return (currentWeight - entryWeight) / float64(ElapsedDays(entry, ref))
}

// MeanOfADG is the arithmetic mean of per-animal ADGs. This is the
// figure lot summaries and the lot table show. It is NOT the same as
// AggregateADG: a 2-day animal and a 200-day animal weigh equally here.
func MeanOfADG(metrics []AnimalMetrics) float64 {
	if len(metrics) == 0 {
		return 0
	}
	var sum float64
	for _, m := range metrics {
		sum += m.ADG
	}
	return sum / float64(len(metrics))
}

// AggregateADG is the gain-weighted herd figure: sum of gains over sum
// of elapsed days. Used only for the dashboard top line. Both
// definitions exist in the product today; neither replaces the other.
func AggregateADG(metrics []AnimalMetrics) float64 {
	var gain float64
	var days int
	for _, m := range metrics {
		gain += m.TotalGain
		days += m.ElapsedDays
	}
	if days < 1 {
		return 0
	}
	return gain / float64(days)
}

// BucketADG is the gain-weighted ADG inside one chart window: per
// animal, the gain between its first and last weighing in [from, to]
// over the days between them, folded like AggregateADG. Animals with
// fewer than two weighing dates in the window contribute nothing.
// Same-day ties resolve to the latest CreatedAt, matching
// LatestWeighing.
func BucketADG(weighings map[uint][]models.Weighing, from, to time.Time) float64 {
	var gain float64
	var days int

	for _, ws := range weighings {
		var first, last *models.Weighing
		for i := range ws {
			w := &ws[i]
			if w.Date.Before(from) || w.Date.After(to) {
				continue
			}
			if first == nil || w.Date.Before(first.Date) {
				first = w
			}
			if last == nil || w.Date.After(last.Date) ||
				(w.Date.Equal(last.Date) && w.CreatedAt.After(last.CreatedAt)) {
				last = w
			}
		}
		if first == nil || !last.Date.After(first.Date) {
			continue
		}
		gain += last.WeightKg - first.WeightKg
		days += int(last.Date.Sub(first.Date).Hours() / 24)
	}

	if days < 1 {
		return 0
	}
	return gain / float64(days)
}
