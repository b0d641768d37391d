// Package engine holds the zootechnical performance and cost-allocation
// rules: latest-weight resolution, gain/ADG, three-tier expense
// allocation, weighing anomaly classification and the report folds.
// Every screen (animal detail, lot detail, dashboard, reports) goes
// through this package so the numbers agree everywhere.
//
// The engine is pure: it works on an in-memory Snapshot fetched by the
// caller and never touches the database or the HTTP layer. Monetary
// values stay unrounded here; callers round with Round2 at the edge.
package engine

import (
	"math"
	"time"

	"feedlot-backend/internal/models"
)

// Snapshot is a request-scoped view of one tenant's records. Build it
// once per request and reuse it: the latest-weight resolution and the
// rateable share are memoized on first use, so every consumer in the
// same request sees identical numbers.
type Snapshot struct {
	Animals     []models.Animal            // active animals
	Weighings   map[uint][]models.Weighing // keyed by animal id
	Expenses    []models.Expense
	ActiveCount int // tenant-wide active animal count (denominator for rateio)
	Now         time.Time

	Policy     CostPolicy
	Thresholds Thresholds

	latest       map[uint]*models.Weighing
	lotCounts    map[uint]int
	rateable     float64
	rateableOnce bool
}

func NewSnapshot(animals []models.Animal, weighings []models.Weighing, expenses []models.Expense, activeCount int, now time.Time) *Snapshot {
	byAnimal := make(map[uint][]models.Weighing, len(animals))
	for _, w := range weighings {
		byAnimal[w.AnimalID] = append(byAnimal[w.AnimalID], w)
	}
	return &Snapshot{
		Animals:     animals,
		Weighings:   byAnimal,
		Expenses:    expenses,
		ActiveCount: activeCount,
		Now:         now,
		Thresholds:  DefaultThresholds,
		latest:      make(map[uint]*models.Weighing, len(animals)),
	}
}

// LatestWeighing resolves the authoritative current weighing for an
// animal: maximum date wins, same-day ties go to the latest CreatedAt
// (last write wins on a re-weighing). Returns nil when the animal has
// no weighings. Resolved once and cached.
func (s *Snapshot) LatestWeighing(animalID uint) *models.Weighing {
	if w, ok := s.latest[animalID]; ok {
		return w
	}

	var best *models.Weighing
	ws := s.Weighings[animalID]
	for i := range ws {
		w := &ws[i]
		if best == nil {
			best = w
			continue
		}
		if w.Date.After(best.Date) {
			best = w
		} else if w.Date.Equal(best.Date) && w.CreatedAt.After(best.CreatedAt) {
			best = w
		}
	}

	s.latest[animalID] = best
	return best
}

// IncludeWeighings backfills the weighing history of an animal outside
// the snapshot's active set, so a deactivated animal's detail view
// still resolves its real latest weight instead of falling back to the
// entry weight. The rateio denominator is left alone: inactive animals
// never dilute the active herd's shares.
func (s *Snapshot) IncludeWeighings(animalID uint, ws []models.Weighing) {
	if len(ws) == 0 {
		return
	}
	if _, ok := s.Weighings[animalID]; ok {
		return
	}
	s.Weighings[animalID] = ws
	delete(s.latest, animalID)
}

// CurrentWeight falls back to the entry weight when no weighing exists.
func (s *Snapshot) CurrentWeight(a *models.Animal) float64 {
	if w := s.LatestWeighing(a.ID); w != nil {
		return w.WeightKg
	}
	return a.EntryWeight
}

// Round2 rounds to 2 decimal places. Only for presentation: responses
// and export cells. Intermediate sums are kept raw so rounding error
// does not compound across allocation tiers.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
