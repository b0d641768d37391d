package engine

import "feedlot-backend/internal/models"

// AnimalMetrics is the full derived picture of one animal, computed
// from the snapshot. All monetary values are raw.
type AnimalMetrics struct {
	AnimalID uint
	Brinco   string
	LotID    *uint

	EntryWeight   float64
	CurrentWeight float64
	TotalGain     float64
	ElapsedDays   int
	ADG           float64

	Cost      CostBreakdown
	CostPerKg float64
}

// MetricsFor derives an animal's metrics. The reference date is the
// latest weighing's date when one exists, so historical ADG matches
// what was true at the last weigh-in; an animal never weighed uses
// Now and shows zero gain.
func (s *Snapshot) MetricsFor(a *models.Animal) AnimalMetrics {
	current := s.CurrentWeight(a)

	ref := s.Now
	if w := s.LatestWeighing(a.ID); w != nil {
		ref = w.Date
	}

	days := ElapsedDays(a.EntryDate, ref)
	gain := current - a.EntryWeight
	cost := s.CostFor(a)

	return AnimalMetrics{
		AnimalID:      a.ID,
		Brinco:        a.Brinco,
		LotID:         a.LotID,
		EntryWeight:   a.EntryWeight,
		CurrentWeight: current,
		TotalGain:     gain,
		ElapsedDays:   days,
		ADG:           gain / float64(days),
		Cost:          cost,
		CostPerKg:     CostPerKg(cost.Total, gain),
	}
}

// MetricsAll computes metrics for every animal in the snapshot, in
// input order.
func (s *Snapshot) MetricsAll() []AnimalMetrics {
	out := make([]AnimalMetrics, 0, len(s.Animals))
	for i := range s.Animals {
		out = append(out, s.MetricsFor(&s.Animals[i]))
	}
	return out
}
