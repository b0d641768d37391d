package engine

import "feedlot-backend/internal/models"

// CostPolicy controls the allocation rules that are business decisions
// rather than arithmetic.
type CostPolicy struct {
	// ProrateLotExpenses divides a lot-scoped expense by the number of
	// active animals in the lot. The product has always charged the
	// full amount to every animal in the lot; that stays the default
	// until the owners decide otherwise. Flipping this is the whole
	// change.
	ProrateLotExpenses bool
}

// CostBreakdown is one animal's invested total split by source tier.
// Values are raw (unrounded).
type CostBreakdown struct {
	Acquisition   float64
	Direct        float64 // single_animal expenses
	Lot           float64 // single_lot expenses for the animal's current lot
	RateableShare float64 // per-head share of all_animals expenses
	Total         float64
}

// countByLot returns active-animal counts per lot. Memoized.
func (s *Snapshot) countByLot() map[uint]int {
	if s.lotCounts != nil {
		return s.lotCounts
	}
	counts := make(map[uint]int)
	for i := range s.Animals {
		if s.Animals[i].LotID != nil {
			counts[*s.Animals[i].LotID]++
		}
	}
	s.lotCounts = counts
	return counts
}

// rateablePerHead sums all_animals expenses once and divides by the
// tenant's active animal count (not just animals with weighings).
// Memoized per snapshot.
func (s *Snapshot) rateablePerHead() float64 {
	if s.rateableOnce {
		return s.rateable
	}
	s.rateableOnce = true

	if s.ActiveCount < 1 {
		s.rateable = 0
		return 0
	}

	var total float64
	for i := range s.Expenses {
		e := &s.Expenses[i]
		if e.Scope == models.ScopeAllAnimals && e.Category != models.CategoryAcquisition {
			total += e.Amount
		}
	}
	s.rateable = total / float64(s.ActiveCount)
	return s.rateable
}

// CostFor allocates the four cost tiers to one animal:
// acquisition from the animal record, direct expenses in full, the
// animal's lot expenses (full amount each, or a per-head share under
// ProrateLotExpenses), and the per-head rateio share.
//
// Expense rows in the acquisition category are skipped everywhere:
// the acquisition value always comes from the animal record, so a
// separately logged purchase expense cannot double-count it.
func (s *Snapshot) CostFor(a *models.Animal) CostBreakdown {
	var b CostBreakdown

	if a.AcquisitionCost != nil {
		b.Acquisition = *a.AcquisitionCost
	}

	lotCounts := s.countByLot()

	for i := range s.Expenses {
		e := &s.Expenses[i]
		if e.Category == models.CategoryAcquisition {
			continue
		}
		switch e.Scope {
		case models.ScopeSingleAnimal:
			if e.AnimalID != nil && *e.AnimalID == a.ID {
				b.Direct += e.Amount
			}
		case models.ScopeSingleLot:
			if a.LotID != nil && e.LotID != nil && *e.LotID == *a.LotID {
				if s.Policy.ProrateLotExpenses {
					if n := lotCounts[*a.LotID]; n > 0 {
						b.Lot += e.Amount / float64(n)
					}
				} else {
					// full amount per animal, as the product has
					// always done it
					b.Lot += e.Amount
				}
			}
		}
	}

	b.RateableShare = s.rateablePerHead()
	b.Total = b.Acquisition + b.Direct + b.Lot + b.RateableShare
	return b
}

// CostPerKg is total cost over total gain, defined as 0 whenever the
// animal has not gained weight. Never negative, never infinite.
func CostPerKg(totalCost, totalGain float64) float64 {
	if totalGain <= 0 {
		return 0
	}
	return totalCost / totalGain
}
