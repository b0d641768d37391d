package engine

import (
	"sort"

	"feedlot-backend/internal/models"
)

// LotSummary is the lot-card fold: head count, mean ADG (arithmetic
// mean of per-animal ADGs, see MeanOfADG), mean current weight and
// projected diet cost.
type LotSummary struct {
	LotID         uint    `json:"lot_id"`
	LotName       string  `json:"lot_name"`
	AnimalCount   int     `json:"animal_count"`
	MeanADG       float64 `json:"mean_adg"`
	MeanWeight    float64 `json:"mean_weight"`
	DailyDietCost float64 `json:"daily_diet_cost"`
	MonthlyDiet   float64 `json:"monthly_diet_cost"`
}

// BuildLotSummary folds the metrics of the animals currently in the
// lot. The diet cost is daily consumption × cost per kg × head count;
// zero when the lot has no diet assigned.
func BuildLotSummary(lot *models.Lot, metrics []AnimalMetrics) LotSummary {
	s := LotSummary{LotID: lot.ID, LotName: lot.Name, AnimalCount: len(metrics)}

	var weightSum float64
	for _, m := range metrics {
		weightSum += m.CurrentWeight
	}
	if len(metrics) > 0 {
		s.MeanADG = MeanOfADG(metrics)
		s.MeanWeight = weightSum / float64(len(metrics))
	}

	if lot.Diet != nil {
		s.DailyDietCost = lot.Diet.DailyConsumptionKg * lot.Diet.CostPerKg * float64(len(metrics))
		s.MonthlyDiet = s.DailyDietCost * 30
	}

	return s
}

// HerdSummary is the dashboard top line. AggregateADG here is the
// gain-weighted figure, deliberately distinct from the per-lot mean.
type HerdSummary struct {
	AnimalCount   int     `json:"animal_count"`
	AggregateADG  float64 `json:"aggregate_adg"`
	MeanWeight    float64 `json:"mean_weight"`
	TotalInvested float64 `json:"total_invested"`
	TotalGainKg   float64 `json:"total_gain_kg"`
	CostPerKg     float64 `json:"cost_per_kg"`
}

// BuildHerdSummary folds per-animal metrics into the herd view. Total
// invested is the sum of every animal's allocated total, so the lot
// non-proration rule flows through here unchanged.
func BuildHerdSummary(metrics []AnimalMetrics) HerdSummary {
	s := HerdSummary{AnimalCount: len(metrics)}

	var weightSum float64
	for _, m := range metrics {
		weightSum += m.CurrentWeight
		s.TotalInvested += m.Cost.Total
		s.TotalGainKg += m.TotalGain
	}
	if len(metrics) > 0 {
		s.MeanWeight = weightSum / float64(len(metrics))
	}
	s.AggregateADG = AggregateADG(metrics)
	s.CostPerKg = CostPerKg(s.TotalInvested, s.TotalGainKg)

	return s
}

// InvestedAllocated recomputes the herd invested total straight from
// the expense rows, applying the same allocation rules as CostFor
// (direct once, lot expenses once per animal in the lot unless
// prorated, rateio in full). Reports use it as an independent
// cross-check of the per-animal fold.
func (s *Snapshot) InvestedAllocated() float64 {
	var total float64

	for i := range s.Animals {
		if c := s.Animals[i].AcquisitionCost; c != nil {
			total += *c
		}
	}

	lotCounts := s.countByLot()
	for i := range s.Expenses {
		e := &s.Expenses[i]
		if e.Category == models.CategoryAcquisition {
			continue
		}
		switch e.Scope {
		case models.ScopeSingleAnimal:
			total += e.Amount
		case models.ScopeSingleLot:
			if e.LotID == nil {
				continue
			}
			if s.Policy.ProrateLotExpenses {
				if lotCounts[*e.LotID] > 0 {
					total += e.Amount
				}
			} else {
				total += e.Amount * float64(lotCounts[*e.LotID])
			}
		case models.ScopeAllAnimals:
			total += e.Amount
		}
	}

	return total
}

// CategoryTotal is one slice of the cost-breakdown chart.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// CategoryBreakdown groups raw expense amounts by category, sorted by
// descending total. Acquisition is synthesized from the animals'
// stored values rather than read from expense rows, so the figure does
// not depend on whether a purchase was also logged as an expense.
func (s *Snapshot) CategoryBreakdown() []CategoryTotal {
	totals := make(map[string]float64)

	for i := range s.Expenses {
		e := &s.Expenses[i]
		if e.Category == models.CategoryAcquisition {
			continue
		}
		totals[e.Category] += e.Amount
	}

	var acquisition float64
	for i := range s.Animals {
		if c := s.Animals[i].AcquisitionCost; c != nil {
			acquisition += *c
		}
	}
	if acquisition > 0 {
		totals[models.CategoryAcquisition] = acquisition
	}

	out := make([]CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ExportRow is one line of the herd report: one animal, its weights,
// gain and allocated costs. Values are rounded here because the row
// leaves the engine as-is.
type ExportRow struct {
	Brinco        string  `json:"brinco"`
	LotName       string  `json:"lot_name"`
	EntryWeight   float64 `json:"entry_weight"`
	CurrentWeight float64 `json:"current_weight"`
	GainKg        float64 `json:"gain_kg"`
	ADG           float64 `json:"adg"`
	ElapsedDays   int     `json:"elapsed_days"`
	TotalCost     float64 `json:"total_cost"`
	CostPerKg     float64 `json:"cost_per_kg"`
}

// BuildExportRows renders one row per animal, resolving lot names from
// the given map. Rows come out sorted by brinco.
func (s *Snapshot) BuildExportRows(lotNames map[uint]string) []ExportRow {
	metrics := s.MetricsAll()
	rows := make([]ExportRow, 0, len(metrics))

	for _, m := range metrics {
		lotName := ""
		if m.LotID != nil {
			lotName = lotNames[*m.LotID]
		}
		rows = append(rows, ExportRow{
			Brinco:        m.Brinco,
			LotName:       lotName,
			EntryWeight:   Round2(m.EntryWeight),
			CurrentWeight: Round2(m.CurrentWeight),
			GainKg:        Round2(m.TotalGain),
			ADG:           Round2(m.ADG),
			ElapsedDays:   m.ElapsedDays,
			TotalCost:     Round2(m.Cost.Total),
			CostPerKg:     Round2(m.CostPerKg),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Brinco < rows[j].Brinco })
	return rows
}
