package engine

import (
	"testing"

	"feedlot-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestBuildLotSummary_UsesMeanOfADG(t *testing.T) {
	t.Parallel()

	diet := &models.Diet{ID: 1, Name: "Terminação", DailyConsumptionKg: 10, CostPerKg: 1.5}
	lot := models.Lot{ID: 5, Name: "Curral 3", Diet: diet}

	metrics := []AnimalMetrics{
		{CurrentWeight: 400, TotalGain: 20, ElapsedDays: 10, ADG: 2.0},
		{CurrentWeight: 300, TotalGain: 50, ElapsedDays: 100, ADG: 0.5},
	}

	s := BuildLotSummary(&lot, metrics)
	require.Equal(t, 2, s.AnimalCount)
	require.Equal(t, 1.25, s.MeanADG) // arithmetic mean, not 70/110
	require.Equal(t, 350.0, s.MeanWeight)
	require.Equal(t, 30.0, s.DailyDietCost) // 10kg × 1.5 × 2 head
	require.Equal(t, 900.0, s.MonthlyDiet)
}

func TestBuildLotSummary_EmptyLotNoDiet(t *testing.T) {
	t.Parallel()

	lot := models.Lot{ID: 5, Name: "Curral 3"}
	s := BuildLotSummary(&lot, nil)
	require.Equal(t, 0, s.AnimalCount)
	require.Equal(t, 0.0, s.MeanADG)
	require.Equal(t, 0.0, s.DailyDietCost)
}

func TestBuildHerdSummary_UsesAggregateADG(t *testing.T) {
	t.Parallel()

	metrics := []AnimalMetrics{
		{CurrentWeight: 400, TotalGain: 20, ElapsedDays: 10, ADG: 2.0, Cost: CostBreakdown{Total: 3000}},
		{CurrentWeight: 300, TotalGain: 50, ElapsedDays: 100, ADG: 0.5, Cost: CostBreakdown{Total: 1000}},
	}

	s := BuildHerdSummary(metrics)
	require.Equal(t, 2, s.AnimalCount)
	require.InDelta(t, 70.0/110.0, s.AggregateADG, 1e-12) // gain-weighted, not 1.25
	require.Equal(t, 4000.0, s.TotalInvested)
	require.Equal(t, 70.0, s.TotalGainKg)
	require.InDelta(t, 4000.0/70.0, s.CostPerKg, 1e-12)
}

func TestHerdInvested_RoundTripAgainstAllocatedSum(t *testing.T) {
	t.Parallel()

	// the per-animal fold and the expense-row recomputation must agree
	// while both hold the non-proration rule
	animals := herdOfThree()
	weighings := []models.Weighing{
		{ID: 1, AnimalID: 1, Date: day(2025, 2, 10), WeightKg: 320},
		{ID: 2, AnimalID: 2, Date: day(2025, 2, 10), WeightKg: 310},
	}
	expenses := []models.Expense{
		{ID: 1, Scope: models.ScopeSingleAnimal, AnimalID: uintPtr(1), Category: "Sanidade", Amount: 50},
		{ID: 2, Scope: models.ScopeSingleLot, LotID: uintPtr(5), Category: "Nutrição", Amount: 600},
		{ID: 3, Scope: models.ScopeSingleLot, LotID: uintPtr(6), Category: "Nutrição", Amount: 200},
		{ID: 4, Scope: models.ScopeAllAnimals, Category: "Mão de obra", Amount: 900},
		{ID: 5, Scope: models.ScopeAllAnimals, Category: models.CategoryAcquisition, Amount: 3000}, // must be ignored
	}

	s := NewSnapshot(animals, weighings, expenses, 3, day(2025, 4, 1))

	herd := BuildHerdSummary(s.MetricsAll())
	require.InDelta(t, s.InvestedAllocated(), herd.TotalInvested, 1e-9)

	// spot value: 3000 acq + 50 direct + 600×2 + 200×1 + 900 rateio
	require.InDelta(t, 3000+50+1200+200+900, herd.TotalInvested, 1e-9)
}

func TestHerdInvested_RoundTripUnderProration(t *testing.T) {
	t.Parallel()

	animals := herdOfThree()
	expenses := []models.Expense{
		{ID: 1, Scope: models.ScopeSingleLot, LotID: uintPtr(5), Category: "Nutrição", Amount: 600},
		{ID: 2, Scope: models.ScopeAllAnimals, Category: "Diversos", Amount: 90},
	}

	s := NewSnapshot(animals, nil, expenses, 3, day(2025, 4, 1))
	s.Policy.ProrateLotExpenses = true

	herd := BuildHerdSummary(s.MetricsAll())
	require.InDelta(t, s.InvestedAllocated(), herd.TotalInvested, 1e-9)
	require.InDelta(t, 3000+600+90, herd.TotalInvested, 1e-9)
}

func TestCategoryBreakdown_SynthesizesAcquisition(t *testing.T) {
	t.Parallel()

	animals := herdOfThree() // animal 1 carries 3000 acquisition
	expenses := []models.Expense{
		{ID: 1, Scope: models.ScopeAllAnimals, Category: "Nutrição", Amount: 700},
		{ID: 2, Scope: models.ScopeSingleAnimal, AnimalID: uintPtr(1), Category: "Sanidade", Amount: 120},
		{ID: 3, Scope: models.ScopeSingleAnimal, AnimalID: uintPtr(1), Category: models.CategoryAcquisition, Amount: 2500}, // stale duplicate row
	}
	s := NewSnapshot(animals, nil, expenses, 3, day(2025, 4, 1))

	breakdown := s.CategoryBreakdown()
	require.Len(t, breakdown, 3)

	// sorted by descending total; acquisition comes from the animal
	// record (3000), never from the 2500 expense row
	require.Equal(t, models.CategoryAcquisition, breakdown[0].Category)
	require.Equal(t, 3000.0, breakdown[0].Total)
	require.Equal(t, "Nutrição", breakdown[1].Category)
	require.Equal(t, 700.0, breakdown[1].Total)
	require.Equal(t, "Sanidade", breakdown[2].Category)
	require.Equal(t, 120.0, breakdown[2].Total)
}

func TestBuildExportRows(t *testing.T) {
	t.Parallel()

	animals := herdOfThree()
	weighings := []models.Weighing{
		{ID: 1, AnimalID: 1, Date: day(2025, 2, 10), WeightKg: 320},
	}
	s := NewSnapshot(animals, weighings, nil, 3, day(2025, 4, 1))

	rows := s.BuildExportRows(map[uint]string{5: "Curral 3", 6: "Curral 4"})
	require.Len(t, rows, 3)
	require.Equal(t, "BR-001", rows[0].Brinco)
	require.Equal(t, "Curral 3", rows[0].LotName)
	require.Equal(t, 320.0, rows[0].CurrentWeight)
	require.Equal(t, 40.0, rows[0].GainKg)
	require.Equal(t, 1.0, rows[0].ADG)
	require.Equal(t, 40, rows[0].ElapsedDays)
	require.Equal(t, 3000.0, rows[0].TotalCost)
	require.Equal(t, 75.0, rows[0].CostPerKg)

	// never weighed: current == entry, no gain, no cost/kg
	require.Equal(t, "BR-002", rows[1].Brinco)
	require.Equal(t, rows[1].EntryWeight, rows[1].CurrentWeight)
	require.Equal(t, 0.0, rows[1].GainKg)
	require.Equal(t, 0.0, rows[1].CostPerKg)
}
