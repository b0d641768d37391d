package engine

import (
	"testing"

	"feedlot-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func herdOfThree() []models.Animal {
	return []models.Animal{
		{ID: 1, Brinco: "BR-001", EntryWeight: 280, EntryDate: day(2025, 1, 1), LotID: uintPtr(5), AcquisitionCost: floatPtr(3000), Active: true},
		{ID: 2, Brinco: "BR-002", EntryWeight: 290, EntryDate: day(2025, 1, 1), LotID: uintPtr(5), Active: true},
		{ID: 3, Brinco: "BR-003", EntryWeight: 250, EntryDate: day(2025, 1, 1), LotID: uintPtr(6), Active: true},
	}
}

func TestCostFor_FourTiers(t *testing.T) {
	t.Parallel()

	animals := herdOfThree()
	expenses := []models.Expense{
		{ID: 1, Scope: models.ScopeSingleAnimal, AnimalID: uintPtr(1), Category: "Sanidade", Amount: 50},
		{ID: 2, Scope: models.ScopeSingleLot, LotID: uintPtr(5), Category: "Nutrição", Amount: 600},
		{ID: 3, Scope: models.ScopeAllAnimals, Category: "Mão de obra", Amount: 900},
	}
	s := NewSnapshot(animals, nil, expenses, 3, day(2025, 4, 1))

	b := s.CostFor(&animals[0])
	require.Equal(t, 3000.0, b.Acquisition)
	require.Equal(t, 50.0, b.Direct)
	require.Equal(t, 600.0, b.Lot) // full amount, not 600/2
	require.Equal(t, 300.0, b.RateableShare)
	require.Equal(t, 3950.0, b.Total)
}

func TestCostFor_LotExpenseNotProrated(t *testing.T) {
	t.Parallel()

	// lot 5 holds two animals; a 600 lot expense charges 600 to EACH.
	// This mirrors the product's historical behavior and is intentional,
	// not a missing division.
	animals := herdOfThree()
	expenses := []models.Expense{
		{ID: 1, Scope: models.ScopeSingleLot, LotID: uintPtr(5), Category: "Nutrição", Amount: 600},
	}
	s := NewSnapshot(animals, nil, expenses, 3, day(2025, 4, 1))

	require.Equal(t, 600.0, s.CostFor(&animals[0]).Lot)
	require.Equal(t, 600.0, s.CostFor(&animals[1]).Lot)
	require.Equal(t, 0.0, s.CostFor(&animals[2]).Lot) // other lot
}

func TestCostFor_ProratePolicyFlag(t *testing.T) {
	t.Parallel()

	animals := herdOfThree()
	expenses := []models.Expense{
		{ID: 1, Scope: models.ScopeSingleLot, LotID: uintPtr(5), Category: "Nutrição", Amount: 600},
	}
	s := NewSnapshot(animals, nil, expenses, 3, day(2025, 4, 1))
	s.Policy.ProrateLotExpenses = true

	require.Equal(t, 300.0, s.CostFor(&animals[0]).Lot)
	require.Equal(t, 300.0, s.CostFor(&animals[1]).Lot)
}

func TestRateableShare_SplitsAcrossActiveCount(t *testing.T) {
	t.Parallel()

	animals := herdOfThree()
	expenses := []models.Expense{
		{ID: 1, Scope: models.ScopeAllAnimals, Category: "Diversos", Amount: 1000},
	}
	s := NewSnapshot(animals, nil, expenses, 3, day(2025, 4, 1))

	var sum float64
	for i := range animals {
		share := s.CostFor(&animals[i]).RateableShare
		require.InDelta(t, 1000.0/3.0, share, 1e-9)
		sum += Round2(share)
	}
	// rounded per-head shares re-sum to the original within a cent
	require.InDelta(t, 1000.0, sum, 0.02)
}

func TestCostFor_MonotonicUnderNewExpenses(t *testing.T) {
	t.Parallel()

	animals := herdOfThree()
	base := []models.Expense{
		{ID: 1, Scope: models.ScopeSingleAnimal, AnimalID: uintPtr(1), Category: "Sanidade", Amount: 50},
	}

	additions := []models.Expense{
		{ID: 2, Scope: models.ScopeSingleAnimal, AnimalID: uintPtr(1), Category: "Sanidade", Amount: 10},
		{ID: 3, Scope: models.ScopeSingleLot, LotID: uintPtr(5), Category: "Nutrição", Amount: 75},
		{ID: 4, Scope: models.ScopeAllAnimals, Category: "Diversos", Amount: 33},
	}

	expenses := base
	prev := NewSnapshot(animals, nil, expenses, 3, day(2025, 4, 1)).CostFor(&animals[0]).Total
	for _, add := range additions {
		expenses = append(expenses, add)
		next := NewSnapshot(animals, nil, expenses, 3, day(2025, 4, 1)).CostFor(&animals[0]).Total
		require.GreaterOrEqual(t, next, prev, "adding expense %d must not decrease total cost", add.ID)
		prev = next
	}
}

func TestCostFor_AcquisitionCategoryExpensesSkipped(t *testing.T) {
	t.Parallel()

	// purchase logged twice: on the animal row and as an expense row.
	// Only the animal row counts.
	animals := herdOfThree()
	expenses := []models.Expense{
		{ID: 1, Scope: models.ScopeSingleAnimal, AnimalID: uintPtr(1), Category: models.CategoryAcquisition, Amount: 3000},
	}
	s := NewSnapshot(animals, nil, expenses, 3, day(2025, 4, 1))

	b := s.CostFor(&animals[0])
	require.Equal(t, 3000.0, b.Acquisition)
	require.Equal(t, 0.0, b.Direct)
	require.Equal(t, 3000.0, b.Total)
}

func TestCostPerKg_ZeroUnlessPositiveGain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cost float64
		gain float64
		want float64
	}{
		{"normal", 2000, 100, 20},
		{"zero gain", 2000, 0, 0},
		{"negative gain", 2000, -15, 0},
		{"no cost", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CostPerKg(tt.cost, tt.gain))
		})
	}
}

func TestValidateExpense_ScopeReferenceAgreement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		scope    models.ExpenseScope
		lotID    *uint
		animalID *uint
		amount   float64
		wantErr  bool
		field    string
	}{
		{"rateio ok", models.ScopeAllAnimals, nil, nil, 10, false, ""},
		{"rateio with lot", models.ScopeAllAnimals, uintPtr(1), nil, 10, true, "scope"},
		{"lot ok", models.ScopeSingleLot, uintPtr(1), nil, 10, false, ""},
		{"lot missing lot id", models.ScopeSingleLot, nil, nil, 10, true, "lot_id"},
		{"lot with animal", models.ScopeSingleLot, uintPtr(1), uintPtr(2), 10, true, "animal_id"},
		{"animal ok", models.ScopeSingleAnimal, nil, uintPtr(2), 10, false, ""},
		{"animal missing id", models.ScopeSingleAnimal, nil, nil, 10, true, "animal_id"},
		{"animal with lot", models.ScopeSingleAnimal, uintPtr(1), uintPtr(2), 10, true, "lot_id"},
		{"non-positive amount", models.ScopeAllAnimals, nil, nil, 0, true, "amount"},
		{"unknown scope", models.ExpenseScope("weekly"), nil, nil, 10, true, "scope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExpense(tt.scope, tt.lotID, tt.animalID, tt.amount)
			if !tt.wantErr {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			require.Equal(t, ErrValidation, err.Kind)
			require.Equal(t, tt.field, err.Field)
		})
	}
}
