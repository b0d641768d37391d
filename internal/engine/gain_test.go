package engine

import (
	"testing"
	"time"

	"feedlot-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestElapsedDays_FlooredToOne(t *testing.T) {
	t.Parallel()

	entry := day(2025, 3, 1)
	tests := []struct {
		name string
		ref  time.Time
		want int
	}{
		{"same day", day(2025, 3, 1), 1},
		{"next day", day(2025, 3, 2), 1},
		{"two days", day(2025, 3, 3), 2},
		{"forty days", day(2025, 4, 10), 40},
		{"ref before entry", day(2025, 2, 20), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ElapsedDays(entry, tt.ref))
		})
	}
}

func TestADG_ReferenceScenario(t *testing.T) {
	t.Parallel()

	// entry 280kg on day 0, weighed 320kg on day 40 -> 1.0 kg/day
	entry := day(2025, 1, 1)
	ref := day(2025, 2, 10)
	require.Equal(t, 40, ElapsedDays(entry, ref))
	require.Equal(t, 1.0, ADG(280, 320, entry, ref))
}

func TestADG_NegativeGainAllowed(t *testing.T) {
	t.Parallel()

	entry := day(2025, 1, 1)
	ref := day(2025, 1, 11)
	require.Equal(t, -2.0, ADG(300, 280, entry, ref))
}

func TestMeanOfADG_IsNotAggregateADG(t *testing.T) {
	t.Parallel()

	// one fast short-stay animal and one slow long-stay animal: the
	// arithmetic mean of ADGs and the gain-weighted figure must differ,
	// and each call site must use the one it is specified with
	metrics := []AnimalMetrics{
		{TotalGain: 20, ElapsedDays: 10, ADG: 2.0},
		{TotalGain: 50, ElapsedDays: 100, ADG: 0.5},
	}

	mean := MeanOfADG(metrics)
	aggregate := AggregateADG(metrics)

	require.Equal(t, 1.25, mean)                 // (2.0 + 0.5) / 2
	require.InDelta(t, 70.0/110.0, aggregate, 1e-12) // sum(gain)/sum(days)
	require.NotEqual(t, mean, aggregate)
}

func TestMeanOfADG_Empty(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.0, MeanOfADG(nil))
	require.Equal(t, 0.0, AggregateADG(nil))
}

func TestBucketADG_GainWeightedWithinWindow(t *testing.T) {
	t.Parallel()

	byAnimal := map[uint][]models.Weighing{
		// two weighings inside the window: 14kg over 7 days
		1: {
			{ID: 10, AnimalID: 1, Date: day(2025, 3, 3), WeightKg: 300},
			{ID: 11, AnimalID: 1, Date: day(2025, 3, 10), WeightKg: 314},
		},
		// 3kg over 3 days; the weighing outside the window is ignored
		2: {
			{ID: 20, AnimalID: 2, Date: day(2025, 2, 1), WeightKg: 200},
			{ID: 21, AnimalID: 2, Date: day(2025, 3, 4), WeightKg: 350},
			{ID: 22, AnimalID: 2, Date: day(2025, 3, 7), WeightKg: 353},
		},
		// a single weighing in the window contributes nothing
		3: {
			{ID: 30, AnimalID: 3, Date: day(2025, 3, 5), WeightKg: 400},
		},
	}

	adg := BucketADG(byAnimal, day(2025, 3, 1), day(2025, 3, 14))
	require.InDelta(t, 17.0/10.0, adg, 1e-12) // (14+3) kg over (7+3) days
}

func TestBucketADG_SingleDayWindowIsZero(t *testing.T) {
	t.Parallel()

	byAnimal := map[uint][]models.Weighing{
		1: {
			{ID: 10, AnimalID: 1, Date: day(2025, 3, 5), WeightKg: 300, CreatedAt: day(2025, 3, 5).Add(8 * time.Hour)},
			{ID: 11, AnimalID: 1, Date: day(2025, 3, 5), WeightKg: 306, CreatedAt: day(2025, 3, 5).Add(19 * time.Hour)},
		},
	}

	// two same-day weighings span zero days; never divide by zero
	require.Equal(t, 0.0, BucketADG(byAnimal, day(2025, 3, 5), day(2025, 3, 5)))
	require.Equal(t, 0.0, BucketADG(nil, day(2025, 3, 1), day(2025, 3, 7)))
}

func TestMetricsFor_UsesLatestWeighingDateAsReference(t *testing.T) {
	t.Parallel()

	animal := models.Animal{ID: 1, Brinco: "BR-001", EntryWeight: 280, EntryDate: day(2025, 1, 1)}
	weighings := []models.Weighing{
		{ID: 10, AnimalID: 1, Date: day(2025, 2, 10), WeightKg: 320},
	}

	// "now" is far past the weighing; ADG still reflects the 40 days
	// up to the last weigh-in, not the idle time since
	s := NewSnapshot([]models.Animal{animal}, weighings, nil, 1, day(2025, 6, 1))

	m := s.MetricsFor(&animal)
	require.Equal(t, 40, m.ElapsedDays)
	require.Equal(t, 40.0, m.TotalGain)
	require.Equal(t, 1.0, m.ADG)
}
