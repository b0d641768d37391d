package engine

import "time"

// Thresholds are the anomaly limits for new weighings, in kg/day.
// Loaded from configuration so they can be tuned per herd type.
type Thresholds struct {
	DropLimit  float64 // daily gain below this flags "below last weighing"
	SpikeLimit float64 // daily gain above this flags "unusually high gain"
}

var DefaultThresholds = Thresholds{DropLimit: -1.0, SpikeLimit: 3.0}

type Warning string

const (
	WarningNone      Warning = ""
	WarningBelowLast Warning = "below_last_weighing"
	WarningHighGain  Warning = "unusually_high_gain"
)

// AnomalyCheck classifies a weighing about to be committed. Warnings
// are not errors: they never block the write, the boundary decides
// whether to ask for confirmation.
type AnomalyCheck struct {
	Warning      Warning `json:"warning"`
	GMDSinceLast float64 `json:"gmd_since_last"` // kg/day against the baseline
	DaysSince    int     `json:"days_since"`
}

// CheckWeighing compares a new weight against the animal's resolved
// baseline (latest weighing, or the entry weighing when none exists).
// The day gap is floored to 1 so a same-day re-weighing is judged as
// one day's change.
func (t Thresholds) CheckWeighing(baselineWeight float64, baselineDate time.Time, newWeight float64, now time.Time) AnomalyCheck {
	days := ElapsedDays(baselineDate, now)
	gmd := (newWeight - baselineWeight) / float64(days)

	check := AnomalyCheck{GMDSinceLast: gmd, DaysSince: days}
	switch {
	case gmd < t.DropLimit:
		check.Warning = WarningBelowLast
	case gmd > t.SpikeLimit:
		check.Warning = WarningHighGain
	}
	return check
}

// CheckNew runs the anomaly check for an animal in the snapshot using
// its resolved latest weighing as baseline.
func (s *Snapshot) CheckNew(animalID uint, entryWeight float64, entryDate time.Time, newWeight float64) AnomalyCheck {
	baseWeight := entryWeight
	baseDate := entryDate
	if w := s.LatestWeighing(animalID); w != nil {
		baseWeight = w.WeightKg
		baseDate = w.Date
	}
	return s.Thresholds.CheckWeighing(baseWeight, baseDate, newWeight, s.Now)
}
