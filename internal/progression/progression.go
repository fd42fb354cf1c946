// Package progression turns a lift's stored configuration into the weights
// shown for the current week. Every function here is pure: no I/O, no
// validation, no errors. NaN or Inf inputs flow through to the outputs.
package progression

import "math"

const (
	// WeeklyIncrement is added to the cycle start weight for every week past week 1.
	WeeklyIncrement = 5.0

	// PlateIncrement is the smallest weight step a preview is rounded to.
	PlateIncrement = 5.0

	// AltDayIntensity scales the goal weight before alternate-day percentages apply.
	AltDayIntensity = 0.95
)

// Prescription is a sets x reps scheme for one kind of set.
type Prescription struct {
	Sets int `json:"sets"`
	Reps int `json:"reps"`
}

// Config is a lift's progression configuration. Percentages are decimal
// fractions (0.7 means 70%).
type Config struct {
	GoalWeight           float64 `json:"goal_weight"`
	WeekNumber           int     `json:"week_number"`
	CycleStartWeight     float64 `json:"cycle_start_weight"`
	TopSetStartPercent   float64 `json:"top_set_start_percent"`
	BackoffPercent       float64 `json:"backoff_percent"`
	AltDayTopSetPercent  float64 `json:"alt_day_top_set_percent"`
	AltDayBackoffPercent float64 `json:"alt_day_backoff_percent"`

	TopSet     Prescription `json:"top_set"`
	Backoff    Prescription `json:"backoff"`
	AltTopSet  Prescription `json:"alt_top_set"`
	AltBackoff Prescription `json:"alt_backoff"`
}

// MainDay holds the main-day working weights.
type MainDay struct {
	TopSetWeight  float64 `json:"top_set_weight"`
	BackoffWeight float64 `json:"backoff_weight"`
}

// AltDay holds the alternate-day working weights.
type AltDay struct {
	AltTopWeight     float64 `json:"alt_top_weight"`
	AltBackoffWeight float64 `json:"alt_backoff_weight"`
}

// Preview is every weight displayed for a lift. It is recomputed on each
// read and never stored.
type Preview struct {
	TopSetWeight     float64 `json:"top_set_weight"`
	BackoffWeight    float64 `json:"backoff_weight"`
	AltTopWeight     float64 `json:"alt_top_weight"`
	AltBackoffWeight float64 `json:"alt_backoff_weight"`
}

// RoundToNearestFive rounds v to the nearest multiple of 5. Halves round
// toward positive infinity, so -2.5 becomes 0 and 2.5 becomes 5. The sign of
// zero is not preserved: a negative v that rounds to zero yields +0, not -0.
func RoundToNearestFive(v float64) float64 {
	return roundHalfUp(v/PlateIncrement) * PlateIncrement
}

func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return f + 1
	}
	return f
}

// ComputeMainDay returns the top set for the configured week and the back-off
// set derived from it. The back-off percentage is applied to the rounded top
// set, not the raw one.
func ComputeMainDay(c Config) MainDay {
	top := RoundToNearestFive(c.CycleStartWeight + float64(c.WeekNumber-1)*WeeklyIncrement)
	return MainDay{
		TopSetWeight:  top,
		BackoffWeight: RoundToNearestFive(top * c.BackoffPercent),
	}
}

// ComputeAltDay returns the alternate-day weights. Both are taken from the
// discounted goal weight independently of each other.
func ComputeAltDay(c Config) AltDay {
	base := c.GoalWeight * AltDayIntensity
	return AltDay{
		AltTopWeight:     RoundToNearestFive(base * c.AltDayTopSetPercent),
		AltBackoffWeight: RoundToNearestFive(base * c.AltDayBackoffPercent),
	}
}

// ComputePreview combines the main-day and alternate-day weights.
func ComputePreview(c Config) Preview {
	main := ComputeMainDay(c)
	alt := ComputeAltDay(c)
	return Preview{
		TopSetWeight:     main.TopSetWeight,
		BackoffWeight:    main.BackoffWeight,
		AltTopWeight:     alt.AltTopWeight,
		AltBackoffWeight: alt.AltBackoffWeight,
	}
}
