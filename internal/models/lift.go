package models

import (
	"strings"
	"time"

	"github.com/claude/liftlog/internal/progression"
	"github.com/google/uuid"
)

// Lift is a stored lift configuration owned by one user.
type Lift struct {
	ID        uuid.UUID          `json:"id"`
	UserID    int                `json:"user_id"`
	Name      string             `json:"name"`
	Config    progression.Config `json:"config"`
	CreatedAt time.Time          `json:"created_at"`
}

// LiftWithPreview is a lift plus the weights computed from it at read time.
type LiftWithPreview struct {
	Lift
	Preview progression.Preview `json:"preview"`
}

// WithPreview computes the current preview for l.
func (l Lift) WithPreview() LiftWithPreview {
	return LiftWithPreview{Lift: l, Preview: progression.ComputePreview(l.Config)}
}

// LiftInput is the create/update body for a lift.
type LiftInput struct {
	Name                 string  `json:"name"`
	GoalWeight           float64 `json:"goal_weight"`
	WeekNumber           int     `json:"week_number"`
	CycleStartWeight     float64 `json:"cycle_start_weight"`
	TopSetStartPercent   float64 `json:"top_set_start_percent"`
	BackoffPercent       float64 `json:"backoff_percent"`
	AltDayTopSetPercent  float64 `json:"alt_day_top_set_percent"`
	AltDayBackoffPercent float64 `json:"alt_day_backoff_percent"`

	TopSetSets     int `json:"top_set_sets"`
	TopSetReps     int `json:"top_set_reps"`
	BackoffSets    int `json:"backoff_sets"`
	BackoffReps    int `json:"backoff_reps"`
	AltTopSetSets  int `json:"alt_top_set_sets"`
	AltTopSetReps  int `json:"alt_top_set_reps"`
	AltBackoffSets int `json:"alt_backoff_sets"`
	AltBackoffReps int `json:"alt_backoff_reps"`
}

// DefaultLiftInput returns the values a new lift form starts with.
func DefaultLiftInput() LiftInput {
	return LiftInput{
		GoalWeight:           225,
		WeekNumber:           1,
		CycleStartWeight:     135,
		TopSetStartPercent:   0.7,
		BackoffPercent:       0.6,
		AltDayTopSetPercent:  0.7,
		AltDayBackoffPercent: 0.6,
		TopSetSets:           3,
		TopSetReps:           5,
		BackoffSets:          2,
		BackoffReps:          8,
		AltTopSetSets:        3,
		AltTopSetReps:        10,
		AltBackoffSets:       2,
		AltBackoffReps:       12,
	}
}

// Validate trims the name and checks every numeric field is in range.
func (in *LiftInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("name", "lift name is required")
	}
	if err := requirePositive("goal_weight", in.GoalWeight); err != nil {
		return err
	}
	if err := requirePositive("cycle_start_weight", in.CycleStartWeight); err != nil {
		return err
	}
	if in.WeekNumber < 1 {
		return invalid("week_number", "must be at least 1")
	}

	fractions := []struct {
		field string
		v     float64
	}{
		{"top_set_start_percent", in.TopSetStartPercent},
		{"backoff_percent", in.BackoffPercent},
		{"alt_day_top_set_percent", in.AltDayTopSetPercent},
		{"alt_day_backoff_percent", in.AltDayBackoffPercent},
	}
	for _, f := range fractions {
		if err := requireFraction(f.field, f.v); err != nil {
			return err
		}
	}

	counts := []struct {
		field string
		v     int
	}{
		{"top_set_sets", in.TopSetSets},
		{"top_set_reps", in.TopSetReps},
		{"backoff_sets", in.BackoffSets},
		{"backoff_reps", in.BackoffReps},
		{"alt_top_set_sets", in.AltTopSetSets},
		{"alt_top_set_reps", in.AltTopSetReps},
		{"alt_backoff_sets", in.AltBackoffSets},
		{"alt_backoff_reps", in.AltBackoffReps},
	}
	for _, c := range counts {
		if err := requireCount(c.field, c.v); err != nil {
			return err
		}
	}
	return nil
}

// Config converts a validated input to the calculator's configuration.
func (in LiftInput) Config() progression.Config {
	return progression.Config{
		GoalWeight:           in.GoalWeight,
		WeekNumber:           in.WeekNumber,
		CycleStartWeight:     in.CycleStartWeight,
		TopSetStartPercent:   in.TopSetStartPercent,
		BackoffPercent:       in.BackoffPercent,
		AltDayTopSetPercent:  in.AltDayTopSetPercent,
		AltDayBackoffPercent: in.AltDayBackoffPercent,
		TopSet:               progression.Prescription{Sets: in.TopSetSets, Reps: in.TopSetReps},
		Backoff:              progression.Prescription{Sets: in.BackoffSets, Reps: in.BackoffReps},
		AltTopSet:            progression.Prescription{Sets: in.AltTopSetSets, Reps: in.AltTopSetReps},
		AltBackoff:           progression.Prescription{Sets: in.AltBackoffSets, Reps: in.AltBackoffReps},
	}
}
