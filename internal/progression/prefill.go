package progression

// Prefill seeds a new workout log from a template's lift. Every field is a
// suggestion; the user may change any of them before saving.
type Prefill struct {
	LiftName      string  `json:"lift_name"`
	TopSetWeight  float64 `json:"top_set_weight"`
	TopSetReps    int     `json:"top_set_reps"`
	BackoffWeight float64 `json:"backoff_weight"`
	BackoffReps   int     `json:"backoff_reps"`
}

// PrefillLog builds a log prefill for the lift named name, using the lift's
// own week number.
func PrefillLog(name string, c Config) Prefill {
	main := ComputeMainDay(c)
	return Prefill{
		LiftName:      name,
		TopSetWeight:  main.TopSetWeight,
		TopSetReps:    c.TopSet.Reps,
		BackoffWeight: main.BackoffWeight,
		BackoffReps:   c.Backoff.Reps,
	}
}
