package progression

import (
	"math"
	"testing"
)

func baseConfig() Config {
	return Config{
		GoalWeight:           225,
		WeekNumber:           1,
		CycleStartWeight:     135,
		TopSetStartPercent:   0.7,
		BackoffPercent:       0.6,
		AltDayTopSetPercent:  0.7,
		AltDayBackoffPercent: 0.6,
		TopSet:               Prescription{Sets: 3, Reps: 5},
		Backoff:              Prescription{Sets: 2, Reps: 8},
		AltTopSet:            Prescription{Sets: 3, Reps: 10},
		AltBackoff:           Prescription{Sets: 2, Reps: 12},
	}
}

// TestRoundToNearestFive covers exact multiples, both sides of the midpoint,
// and the half-up tie rule for positive and negative inputs.
func TestRoundToNearestFive(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{135, 135},
		{81, 80},
		{82.4, 80},
		{82.5, 85},
		{149.625, 150},
		{128.25, 130},
		{2.5, 5},
		{-2.5, 0},
		{-2.6, -5},
		{-7.5, -5},
		{1e6 + 1, 1e6},
	}
	for _, tc := range cases {
		if got := RoundToNearestFive(tc.in); got != tc.want {
			t.Errorf("RoundToNearestFive(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// TestRoundToNearestFiveZeroSign verifies negative inputs that round to zero
// come back as positive zero.
func TestRoundToNearestFiveZeroSign(t *testing.T) {
	for _, v := range []float64{-2.5, -1, -0.01} {
		got := RoundToNearestFive(v)
		if got != 0 || math.Signbit(got) {
			t.Errorf("RoundToNearestFive(%v) = %v (signbit %v), want +0", v, got, math.Signbit(got))
		}
	}
}

// TestRoundToNearestFiveProperties sweeps a range of values and checks the
// result is a multiple of five, within 2.5 of the input, and stable when
// rounded again.
func TestRoundToNearestFiveProperties(t *testing.T) {
	for v := -1000.0; v <= 1000.0; v += 0.37 {
		r := RoundToNearestFive(v)
		if math.Mod(r, 5) != 0 {
			t.Fatalf("RoundToNearestFive(%v) = %v, not a multiple of 5", v, r)
		}
		if math.Abs(r-v) > 2.5+1e-9 {
			t.Fatalf("RoundToNearestFive(%v) = %v, off by more than 2.5", v, r)
		}
		if again := RoundToNearestFive(r); again != r {
			t.Fatalf("RoundToNearestFive not idempotent at %v: %v then %v", v, r, again)
		}
	}
}

// TestRoundToNearestFiveNonFinite verifies NaN and infinities pass through
// without panicking.
func TestRoundToNearestFiveNonFinite(t *testing.T) {
	if got := RoundToNearestFive(math.NaN()); !math.IsNaN(got) {
		t.Errorf("RoundToNearestFive(NaN) = %v, want NaN", got)
	}
	if got := RoundToNearestFive(math.Inf(1)); !math.IsInf(got, 1) {
		t.Errorf("RoundToNearestFive(+Inf) = %v, want +Inf", got)
	}
	if got := RoundToNearestFive(math.Inf(-1)); !math.IsInf(got, -1) {
		t.Errorf("RoundToNearestFive(-Inf) = %v, want -Inf", got)
	}
}

// TestComputeMainDay checks week one and week four of a 135 lb cycle.
func TestComputeMainDay(t *testing.T) {
	tests := []struct {
		name        string
		week        int
		wantTop     float64
		wantBackoff float64
	}{
		{"week 1", 1, 135, 80},
		{"week 4", 4, 150, 90},
		{"week 2", 2, 140, 85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := baseConfig()
			c.WeekNumber = tt.week
			got := ComputeMainDay(c)
			if got.TopSetWeight != tt.wantTop {
				t.Errorf("top = %v, want %v", got.TopSetWeight, tt.wantTop)
			}
			if got.BackoffWeight != tt.wantBackoff {
				t.Errorf("backoff = %v, want %v", got.BackoffWeight, tt.wantBackoff)
			}
		})
	}
}

// TestComputeMainDayBackoffUsesRoundedTop pins the rounding order: the
// back-off percentage applies to the rounded top set. With a raw top of
// 132.5 (rounded to 135) and 50%, rounding first yields 70 while rounding
// last would yield 65.
func TestComputeMainDayBackoffUsesRoundedTop(t *testing.T) {
	c := baseConfig()
	c.CycleStartWeight = 132.5
	c.BackoffPercent = 0.5

	got := ComputeMainDay(c)
	if got.TopSetWeight != 135 {
		t.Fatalf("top = %v, want 135", got.TopSetWeight)
	}
	if got.BackoffWeight != 70 {
		t.Errorf("backoff = %v, want 70 (from rounded top)", got.BackoffWeight)
	}
}

// TestComputeAltDay checks the 225 lb goal example.
func TestComputeAltDay(t *testing.T) {
	got := ComputeAltDay(baseConfig())
	if got.AltTopWeight != 150 {
		t.Errorf("alt top = %v, want 150", got.AltTopWeight)
	}
	if got.AltBackoffWeight != 130 {
		t.Errorf("alt backoff = %v, want 130", got.AltBackoffWeight)
	}
}

// TestComputeAltDayIgnoresWeek verifies alternate-day weights depend only on
// the goal weight, not on the progression week.
func TestComputeAltDayIgnoresWeek(t *testing.T) {
	a := baseConfig()
	b := baseConfig()
	b.WeekNumber = 9
	b.CycleStartWeight = 200
	if ComputeAltDay(a) != ComputeAltDay(b) {
		t.Errorf("alt day changed with week: %+v vs %+v", ComputeAltDay(a), ComputeAltDay(b))
	}
}

// TestComputePreview verifies the four preview weights combine both halves.
func TestComputePreview(t *testing.T) {
	c := baseConfig()
	c.WeekNumber = 4
	got := ComputePreview(c)
	want := Preview{TopSetWeight: 150, BackoffWeight: 90, AltTopWeight: 150, AltBackoffWeight: 130}
	if got != want {
		t.Errorf("ComputePreview = %+v, want %+v", got, want)
	}
}

// TestComputePreviewDeterministic calls the calculator repeatedly on the same
// input and expects bit-identical results each time.
func TestComputePreviewDeterministic(t *testing.T) {
	c := baseConfig()
	c.GoalWeight = 317.3
	c.BackoffPercent = 0.77
	first := ComputePreview(c)
	for i := 0; i < 100; i++ {
		got := ComputePreview(c)
		if math.Float64bits(got.TopSetWeight) != math.Float64bits(first.TopSetWeight) ||
			math.Float64bits(got.BackoffWeight) != math.Float64bits(first.BackoffWeight) ||
			math.Float64bits(got.AltTopWeight) != math.Float64bits(first.AltTopWeight) ||
			math.Float64bits(got.AltBackoffWeight) != math.Float64bits(first.AltBackoffWeight) {
			t.Fatalf("call %d: %+v differs from %+v", i, got, first)
		}
	}
	if c.GoalWeight != 317.3 || c.BackoffPercent != 0.77 {
		t.Error("config was mutated")
	}
}

// TestComputePreviewNaN verifies NaN inputs poison only the outputs derived
// from them and never panic.
func TestComputePreviewNaN(t *testing.T) {
	c := baseConfig()
	c.CycleStartWeight = math.NaN()
	got := ComputePreview(c)
	if !math.IsNaN(got.TopSetWeight) || !math.IsNaN(got.BackoffWeight) {
		t.Errorf("main day = %+v, want NaN", got)
	}
	if got.AltTopWeight != 150 || got.AltBackoffWeight != 130 {
		t.Errorf("alt day = %v/%v, want 150/130", got.AltTopWeight, got.AltBackoffWeight)
	}

	c = baseConfig()
	c.AltDayBackoffPercent = math.NaN()
	got = ComputePreview(c)
	if !math.IsNaN(got.AltBackoffWeight) {
		t.Errorf("alt backoff = %v, want NaN", got.AltBackoffWeight)
	}
	if math.IsNaN(got.AltTopWeight) || math.IsNaN(got.TopSetWeight) {
		t.Errorf("unrelated fields poisoned: %+v", got)
	}
}

// TestPrefillLogMatchesMainDay verifies the log prefill shares the main-day
// formula and carries over the configured rep counts.
func TestPrefillLogMatchesMainDay(t *testing.T) {
	for week := 1; week <= 12; week++ {
		c := baseConfig()
		c.WeekNumber = week
		c.BackoffPercent = 0.65
		main := ComputeMainDay(c)
		p := PrefillLog("Bench press", c)
		if p.TopSetWeight != main.TopSetWeight || p.BackoffWeight != main.BackoffWeight {
			t.Errorf("week %d: prefill %+v diverges from main day %+v", week, p, main)
		}
		if p.TopSetReps != 5 || p.BackoffReps != 8 {
			t.Errorf("week %d: reps = %d/%d, want 5/8", week, p.TopSetReps, p.BackoffReps)
		}
		if p.LiftName != "Bench press" {
			t.Errorf("lift name = %q", p.LiftName)
		}
	}
}
