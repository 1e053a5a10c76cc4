package aggregate

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAggregate_ZeroFindingsIsUndetermined(t *testing.T) {
	t.Parallel()

	v := Aggregate(nil, DefaultThresholds())
	if v.Determined {
		t.Fatalf("zero findings must be undetermined")
	}
	if v.Risk != RiskUnknown {
		t.Fatalf("risk = %q, want %q", v.Risk, RiskUnknown)
	}
	if !reflect.DeepEqual(v.Signals, []string{SignalUnavailable}) {
		t.Fatalf("signals = %v, want [%s]", v.Signals, SignalUnavailable)
	}
	if v.Providers != 0 {
		t.Fatalf("providers = %d, want 0", v.Providers)
	}
}

func TestAggregate_EqualWeightMean(t *testing.T) {
	t.Parallel()

	v := Aggregate([]Finding{
		{Provider: "a", Score: 0.2},
		{Provider: "b", Score: 0.4},
		{Provider: "c", Score: 0.9},
	}, DefaultThresholds())

	if !v.Determined {
		t.Fatalf("expected determined verdict")
	}
	if !near(v.Score, 0.5) {
		t.Fatalf("score = %v, want 0.5", v.Score)
	}
	if v.Providers != 3 {
		t.Fatalf("providers = %d, want 3", v.Providers)
	}
}

func TestAggregate_SignalsUnionSortedDeduped(t *testing.T) {
	t.Parallel()

	v := Aggregate([]Finding{
		{Provider: "a", Score: 0.5, Signals: []string{"zeta", "alpha"}},
		{Provider: "b", Score: 0.5, Signals: []string{"alpha", "", "mid"}},
	}, DefaultThresholds())

	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(v.Signals, want) {
		t.Fatalf("signals = %v, want %v", v.Signals, want)
	}
}

func TestAggregate_ClampsOutOfRangeScores(t *testing.T) {
	t.Parallel()

	v := Aggregate([]Finding{
		{Provider: "a", Score: -0.5},
		{Provider: "b", Score: 1.5},
	}, DefaultThresholds())
	if !near(v.Score, 0.5) {
		t.Fatalf("score = %v, want 0.5 after clamping", v.Score)
	}
}

func TestAggregate_Monotonicity(t *testing.T) {
	t.Parallel()

	th := DefaultThresholds()
	setA := []Finding{{Score: 0.1}, {Score: 0.3}, {Score: 0.5}}
	setB := []Finding{{Score: 0.2}, {Score: 0.3}, {Score: 0.9}}

	va := Aggregate(setA, th)
	vb := Aggregate(setB, th)
	if va.Score > vb.Score {
		t.Fatalf("pointwise-dominated set aggregated higher: %v > %v", va.Score, vb.Score)
	}
	if va.Risk.Rank() < vb.Risk.Rank() {
		t.Fatalf("risk ordering inverted: %q should be at least as severe as %q", va.Risk, vb.Risk)
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	t.Parallel()

	in := []Finding{
		{Provider: "a", Score: 0.42, Signals: []string{"x", "y"}},
		{Provider: "b", Score: 0.58, Signals: []string{"y", "z"}},
	}
	first := Aggregate(in, DefaultThresholds())
	for i := 0; i < 10; i++ {
		if got := Aggregate(in, DefaultThresholds()); !reflect.DeepEqual(got, first) {
			t.Fatalf("aggregation not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestThresholds_RiskLadder(t *testing.T) {
	t.Parallel()

	th := DefaultThresholds()
	cases := []struct {
		score float64
		want  RiskLevel
	}{
		{0.0, RiskCritical},
		{0.2, RiskCritical},
		{0.21, RiskHigh},
		{0.3, RiskHigh},
		{0.4, RiskHigh},
		{0.41, RiskMedium},
		{0.6, RiskMedium},
		{0.61, RiskLow},
		{0.9, RiskLow},
		{1.0, RiskLow},
	}
	for _, c := range cases {
		if got := th.Risk(c.score); got != c.want {
			t.Fatalf("Risk(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestThresholds_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultThresholds().Validate(); err != nil {
		t.Fatalf("default thresholds should validate: %v", err)
	}

	bad := []Thresholds{
		{CriticalMax: 0, HighMax: 0.4, MediumMax: 0.6},
		{CriticalMax: 0.2, HighMax: 0.4, MediumMax: 1.0},
		{CriticalMax: 0.5, HighMax: 0.4, MediumMax: 0.6},
		{CriticalMax: 0.4, HighMax: 0.4, MediumMax: 0.6},
	}
	for i, th := range bad {
		if err := th.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, th)
		}
	}
}

func TestRiskLevel_ParseAndRank(t *testing.T) {
	t.Parallel()

	for _, lvl := range Levels() {
		got, err := ParseRisk("  " + strings.ToUpper(lvl.String()) + " ")
		if err != nil {
			t.Fatalf("ParseRisk(%q) error: %v", lvl, err)
		}
		if got != lvl {
			t.Fatalf("ParseRisk round trip %q -> %q", lvl, got)
		}
	}
	if _, err := ParseRisk("severe"); err == nil {
		t.Fatalf("expected error for unknown level")
	}

	// ascending ranks
	prev := -1
	for _, lvl := range Levels() {
		if lvl.Rank() <= prev {
			t.Fatalf("ranks not ascending at %q", lvl)
		}
		prev = lvl.Rank()
	}
	if RiskUnknown.Rank() != 0 {
		t.Fatalf("unknown should rank 0")
	}
}
