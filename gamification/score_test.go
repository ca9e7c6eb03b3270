package gamification

import (
	"testing"
	"time"
)

func TestScoreDayWeightsSumToHundred(t *testing.T) {
	sum := 0
	for _, w := range scoreWeights {
		sum += w
	}
	if sum != 100 {
		t.Fatalf("weights sum = %d, want 100", sum)
	}
}

func TestScoreDayHalfTargets(t *testing.T) {
	targets := map[string]float64{
		"calories":     1000,
		"protein_g":    13,
		"fiber_g":      14,
		"iron_mg":      7,
		"calcium_mg":   700,
		"vitamin_c_mg": 15,
	}
	totals := map[string]float64{
		"calories":  1000, // 100% of target
		"protein_g": 13,   // 100% of target
		"iron_mg":   0,
		"fiber_g":   0,
	}

	score, components := ScoreDay(totals, targets)
	if score != 50 {
		t.Fatalf("score = %d, want 50", score)
	}
	want := map[string]int{
		"calories":     25,
		"protein_g":    25,
		"iron_mg":      0,
		"calcium_mg":   0,
		"vitamin_c_mg": 0,
		"fiber_g":      0,
	}
	for key, pts := range want {
		if components[key] != pts {
			t.Errorf("components[%s] = %d, want %d", key, components[key], pts)
		}
	}
	if len(components) != len(want) {
		t.Errorf("components has %d keys, want %d", len(components), len(want))
	}
}

func TestScoreDayOverconsumptionCapped(t *testing.T) {
	targets := map[string]float64{"calories": 1000, "protein_g": 13}
	totals := map[string]float64{"calories": 5000, "protein_g": 200}

	score, components := ScoreDay(totals, targets)
	if components["calories"] != 25 || components["protein_g"] != 25 {
		t.Fatalf("components = %v, want calories and protein capped at their weights", components)
	}
	if score != 50 {
		t.Fatalf("score = %d, want 50", score)
	}
}

func TestScoreDayRoundsHalfAwayFromZero(t *testing.T) {
	// 50% of a 25-point weight is exactly 12.5, which rounds to 13.
	targets := map[string]float64{"calories": 1000}
	totals := map[string]float64{"calories": 500}

	_, components := ScoreDay(totals, targets)
	if components["calories"] != 13 {
		t.Fatalf("components[calories] = %d, want 13", components["calories"])
	}
}

func TestScoreDayNoData(t *testing.T) {
	score, components := ScoreDay(nil, map[string]float64{"calories": 1000})
	if score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}
	if len(components) != 0 {
		t.Fatalf("components = %v, want empty", components)
	}
}

func TestScoreDayZeroTargetScoresZero(t *testing.T) {
	targets := map[string]float64{"calories": 0}
	totals := map[string]float64{"calories": 900}

	score, components := ScoreDay(totals, targets)
	if components["calories"] != 0 || score != 0 {
		t.Fatalf("score = %d components = %v, want all zero for zero target", score, components)
	}
}

func TestScoreDayBounds(t *testing.T) {
	targets := TargetsFor(48, "")
	cases := []map[string]float64{
		{"calories": 1e9, "protein_g": 1e9, "fiber_g": 1e9, "iron_mg": 1e9, "calcium_mg": 1e9, "vitamin_c_mg": 1e9},
		{"calories": 600, "iron_mg": 3.3},
		{"vitamin_c_mg": 12.5},
	}
	for _, totals := range cases {
		score, _ := ScoreDay(totals, targets)
		if score < 0 || score > 100 {
			t.Errorf("score = %d for totals %v, want within [0,100]", score, totals)
		}
	}
}

func TestTargetsForAgeBands(t *testing.T) {
	infant := TargetsFor(6, "")
	if infant["calories"] != 700 || infant["protein_g"] != 11 {
		t.Errorf("infant targets = %v", infant)
	}
	if _, ok := infant["calcium_mg"]; ok {
		t.Errorf("infant band should not carry a calcium target, got %v", infant)
	}

	toddler := TargetsFor(24, "")
	if toddler["calories"] != 1000 || toddler["calcium_mg"] != 700 {
		t.Errorf("toddler targets = %v", toddler)
	}

	older := TargetsFor(60, "")
	if older["calories"] != 1200 || older["calcium_mg"] != 1000 {
		t.Errorf("older targets = %v", older)
	}

	// Band edges are inclusive.
	if TargetsFor(12, "")["calories"] != 700 {
		t.Error("12 months should still use the infant band")
	}
	if TargetsFor(36, "")["calories"] != 1000 {
		t.Error("36 months should still use the toddler band")
	}
	if TargetsFor(37, "")["calories"] != 1200 {
		t.Error("37 months should use the oldest band")
	}
}

func TestAgeInMonths(t *testing.T) {
	day := func(s string) time.Time {
		t.Helper()
		d, err := ParseDate(s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		return d
	}

	cases := []struct {
		dob, on string
		want    int
	}{
		{"2022-01-10", "2024-01-10", 24},
		{"2022-01-10", "2024-01-09", 23},
		{"2023-06-15", "2023-06-20", 0},
		{"2024-01-01", "2023-12-01", 0}, // future dob clamps to 0
	}
	for _, c := range cases {
		if got := AgeInMonths(day(c.dob), day(c.on)); got != c.want {
			t.Errorf("AgeInMonths(%s, %s) = %d, want %d", c.dob, c.on, got, c.want)
		}
	}
}

func TestPrevDay(t *testing.T) {
	if got := PrevDay("2024-03-01"); got != "2024-02-29" {
		t.Errorf("PrevDay(2024-03-01) = %s, want 2024-02-29", got)
	}
	if got := PrevDay("not-a-date"); got != "" {
		t.Errorf("PrevDay(not-a-date) = %q, want empty", got)
	}
}
