package gamification

import "math"

// scoreWeights is the fixed per-nutrient weight table; weights sum to 100 so
// the daily score is bounded to 0..100 by construction.
var scoreWeights = map[string]int{
	"calories":     25,
	"protein_g":    25,
	"iron_mg":      15,
	"calcium_mg":   15,
	"vitamin_c_mg": 10,
	"fiber_g":      10,
}

// ScoreDay combines the day's nutrient totals against targets into a 0-100
// score plus a per-nutrient component breakdown. For each weighted nutrient:
// fraction = min(actual/target, 1) and points = round(fraction * weight),
// rounding half away from zero (math.Round). A nutrient with no target, a
// zero target, or no logged total scores 0. A day with no nutrient data at
// all yields score 0 with an empty breakdown. Pure and deterministic.
func ScoreDay(totals, targets map[string]float64) (int, map[string]int) {
	if len(totals) == 0 {
		return 0, map[string]int{}
	}
	components := make(map[string]int, len(scoreWeights))
	score := 0
	for key, weight := range scoreWeights {
		pts := 0
		target, hasTarget := targets[key]
		actual, hasActual := totals[key]
		if hasTarget && target > 0 && hasActual {
			frac := actual / target
			if frac > 1 {
				frac = 1
			}
			pts = int(math.Round(frac * float64(weight)))
		}
		components[key] = pts
		score += pts
	}
	return score, components
}
