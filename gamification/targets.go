package gamification

// TargetsFor returns the daily nutrient targets for a child of the given age.
// Three fixed age bands; region is reserved for a future guideline store and
// unknown regions fall back to the band defaults.
func TargetsFor(ageMonths int, region string) map[string]float64 {
	_ = region

	if ageMonths <= 12 {
		return map[string]float64{
			"calories":     700,
			"protein_g":    11,
			"iron_mg":      11,
			"vitamin_d_iu": 400,
		}
	}
	if ageMonths <= 36 {
		return map[string]float64{
			"calories":     1000,
			"protein_g":    13,
			"fiber_g":      14,
			"iron_mg":      7,
			"calcium_mg":   700,
			"vitamin_a_iu": 1000,
			"vitamin_c_mg": 15,
			"vitamin_d_iu": 600,
			"zinc_mg":      3,
		}
	}
	return map[string]float64{
		"calories":     1200,
		"protein_g":    19,
		"fiber_g":      17,
		"iron_mg":      10,
		"calcium_mg":   1000,
		"vitamin_c_mg": 25,
		"zinc_mg":      5,
	}
}
