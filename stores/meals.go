package stores

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ai-native-85/tinytummy/models"
)

// Meals is the read-only meal aggregation surface used by the engine.
type Meals struct {
	db *gorm.DB
}

// NewMeals creates a meal reader.
func NewMeals(db *gorm.DB) *Meals {
	return &Meals{db: db}
}

// nutrientTotals receives one SUM per tracked nutrient. Pointer fields stay
// nil when every meal left the column null (SQL SUM skips nulls and yields
// NULL when nothing contributed). The vitamin A/D fields carry explicit
// column names; default snake-casing would collapse the unit suffix into
// vitamin_aiu / vitamin_diu and miss the SELECT aliases.
type nutrientTotals struct {
	Calories   *float64
	ProteinG   *float64
	FiberG     *float64
	IronMg     *float64
	CalciumMg  *float64
	VitaminAIU *float64 `gorm:"column:vitamin_a_iu"`
	VitaminCMg *float64 `gorm:"column:vitamin_c_mg"`
	VitaminDIU *float64 `gorm:"column:vitamin_d_iu"`
	ZincMg     *float64
}

// TotalsForDay implements gamification.MealReader. A nutrient key appears in
// the result only if at least one meal contributed a non-null value; a day
// with no meals yields an empty map.
func (m *Meals) TotalsForDay(ctx context.Context, userID, childID, day string) (map[string]float64, error) {
	var row nutrientTotals
	err := m.db.WithContext(ctx).Model(&models.Meal{}).
		Select(
			"SUM(calories) AS calories",
			"SUM(protein_g) AS protein_g",
			"SUM(fiber_g) AS fiber_g",
			"SUM(iron_mg) AS iron_mg",
			"SUM(calcium_mg) AS calcium_mg",
			"SUM(vitamin_a_iu) AS vitamin_a_iu",
			"SUM(vitamin_c_mg) AS vitamin_c_mg",
			"SUM(vitamin_d_iu) AS vitamin_d_iu",
			"SUM(zinc_mg) AS zinc_mg",
		).
		Where("user_id = ? AND child_id = ? AND meal_date = ?", userID, childID, day).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	put := func(key string, v *float64) {
		if v != nil {
			totals[key] = *v
		}
	}
	put("calories", row.Calories)
	put("protein_g", row.ProteinG)
	put("fiber_g", row.FiberG)
	put("iron_mg", row.IronMg)
	put("calcium_mg", row.CalciumMg)
	put("vitamin_a_iu", row.VitaminAIU)
	put("vitamin_c_mg", row.VitaminCMg)
	put("vitamin_d_iu", row.VitaminDIU)
	put("zinc_mg", row.ZincMg)
	return totals, nil
}

// HasMealOn reports whether the child has at least one meal on the day.
func (m *Meals) HasMealOn(ctx context.Context, userID, childID, day string) (bool, error) {
	var count int64
	err := m.db.WithContext(ctx).Model(&models.Meal{}).
		Where("user_id = ? AND child_id = ? AND meal_date = ?", userID, childID, day).
		Count(&count).Error
	return count > 0, err
}

// FirstMealAt returns the earliest created_at over all of the child's meals,
// or nil when none exist.
func (m *Meals) FirstMealAt(ctx context.Context, userID, childID string) (*time.Time, error) {
	var meal models.Meal
	err := m.db.WithContext(ctx).
		Where("user_id = ? AND child_id = ?", userID, childID).
		Order("created_at ASC").
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	t := meal.CreatedAt
	return &t, nil
}
