package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the canonical YYYY-MM-DD form for all calendar-day columns.
// Days are stored and compared as fixed-width strings (char(10)) rather than
// DATE columns: drivers scan DATE into time.Time (parseTime=True) and the
// round-trip mangles string fields into RFC3339, breaking equality against
// YYYY-MM-DD keys.
const DateLayout = "2006-01-02"

// DateOf returns the date part of a timestamp in DateLayout form.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// Meal is a logged meal with its per-nutrient analysis. The gamification
// engine only ever reads this table; nutrient fields are nullable and a null
// value means "not analyzed", not zero.
type Meal struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	ChildID    string    `gorm:"type:char(36);index:idx_meals_ucd;not null" json:"child_id"`
	UserID     string    `gorm:"type:char(36);index:idx_meals_ucd;not null" json:"user_id"`
	MealType   string    `gorm:"size:32;not null" json:"meal_type"`
	MealTime   time.Time `gorm:"not null" json:"meal_time"`
	MealDate   string    `gorm:"type:char(10);index:idx_meals_ucd" json:"meal_date"`
	RawInput   string    `gorm:"type:text" json:"raw_input"`
	Notes      string    `gorm:"type:text" json:"notes"`
	Calories   *float64  `json:"calories"`
	ProteinG   *float64  `json:"protein_g"`
	FatG       *float64  `json:"fat_g"`
	CarbsG     *float64  `json:"carbs_g"`
	FiberG     *float64  `json:"fiber_g"`
	IronMg     *float64  `json:"iron_mg"`
	CalciumMg  *float64  `json:"calcium_mg"`
	VitaminAIU *float64  `gorm:"column:vitamin_a_iu" json:"vitamin_a_iu"`
	VitaminCMg *float64  `json:"vitamin_c_mg"`
	VitaminDIU *float64  `gorm:"column:vitamin_d_iu" json:"vitamin_d_iu"`
	ZincMg     *float64  `json:"zinc_mg"`
	FolateMcg  *float64  `json:"folate_mcg"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID key and derives the effective date from the
// meal timestamp when no explicit date was provided.
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.MealDate == "" && !m.MealTime.IsZero() {
		m.MealDate = DateOf(m.MealTime)
	}
	return nil
}

// BeforeSave keeps the derived date in sync when the timestamp changes.
func (m *Meal) BeforeSave(tx *gorm.DB) error {
	if m.MealDate == "" && !m.MealTime.IsZero() {
		m.MealDate = DateOf(m.MealTime)
	}
	return nil
}
