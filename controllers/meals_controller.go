package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ai-native-85/tinytummy/gamification"
	"github.com/ai-native-85/tinytummy/models"
	"github.com/ai-native-85/tinytummy/utils"
)

// MealController manages meal logging. Every meal mutation triggers a
// synchronous gamification recompute for each calendar day it touches; a
// failed recompute degrades gamification data but never fails the mutation.
type MealController struct {
	db     *gorm.DB
	engine *gamification.Engine
}

// NewMealController creates a new MealController instance.
func NewMealController(db *gorm.DB, engine *gamification.Engine) *MealController {
	return &MealController{db: db, engine: engine}
}

type mealPayload struct {
	MealType   string   `json:"meal_type" binding:"required"`
	MealTime   string   `json:"meal_time" binding:"required"` // RFC3339
	MealDate   string   `json:"meal_date"`                    // optional explicit YYYY-MM-DD
	RawInput   string   `json:"raw_input"`
	Notes      string   `json:"notes"`
	Calories   *float64 `json:"calories"`
	ProteinG   *float64 `json:"protein_g"`
	FatG       *float64 `json:"fat_g"`
	CarbsG     *float64 `json:"carbs_g"`
	FiberG     *float64 `json:"fiber_g"`
	IronMg     *float64 `json:"iron_mg"`
	CalciumMg  *float64 `json:"calcium_mg"`
	VitaminAIU *float64 `json:"vitamin_a_iu"`
	VitaminCMg *float64 `json:"vitamin_c_mg"`
	VitaminDIU *float64 `json:"vitamin_d_iu"`
	ZincMg     *float64 `json:"zinc_mg"`
	FolateMcg  *float64 `json:"folate_mcg"`
}

var validMealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// CreateMeal logs a meal for a child and recomputes that day.
func (m *MealController) CreateMeal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Unauthorized(ctx)
		return
	}
	childID := ctx.Param("id")

	var req mealPayload
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	mealType := strings.ToLower(strings.TrimSpace(req.MealType))
	if !contains(validMealTypes, mealType) {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid meal type")
		return
	}
	mealTime, err := time.Parse(time.RFC3339, req.MealTime)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "meal_time must be RFC3339")
		return
	}
	if req.MealDate != "" {
		if _, err := time.Parse(models.DateLayout, req.MealDate); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40033, "meal_date must be YYYY-MM-DD")
			return
		}
	}

	// Ownership check up front so a bad child ID is a 404, not a silent
	// recompute failure afterwards.
	var child models.Child
	if err := m.db.Where("id = ? AND user_id = ?", childID, userID).First(&child).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40420, "child not found")
		return
	}

	meal := models.Meal{
		ChildID:    childID,
		UserID:     userID,
		MealType:   mealType,
		MealTime:   mealTime,
		MealDate:   req.MealDate,
		RawInput:   utils.Sanitize(req.RawInput),
		Notes:      utils.Sanitize(req.Notes),
		Calories:   req.Calories,
		ProteinG:   req.ProteinG,
		FatG:       req.FatG,
		CarbsG:     req.CarbsG,
		FiberG:     req.FiberG,
		IronMg:     req.IronMg,
		CalciumMg:  req.CalciumMg,
		VitaminAIU: req.VitaminAIU,
		VitaminCMg: req.VitaminCMg,
		VitaminDIU: req.VitaminDIU,
		ZincMg:     req.ZincMg,
		FolateMcg:  req.FolateMcg,
	}
	if err := m.db.Create(&meal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to create meal")
		return
	}

	snapshot := m.recompute(ctx, userID, childID, meal.MealDate)
	utils.Success(ctx, gin.H{"meal": meal, "gamification": snapshot})
}

// UpdateMeal edits meal fields. The old day is always recomputed; when the
// edit moved the meal to another date, the new day is recomputed as well so
// neither day retains stale credit.
func (m *MealController) UpdateMeal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Unauthorized(ctx)
		return
	}
	mealID := ctx.Param("id")

	var meal models.Meal
	if err := m.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40430, "meal not found")
		return
	}
	oldDay := meal.MealDate

	var req struct {
		MealType   *string  `json:"meal_type"`
		MealTime   *string  `json:"meal_time"`
		MealDate   *string  `json:"meal_date"`
		RawInput   *string  `json:"raw_input"`
		Notes      *string  `json:"notes"`
		Calories   *float64 `json:"calories"`
		ProteinG   *float64 `json:"protein_g"`
		FatG       *float64 `json:"fat_g"`
		CarbsG     *float64 `json:"carbs_g"`
		FiberG     *float64 `json:"fiber_g"`
		IronMg     *float64 `json:"iron_mg"`
		CalciumMg  *float64 `json:"calcium_mg"`
		VitaminAIU *float64 `json:"vitamin_a_iu"`
		VitaminCMg *float64 `json:"vitamin_c_mg"`
		VitaminDIU *float64 `json:"vitamin_d_iu"`
		ZincMg     *float64 `json:"zinc_mg"`
		FolateMcg  *float64 `json:"folate_mcg"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	if req.MealType != nil {
		mealType := strings.ToLower(strings.TrimSpace(*req.MealType))
		if !contains(validMealTypes, mealType) {
			utils.Error(ctx, http.StatusBadRequest, 40031, "invalid meal type")
			return
		}
		meal.MealType = mealType
	}
	if req.MealTime != nil {
		mealTime, err := time.Parse(time.RFC3339, *req.MealTime)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40032, "meal_time must be RFC3339")
			return
		}
		meal.MealTime = mealTime
		meal.MealDate = models.DateOf(mealTime)
	}
	if req.MealDate != nil {
		if _, err := time.Parse(models.DateLayout, *req.MealDate); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40033, "meal_date must be YYYY-MM-DD")
			return
		}
		meal.MealDate = *req.MealDate
	}
	if req.RawInput != nil {
		meal.RawInput = utils.Sanitize(*req.RawInput)
	}
	if req.Notes != nil {
		meal.Notes = utils.Sanitize(*req.Notes)
	}
	applyNutrients(&meal, req.Calories, req.ProteinG, req.FatG, req.CarbsG, req.FiberG,
		req.IronMg, req.CalciumMg, req.VitaminAIU, req.VitaminCMg, req.VitaminDIU,
		req.ZincMg, req.FolateMcg)

	if err := m.db.Save(&meal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to update meal")
		return
	}

	snapshot := m.recompute(ctx, userID, meal.ChildID, oldDay)
	if meal.MealDate != oldDay {
		snapshot = m.recompute(ctx, userID, meal.ChildID, meal.MealDate)
	}
	utils.Success(ctx, gin.H{"meal": meal, "gamification": snapshot})
}

// DeleteMeal removes a meal and recomputes the freed day.
func (m *MealController) DeleteMeal(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Unauthorized(ctx)
		return
	}
	mealID := ctx.Param("id")

	var meal models.Meal
	if err := m.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40430, "meal not found")
		return
	}

	if err := m.db.Delete(&meal).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to delete meal")
		return
	}

	snapshot := m.recompute(ctx, userID, meal.ChildID, meal.MealDate)
	utils.Success(ctx, gin.H{"deleted": mealID, "gamification": snapshot})
}

// recompute runs the engine for one day and never fails the meal mutation:
// errors are logged and an empty snapshot is returned instead.
func (m *MealController) recompute(ctx *gin.Context, userID, childID, day string) gamification.Snapshot {
	snap, err := m.engine.RecomputeForDay(ctx.Request.Context(), userID, childID, day)
	if err != nil && !errors.Is(err, gamification.ErrChildNotFound) {
		if utils.Sugar != nil {
			utils.Sugar.Errorw("recompute after meal mutation failed", "child", childID, "day", day, "err", err)
		}
	}
	invalidateSummaryCache(userID, childID)
	return snap
}

func applyNutrients(meal *models.Meal, calories, protein, fat, carbs, fiber, iron, calcium, vitA, vitC, vitD, zinc, folate *float64) {
	if calories != nil {
		meal.Calories = calories
	}
	if protein != nil {
		meal.ProteinG = protein
	}
	if fat != nil {
		meal.FatG = fat
	}
	if carbs != nil {
		meal.CarbsG = carbs
	}
	if fiber != nil {
		meal.FiberG = fiber
	}
	if iron != nil {
		meal.IronMg = iron
	}
	if calcium != nil {
		meal.CalciumMg = calcium
	}
	if vitA != nil {
		meal.VitaminAIU = vitA
	}
	if vitC != nil {
		meal.VitaminCMg = vitC
	}
	if vitD != nil {
		meal.VitaminDIU = vitD
	}
	if zinc != nil {
		meal.ZincMg = zinc
	}
	if folate != nil {
		meal.FolateMcg = folate
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
