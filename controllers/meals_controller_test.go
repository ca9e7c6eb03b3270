package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ai-native-85/tinytummy/gamification"
	"github.com/ai-native-85/tinytummy/middleware"
	"github.com/ai-native-85/tinytummy/models"
	"github.com/ai-native-85/tinytummy/stores"
)

const (
	testUser  = "11111111-1111-1111-1111-111111111111"
	testChild = "22222222-2222-2222-2222-222222222222"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&models.Child{}, &models.Meal{},
		&models.DailyScore{}, &models.PointsLedgerEntry{}, &models.Streak{},
		&models.Badge{}, &models.UserBadge{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// newMealRouter wires the meal endpoints behind a stub identity middleware,
// standing in for the JWT layer.
func newMealRouter(t *testing.T) (*gin.Engine, *stores.Set, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db := testDB(t)
	child := models.Child{ID: testChild, UserID: testUser, Name: "Mia", DateOfBirth: "2022-01-10"}
	if err := db.Create(&child).Error; err != nil {
		t.Fatalf("seed child: %v", err)
	}

	set := stores.NewSet(db)
	engine := gamification.NewEngine(set.Children, set.Meals, set.Scores, set.Ledger, set.Streaks, set.Badges, nil)
	mc := NewMealController(db, engine)

	r := gin.New()
	r.Use(func(ctx *gin.Context) { ctx.Set(middleware.ContextUserIDKey, testUser) })
	r.POST("/children/:id/meals", mc.CreateMeal)
	r.PATCH("/meals/:id", mc.UpdateMeal)
	r.DELETE("/meals/:id", mc.DeleteMeal)
	return r, set, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope struct {
		Code int                        `json:"code"`
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %s: %v", w.Body.String(), err)
	}
	return w, envelope.Data
}

func TestUpdateMealDateMoveRecomputesBothDays(t *testing.T) {
	r, set, _ := newMealRouter(t)
	ctx := context.Background()

	// Log a meal that fully meets the toddler targets on 2024-01-02.
	w, data := doJSON(t, r, http.MethodPost, "/children/"+testChild+"/meals", gin.H{
		"meal_type":    "lunch",
		"meal_time":    "2024-01-02T12:00:00Z",
		"calories":     1000,
		"protein_g":    13,
		"fiber_g":      14,
		"iron_mg":      7,
		"calcium_mg":   700,
		"vitamin_c_mg": 15,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d body = %s", w.Code, w.Body.String())
	}
	var meal models.Meal
	if err := json.Unmarshal(data["meal"], &meal); err != nil {
		t.Fatalf("decode meal: %v", err)
	}
	if meal.MealDate != "2024-01-02" {
		t.Fatalf("meal date = %q, want derived 2024-01-02", meal.MealDate)
	}

	score, _, found, err := set.Scores.Get(ctx, testUser, testChild, "2024-01-02")
	if err != nil || !found || score != 100 {
		t.Fatalf("score after create = (%d, %v, %v), want (100, true, nil)", score, found, err)
	}

	// Move the meal three days forward through the HTTP surface; both the
	// freed day and the target day must be recomputed.
	w, _ = doJSON(t, r, http.MethodPatch, "/meals/"+meal.ID, gin.H{
		"meal_time": "2024-01-05T12:00:00Z",
		"meal_date": "2024-01-05",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d body = %s", w.Code, w.Body.String())
	}

	score, _, found, err = set.Scores.Get(ctx, testUser, testChild, "2024-01-02")
	if err != nil || !found || score != 0 {
		t.Errorf("freed day score = (%d, %v, %v), want (0, true, nil)", score, found, err)
	}
	score, _, found, err = set.Scores.Get(ctx, testUser, testChild, "2024-01-05")
	if err != nil || !found || score != 100 {
		t.Errorf("target day score = (%d, %v, %v), want (100, true, nil)", score, found, err)
	}

	streak, err := set.Streaks.Get(ctx, testUser, testChild)
	if err != nil {
		t.Fatalf("streak get: %v", err)
	}
	if streak.Current != 1 || streak.LastActive != "2024-01-05" {
		t.Errorf("streak = %+v, want current 1 anchored at 2024-01-05", streak)
	}
}

func TestDeleteMealRecomputesFreedDay(t *testing.T) {
	r, set, _ := newMealRouter(t)
	ctx := context.Background()

	w, data := doJSON(t, r, http.MethodPost, "/children/"+testChild+"/meals", gin.H{
		"meal_type": "dinner",
		"meal_time": "2024-01-02T18:00:00Z",
		"calories":  1000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d body = %s", w.Code, w.Body.String())
	}
	var meal models.Meal
	if err := json.Unmarshal(data["meal"], &meal); err != nil {
		t.Fatalf("decode meal: %v", err)
	}

	w, _ = doJSON(t, r, http.MethodDelete, "/meals/"+meal.ID, gin.H{})
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d body = %s", w.Code, w.Body.String())
	}

	score, _, found, err := set.Scores.Get(ctx, testUser, testChild, "2024-01-02")
	if err != nil || !found || score != 0 {
		t.Errorf("freed day score = (%d, %v, %v), want (0, true, nil)", score, found, err)
	}
}
