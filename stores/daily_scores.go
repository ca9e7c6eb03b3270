package stores

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ai-native-85/tinytummy/models"
)

// DailyScores persists one score row per (user, child, date).
type DailyScores struct {
	db *gorm.DB
}

// NewDailyScores creates a daily score store.
func NewDailyScores(db *gorm.DB) *DailyScores {
	return &DailyScores{db: db}
}

// Upsert inserts or overwrites the day's score in a single conflict-handling
// statement keyed by the (user_id, child_id, date) unique index. Writing the
// same values twice is a no-op in effect, which keeps recompute re-entrant
// under concurrent meal edits.
func (s *DailyScores) Upsert(ctx context.Context, userID, childID, day string, score int, components map[string]int) error {
	compJSON, err := json.Marshal(components)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "child_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":      score,
			"components": string(compJSON),
			"updated_at": time.Now(),
		}),
	}).Create(&models.DailyScore{
		UserID:     userID,
		ChildID:    childID,
		Date:       day,
		Score:      score,
		Components: components,
	}).Error
}

// Get returns the persisted score for the day, if any.
func (s *DailyScores) Get(ctx context.Context, userID, childID, day string) (int, map[string]int, bool, error) {
	var row models.DailyScore
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND child_id = ? AND date = ?", userID, childID, day).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, false, nil
		}
		return 0, nil, false, err
	}
	return row.Score, row.Components, true, nil
}
