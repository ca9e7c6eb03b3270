package stores

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ai-native-85/tinytummy/gamification"
	"github.com/ai-native-85/tinytummy/models"
)

// Streaks persists one streak row per (user, child).
type Streaks struct {
	db *gorm.DB
}

// NewStreaks creates a streak store.
func NewStreaks(db *gorm.DB) *Streaks {
	return &Streaks{db: db}
}

// Get returns the current streak state, zero-valued when no row exists.
func (s *Streaks) Get(ctx context.Context, userID, childID string) (gamification.StreakState, error) {
	var row models.Streak
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND child_id = ?", userID, childID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gamification.StreakState{}, nil
		}
		return gamification.StreakState{}, err
	}
	return toState(row), nil
}

// Apply runs the streak transition as one transactional read-modify-write.
// On MySQL the read takes a row lock so concurrent recomputes for the same
// (user, child) cannot lose updates; SQLite serializes writers on its own.
func (s *Streaks) Apply(ctx context.Context, userID, childID, day string, active bool) (gamification.StreakState, error) {
	var next gamification.StreakState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "mysql" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var row models.Streak
		prev := gamification.StreakState{}
		err := q.Where("user_id = ? AND child_id = ?", userID, childID).First(&row).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			prev = toState(row)
		}

		next = gamification.NextStreak(prev, day, active)

		var lastActive *string
		if next.LastActive != "" {
			la := next.LastActive
			lastActive = &la
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "child_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"current_length":   next.Current,
				"best_length":      next.Best,
				"last_active_date": lastActive,
				"updated_at":       time.Now(),
			}),
		}).Create(&models.Streak{
			UserID:         userID,
			ChildID:        childID,
			CurrentLength:  next.Current,
			BestLength:     next.Best,
			LastActiveDate: lastActive,
		}).Error
	})
	if err != nil {
		return gamification.StreakState{}, err
	}
	return next, nil
}

func toState(row models.Streak) gamification.StreakState {
	state := gamification.StreakState{
		Current: row.CurrentLength,
		Best:    row.BestLength,
	}
	if row.LastActiveDate != nil {
		state.LastActive = *row.LastActiveDate
	}
	return state
}
