package stores

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ai-native-85/tinytummy/gamification"
	"github.com/ai-native-85/tinytummy/models"
)

// Children resolves child profiles scoped to their owning user.
type Children struct {
	db *gorm.DB
}

// NewChildren creates a child reader.
func NewChildren(db *gorm.DB) *Children {
	return &Children{db: db}
}

// Get implements gamification.ChildReader. A child owned by another user is
// indistinguishable from a missing one.
func (c *Children) Get(ctx context.Context, userID, childID string) (gamification.ChildInfo, error) {
	var child models.Child
	err := c.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", childID, userID).
		First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gamification.ChildInfo{}, gamification.ErrChildNotFound
		}
		return gamification.ChildInfo{}, err
	}

	dob, err := time.Parse(models.DateLayout, child.DateOfBirth)
	if err != nil {
		return gamification.ChildInfo{}, err
	}
	return gamification.ChildInfo{DateOfBirth: dob, Region: child.Region}, nil
}

// PurgeChild deletes a child and every row it owns: meals, daily scores,
// ledger entries, and the streak. Runs in one transaction so a partial
// cascade never survives. Badge grants are user-scoped and are kept.
func (c *Children) PurgeChild(ctx context.Context, userID, childID string) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", childID, userID).Delete(&models.Child{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gamification.ErrChildNotFound
		}
		owned := "user_id = ? AND child_id = ?"
		if err := tx.Where(owned, userID, childID).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		if err := tx.Where(owned, userID, childID).Delete(&models.DailyScore{}).Error; err != nil {
			return err
		}
		if err := tx.Where(owned, userID, childID).Delete(&models.PointsLedgerEntry{}).Error; err != nil {
			return err
		}
		return tx.Where(owned, userID, childID).Delete(&models.Streak{}).Error
	})
}
