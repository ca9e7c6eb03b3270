package stores

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ai-native-85/tinytummy/models"
)

// PointsLedger is the append-only point grant ledger. Rows are immutable
// once written; recompute never updates or deletes them.
type PointsLedger struct {
	db *gorm.DB
}

// NewPointsLedger creates a points ledger store.
func NewPointsLedger(db *gorm.DB) *PointsLedger {
	return &PointsLedger{db: db}
}

// GrantOnce inserts a grant unless the (user_id, child_id, date, reason)
// unique key already exists. The conflict-ignoring insert is what makes a
// recompute idempotent and race-safe; RowsAffected tells whether this call
// created the row.
func (p *PointsLedger) GrantOnce(ctx context.Context, userID, childID, day, reason string, points int) (bool, error) {
	res := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "child_id"}, {Name: "date"}, {Name: "reason"},
		},
		DoNothing: true,
	}).Create(&models.PointsLedgerEntry{
		UserID:  userID,
		ChildID: childID,
		Date:    day,
		Reason:  reason,
		Points:  points,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SumForDay returns the day's accumulated points for the child.
func (p *PointsLedger) SumForDay(ctx context.Context, userID, childID, day string) (int, error) {
	var sum int
	err := p.db.WithContext(ctx).Model(&models.PointsLedgerEntry{}).
		Where("user_id = ? AND child_id = ? AND date = ?", userID, childID, day).
		Select("COALESCE(SUM(points),0)").
		Scan(&sum).Error
	return sum, err
}

// SumTotal returns the all-time accumulated points for the child.
func (p *PointsLedger) SumTotal(ctx context.Context, userID, childID string) (int, error) {
	var sum int
	err := p.db.WithContext(ctx).Model(&models.PointsLedgerEntry{}).
		Where("user_id = ? AND child_id = ?", userID, childID).
		Select("COALESCE(SUM(points),0)").
		Scan(&sum).Error
	return sum, err
}
