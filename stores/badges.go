package stores

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ai-native-85/tinytummy/gamification"
	"github.com/ai-native-85/tinytummy/models"
)

// Badges manages the lazily-created badge catalog and per-user grants.
type Badges struct {
	db *gorm.DB
}

// NewBadges creates a badge store.
func NewBadges(db *gorm.DB) *Badges {
	return &Badges{db: db}
}

// EnsureBadge returns the catalog ID for a badge name, creating the row on
// first need. The insert ignores conflicts and the ID is read back, so two
// concurrent callers converge on the same catalog row.
func (b *Badges) EnsureBadge(ctx context.Context, name, badgeType, description string) (string, error) {
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&models.Badge{
		Name:        name,
		BadgeType:   badgeType,
		Description: description,
	}).Error
	if err != nil {
		return "", err
	}

	var badge models.Badge
	if err := b.db.WithContext(ctx).Where("name = ?", name).First(&badge).Error; err != nil {
		return "", err
	}
	return badge.ID, nil
}

// GrantOnce awards a badge to a user unless the (user_id, badge_id) grant
// already exists. Reports whether this call created the grant.
func (b *Badges) GrantOnce(ctx context.Context, userID, badgeID string) (bool, error) {
	res := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
		DoNothing: true,
	}).Create(&models.UserBadge{
		UserID:  userID,
		BadgeID: badgeID,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListGranted returns the user's earned badges joined with the catalog,
// newest first.
func (b *Badges) ListGranted(ctx context.Context, userID string) ([]gamification.GrantedBadge, error) {
	var granted []gamification.GrantedBadge
	err := b.db.WithContext(ctx).Model(&models.UserBadge{}).
		Select("badges.name AS name", "badges.badge_type AS type", "user_badges.earned_at AS earned_at").
		Joins("JOIN badges ON badges.id = user_badges.badge_id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.earned_at DESC").
		Scan(&granted).Error
	return granted, err
}
