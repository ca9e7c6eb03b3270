package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Badge types mirrored from the catalog.
const (
	BadgeTypeStreak      = "streak"
	BadgeTypeMilestone   = "milestone"
	BadgeTypeAchievement = "achievement"
)

// Point grant reasons. Each reason is granted at most once per (user, child, date).
const (
	PointsReasonBase    = "base"
	PointsReasonScore70 = "score70"
	PointsReasonScore90 = "score90"
)

// DailyScore holds exactly one computed score per (user, child, date).
// Recompute overwrites it via an atomic upsert on the unique key.
type DailyScore struct {
	ID         string         `gorm:"type:char(36);primaryKey" json:"id"`
	UserID     string         `gorm:"type:char(36);index:idx_daily_score_ucd,unique;not null" json:"user_id"`
	ChildID    string         `gorm:"type:char(36);index:idx_daily_score_ucd,unique;not null" json:"child_id"`
	Date       string         `gorm:"type:char(10);index:idx_daily_score_ucd,unique;not null" json:"date"`
	Score      int            `gorm:"not null;default:0" json:"score"`
	Components map[string]int `gorm:"serializer:json" json:"components"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (s *DailyScore) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// PointsLedgerEntry is an append-only point grant. The unique key on
// (user, child, date, reason) is the idempotence contract: a recompute can
// attempt the same grant any number of times and only the first insert lands.
type PointsLedgerEntry struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);index:idx_points_ucdr,unique;not null" json:"user_id"`
	ChildID   string    `gorm:"type:char(36);index:idx_points_ucdr,unique;not null" json:"child_id"`
	Date      string    `gorm:"type:char(10);index:idx_points_ucdr,unique;not null" json:"date"`
	Reason    string    `gorm:"size:32;index:idx_points_ucdr,unique;not null" json:"reason"`
	Points    int       `gorm:"not null" json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *PointsLedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Streak holds one current/best streak row per (user, child).
// Invariant: BestLength >= CurrentLength.
type Streak struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID         string    `gorm:"type:char(36);index:idx_streak_uc,unique;not null" json:"user_id"`
	ChildID        string    `gorm:"type:char(36);index:idx_streak_uc,unique;not null" json:"child_id"`
	CurrentLength  int       `gorm:"not null;default:0" json:"current_length"`
	BestLength     int       `gorm:"not null;default:0" json:"best_length"`
	LastActiveDate *string   `gorm:"type:char(10)" json:"last_active_date"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (s *Streak) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Badge is a catalog row, created lazily by name and immutable afterwards.
type Badge struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	BadgeType   string    `gorm:"size:32;not null" json:"badge_type"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// UserBadge grants a catalog badge to a user at most once.
type UserBadge struct {
	ID       string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID   string    `gorm:"type:char(36);index:idx_user_badge,unique;not null" json:"user_id"`
	BadgeID  string    `gorm:"type:char(36);index:idx_user_badge,unique;not null" json:"badge_id"`
	EarnedAt time.Time `gorm:"autoCreateTime" json:"earned_at"`
}

func (u *UserBadge) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
