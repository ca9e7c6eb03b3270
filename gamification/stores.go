package gamification

import (
	"context"
	"errors"
	"time"
)

// ErrChildNotFound is returned when a child does not exist or is not owned by
// the calling user. It aborts a recompute before any write happens.
var ErrChildNotFound = errors.New("child not found or unauthorized")

// ChildInfo is the profile slice the engine needs from the child collaborator.
type ChildInfo struct {
	DateOfBirth time.Time
	Region      string
}

// ChildReader resolves child profiles scoped to their owning user.
type ChildReader interface {
	Get(ctx context.Context, userID, childID string) (ChildInfo, error)
}

// MealReader is the read-only query surface over logged meals.
type MealReader interface {
	// TotalsForDay sums each tracked nutrient over the day's meals. A key is
	// present only when at least one meal contributed a non-null value; an
	// empty map means no nutrient data, which is not an error.
	TotalsForDay(ctx context.Context, userID, childID, day string) (map[string]float64, error)
	// HasMealOn reports whether at least one meal exists for the day.
	HasMealOn(ctx context.Context, userID, childID, day string) (bool, error)
	// FirstMealAt returns the earliest created_at over all of the child's
	// meals, or nil when the child has never logged a meal.
	FirstMealAt(ctx context.Context, userID, childID string) (*time.Time, error)
}

// DailyScoreStore persists one score row per (user, child, date).
type DailyScoreStore interface {
	// Upsert atomically inserts or overwrites the day's score.
	Upsert(ctx context.Context, userID, childID, day string, score int, components map[string]int) error
	// Get returns the persisted score for the day, if any.
	Get(ctx context.Context, userID, childID, day string) (score int, components map[string]int, found bool, err error)
}

// PointsLedgerStore is the append-only point grant ledger.
type PointsLedgerStore interface {
	// GrantOnce inserts a grant if absent, using a unique-constraint-protected
	// insert. It reports whether this call created the row.
	GrantOnce(ctx context.Context, userID, childID, day, reason string, points int) (bool, error)
	SumForDay(ctx context.Context, userID, childID, day string) (int, error)
	SumTotal(ctx context.Context, userID, childID string) (int, error)
}

// StreakStore persists one streak row per (user, child).
type StreakStore interface {
	Get(ctx context.Context, userID, childID string) (StreakState, error)
	// Apply runs the NextStreak transition as a single atomic
	// read-modify-write and returns the resulting state.
	Apply(ctx context.Context, userID, childID, day string, active bool) (StreakState, error)
}

// GrantedBadge is an earned badge joined with its catalog entry.
type GrantedBadge struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	EarnedAt time.Time `json:"earned_at"`
}

// BadgeStore manages the lazily-created badge catalog and per-user grants.
type BadgeStore interface {
	// EnsureBadge returns the catalog ID for a badge name, creating the row
	// if it does not exist yet.
	EnsureBadge(ctx context.Context, name, badgeType, description string) (string, error)
	// GrantOnce awards a badge to a user if absent and reports whether this
	// call created the grant.
	GrantOnce(ctx context.Context, userID, badgeID string) (bool, error)
	ListGranted(ctx context.Context, userID string) ([]GrantedBadge, error)
}
