// Package stores contains the GORM-backed implementations of the
// gamification store interfaces. Every write that participates in a
// recompute is expressed as an atomic conditional insert or upsert at the
// storage layer, never as application-level check-then-act, so concurrent
// recomputes for the same key stay correct without a lock manager.
package stores

import "gorm.io/gorm"

// Set bundles one instance of every store over a shared *gorm.DB.
type Set struct {
	Children *Children
	Meals    *Meals
	Scores   *DailyScores
	Ledger   *PointsLedger
	Streaks  *Streaks
	Badges   *Badges
}

// NewSet creates all stores over the given database handle.
func NewSet(db *gorm.DB) *Set {
	return &Set{
		Children: NewChildren(db),
		Meals:    NewMeals(db),
		Scores:   NewDailyScores(db),
		Ledger:   NewPointsLedger(db),
		Streaks:  NewStreaks(db),
		Badges:   NewBadges(db),
	}
}
