package gamification

import (
	"context"

	"go.uber.org/zap"

	"github.com/ai-native-85/tinytummy/models"
)

// Point values per grant reason.
const (
	basePoints    = 10
	score70Points = 10
	score90Points = 20

	score70Threshold = 70
	score90Threshold = 90
	streakBadgeDays  = 7
)

// StreakSnapshot is the streak part of a recompute result.
type StreakSnapshot struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// Snapshot is the best-effort result of a single recompute call.
// PointsAwardedToday counts only grants that landed in this call, not the
// day's running total.
type Snapshot struct {
	Score              int            `json:"score"`
	Components         map[string]int `json:"components"`
	Streak             StreakSnapshot `json:"streak"`
	PointsAwardedToday int            `json:"points_awarded_today"`
}

// Summary is the read-path view for the gamification summary surface.
type Summary struct {
	Date        string         `json:"date"`
	DailyScore  int            `json:"daily_score"`
	Components  map[string]int `json:"components"`
	Streak      StreakSnapshot `json:"streak"`
	PointsToday int            `json:"points_today"`
	PointsTotal int            `json:"points_total"`
	Badges      []GrantedBadge `json:"badges"`
}

// Engine orchestrates a recompute over the typed stores. Each step is
// isolated: a storage failure in one step is logged and degrades the
// snapshot without preventing the remaining steps from attempting.
type Engine struct {
	children ChildReader
	meals    MealReader
	scores   DailyScoreStore
	ledger   PointsLedgerStore
	streaks  StreakStore
	badges   BadgeStore
	log      *zap.SugaredLogger
}

// NewEngine wires an engine over its stores. A nil logger disables logging.
func NewEngine(children ChildReader, meals MealReader, scores DailyScoreStore, ledger PointsLedgerStore, streaks StreakStore, badges BadgeStore, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		children: children,
		meals:    meals,
		scores:   scores,
		ledger:   ledger,
		streaks:  streaks,
		badges:   badges,
		log:      log,
	}
}

// RecomputeForDay recomputes a child's gamification state for one calendar
// day (YYYY-MM-DD). It is safely re-entrant: with unchanged meals, a second
// call produces identical score and streak state and awards zero additional
// points. The only fatal error is ErrChildNotFound; every other failure is
// logged and surfaced as a degraded snapshot.
func (e *Engine) RecomputeForDay(ctx context.Context, userID, childID, day string) (Snapshot, error) {
	child, err := e.children.Get(ctx, userID, childID)
	if err != nil {
		return Snapshot{}, err
	}

	dayT, err := ParseDate(day)
	if err != nil {
		return Snapshot{}, err
	}
	targets := TargetsFor(AgeInMonths(child.DateOfBirth, dayT), child.Region)

	totals, err := e.meals.TotalsForDay(ctx, userID, childID, day)
	if err != nil {
		e.log.Errorw("recompute: totals query failed", "child", childID, "day", day, "err", err)
		totals = nil
	}
	active, err := e.meals.HasMealOn(ctx, userID, childID, day)
	if err != nil {
		e.log.Errorw("recompute: activity check failed", "child", childID, "day", day, "err", err)
		active = len(totals) > 0
	}

	score, components := ScoreDay(totals, targets)

	// Persist the score first; points thresholds below are evaluated against
	// what actually landed, so a failed write degrades to score 0.
	persisted := score
	if err := e.scores.Upsert(ctx, userID, childID, day, score, components); err != nil {
		e.log.Errorw("recompute: daily score upsert failed", "child", childID, "day", day, "err", err)
		persisted = 0
		components = map[string]int{}
	}

	// The base grant rewards logging itself, so a day without meals earns
	// nothing; the threshold grants are judged against the persisted score.
	awarded := 0
	grants := []struct {
		reason string
		points int
		due    bool
	}{
		{models.PointsReasonBase, basePoints, active},
		{models.PointsReasonScore70, score70Points, persisted >= score70Threshold},
		{models.PointsReasonScore90, score90Points, persisted >= score90Threshold},
	}
	for _, g := range grants {
		if !g.due {
			continue
		}
		granted, err := e.ledger.GrantOnce(ctx, userID, childID, day, g.reason, g.points)
		if err != nil {
			e.log.Errorw("recompute: point grant failed", "child", childID, "day", day, "reason", g.reason, "err", err)
			continue
		}
		if granted {
			awarded += g.points
		}
	}

	streak, err := e.streaks.Apply(ctx, userID, childID, day, active)
	if err != nil {
		e.log.Errorw("recompute: streak update failed", "child", childID, "day", day, "err", err)
		// Ephemeral fallback so the snapshot still reflects today's activity.
		streak = StreakState{}
		if active {
			streak = StreakState{Current: 1, Best: 1, LastActive: day}
		}
	}

	e.maybeAwardBadges(ctx, userID, childID, persisted, streak)

	e.log.Infow("recompute done",
		"child", childID, "day", day,
		"score", persisted, "active", active,
		"streak_current", streak.Current, "streak_best", streak.Best,
		"points_awarded", awarded)

	return Snapshot{
		Score:              persisted,
		Components:         components,
		Streak:             StreakSnapshot{Current: streak.Current, Best: streak.Best},
		PointsAwardedToday: awarded,
	}, nil
}

// maybeAwardBadges evaluates milestone predicates against the finalized
// score/streak state. Badge failures are isolated and logged, never
// propagated: a missing catalog must not abort the recompute.
func (e *Engine) maybeAwardBadges(ctx context.Context, userID, childID string, score int, streak StreakState) {
	first, err := e.meals.FirstMealAt(ctx, userID, childID)
	if err != nil {
		e.log.Warnw("badges: first meal lookup failed", "child", childID, "err", err)
		first = nil
	}
	if first != nil && streak.Current == 1 {
		e.grantBadge(ctx, userID, "starter_chef", "Starter Chef", models.BadgeTypeMilestone)
	}
	if streak.Best >= streakBadgeDays {
		e.grantBadge(ctx, userID, "seven_day_strong", "Seven Day Strong", models.BadgeTypeStreak)
	}
	if score >= score90Threshold {
		e.grantBadge(ctx, userID, "perfect_day", "Perfect Day", models.BadgeTypeAchievement)
	}
}

func (e *Engine) grantBadge(ctx context.Context, userID, name, description, badgeType string) {
	badgeID, err := e.badges.EnsureBadge(ctx, name, badgeType, description)
	if err != nil {
		e.log.Warnw("badges: catalog unavailable", "badge", name, "err", err)
		return
	}
	granted, err := e.badges.GrantOnce(ctx, userID, badgeID)
	if err != nil {
		e.log.Warnw("badges: grant failed", "badge", name, "user", userID, "err", err)
		return
	}
	if granted {
		e.log.Infow("badge granted", "badge", name, "user", userID)
	}
}

// SummaryForDay is the read path: it serves the persisted daily score when
// present and only falls back to a full recompute when absent. The fallback
// follows the identical idempotent path as a meal-triggered recompute.
func (e *Engine) SummaryForDay(ctx context.Context, userID, childID, day string) (Summary, error) {
	score, components, found, err := e.scores.Get(ctx, userID, childID, day)
	if err != nil {
		e.log.Errorw("summary: score read failed", "child", childID, "day", day, "err", err)
		found = false
	}
	if !found {
		// Validate ownership before computing; a recompute also re-checks.
		snap, err := e.RecomputeForDay(ctx, userID, childID, day)
		if err != nil {
			return Summary{}, err
		}
		score, components = snap.Score, snap.Components
	} else if _, err := e.children.Get(ctx, userID, childID); err != nil {
		return Summary{}, err
	}

	streak, err := e.streaks.Get(ctx, userID, childID)
	if err != nil {
		e.log.Errorw("summary: streak read failed", "child", childID, "err", err)
		streak = StreakState{}
	}
	today, err := e.ledger.SumForDay(ctx, userID, childID, day)
	if err != nil {
		e.log.Errorw("summary: points readback failed", "child", childID, "day", day, "err", err)
		today = 0
	}
	total, err := e.ledger.SumTotal(ctx, userID, childID)
	if err != nil {
		e.log.Errorw("summary: points total failed", "child", childID, "err", err)
		total = 0
	}
	badges, err := e.badges.ListGranted(ctx, userID)
	if err != nil {
		e.log.Warnw("summary: badge list failed", "user", userID, "err", err)
		badges = nil
	}

	if components == nil {
		components = map[string]int{}
	}
	return Summary{
		Date:        day,
		DailyScore:  score,
		Components:  components,
		Streak:      StreakSnapshot{Current: streak.Current, Best: streak.Best},
		PointsToday: today,
		PointsTotal: total,
		Badges:      badges,
	}, nil
}

// Badges lists the caller's earned badges.
func (e *Engine) Badges(ctx context.Context, userID string) ([]GrantedBadge, error) {
	return e.badges.ListGranted(ctx, userID)
}
