package gamification

// StreakState is the persisted streak for one (user, child).
// LastActive is a YYYY-MM-DD day, or empty when no active day exists yet.
type StreakState struct {
	Current    int
	Best       int
	LastActive string
}

// NextStreak applies one day's activity observation to a streak.
//
// A day with no activity leaves the state untouched: a streak only breaks
// when a later active day arrives after a gap, never retroactively from
// recomputing an empty day. (Product decision adopted deliberately; the
// alternative of resetting on an empty-day recompute was rejected.)
//
// On an active day:
//   - previous active day was yesterday: the streak extends;
//   - previous active day is the same day (re-recompute after another meal
//     edit): the length is kept, bumped to 1 if it was never initialized;
//   - anything else (gap or no prior record): the streak restarts at 1.
//
// Best is kept as the running maximum, so it never decreases.
func NextStreak(prev StreakState, day string, active bool) StreakState {
	if !active {
		return prev
	}
	next := prev
	switch {
	case prev.LastActive != "" && prev.LastActive == PrevDay(day):
		next.Current = prev.Current + 1
	case prev.LastActive == day:
		if next.Current == 0 {
			next.Current = 1
		}
	default:
		next.Current = 1
	}
	next.LastActive = day
	if next.Current > next.Best {
		next.Best = next.Current
	}
	return next
}
