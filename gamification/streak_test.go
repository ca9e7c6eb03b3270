package gamification

import "testing"

func TestNextStreakFirstActiveDay(t *testing.T) {
	got := NextStreak(StreakState{}, "2024-01-01", true)
	want := StreakState{Current: 1, Best: 1, LastActive: "2024-01-01"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNextStreakConsecutiveDayExtends(t *testing.T) {
	prev := StreakState{Current: 3, Best: 5, LastActive: "2024-01-03"}
	got := NextStreak(prev, "2024-01-04", true)
	want := StreakState{Current: 4, Best: 5, LastActive: "2024-01-04"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNextStreakSameDayKeepsLength(t *testing.T) {
	prev := StreakState{Current: 4, Best: 5, LastActive: "2024-01-04"}
	got := NextStreak(prev, "2024-01-04", true)
	if got != prev {
		t.Fatalf("re-recompute of the active day changed state: got %+v, want %+v", got, prev)
	}
}

func TestNextStreakGapResets(t *testing.T) {
	prev := StreakState{Current: 6, Best: 6, LastActive: "2024-01-06"}
	got := NextStreak(prev, "2024-01-09", true)
	want := StreakState{Current: 1, Best: 6, LastActive: "2024-01-09"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNextStreakNoActivityLeavesStateUntouched(t *testing.T) {
	prev := StreakState{Current: 6, Best: 9, LastActive: "2024-01-06"}
	if got := NextStreak(prev, "2024-01-20", false); got != prev {
		t.Fatalf("empty day mutated streak: got %+v, want %+v", got, prev)
	}
	if got := NextStreak(StreakState{}, "2024-01-20", false); got != (StreakState{}) {
		t.Fatalf("empty day on fresh state: got %+v, want zero state", got)
	}
}

func TestNextStreakBestNeverDecreases(t *testing.T) {
	state := StreakState{}
	days := []struct {
		day    string
		active bool
	}{
		{"2024-01-01", true},
		{"2024-01-02", true},
		{"2024-01-03", true},
		{"2024-01-05", true}, // gap, current resets
		{"2024-01-06", false},
		{"2024-01-07", true},
	}
	best := 0
	for _, d := range days {
		state = NextStreak(state, d.day, d.active)
		if state.Best < best {
			t.Fatalf("best decreased to %d after %s", state.Best, d.day)
		}
		best = state.Best
		if state.Best < state.Current {
			t.Fatalf("best %d below current %d after %s", state.Best, state.Current, d.day)
		}
	}
	if state.Best != 3 || state.Current != 1 {
		t.Fatalf("final state %+v, want best 3 current 1", state)
	}
}

func TestNextStreakMalformedDayDoesNotExtend(t *testing.T) {
	got := NextStreak(StreakState{}, "garbage", true)
	if got.Current != 1 || got.Best != 1 {
		t.Fatalf("got %+v, want a fresh length-1 streak", got)
	}
}
