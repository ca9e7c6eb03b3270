// Package gamification implements the nutrition gamification recompute
// engine: daily scores, the idempotent points ledger, activity streaks, and
// milestone badges. The engine is invoked synchronously after every meal
// mutation and from the summary read path; all of its writes go through
// conflict-safe store operations so concurrent recomputes for the same
// (user, child, date) cannot double-grant or lose updates.
package gamification

import (
	"time"

	"github.com/ai-native-85/tinytummy/models"
)

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(models.DateLayout, s)
}

// PrevDay returns the calendar day before the given YYYY-MM-DD day.
// Malformed input yields an empty string, which never matches a stored date.
func PrevDay(day string) string {
	t, err := ParseDate(day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(models.DateLayout)
}

// AgeInMonths returns the whole months elapsed from dob to the given day.
func AgeInMonths(dob, on time.Time) int {
	months := (on.Year()-dob.Year())*12 + int(on.Month()) - int(dob.Month())
	if on.Day() < dob.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
