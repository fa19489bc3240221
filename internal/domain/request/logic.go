package request

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

// CalculateDays returns the inclusive day count between start and end, so a
// single-day leave counts as 1. The difference is computed on date components
// to stay immune to DST offsets.
func CalculateDays(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(endDay.Sub(startDay).Hours()/24) + 1, nil
}

// DayCount is the lenient variant used when building placeholders: missing
// or inverted dates yield zero instead of an error.
func DayCount(start, end *time.Time) int {
	if start == nil || end == nil {
		return 0
	}
	days, err := CalculateDays(*start, *end)
	if err != nil {
		return 0
	}
	return days
}

// NormalizeReference strips everything but letters and digits and uppercases
// the rest. Legacy reference ids contained dashes; verification lookups must
// match them against the cleaned form.
func NormalizeReference(ref string) string {
	var b strings.Builder
	for _, r := range ref {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// CanTransition reports whether a status change is allowed. Requests only
// move pending→approved or pending→rejected; both outcomes are terminal.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusApproved || to == StatusRejected
}
