package shared

import "time"

const dayLayout = "2006-01-02"

// ParseDate parses the wire form of leave and joining dates. Submission
// forms send bare days, API clients may send full RFC3339 timestamps.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse(dayLayout, value)
}
