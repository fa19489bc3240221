package request

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateDaysSingleDay(t *testing.T) {
	days, err := CalculateDays(date(2025, 3, 10), date(2025, 3, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %d", days)
	}
}

func TestCalculateDaysInclusive(t *testing.T) {
	days, err := CalculateDays(date(2025, 3, 10), date(2025, 3, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %d", days)
	}
}

func TestCalculateDaysAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// DST starts 2025-03-30 in Berlin; the local day is only 23 hours long.
	start := time.Date(2025, 3, 29, 12, 0, 0, 0, loc)
	end := time.Date(2025, 3, 31, 12, 0, 0, 0, loc)
	days, err := CalculateDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days across DST change, got %d", days)
	}
}

func TestCalculateDaysInvertedRange(t *testing.T) {
	if _, err := CalculateDays(date(2025, 3, 12), date(2025, 3, 10)); err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestDayCountLenient(t *testing.T) {
	start := date(2025, 3, 12)
	end := date(2025, 3, 10)
	if got := DayCount(nil, &end); got != 0 {
		t.Fatalf("expected 0 for nil start, got %d", got)
	}
	if got := DayCount(&start, nil); got != 0 {
		t.Fatalf("expected 0 for nil end, got %d", got)
	}
	if got := DayCount(&start, &end); got != 0 {
		t.Fatalf("expected 0 for inverted range, got %d", got)
	}
	if got := DayCount(&end, &start); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestNormalizeReference(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"NOC2025AB12CD34", "NOC2025AB12CD34"},
		{"NOC2025-AB12CD34", "NOC2025AB12CD34"},
		{"noc2025 ab12cd34", "NOC2025AB12CD34"},
		{"NOC.2025_AB12/CD34", "NOC2025AB12CD34"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeReference(tc.in); got != tc.want {
			t.Fatalf("NormalizeReference(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, StatusApproved) {
		t.Fatal("pending should transition to approved")
	}
	if !CanTransition(StatusPending, StatusRejected) {
		t.Fatal("pending should transition to rejected")
	}
	if CanTransition(StatusApproved, StatusRejected) {
		t.Fatal("approved is terminal")
	}
	if CanTransition(StatusRejected, StatusApproved) {
		t.Fatal("rejected is terminal")
	}
	if CanTransition(StatusPending, StatusPending) {
		t.Fatal("pending to pending is not a transition")
	}
	if CanTransition(StatusPending, "cancelled") {
		t.Fatal("unknown target status should be refused")
	}
}
