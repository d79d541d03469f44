package clock

import (
	"testing"
	"time"
)

func TestDayDifference(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{
			name:     "same day",
			a:        "2024-06-10",
			b:        "2024-06-10",
			expected: 0,
		},
		{
			name:     "consecutive days",
			a:        "2024-03-11",
			b:        "2024-03-10",
			expected: 1,
		},
		{
			name:     "across US DST spring forward",
			a:        "2024-03-11",
			b:        "2024-03-09",
			expected: 2,
		},
		{
			name:     "across year boundary",
			a:        "2025-01-01",
			b:        "2024-12-31",
			expected: 1,
		},
		{
			name:     "across leap day",
			a:        "2024-03-01",
			b:        "2024-02-28",
			expected: 2,
		},
		{
			name:     "negative when a is earlier",
			a:        "2024-06-08",
			b:        "2024-06-10",
			expected: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DayDifference(tt.a, tt.b)
			if err != nil {
				t.Fatalf("DayDifference() error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("DayDifference(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestDayDifferenceAntisymmetric(t *testing.T) {
	a, b := "2024-03-10", "2024-11-03"

	forward, err := DayDifference(a, b)
	if err != nil {
		t.Fatalf("DayDifference() error: %v", err)
	}
	backward, err := DayDifference(b, a)
	if err != nil {
		t.Fatalf("DayDifference() error: %v", err)
	}

	if forward != -backward {
		t.Errorf("expected antisymmetry, got %d and %d", forward, backward)
	}
}

func TestDayDifferenceRejectsMalformedDates(t *testing.T) {
	if _, err := DayDifference("2024-6-1", "2024-06-10"); err == nil {
		t.Error("expected error for non-padded date")
	}
	if _, err := DayDifference("2024-06-10", "not-a-date"); err == nil {
		t.Error("expected error for junk input")
	}
}

func TestTodayAndYesterdayInLocation(t *testing.T) {
	// 2024-06-10 01:30 UTC is still 2024-06-09 in New York.
	instant := time.Date(2024, 6, 10, 1, 30, 0, 0, time.UTC)
	c := Fixed(instant)

	if got := Today(c, time.UTC); got != "2024-06-10" {
		t.Errorf("Today(UTC) = %s, want 2024-06-10", got)
	}
	if got := Yesterday(c, time.UTC); got != "2024-06-09" {
		t.Errorf("Yesterday(UTC) = %s, want 2024-06-09", got)
	}

	ny := LoadLocation("America/New_York")
	if got := Today(c, ny); got != "2024-06-09" {
		t.Errorf("Today(New York) = %s, want 2024-06-09", got)
	}
	if got := Yesterday(c, ny); got != "2024-06-08" {
		t.Errorf("Yesterday(New York) = %s, want 2024-06-08", got)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-02-28", 1)
	if err != nil {
		t.Fatalf("AddDays() error: %v", err)
	}
	if got != "2024-02-29" {
		t.Errorf("AddDays(2024-02-28, 1) = %s, want 2024-02-29", got)
	}

	got, err = AddDays("2024-06-10", -2)
	if err != nil {
		t.Fatalf("AddDays() error: %v", err)
	}
	if got != "2024-06-08" {
		t.Errorf("AddDays(2024-06-10, -2) = %s, want 2024-06-08", got)
	}
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	if loc := LoadLocation(""); loc != time.UTC {
		t.Error("empty name should resolve to UTC")
	}
	if loc := LoadLocation("Mars/Olympus_Mons"); loc != time.UTC {
		t.Error("unknown name should resolve to UTC")
	}
}
