// Package streak computes login-streak lengths from the set of calendar
// dates a user completed at least one puzzle on, with freeze-day
// bridging for single missed days.
package streak

import (
	"sort"

	"footballiq/internal/clock"
)

// Result holds the computed streak lengths.
type Result struct {
	Current int
	Longest int
}

// Calculate derives the current and longest streaks.
//
// attemptDates may contain duplicates in any order; malformed entries
// are ignored. freezeDates are the gap days a freeze token covers. A
// streak is active only when the most recent attempt is today or
// yesterday — a lapsed streak never resumes retroactively. Two dates
// chain when they are one day apart, or two days apart with the single
// gap day between them freeze-covered. A two-day gap without a freeze,
// or any wider gap, always breaks the chain.
func Calculate(attemptDates, freezeDates []string, today string) Result {
	days := uniqueDaysDescending(attemptDates)
	if len(days) == 0 {
		return Result{}
	}

	todayDay, err := clock.EpochDay(today)
	if err != nil {
		return Result{}
	}

	frozen := make(map[int64]bool, len(freezeDates))
	for _, d := range freezeDates {
		if day, err := clock.EpochDay(d); err == nil {
			frozen[day] = true
		}
	}

	chains := func(newer, older int64) bool {
		diff := newer - older
		if diff == 1 {
			return true
		}
		// A freeze bridges exactly one missed day.
		return diff == 2 && frozen[newer-1]
	}

	longest := 1
	run := 1
	for i := 0; i < len(days)-1; i++ {
		if chains(days[i], days[i+1]) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	current := 0
	if days[0] == todayDay || days[0] == todayDay-1 {
		current = 1
		for i := 0; i < len(days)-1; i++ {
			if !chains(days[i], days[i+1]) {
				break
			}
			current++
		}
	}

	return Result{Current: current, Longest: longest}
}

// uniqueDaysDescending parses, deduplicates, and sorts attempt dates
// most recent first, dropping anything unparseable.
func uniqueDaysDescending(dates []string) []int64 {
	seen := make(map[int64]bool, len(dates))
	for _, d := range dates {
		day, err := clock.EpochDay(d)
		if err != nil {
			continue
		}
		seen[day] = true
	}

	days := make([]int64, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}
