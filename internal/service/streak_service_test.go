package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"footballiq/internal/clock"
	"footballiq/internal/events"
	"footballiq/internal/models"
)

// Fixed "now" used across streak tests: 2025-06-10 in UTC.
var streakTestNow = time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

type fakeAttemptStats struct {
	dates []string
	err   error
}

func (f *fakeAttemptStats) CompletedDates(userID string) ([]string, error) {
	return f.dates, f.err
}

func (f *fakeAttemptStats) CountCompleted(userID string) (int, error) {
	return len(f.dates), nil
}

func (f *fakeAttemptStats) CountCompletedOnDate(userID, date string) (int, error) {
	n := 0
	for _, d := range f.dates {
		if d == date {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttemptStats) LastCompletedDate(userID string) (string, error) {
	last := ""
	for _, d := range f.dates {
		if d > last {
			last = d
		}
	}
	return last, nil
}

type fakeFreezeStore struct {
	used          []string
	available     int
	lastMilestone int
	consumeErr    error
	consumed      []string
	awards        []int
}

func (f *fakeFreezeStore) UsedDates(userID string) ([]string, error) {
	return f.used, nil
}

func (f *fakeFreezeStore) Available(userID string) (int, error) {
	return f.available, nil
}

func (f *fakeFreezeStore) Consume(userID, date string, premium bool) (*models.FreezeConsumption, error) {
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}
	source := models.FreezeSourceStandard
	if premium {
		source = models.FreezeSourcePremium
	} else {
		f.available--
	}
	f.consumed = append(f.consumed, date)
	return &models.FreezeConsumption{Source: source, Remaining: f.available}, nil
}

func (f *fakeFreezeStore) AwardMilestone(userID string, milestone, maxStack int) (*models.MilestoneAward, error) {
	if milestone <= f.lastMilestone {
		return &models.MilestoneAward{Awarded: false, Milestone: f.lastMilestone, TotalFreezes: f.available}, nil
	}
	f.lastMilestone = milestone
	if f.available < maxStack {
		f.available++
	}
	f.awards = append(f.awards, milestone)
	return &models.MilestoneAward{Awarded: true, Milestone: milestone, TotalFreezes: f.available}, nil
}

type fakeCatalogCounter struct {
	total int
}

func (f *fakeCatalogCounter) CountAll() (int, error) {
	return f.total, nil
}

func newStreakService(attempts *fakeAttemptStats, freezes *fakeFreezeStore, bus *events.Bus) *StreakService {
	return NewStreakService(
		attempts, freezes, &fakeCatalogCounter{total: 42}, bus,
		clock.Fixed(streakTestNow), []int{7, 30, 100}, 5, zerolog.Nop(),
	)
}

func utcUser() *models.User {
	return &models.User{ID: "user-1", Timezone: "UTC"}
}

func TestLoadStats(t *testing.T) {
	attempts := &fakeAttemptStats{dates: []string{"2025-06-08", "2025-06-09", "2025-06-10"}}
	freezes := &fakeFreezeStore{available: 2}
	svc := newStreakService(attempts, freezes, events.NewBus())

	state, err := svc.LoadStats(utcUser())
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}

	if state.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", state.CurrentStreak)
	}
	if state.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", state.LongestStreak)
	}
	if state.GamesPlayedToday != 1 {
		t.Errorf("GamesPlayedToday = %d, want 1", state.GamesPlayedToday)
	}
	if state.TotalGamesPlayed != 3 {
		t.Errorf("TotalGamesPlayed = %d, want 3", state.TotalGamesPlayed)
	}
	if state.TotalPuzzlesAvailable != 42 {
		t.Errorf("TotalPuzzlesAvailable = %d, want 42", state.TotalPuzzlesAvailable)
	}
	if state.LastPlayedDate != "2025-06-10" {
		t.Errorf("LastPlayedDate = %q, want 2025-06-10", state.LastPlayedDate)
	}
	if state.AvailableFreezes != 2 {
		t.Errorf("AvailableFreezes = %d, want 2", state.AvailableFreezes)
	}
	if len(freezes.consumed) != 0 {
		t.Errorf("freeze consumed on an active streak: %v", freezes.consumed)
	}
}

func TestBridgeConsumesFreezeForYesterday(t *testing.T) {
	attempts := &fakeAttemptStats{dates: []string{"2025-06-06", "2025-06-07", "2025-06-08"}}
	freezes := &fakeFreezeStore{available: 2}
	bus := events.NewBus()

	var bridged []events.FreezeBridged
	bus.SubscribeFreezeBridged(func(e events.FreezeBridged) {
		bridged = append(bridged, e)
	})

	svc := newStreakService(attempts, freezes, bus)

	state, err := svc.LoadStats(utcUser())
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}

	if len(freezes.consumed) != 1 || freezes.consumed[0] != "2025-06-09" {
		t.Fatalf("consumed = %v, want [2025-06-09]", freezes.consumed)
	}
	if state.AvailableFreezes != 1 {
		t.Errorf("AvailableFreezes = %d, want 1", state.AvailableFreezes)
	}

	if len(bridged) != 1 {
		t.Fatalf("got %d bridge events, want 1", len(bridged))
	}
	e := bridged[0]
	if e.UserID != "user-1" || e.Date != "2025-06-09" {
		t.Errorf("event = %+v", e)
	}
	if e.Source != models.FreezeSourceStandard {
		t.Errorf("Source = %q, want standard", e.Source)
	}
	if e.PreBridgeStreak != 0 {
		t.Errorf("PreBridgeStreak = %d, want 0", e.PreBridgeStreak)
	}

	// The bridge protects the chain for tomorrow; today is still unplayed
	// so the current streak remains lapsed.
	if state.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", state.CurrentStreak)
	}
}

func TestBridgeConditions(t *testing.T) {
	tests := []struct {
		name        string
		dates       []string
		used        []string
		available   int
		premium     bool
		wantConsume bool
	}{
		{
			name:        "played today",
			dates:       []string{"2025-06-08", "2025-06-10"},
			available:   3,
			wantConsume: false,
		},
		{
			name:        "played yesterday",
			dates:       []string{"2025-06-08", "2025-06-09"},
			available:   3,
			wantConsume: false,
		},
		{
			name:        "never played",
			dates:       nil,
			available:   3,
			wantConsume: false,
		},
		{
			name:        "yesterday already frozen",
			dates:       []string{"2025-06-08"},
			used:        []string{"2025-06-09"},
			available:   3,
			wantConsume: false,
		},
		{
			name:        "no tokens",
			dates:       []string{"2025-06-08"},
			available:   0,
			wantConsume: false,
		},
		{
			name:        "premium ignores token balance",
			dates:       []string{"2025-06-08"},
			available:   0,
			premium:     true,
			wantConsume: true,
		},
		{
			name:        "one day gap",
			dates:       []string{"2025-06-08"},
			available:   1,
			wantConsume: true,
		},
		{
			name:        "incomplete chain refused",
			dates:       []string{"2025-06-06"},
			used:        []string{"2025-06-07"},
			available:   3,
			wantConsume: false,
		},
		{
			name:        "complete chain bridged",
			dates:       []string{"2025-06-06"},
			used:        []string{"2025-06-07", "2025-06-08"},
			available:   3,
			wantConsume: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := &fakeAttemptStats{dates: tt.dates}
			freezes := &fakeFreezeStore{used: tt.used, available: tt.available}
			svc := newStreakService(attempts, freezes, events.NewBus())

			user := utcUser()
			user.IsPremium = tt.premium

			if _, err := svc.LoadStats(user); err != nil {
				t.Fatalf("LoadStats failed: %v", err)
			}

			consumed := len(freezes.consumed) > 0
			if consumed != tt.wantConsume {
				t.Errorf("consumed = %v, want %v (dates %v)", consumed, tt.wantConsume, freezes.consumed)
			}
			if consumed && freezes.consumed[0] != "2025-06-09" {
				t.Errorf("consumed %v, want yesterday only", freezes.consumed)
			}
		})
	}
}

func TestBridgeConsumeFailureFallsBack(t *testing.T) {
	attempts := &fakeAttemptStats{dates: []string{"2025-06-08"}}
	freezes := &fakeFreezeStore{available: 2, consumeErr: errors.New("token spent concurrently")}
	bus := events.NewBus()

	published := 0
	bus.SubscribeFreezeBridged(func(events.FreezeBridged) { published++ })

	svc := newStreakService(attempts, freezes, bus)

	state, err := svc.LoadStats(utcUser())
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}

	if state.AvailableFreezes != 2 {
		t.Errorf("AvailableFreezes = %d, want 2 (unchanged)", state.AvailableFreezes)
	}
	if published != 0 {
		t.Errorf("bridge event published despite consume failure")
	}
}

func TestMilestoneAwardedOncePerThreshold(t *testing.T) {
	dates := make([]string, 0, 7)
	for d := 4; d <= 10; d++ {
		dates = append(dates, time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC).Format(clock.DateLayout))
	}

	attempts := &fakeAttemptStats{dates: dates}
	freezes := &fakeFreezeStore{available: 1}
	svc := newStreakService(attempts, freezes, events.NewBus())

	state, err := svc.LoadStats(utcUser())
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}

	if state.CurrentStreak != 7 {
		t.Fatalf("CurrentStreak = %d, want 7", state.CurrentStreak)
	}
	if len(freezes.awards) != 1 || freezes.awards[0] != 7 {
		t.Fatalf("awards = %v, want [7]", freezes.awards)
	}
	if state.AvailableFreezes != 2 {
		t.Errorf("AvailableFreezes = %d, want 2 after award", state.AvailableFreezes)
	}

	// A second load at the same milestone does not award again.
	state, err = svc.LoadStats(utcUser())
	if err != nil {
		t.Fatalf("second LoadStats failed: %v", err)
	}
	if len(freezes.awards) != 1 {
		t.Errorf("awards = %v, want no repeat award", freezes.awards)
	}
	if state.AvailableFreezes != 2 {
		t.Errorf("AvailableFreezes = %d, want 2", state.AvailableFreezes)
	}
}

func TestMilestoneCappedAtMaxStack(t *testing.T) {
	dates := make([]string, 0, 7)
	for d := 4; d <= 10; d++ {
		dates = append(dates, time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC).Format(clock.DateLayout))
	}

	attempts := &fakeAttemptStats{dates: dates}
	freezes := &fakeFreezeStore{available: 5}
	svc := newStreakService(attempts, freezes, events.NewBus())

	state, err := svc.LoadStats(utcUser())
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}

	// The milestone is recorded so it cannot pay out later, but the
	// balance never exceeds the stack cap.
	if len(freezes.awards) != 1 {
		t.Fatalf("awards = %v, want the milestone recorded", freezes.awards)
	}
	if state.AvailableFreezes != 5 {
		t.Errorf("AvailableFreezes = %d, want capped at 5", state.AvailableFreezes)
	}
}
