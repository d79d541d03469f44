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

type fakeDayCatalog struct {
	entries []models.Puzzle
	err     error
}

func (f *fakeDayCatalog) GetForDate(date string) ([]models.Puzzle, error) {
	return f.entries, f.err
}

type fakeAttemptLookup struct {
	byPuzzle map[string]*models.Attempt
	err      error
}

func (f *fakeAttemptLookup) GetByUserAndPuzzle(userID, puzzleID string) (*models.Attempt, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byPuzzle[puzzleID], nil
}

type fakeUnlockLookup struct {
	ids map[string]bool
	err error
}

func (f *fakeUnlockLookup) ValidPuzzleIDs(userID string, now time.Time) (map[string]bool, error) {
	return f.ids, f.err
}

func newDailyService(catalog *fakeDayCatalog, attempts *fakeAttemptLookup, unlocks *fakeUnlockLookup, bus *events.Bus) *DailyService {
	return NewDailyService(catalog, attempts, unlocks, bus, clock.Fixed(streakTestNow), zerolog.Nop())
}

func intPtr(n int) *int { return &n }

func TestLoadDailyCardOrderAndStatuses(t *testing.T) {
	catalog := &fakeDayCatalog{entries: []models.Puzzle{
		{ID: "grid-1", GameMode: models.ModeTheGrid, PuzzleDate: "2025-06-10"},
		{ID: "career-1", GameMode: models.ModeCareerPath, PuzzleDate: "2025-06-10"},
		{ID: "transfer-1", GameMode: models.ModeTransferGuess, PuzzleDate: "2025-06-10"},
		{ID: "toptens-1", GameMode: models.ModeTopTens, PuzzleDate: "2025-06-10"},
	}}
	attempts := &fakeAttemptLookup{byPuzzle: map[string]*models.Attempt{
		"career-1": {PuzzleID: "career-1", Completed: true, Score: intPtr(8), ScoreDisplay: "8/10"},
		"grid-1":   {PuzzleID: "grid-1", Completed: false},
	}}
	unlocks := &fakeUnlockLookup{ids: map[string]bool{"toptens-1": true}}

	svc := newDailyService(catalog, attempts, unlocks, events.NewBus())
	snapshot := svc.LoadDaily(utcUser())

	if snapshot.Date != "2025-06-10" {
		t.Errorf("Date = %q, want 2025-06-10", snapshot.Date)
	}

	// Catalog entries in priority order, plus the starting_xi
	// placeholder. Modes with no entry and no placeholder are omitted.
	wantModes := []string{
		models.ModeCareerPath,
		models.ModeTransferGuess,
		models.ModeTheGrid,
		models.ModeTopTens,
		models.ModeStartingXI,
	}
	if len(snapshot.Cards) != len(wantModes) {
		t.Fatalf("got %d cards, want %d: %+v", len(snapshot.Cards), len(wantModes), snapshot.Cards)
	}
	for i, mode := range wantModes {
		if snapshot.Cards[i].GameMode != mode {
			t.Errorf("card %d mode = %q, want %q", i, snapshot.Cards[i].GameMode, mode)
		}
	}

	career := snapshot.Cards[0]
	if career.Status != models.StatusDone || career.Score == nil || *career.Score != 8 || career.ScoreDisplay != "8/10" {
		t.Errorf("career card = %+v, want done with score 8", career)
	}
	if snapshot.Cards[1].Status != models.StatusPlay {
		t.Errorf("transfer card status = %q, want play", snapshot.Cards[1].Status)
	}
	if snapshot.Cards[2].Status != models.StatusResume {
		t.Errorf("grid card status = %q, want resume", snapshot.Cards[2].Status)
	}

	topTens := snapshot.Cards[3]
	if !topTens.IsPremiumOnly || !topTens.IsAdUnlocked {
		t.Errorf("top tens card = %+v, want premium only and ad unlocked", topTens)
	}

	placeholder := snapshot.Cards[4]
	if placeholder.PuzzleID != "coming-soon-starting-xi" {
		t.Errorf("placeholder PuzzleID = %q", placeholder.PuzzleID)
	}
	if placeholder.Status != models.StatusPlay || !placeholder.IsPremiumOnly {
		t.Errorf("placeholder card = %+v", placeholder)
	}

	if snapshot.Progress.CompletedCount != 1 || snapshot.Progress.TotalCount != 5 {
		t.Errorf("progress = %+v, want 1 of 5", snapshot.Progress)
	}
	if snapshot.EventBanner != nil {
		t.Errorf("unexpected event banner: %+v", snapshot.EventBanner)
	}
}

func TestLoadDailySpecialBecomesBanner(t *testing.T) {
	catalog := &fakeDayCatalog{entries: []models.Puzzle{
		{ID: "career-1", GameMode: models.ModeCareerPath, PuzzleDate: "2025-06-10"},
		{
			ID: "cl-final", GameMode: models.ModeTopicalQuiz, PuzzleDate: "2025-06-10",
			IsSpecial: true, EventTitle: "Champions League Final", EventSubtitle: "Test your final knowledge",
		},
	}}

	svc := newDailyService(catalog, &fakeAttemptLookup{}, &fakeUnlockLookup{}, events.NewBus())
	snapshot := svc.LoadDaily(utcUser())

	for _, card := range snapshot.Cards {
		if card.PuzzleID == "cl-final" {
			t.Errorf("special puzzle appeared in the card list")
		}
	}

	banner := snapshot.EventBanner
	if banner == nil {
		t.Fatal("expected an event banner")
	}
	if banner.PuzzleID != "cl-final" || banner.Title != "Champions League Final" {
		t.Errorf("banner = %+v", banner)
	}
}

func TestLoadDailyFallsBackToLastKnown(t *testing.T) {
	catalog := &fakeDayCatalog{entries: []models.Puzzle{
		{ID: "career-1", GameMode: models.ModeCareerPath, PuzzleDate: "2025-06-10"},
	}}

	svc := newDailyService(catalog, &fakeAttemptLookup{}, &fakeUnlockLookup{}, events.NewBus())

	first := svc.LoadDaily(utcUser())
	if len(first.Cards) == 0 {
		t.Fatal("expected cards on the first load")
	}

	catalog.err = errors.New("catalog unavailable")
	second := svc.LoadDaily(utcUser())
	if second != first {
		t.Errorf("expected the cached snapshot on catalog failure")
	}
}

func TestLoadDailyEmptyFallbackForNewUser(t *testing.T) {
	catalog := &fakeDayCatalog{err: errors.New("catalog unavailable")}

	svc := newDailyService(catalog, &fakeAttemptLookup{}, &fakeUnlockLookup{}, events.NewBus())
	snapshot := svc.LoadDaily(utcUser())

	if snapshot.Date != "2025-06-10" {
		t.Errorf("Date = %q, want today", snapshot.Date)
	}
	if len(snapshot.Cards) != 0 {
		t.Errorf("cards = %+v, want none", snapshot.Cards)
	}
	if snapshot.Progress.Percent != 0 || snapshot.Progress.CountString != "0 / 0" {
		t.Errorf("progress = %+v", snapshot.Progress)
	}
}

func TestLoadDailyAttemptErrorDefaultsToPlay(t *testing.T) {
	catalog := &fakeDayCatalog{entries: []models.Puzzle{
		{ID: "career-1", GameMode: models.ModeCareerPath, PuzzleDate: "2025-06-10"},
	}}
	attempts := &fakeAttemptLookup{err: errors.New("attempt store down")}

	svc := newDailyService(catalog, attempts, &fakeUnlockLookup{}, events.NewBus())
	snapshot := svc.LoadDaily(utcUser())

	// One catalog card plus the two placeholder cards.
	if len(snapshot.Cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(snapshot.Cards))
	}
	if snapshot.Cards[0].Status != models.StatusPlay {
		t.Errorf("status = %q, want play on lookup failure", snapshot.Cards[0].Status)
	}
}

func TestStatsChangedInvalidatesSnapshot(t *testing.T) {
	catalog := &fakeDayCatalog{entries: []models.Puzzle{
		{ID: "career-1", GameMode: models.ModeCareerPath, PuzzleDate: "2025-06-10"},
	}}
	bus := events.NewBus()

	svc := newDailyService(catalog, &fakeAttemptLookup{}, &fakeUnlockLookup{}, bus)

	svc.LoadDaily(utcUser())

	bus.PublishStatsChanged(events.StatsChanged{UserID: "user-1", PuzzleID: "career-1"})
	catalog.err = errors.New("catalog unavailable")

	snapshot := svc.LoadDaily(utcUser())
	if len(snapshot.Cards) != 0 {
		t.Errorf("expected the cached snapshot to be invalidated, got %+v", snapshot.Cards)
	}
}
