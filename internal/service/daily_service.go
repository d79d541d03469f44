package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"footballiq/internal/clock"
	"footballiq/internal/events"
	"footballiq/internal/models"
)

// puzzleCatalog supplies the day's catalog entries.
type puzzleCatalog interface {
	GetForDate(date string) ([]models.Puzzle, error)
}

// attemptLookup fetches one user's attempt on one puzzle.
type attemptLookup interface {
	GetByUserAndPuzzle(userID, puzzleID string) (*models.Attempt, error)
}

// unlockLookup supplies the set of currently valid rewarded-ad unlocks.
type unlockLookup interface {
	ValidPuzzleIDs(userID string, now time.Time) (map[string]bool, error)
}

// DailySnapshot is the aggregated home-feed state for one user and day.
type DailySnapshot struct {
	Date        string               `json:"date"`
	Cards       []models.DailyCard   `json:"cards"`
	Progress    models.DailyProgress `json:"progress"`
	EventBanner *models.EventBanner  `json:"eventBanner,omitempty"`
}

// DailyService joins today's puzzle catalog with per-puzzle attempt
// records into status-tagged cards, one per game mode, in the fixed
// priority order. Each user's last good snapshot is kept so a fetch
// failure degrades to stale data instead of an error surface.
type DailyService struct {
	catalog  puzzleCatalog
	attempts attemptLookup
	unlocks  unlockLookup
	clk      clock.Clock
	logger   zerolog.Logger

	mu        sync.RWMutex
	lastKnown map[string]*DailySnapshot
}

// NewDailyService creates a new daily card service and subscribes it to
// stats-changed events so completions invalidate the cached snapshot.
func NewDailyService(catalog puzzleCatalog, attempts attemptLookup, unlocks unlockLookup, bus *events.Bus, clk clock.Clock, logger zerolog.Logger) *DailyService {
	s := &DailyService{
		catalog:   catalog,
		attempts:  attempts,
		unlocks:   unlocks,
		clk:       clk,
		logger:    logger,
		lastKnown: make(map[string]*DailySnapshot),
	}

	bus.SubscribeStatsChanged(func(e events.StatsChanged) {
		s.Invalidate(e.UserID)
	})

	return s
}

// Invalidate drops the cached snapshot for a user
func (s *DailyService) Invalidate(userID string) {
	s.mu.Lock()
	delete(s.lastKnown, userID)
	s.mu.Unlock()
}

// LoadDaily builds the user's card list for today. Fetch failures are
// logged and answered with the last-known snapshot (or an empty one);
// they never propagate to the caller.
func (s *DailyService) LoadDaily(user *models.User) *DailySnapshot {
	loc := clock.LoadLocation(user.Timezone)
	today := clock.Today(s.clk, loc)

	entries, err := s.catalog.GetForDate(today)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("catalog fetch failed, serving last-known cards")
		return s.fallback(user.ID, today)
	}

	byMode := make(map[string]*models.Puzzle, len(entries))
	var banner *models.EventBanner
	for i := range entries {
		entry := &entries[i]
		if entry.IsSpecial {
			// Specials bypass the card list and surface as the event banner.
			if banner == nil {
				banner = &models.EventBanner{
					PuzzleID: entry.ID,
					GameMode: entry.GameMode,
					Title:    entry.EventTitle,
					Subtitle: entry.EventSubtitle,
				}
			}
			continue
		}
		byMode[entry.GameMode] = entry
	}

	unlocked, err := s.unlocks.ValidPuzzleIDs(user.ID, s.clk.Now())
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("ad unlock fetch failed, treating all as locked")
		unlocked = map[string]bool{}
	}

	cards := s.buildCards(user.ID, byMode, unlocked)

	snapshot := &DailySnapshot{
		Date:        today,
		Cards:       cards,
		Progress:    SummarizeProgress(cards),
		EventBanner: banner,
	}

	s.mu.Lock()
	s.lastKnown[user.ID] = snapshot
	s.mu.Unlock()

	return snapshot
}

// buildCards emits one card per game mode in the fixed priority order.
// Attempt lookups are independent reads and run concurrently; the join
// completes before the list is published, and slot indexing keeps the
// order independent of completion order.
func (s *DailyService) buildCards(userID string, byMode map[string]*models.Puzzle, unlocked map[string]bool) []models.DailyCard {
	slots := make([]*models.DailyCard, len(models.ModeOrder))

	var wg sync.WaitGroup
	for i, mode := range models.ModeOrder {
		entry, ok := byMode[mode]
		if !ok {
			if models.PlaceholderModes[mode] {
				slots[i] = &models.DailyCard{
					PuzzleID:      models.PlaceholderPuzzleID(mode),
					GameMode:      mode,
					Status:        models.StatusPlay,
					IsPremiumOnly: models.PremiumOnlyModes[mode],
				}
			}
			continue
		}

		wg.Add(1)
		go func(i int, entry *models.Puzzle) {
			defer wg.Done()
			slots[i] = s.buildCard(userID, entry, unlocked[entry.ID])
		}(i, entry)
	}
	wg.Wait()

	cards := make([]models.DailyCard, 0, len(slots))
	for _, card := range slots {
		if card != nil {
			cards = append(cards, *card)
		}
	}
	return cards
}

// buildCard derives one card's status from the attempt record:
// done iff a completed attempt exists, resume for an in-flight one,
// play otherwise. A failed lookup degrades to a fresh play card.
func (s *DailyService) buildCard(userID string, entry *models.Puzzle, adUnlocked bool) *models.DailyCard {
	card := &models.DailyCard{
		PuzzleID:      entry.ID,
		GameMode:      entry.GameMode,
		Status:        models.StatusPlay,
		IsPremiumOnly: models.PremiumOnlyModes[entry.GameMode],
		IsAdUnlocked:  adUnlocked,
	}

	attempt, err := s.attempts.GetByUserAndPuzzle(userID, entry.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("puzzle_id", entry.ID).Msg("attempt lookup failed, defaulting card to play")
		return card
	}

	switch {
	case attempt == nil:
		// fresh card
	case attempt.Completed:
		card.Status = models.StatusDone
		card.Score = attempt.Score
		card.ScoreDisplay = attempt.ScoreDisplay
	default:
		card.Status = models.StatusResume
	}

	return card
}

// fallback serves the cached snapshot, or an empty one when the user
// has never loaded successfully.
func (s *DailyService) fallback(userID, today string) *DailySnapshot {
	s.mu.RLock()
	cached := s.lastKnown[userID]
	s.mu.RUnlock()

	if cached != nil {
		return cached
	}
	return &DailySnapshot{Date: today, Cards: []models.DailyCard{}, Progress: SummarizeProgress(nil)}
}
