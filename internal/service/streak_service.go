package service

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"footballiq/internal/clock"
	"footballiq/internal/events"
	"footballiq/internal/models"
	"footballiq/internal/streak"
)

// attemptStats is the slice of the attempt repository the streak
// service reads from.
type attemptStats interface {
	CompletedDates(userID string) ([]string, error)
	CountCompleted(userID string) (int, error)
	CountCompletedOnDate(userID, date string) (int, error)
	LastCompletedDate(userID string) (string, error)
}

// freezeStore covers freeze wallet and usage operations.
type freezeStore interface {
	UsedDates(userID string) ([]string, error)
	Available(userID string) (int, error)
	Consume(userID, date string, premium bool) (*models.FreezeConsumption, error)
	AwardMilestone(userID string, milestone, maxStack int) (*models.MilestoneAward, error)
}

// catalogCounter reports the size of the puzzle catalog.
type catalogCounter interface {
	CountAll() (int, error)
}

// StreakService computes streak state and runs the freeze bridging and
// milestone policies on every load.
type StreakService struct {
	attempts   attemptStats
	freezes    freezeStore
	catalog    catalogCounter
	bus        *events.Bus
	clk        clock.Clock
	milestones []int // ascending
	maxStack   int
	logger     zerolog.Logger
}

// NewStreakService creates a new streak service. Milestone thresholds
// and the freeze stack cap come from configuration.
func NewStreakService(attempts attemptStats, freezes freezeStore, catalog catalogCounter, bus *events.Bus, clk clock.Clock, milestones []int, maxStack int, logger zerolog.Logger) *StreakService {
	sorted := append([]int(nil), milestones...)
	sort.Ints(sorted)

	return &StreakService{
		attempts:   attempts,
		freezes:    freezes,
		catalog:    catalog,
		bus:        bus,
		clk:        clk,
		milestones: sorted,
		maxStack:   maxStack,
		logger:     logger,
	}
}

// LoadStats recomputes the full streak state for a user. The freeze
// bridging policy runs once per load; a failed freeze consumption
// falls back to the unbridged values rather than failing the load.
func (s *StreakService) LoadStats(user *models.User) (*models.StreakState, error) {
	loc := clock.LoadLocation(user.Timezone)
	today := clock.Today(s.clk, loc)
	yesterday := clock.Yesterday(s.clk, loc)

	attemptDates, err := s.attempts.CompletedDates(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt dates: %w", err)
	}
	freezeDates, err := s.freezes.UsedDates(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load freeze dates: %w", err)
	}

	result := streak.Calculate(attemptDates, freezeDates, today)

	state := &models.StreakState{
		CurrentStreak: result.Current,
		LongestStreak: result.Longest,
	}

	if state.GamesPlayedToday, err = s.attempts.CountCompletedOnDate(user.ID, today); err != nil {
		return nil, fmt.Errorf("failed to count games today: %w", err)
	}
	if state.TotalGamesPlayed, err = s.attempts.CountCompleted(user.ID); err != nil {
		return nil, fmt.Errorf("failed to count games: %w", err)
	}
	if state.TotalPuzzlesAvailable, err = s.catalog.CountAll(); err != nil {
		return nil, fmt.Errorf("failed to count catalog: %w", err)
	}
	if state.LastPlayedDate, err = s.attempts.LastCompletedDate(user.ID); err != nil {
		return nil, fmt.Errorf("failed to load last played date: %w", err)
	}
	if state.AvailableFreezes, err = s.freezes.Available(user.ID); err != nil {
		return nil, fmt.Errorf("failed to load freeze balance: %w", err)
	}

	s.maybeBridgeYesterday(user, state, attemptDates, freezeDates, today, yesterday)
	s.checkMilestone(user, state)

	return state, nil
}

// maybeBridgeYesterday auto-consumes one freeze to cover yesterday when
// a gap would otherwise break the streak. All conditions must hold:
// nothing completed today, the last play is older than yesterday,
// yesterday is not already covered, a token is available (premium users
// have unlimited), and every day between the last play and yesterday is
// already covered so the bridge closes a complete chain. Partial
// bridging is refused.
func (s *StreakService) maybeBridgeYesterday(user *models.User, state *models.StreakState, attemptDates, freezeDates []string, today, yesterday string) {
	if state.GamesPlayedToday > 0 {
		return
	}

	last := state.LastPlayedDate
	if last == "" || last == today || last == yesterday {
		return
	}

	frozen := make(map[string]bool, len(freezeDates))
	for _, d := range freezeDates {
		frozen[d] = true
	}
	if frozen[yesterday] {
		return
	}

	if !user.IsPremium && state.AvailableFreezes < 1 {
		return
	}

	gap, err := clock.DayDifference(yesterday, last)
	if err != nil || gap < 1 {
		return
	}
	for i := 1; i < gap; i++ {
		day, err := clock.AddDays(last, i)
		if err != nil || !frozen[day] {
			return
		}
	}

	consumption, err := s.freezes.Consume(user.ID, yesterday, user.IsPremium)
	if err != nil {
		// Fail soft: the unbridged streak stands.
		s.logger.Warn().Err(err).Str("user_id", user.ID).Str("date", yesterday).
			Msg("freeze consumption failed, keeping unbridged streak")
		return
	}

	s.bus.PublishFreezeBridged(events.FreezeBridged{
		UserID:          user.ID,
		Date:            yesterday,
		Source:          consumption.Source,
		PreBridgeStreak: state.CurrentStreak,
	})

	bridged := streak.Calculate(attemptDates, append(freezeDates, yesterday), today)
	state.CurrentStreak = bridged.Current
	state.LongestStreak = bridged.Longest
	state.AvailableFreezes = consumption.Remaining

	s.logger.Info().Str("user_id", user.ID).Str("date", yesterday).
		Str("source", consumption.Source).Int("streak", bridged.Current).
		Msg("streak gap bridged with freeze")
}

// checkMilestone awards a freeze token when the current streak has
// reached a configured milestone that has not paid out yet.
func (s *StreakService) checkMilestone(user *models.User, state *models.StreakState) {
	milestone := 0
	for _, m := range s.milestones {
		if state.CurrentStreak >= m {
			milestone = m
		}
	}
	if milestone == 0 {
		return
	}

	award, err := s.freezes.AwardMilestone(user.ID, milestone, s.maxStack)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Int("milestone", milestone).
			Msg("milestone freeze award failed")
		return
	}

	state.AvailableFreezes = award.TotalFreezes
	if award.Awarded {
		s.logger.Info().Str("user_id", user.ID).Int("milestone", milestone).
			Int("freezes", award.TotalFreezes).Msg("milestone freeze awarded")
	}
}
