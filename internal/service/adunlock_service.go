package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"footballiq/internal/clock"
	"footballiq/internal/models"
)

// ErrNotPremiumContent is returned when a rewarded-ad unlock targets a
// puzzle that is not premium-gated
var ErrNotPremiumContent = errors.New("puzzle is not premium content")

// unlockWriter persists ad unlocks.
type unlockWriter interface {
	Create(unlock *models.AdUnlock) error
}

// AdUnlockService mints time-limited rewarded-ad unlocks for
// premium-gated puzzles.
type AdUnlockService struct {
	unlocks unlockWriter
	puzzles puzzleLookup
	clk     clock.Clock
	ttl     time.Duration
}

// NewAdUnlockService creates a new ad unlock service
func NewAdUnlockService(unlocks unlockWriter, puzzles puzzleLookup, clk clock.Clock, ttl time.Duration) *AdUnlockService {
	return &AdUnlockService{unlocks: unlocks, puzzles: puzzles, clk: clk, ttl: ttl}
}

// Unlock grants the user access to one premium puzzle until the TTL
// elapses
func (s *AdUnlockService) Unlock(user *models.User, puzzleID string) (*models.AdUnlock, error) {
	puzzle, err := s.puzzles.GetByID(puzzleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up puzzle: %w", err)
	}
	if puzzle == nil {
		return nil, ErrPuzzleNotFound
	}
	if !models.PremiumOnlyModes[puzzle.GameMode] {
		return nil, ErrNotPremiumContent
	}

	unlock := &models.AdUnlock{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		PuzzleID:  puzzle.ID,
		ExpiresAt: s.clk.Now().Add(s.ttl),
	}

	if err := s.unlocks.Create(unlock); err != nil {
		return nil, fmt.Errorf("failed to save ad unlock: %w", err)
	}

	return unlock, nil
}
