package service

import (
	"errors"
	"fmt"

	"footballiq/internal/events"
	"footballiq/internal/models"
)

// ErrPuzzleNotFound is returned when an attempt references an unknown puzzle
var ErrPuzzleNotFound = errors.New("puzzle not found")

// attemptWriter persists attempt records.
type attemptWriter interface {
	Upsert(a *models.Attempt) error
}

// puzzleLookup resolves catalog entries by ID.
type puzzleLookup interface {
	GetByID(id string) (*models.Puzzle, error)
}

// SubmitAttemptRequest is the payload from the game-completion flow.
type SubmitAttemptRequest struct {
	PuzzleID     string `json:"puzzleId"`
	Completed    bool   `json:"completed"`
	Score        *int   `json:"score,omitempty"`
	ScoreDisplay string `json:"scoreDisplay,omitempty"`
}

// AttemptService records puzzle attempts and announces completions.
type AttemptService struct {
	attempts attemptWriter
	puzzles  puzzleLookup
	bus      *events.Bus
}

// NewAttemptService creates a new attempt service
func NewAttemptService(attempts attemptWriter, puzzles puzzleLookup, bus *events.Bus) *AttemptService {
	return &AttemptService{attempts: attempts, puzzles: puzzles, bus: bus}
}

// Submit upserts the user's attempt on a puzzle. The game mode and
// scheduled date come from the catalog entry, never from the client.
// A completed attempt publishes a stats-changed event.
func (s *AttemptService) Submit(user *models.User, req SubmitAttemptRequest) (*models.Attempt, error) {
	puzzle, err := s.puzzles.GetByID(req.PuzzleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up puzzle: %w", err)
	}
	if puzzle == nil {
		return nil, ErrPuzzleNotFound
	}

	attempt := &models.Attempt{
		UserID:       user.ID,
		PuzzleID:     puzzle.ID,
		GameMode:     puzzle.GameMode,
		PuzzleDate:   puzzle.PuzzleDate,
		Completed:    req.Completed,
		Score:        req.Score,
		ScoreDisplay: req.ScoreDisplay,
	}

	if err := s.attempts.Upsert(attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	if attempt.Completed {
		s.bus.PublishStatsChanged(events.StatsChanged{
			UserID:     user.ID,
			PuzzleID:   puzzle.ID,
			GameMode:   puzzle.GameMode,
			PuzzleDate: puzzle.PuzzleDate,
		})
	}

	return attempt, nil
}
