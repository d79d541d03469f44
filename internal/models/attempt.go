package models

import "time"

// Attempt represents one user's progress on a single puzzle. An attempt
// with Completed=false is an in-flight game the user can resume.
type Attempt struct {
	ID           int64
	UserID       string
	PuzzleID     string
	GameMode     string
	PuzzleDate   string // YYYY-MM-DD the puzzle was scheduled for
	Completed    bool
	Score        *int
	ScoreDisplay string
	StartedAt    time.Time
	CompletedAt  *time.Time
}
