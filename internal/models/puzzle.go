package models

import "time"

// Puzzle represents one daily puzzle catalog entry, synced from the
// editorial backend. At most one live entry exists per (game mode, date);
// special entries are excluded from the standard card list and surfaced
// through the event banner instead.
type Puzzle struct {
	ID            string
	GameMode      string
	PuzzleDate    string // YYYY-MM-DD
	Difficulty    int
	IsSpecial     bool
	EventTitle    string
	EventSubtitle string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EventBanner is the promotional banner derived from a special puzzle.
type EventBanner struct {
	PuzzleID string `json:"puzzleId"`
	GameMode string `json:"gameMode"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}
