package models

// StreakState is the derived streak summary for one user. Recomputed on
// every load from the full attempt and freeze-usage sets; the underlying
// records are the durable state, never this struct.
type StreakState struct {
	CurrentStreak         int    `json:"currentStreak"`
	LongestStreak         int    `json:"longestStreak"`
	GamesPlayedToday      int    `json:"gamesPlayedToday"`
	TotalGamesPlayed      int    `json:"totalGamesPlayed"`
	TotalPuzzlesAvailable int    `json:"totalPuzzlesAvailable"`
	LastPlayedDate        string `json:"lastPlayedDate,omitempty"`
	AvailableFreezes      int    `json:"availableFreezes"`
}
