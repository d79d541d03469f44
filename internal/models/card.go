package models

// Daily card statuses derived from the attempt record.
const (
	StatusPlay   = "play"
	StatusResume = "resume"
	StatusDone   = "done"
)

// DailyCard is the per-game-mode summary shown on the home dashboard
// for today. Derived on every load, never persisted.
type DailyCard struct {
	PuzzleID      string `json:"puzzleId"`
	GameMode      string `json:"gameMode"`
	Status        string `json:"status"`
	Score         *int   `json:"score,omitempty"`
	ScoreDisplay  string `json:"scoreDisplay,omitempty"`
	IsPremiumOnly bool   `json:"isPremiumOnly"`
	IsAdUnlocked  bool   `json:"isAdUnlocked"`
}

// DailyProgress reduces a day's cards to a completion summary.
type DailyProgress struct {
	CompletedCount int    `json:"completedCount"`
	TotalCount     int    `json:"totalCount"`
	Percent        int    `json:"percent"`
	CountString    string `json:"countString"`
	IsComplete     bool   `json:"isComplete"`
}
