package service

import (
	"fmt"
	"math"

	"footballiq/internal/models"
)

// SummarizeProgress reduces a day's cards to a completion summary.
// An empty card list yields zero percent, not NaN, and is never
// reported complete.
func SummarizeProgress(cards []models.DailyCard) models.DailyProgress {
	total := len(cards)
	completed := 0
	for _, card := range cards {
		if card.Status == models.StatusDone {
			completed++
		}
	}

	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return models.DailyProgress{
		CompletedCount: completed,
		TotalCount:     total,
		Percent:        percent,
		CountString:    fmt.Sprintf("%d / %d", completed, total),
		IsComplete:     total > 0 && completed == total,
	}
}
