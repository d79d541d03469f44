package service

import (
	"testing"

	"footballiq/internal/models"
)

func cardsWithStatuses(statuses ...string) []models.DailyCard {
	cards := make([]models.DailyCard, len(statuses))
	for i, status := range statuses {
		cards[i] = models.DailyCard{Status: status}
	}
	return cards
}

func TestSummarizeProgress(t *testing.T) {
	tests := []struct {
		name  string
		cards []models.DailyCard
		want  models.DailyProgress
	}{
		{
			name:  "no cards",
			cards: nil,
			want:  models.DailyProgress{CountString: "0 / 0"},
		},
		{
			name:  "half done",
			cards: cardsWithStatuses("done", "done", "done", "play", "resume", "play"),
			want: models.DailyProgress{
				CompletedCount: 3, TotalCount: 6, Percent: 50, CountString: "3 / 6",
			},
		},
		{
			name:  "rounds to nearest percent",
			cards: cardsWithStatuses("done", "play", "play"),
			want: models.DailyProgress{
				CompletedCount: 1, TotalCount: 3, Percent: 33, CountString: "1 / 3",
			},
		},
		{
			name:  "two thirds rounds up",
			cards: cardsWithStatuses("done", "done", "play"),
			want: models.DailyProgress{
				CompletedCount: 2, TotalCount: 3, Percent: 67, CountString: "2 / 3",
			},
		},
		{
			name:  "all complete",
			cards: cardsWithStatuses("done", "done"),
			want: models.DailyProgress{
				CompletedCount: 2, TotalCount: 2, Percent: 100, CountString: "2 / 2", IsComplete: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeProgress(tt.cards)
			if got != tt.want {
				t.Errorf("SummarizeProgress() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummarizeProgressResumeDoesNotCount(t *testing.T) {
	got := SummarizeProgress(cardsWithStatuses("resume", "resume"))
	if got.CompletedCount != 0 || got.IsComplete {
		t.Errorf("in-flight attempts counted as complete: %+v", got)
	}
}
