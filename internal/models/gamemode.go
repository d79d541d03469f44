package models

import "strings"

// Game mode identifiers as stored in the puzzle catalog
const (
	ModeCareerPath       = "career_path"
	ModeTransferGuess    = "transfer_guess"
	ModeGoalscorerRecall = "goalscorer_recall"
	ModeTheGrid          = "the_grid"
	ModeTheChain         = "the_chain"
	ModeTheThread        = "the_thread"
	ModeTopicalQuiz      = "topical_quiz"
	ModeTopTens          = "top_tens"
	ModeStartingXI       = "starting_xi"
)

// ModeOrder is the fixed priority ordering for the home feed.
// Card lists are always emitted in this order, never insertion order.
var ModeOrder = []string{
	ModeCareerPath,
	ModeTransferGuess,
	ModeGoalscorerRecall,
	ModeTheGrid,
	ModeTheChain,
	ModeTheThread,
	ModeTopicalQuiz,
	ModeTopTens,
	ModeStartingXI,
}

// PremiumOnlyModes are the game modes gated behind a premium
// subscription or a rewarded-ad unlock.
var PremiumOnlyModes = map[string]bool{
	ModeTopTens:    true,
	ModeStartingXI: true,
}

// PlaceholderModes are the modes that still get a "coming soon" card
// when no catalog entry exists for today, rather than being omitted.
var PlaceholderModes = map[string]bool{
	ModeTopTens:    true,
	ModeStartingXI: true,
}

// IsValidMode reports whether mode is a known game mode.
func IsValidMode(mode string) bool {
	for _, m := range ModeOrder {
		if m == mode {
			return true
		}
	}
	return false
}

// PlaceholderPuzzleID returns the synthetic puzzle ID used for a
// "coming soon" card, e.g. "coming-soon-top-tens".
func PlaceholderPuzzleID(mode string) string {
	return "coming-soon-" + strings.ReplaceAll(mode, "_", "-")
}
