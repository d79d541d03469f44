package models

import "time"

// Freeze token sources recorded when a freeze protects a streak.
const (
	FreezeSourceStandard = "standard"
	FreezeSourcePremium  = "premium"
)

// FreezeUsage records one calendar date on which a streak freeze
// covered a missed day. The date is the gap day, not the day played.
type FreezeUsage struct {
	ID        int64
	UserID    string
	Date      string // YYYY-MM-DD
	Source    string
	CreatedAt time.Time
}

// FreezeWallet tracks a user's consumable freeze tokens and the highest
// streak milestone that has already granted one.
type FreezeWallet struct {
	UserID        string
	Available     int
	LastMilestone int
	UpdatedAt     time.Time
}

// FreezeConsumption is the outcome of spending a freeze token.
type FreezeConsumption struct {
	Source    string
	Remaining int
}

// MilestoneAward is the outcome of a milestone freeze check.
type MilestoneAward struct {
	Awarded      bool
	Milestone    int
	TotalFreezes int
}
