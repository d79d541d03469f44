// Package events carries cross-cutting notifications between services
// through an explicit subscription interface rather than a global
// emitter. Delivery is synchronous and in subscription order.
package events

import "sync"

// StatsChanged fires when a game completion alters a user's stats.
type StatsChanged struct {
	UserID     string
	PuzzleID   string
	GameMode   string
	PuzzleDate string
}

// FreezeBridged fires when the bridging policy auto-consumes a freeze.
// PreBridgeStreak is the streak length before the bridge was applied.
type FreezeBridged struct {
	UserID          string
	Date            string
	Source          string
	PreBridgeStreak int
}

// Bus is a minimal in-process publish/subscribe hub. Safe for
// concurrent use.
type Bus struct {
	mu         sync.RWMutex
	statsSubs  []func(StatsChanged)
	freezeSubs []func(FreezeBridged)
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeStatsChanged registers a handler for stats-changed events
func (b *Bus) SubscribeStatsChanged(fn func(StatsChanged)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statsSubs = append(b.statsSubs, fn)
}

// PublishStatsChanged delivers the event to all subscribers
func (b *Bus) PublishStatsChanged(e StatsChanged) {
	b.mu.RLock()
	subs := b.statsSubs
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}

// SubscribeFreezeBridged registers a handler for freeze-bridge analytics
func (b *Bus) SubscribeFreezeBridged(fn func(FreezeBridged)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.freezeSubs = append(b.freezeSubs, fn)
}

// PublishFreezeBridged delivers the event to all subscribers
func (b *Bus) PublishFreezeBridged(e FreezeBridged) {
	b.mu.RLock()
	subs := b.freezeSubs
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(e)
	}
}
