package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"footballiq/internal/clock"
	"footballiq/internal/repository"
)

// Scheduler runs background maintenance jobs on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	adUnlocks *repository.AdUnlockRepository
	clk       clock.Clock
	loc       *time.Location
	logger    zerolog.Logger
}

// NewScheduler creates the job scheduler. Jobs fire in the rollover
// timezone so nightly maintenance lines up with the puzzle day change.
func NewScheduler(adUnlocks *repository.AdUnlockRepository, clk clock.Clock, rolloverTZ string, logger zerolog.Logger) *Scheduler {
	loc := clock.LoadLocation(rolloverTZ)
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:      c,
		adUnlocks: adUnlocks,
		clk:       clk,
		loc:       loc,
		logger:    logger,
	}
}

// Start registers and launches the background jobs.
func (s *Scheduler) Start() {
	// Nightly at rollover: drop expired ad unlocks.
	s.cron.AddFunc("0 0 * * *", func() {
		purged, err := s.adUnlocks.PurgeExpired(s.clk.Now())
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to purge expired ad unlocks")
			return
		}
		s.logger.Info().Int64("purged", purged).
			Str("date", s.clk.Now().In(s.loc).Format(clock.DateLayout)).
			Msg("Daily rollover, purged expired ad unlocks")
	})

	s.cron.Start()
	s.logger.Info().Msg("Job scheduler started")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Job scheduler stopped")
}
