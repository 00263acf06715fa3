// Package jobs runs the background sweep that clears expired session rows.
// Liveness checks compare expiry lazily on read, so the sweep is purely
// housekeeping; the store stays correct even if it never runs.
package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const sweepLockKey = "identity:session-sweep:lock"

// SessionSweeper deletes session rows whose expiry has passed.
type SessionSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron     *cron.Cron
	sessions SessionSweeper
	locker   *redis.Client
	schedule string
	lockTTL  time.Duration
	log      zerolog.Logger
}

func NewScheduler(sessions SessionSweeper, locker *redis.Client, schedule string, lockTTL time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		sessions: sessions,
		locker:   locker,
		schedule: schedule,
		lockTTL:  lockTTL,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits briefly for a running sweep to finish.
func (s *Scheduler) Stop() {
	select {
	case <-s.cron.Stop().Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("sweep scheduler stop timed out")
	}
}

// sweep removes expired sessions behind a redis lock so that only one
// instance does the work per tick.
func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTTL)
	defer cancel()

	// Without redis the sweep runs unlocked; safe for single instances.
	if s.locker != nil {
		owner := uuid.NewString()
		acquired, err := s.locker.SetNX(ctx, sweepLockKey, owner, s.lockTTL).Result()
		if err != nil {
			s.log.Error().Err(err).Msg("sweep lock acquisition failed")
			return
		}
		if !acquired {
			s.log.Debug().Msg("sweep lock held elsewhere, skipping")
			return
		}
		defer s.releaseLock(ctx, owner)
	}

	deleted, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("expired session sweep failed")
		return
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Msg("expired sessions swept")
	}
}

// releaseLock deletes the lock only if this instance still owns it.
func (s *Scheduler) releaseLock(ctx context.Context, owner string) {
	val, err := s.locker.Get(ctx, sweepLockKey).Result()
	if err != nil || val != owner {
		return
	}
	if err := s.locker.Del(ctx, sweepLockKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("sweep lock release failed")
	}
}
