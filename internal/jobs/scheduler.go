package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const cleanupStream = "media:cleanup"

// Scheduler enqueues housekeeping tasks for the out-of-process worker:
// a nightly sweep of stored images no tip references anymore.
type Scheduler struct {
	cron  *cron.Cron
	queue *redis.Client
	log   zerolog.Logger
}

func NewScheduler(queue *redis.Client, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		queue: queue,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 0 4 * * *", s.enqueueOrphanSweep); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for running jobs to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	select {
	case <-s.cron.Stop().Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) enqueueOrphanSweep() {
	_, err := s.queue.XAdd(context.Background(), &redis.XAddArgs{
		Stream: cleanupStream,
		Values: map[string]any{
			"type": "orphan_sweep",
			"at":   time.Now().UTC().Format(time.RFC3339),
		},
	}).Result()
	if err != nil {
		s.log.Error().Err(err).Msg("enqueue orphan sweep failed")
	}
}
