package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/rs/zerolog"
)

// HandlerFunc processes one settlement job.
type HandlerFunc func(ctx context.Context, job models.SettlementJob) error

// LocalScheduler runs jobs in-process after their delay. It is meant for the local
// server where no queue exists. Failed jobs are logged and dropped; the reconciler
// picks their days up again.
type LocalScheduler struct {
	handler HandlerFunc
	logger  zerolog.Logger

	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
	timers map[*time.Timer]struct{}
}

// NewLocalScheduler creates a LocalScheduler that hands jobs to handler.
func NewLocalScheduler(handler HandlerFunc, logger zerolog.Logger) *LocalScheduler {
	return &LocalScheduler{
		handler: handler,
		logger:  logger,
		timers:  make(map[*time.Timer]struct{}),
	}
}

var _ Scheduler = (*LocalScheduler)(nil)

func (s *LocalScheduler) ScheduleSettlement(ctx context.Context, job models.SettlementJob, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return context.Canceled
	}

	s.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		defer s.wg.Done()
		s.mu.Lock()
		delete(s.timers, timer)
		s.mu.Unlock()

		if err := s.handler(context.Background(), job); err != nil {
			s.logger.Error().Err(err).Str("game_day", job.GameDay).Int("attempt", job.Attempt).Msg("settlement job failed")
		}
	})
	s.timers[timer] = struct{}{}
	return nil
}

// Close cancels pending jobs and waits for running ones.
func (s *LocalScheduler) Close() {
	s.mu.Lock()
	s.closed = true
	for timer := range s.timers {
		if timer.Stop() {
			s.wg.Done()
		}
		delete(s.timers, timer)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
