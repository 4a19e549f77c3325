package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/scheduler"
	"github.com/chris/daily-prize-pools/pkg/settlement"
)

// ErrAttemptsExhausted is returned when a day still cannot be settled after the last
// allowed attempt.
var ErrAttemptsExhausted = errors.New("settlement attempts exhausted")

// SettlementWorker consumes settlement jobs. Days whose draw has not been executed yet,
// and scans cut short by a deadline, are re-queued with a delay.
type SettlementWorker struct {
	Settler     DaySettler
	Scheduler   scheduler.Scheduler
	RetryDelay  time.Duration
	MaxAttempts int
	Logger      zerolog.Logger
}

// Handle settles the job's day.
func (w *SettlementWorker) Handle(ctx context.Context, job models.SettlementJob) error {
	logger := w.Logger.With().Str("game_day", job.GameDay).Int("attempt", job.Attempt).Logger()

	summary, err := w.Settler.Settle(ctx, job.GameDay)
	switch {
	case err == nil:
		logger.Info().
			Int("tiers_paid", len(summary.Records)).
			Int("free_tickets", summary.FreeTickets).
			Msg("game day settled")
		return nil
	case errors.Is(err, settlement.ErrDrawNotExecuted), errors.Is(err, context.DeadlineExceeded):
		return w.retry(ctx, logger, job, err)
	default:
		logger.Error().Err(err).Msg("settlement failed")
		return err
	}
}

func (w *SettlementWorker) retry(ctx context.Context, logger zerolog.Logger, job models.SettlementJob, cause error) error {
	if w.MaxAttempts > 0 && job.Attempt >= w.MaxAttempts {
		logger.Error().Err(cause).Msg("giving up on settlement")
		return fmt.Errorf("%w: %s after %d attempts: %w", ErrAttemptsExhausted, job.GameDay, job.Attempt, cause)
	}

	next := models.SettlementJob{GameDay: job.GameDay, Attempt: job.Attempt + 1}
	// The scan cursor keeps the progress; the job only has to come back.
	if err := w.Scheduler.ScheduleSettlement(context.WithoutCancel(ctx), next, w.RetryDelay); err != nil {
		logger.Error().Err(err).Msg("failed to re-enqueue settlement")
		return fmt.Errorf("failed to re-enqueue settlement of %s: %w", job.GameDay, err)
	}
	logger.Warn().Err(cause).Dur("delay", w.RetryDelay).Msg("settlement deferred")
	return nil
}
