package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/scheduler"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// DrawJob closes the day concluded by a draw: it distributes the pool and queues the
// day for settlement.
type DrawJob struct {
	Clock     *gameday.Clock
	Pools     Distributor
	Scheduler scheduler.Scheduler
	Logger    zerolog.Logger
}

// Run handles a draw trigger that fired at firedAt. A day without ticket sales has no
// pool and nothing to settle.
func (j *DrawJob) Run(ctx context.Context, firedAt time.Time) error {
	day := j.Clock.ClosedGameDay(firedAt)
	logger := j.Logger.With().Str("game_day", day).Logger()

	p, err := j.Pools.Distribute(ctx, day)
	if errors.Is(err, storage.ErrPoolNotFound) {
		logger.Info().Msg("no ticket sales, nothing to distribute")
		return nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to distribute pool")
		return fmt.Errorf("failed to distribute %s: %w", day, err)
	}
	logger.Info().Int64("total_collected", p.TotalCollected).Int64("version", p.Version).Msg("pool distributed")

	if err := j.Scheduler.ScheduleSettlement(ctx, models.SettlementJob{GameDay: day, Attempt: 1}, 0); err != nil {
		// The reconciler finds distributed days that were never finalized.
		logger.Error().Err(err).Msg("failed to enqueue settlement")
		return fmt.Errorf("failed to enqueue settlement of %s: %w", day, err)
	}
	return nil
}
