package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/scheduler"
)

// Reconciler finds closed days whose payouts were never finalized, distributes the ones
// that missed their draw trigger and queues all of them for settlement.
type Reconciler struct {
	Clock     *gameday.Clock
	Pools     Distributor
	Scheduler scheduler.Scheduler
	Logger    zerolog.Logger
}

// Run sweeps every day before the one open at now. It returns how many days were queued.
// Failures on one day are logged and do not stop the sweep.
func (r *Reconciler) Run(ctx context.Context, now time.Time) (int, error) {
	open := r.Clock.CurrentGameDay(now)
	pools, err := r.Pools.ListUnsettledPools(ctx, open)
	if err != nil {
		r.Logger.Error().Err(err).Msg("failed to list unsettled pools")
		return 0, err
	}
	if len(pools) == 0 {
		r.Logger.Info().Msg("no unsettled pools found")
		return 0, nil
	}

	r.Logger.Info().Int("pools", len(pools)).Msg("reconciling unsettled pools")
	queued := 0
	for _, p := range pools {
		logger := r.Logger.With().Str("game_day", p.GameDay).Logger()
		if !p.PoolsDistributed {
			// Oldest first, so a stranded day is distributed before the days after it.
			if _, err := r.Pools.Distribute(ctx, p.GameDay); err != nil {
				logger.Error().Err(err).Msg("failed to distribute stranded pool")
				continue
			}
			logger.Warn().Msg("distributed stranded pool")
		}
		if err := r.Scheduler.ScheduleSettlement(ctx, models.SettlementJob{GameDay: p.GameDay, Attempt: 1}, 0); err != nil {
			logger.Error().Err(err).Msg("failed to re-enqueue settlement")
			continue
		}
		queued++
	}
	r.Logger.Info().Int("queued", queued).Msg("reconciliation finished")
	return queued, nil
}
