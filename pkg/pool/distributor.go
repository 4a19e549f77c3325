package pool

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// Distribute splits a day's pool into tier pools, folds in the carry-forward and closes
// the pool to contributions. Calling it again returns the stored pool unchanged.
func (e *Engine) Distribute(ctx context.Context, gameDay string) (*models.DailyPrizePool, error) {
	if _, err := gameday.Parse(gameDay); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var (
		result  *models.DailyPrizePool
		already bool
	)
	err := e.withRetry(ctx, "distribute", func(ctx context.Context) error {
		current, err := e.store.GetPool(ctx, gameDay)
		if err != nil {
			return fmt.Errorf("failed to read pool %s: %w", gameDay, err)
		}
		if current.PoolsDistributed {
			result, already = current, true
			return nil
		}
		if current.TotalCollected < 0 {
			e.metrics.InvariantViolation("distribute")
			e.logger.Error().Str("game_day", gameDay).Int64("total_collected", current.TotalCollected).Msg("pool total is negative")
			return fmt.Errorf("%w: pool %s has negative total %d", ErrInvariantViolation, gameDay, current.TotalCollected)
		}

		if err := e.checkNoLaterDistribution(ctx, gameDay); err != nil {
			return err
		}
		carry, err := e.ComputeCarryForward(ctx, gameDay)
		if err != nil {
			return err
		}

		next := e.distributed(current, carry)
		if err := e.store.CommitDistribution(ctx, next, current.Version, distributionAudit(next)); err != nil {
			return err
		}
		result, already = next, false
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrConcurrencyConflict):
		e.metrics.Distribution("failed")
		return nil, fmt.Errorf("%w: %s: %w", ErrDistributionFailed, gameDay, err)
	default:
		e.metrics.Distribution("failed")
		return nil, err
	}

	if already {
		e.metrics.Distribution("already_distributed")
		return result, nil
	}
	e.metrics.Distribution("distributed")
	e.logger.Info().
		Str("game_day", gameDay).
		Int64("total_collected", result.TotalCollected).
		Int64("rounding_dust", result.RoundingDust).
		Interface("final_tier_pools", result.FinalTierPools).
		Msg("pool distributed")
	return result, nil
}

// checkNoLaterDistribution fails when a day inside the carry window after gameDay has
// already been distributed. That day's carry scan did not see gameDay, so distributing it
// now would hand out the same carried money twice.
func (e *Engine) checkNoLaterDistribution(ctx context.Context, gameDay string) error {
	start, err := gameday.Parse(gameDay)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	for ahead := 1; ahead <= e.cfg.CarryWindowDays; ahead++ {
		day := gameday.Key(start.AddDate(0, 0, ahead))
		later, err := e.store.GetPool(ctx, day)
		if errors.Is(err, storage.ErrPoolNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read pool %s: %w", day, err)
		}
		if later.PoolsDistributed {
			e.metrics.InvariantViolation("distribute")
			e.logger.Error().Str("game_day", gameDay).Str("distributed_day", day).Msg("later pool already distributed")
			return fmt.Errorf("%w: %s was distributed before %s", ErrInvariantViolation, day, gameDay)
		}
	}
	return nil
}

// distributed builds the post-distribution state of a pool. It leaves current untouched.
func (e *Engine) distributed(current *models.DailyPrizePool, carry CarryForward) *models.DailyPrizePool {
	now := e.now()
	next := current.Clone()

	tierPools, dust := e.cfg.Split.Apply(current.TotalCollected)
	next.TierPools = tierPools
	next.RoundingDust = dust
	next.CarriedForward = make(map[models.Tier]int64, len(models.PoolTiers))
	next.FinalTierPools = make(map[models.Tier]int64, len(models.PoolTiers))
	next.ReserveReleased = make(map[models.Tier]bool, len(models.PrizeTiers))
	next.CarryDepth = make(map[models.Tier]int, len(models.PrizeTiers))
	next.CarrySourceDay = make(map[models.Tier]string, len(models.PrizeTiers))

	for _, tier := range models.PoolTiers {
		carried := carry.Amounts[tier]
		next.CarriedForward[tier] = carried
		next.FinalTierPools[tier] = tierPools[tier] + carried
	}
	for _, tier := range models.PrizeTiers {
		next.ReserveReleased[tier] = false
		next.CarryDepth[tier] = carry.Depth[tier]
		if day := carry.SourceDay[tier]; day != "" {
			next.CarrySourceDay[tier] = day
		}
	}

	next.PoolsDistributed = true
	next.DistributedAt = &now
	next.UpdatedAt = now
	next.Version = current.Version + 1
	return next
}

func distributionAudit(pool *models.DailyPrizePool) []models.PoolTransaction {
	audit := make([]models.PoolTransaction, 0, len(models.PoolTiers))
	for _, tier := range models.PoolTiers {
		audit = append(audit, models.PoolTransaction{
			ID:        "distribution#" + string(tier),
			GameDay:   pool.GameDay,
			Type:      models.PoolTxDistribution,
			Tier:      tier,
			Amount:    pool.FinalTierPools[tier],
			CreatedAt: *pool.DistributedAt,
		})
	}
	return audit
}
