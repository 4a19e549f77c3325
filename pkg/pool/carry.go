package pool

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// CarryForward is the unpaid prize money that rolls into a day's distribution.
type CarryForward struct {
	Amounts map[models.Tier]int64
	// Depth is how many consecutive distributed days a tier has gone without winners.
	Depth map[models.Tier]int
	// SourceDay is the oldest day whose money is part of the tier's carry.
	SourceDay map[models.Tier]string
}

func newCarryForward() CarryForward {
	c := CarryForward{
		Amounts:   make(map[models.Tier]int64, len(models.PrizeTiers)),
		Depth:     make(map[models.Tier]int, len(models.PrizeTiers)),
		SourceDay: make(map[models.Tier]string, len(models.PrizeTiers)),
	}
	for _, tier := range models.PrizeTiers {
		c.Amounts[tier] = 0
	}
	return c
}

// ComputeCarryForward returns the prize money each tier inherits from the days before
// beforeDay. Days without a pool are skipped. The scan stops at the first pool found:
// its final tier pools already hold everything carried into it, so a tier nobody won
// passes on its whole final pool and a tier that paid passes on its rounding remainder.
// It fails with ErrPriorDayUnsettled if that pool was never distributed or is still
// paying out.
func (e *Engine) ComputeCarryForward(ctx context.Context, beforeDay string) (CarryForward, error) {
	start, err := gameday.Parse(beforeDay)
	if err != nil {
		return CarryForward{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	carry := newCarryForward()
	for back := 1; back <= e.cfg.CarryWindowDays; back++ {
		day := gameday.Key(start.AddDate(0, 0, -back))
		prior, err := e.store.GetPool(ctx, day)
		if errors.Is(err, storage.ErrPoolNotFound) {
			continue
		}
		if err != nil {
			return CarryForward{}, fmt.Errorf("failed to read pool %s: %w", day, err)
		}
		if !prior.PoolsDistributed {
			e.logger.Warn().Str("game_day", beforeDay).Str("stranded_day", day).Msg("prior pool was never distributed")
			return CarryForward{}, fmt.Errorf("%w: pool %s was never distributed", ErrPriorDayUnsettled, day)
		}
		if !prior.PayoutsFinalized {
			return CarryForward{}, fmt.Errorf("%w: payouts of %s are not finalized", ErrPriorDayUnsettled, day)
		}

		records, err := e.store.ListDistributions(ctx, day)
		if err != nil {
			return CarryForward{}, fmt.Errorf("failed to list distributions of %s: %w", day, err)
		}
		paid := make(map[models.Tier]*models.PrizeDistributionRecord, len(records))
		for i := range records {
			paid[records[i].Tier] = &records[i]
		}

		for _, tier := range models.PrizeTiers {
			if record, ok := paid[tier]; ok {
				carry.Amounts[tier] = record.Remainder
				if record.Remainder > 0 {
					carry.SourceDay[tier] = day
				}
				continue
			}
			carry.Amounts[tier] = prior.FinalTierPools[tier]
			carry.Depth[tier] = prior.CarryDepth[tier] + 1
			carry.SourceDay[tier] = day
			if src := prior.CarrySourceDay[tier]; src != "" && prior.CarriedForward[tier] > 0 {
				carry.SourceDay[tier] = src
			}
		}
		return carry, nil
	}
	return carry, nil
}
