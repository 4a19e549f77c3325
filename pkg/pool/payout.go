package pool

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// Payout splits a tier's final pool equally between its winners and records the result.
// A tier is paid at most once per day: later calls return the stored record. With no
// winners nothing is written and the tier's money is left to carry forward. The
// per-winner rounding remainder is kept on the record and carried forward as well.
func (e *Engine) Payout(ctx context.Context, gameDay string, tier models.Tier, winners []models.Winner) (*models.PrizeDistributionRecord, error) {
	if _, err := gameday.Parse(gameDay); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var result *models.PrizeDistributionRecord
	err := e.withRetry(ctx, "payout", func(ctx context.Context) error {
		record, err := e.payoutOnce(ctx, gameDay, tier, winners)
		result = record
		return err
	})
	if errors.Is(err, storage.ErrConcurrencyConflict) {
		e.metrics.Payout(string(tier), "failed", 0)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrPayoutFailed, gameDay, tier, err)
	}
	return result, err
}

func (e *Engine) payoutOnce(ctx context.Context, gameDay string, tier models.Tier, winners []models.Winner) (*models.PrizeDistributionRecord, error) {
	current, err := e.store.GetPool(ctx, gameDay)
	if errors.Is(err, storage.ErrPoolNotFound) {
		e.metrics.InvariantViolation("payout")
		e.logger.Error().Str("game_day", gameDay).Str("tier", string(tier)).Msg("payout requested for a day without a pool")
		return nil, fmt.Errorf("%w: payout of %s before its pool exists", ErrInvariantViolation, gameDay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pool %s: %w", gameDay, err)
	}
	if !current.PoolsDistributed {
		e.metrics.InvariantViolation("payout")
		e.logger.Error().Str("game_day", gameDay).Str("tier", string(tier)).Msg("payout requested before distribution")
		return nil, fmt.Errorf("%w: payout of %s before distribution", ErrInvariantViolation, gameDay)
	}
	if !tier.IsPrize() {
		return nil, fmt.Errorf("%w: tier %q is not paid from the pool", ErrValidation, tier)
	}
	if err := e.requireExecutedDraw(ctx, gameDay); err != nil {
		return nil, err
	}

	existing, err := e.store.GetDistribution(ctx, gameDay, tier)
	if err == nil {
		e.metrics.Payout(string(tier), "already_paid", 0)
		return existing, nil
	}
	if !errors.Is(err, storage.ErrDistributionNotFound) {
		return nil, fmt.Errorf("failed to read distribution %s/%s: %w", gameDay, tier, err)
	}

	if len(winners) == 0 {
		return nil, nil
	}
	if current.PayoutsFinalized {
		return nil, fmt.Errorf("%w: %s was finalized", ErrPayoutWindowClosed, gameDay)
	}
	if err := validateWinners(winners); err != nil {
		return nil, err
	}

	amount := current.FinalTierPools[tier]
	if amount < 0 {
		e.metrics.InvariantViolation("payout")
		return nil, fmt.Errorf("%w: %s %s pool is negative (%d)", ErrInvariantViolation, gameDay, tier, amount)
	}

	record := e.buildRecord(current, tier, amount, winners)
	audit := &models.PoolTransaction{
		ID:        "payout#" + string(tier),
		GameDay:   gameDay,
		Type:      models.PoolTxPayout,
		Tier:      tier,
		Amount:    record.TotalPrizePoolUsed,
		CreatedAt: record.CreatedAt,
	}

	err = e.store.CommitPayout(ctx, record, current.Version, audit)
	if errors.Is(err, storage.ErrDistributionExists) {
		// Another worker paid the tier first; its record is the answer.
		winner, getErr := e.store.GetDistribution(ctx, gameDay, tier)
		if getErr != nil {
			return nil, fmt.Errorf("failed to read distribution %s/%s after losing race: %w", gameDay, tier, getErr)
		}
		e.metrics.Payout(string(tier), "already_paid", 0)
		return winner, nil
	}
	if err != nil {
		return nil, err
	}

	e.metrics.Payout(string(tier), "paid", record.TotalPrizePoolUsed)
	e.logger.Info().
		Str("game_day", gameDay).
		Str("tier", string(tier)).
		Int("winners", record.TotalWinners).
		Int64("per_winner", record.PerWinnerAmount).
		Int64("remainder", record.Remainder).
		Msg("tier paid out")
	return record, nil
}

func (e *Engine) buildRecord(current *models.DailyPrizePool, tier models.Tier, amount int64, winners []models.Winner) *models.PrizeDistributionRecord {
	n := int64(len(winners))
	perWinner := amount / n

	awards := make([]models.WinnerAward, 0, len(winners))
	for _, w := range winners {
		awards = append(awards, models.WinnerAward{
			UserID:        w.UserID,
			WalletRef:     w.WalletRef,
			TicketID:      w.TicketID,
			AmountAwarded: perWinner,
		})
	}

	return &models.PrizeDistributionRecord{
		GameDay:                    current.GameDay,
		Tier:                       tier,
		TotalWinners:               len(winners),
		TotalPrizePoolUsed:         perWinner * n,
		PerWinnerAmount:            perWinner,
		Remainder:                  amount - perWinner*n,
		Winners:                    awards,
		ReserveActivatedThisRecord: !current.ReserveReleased[tier],
		CreatedAt:                  e.now(),
	}
}

func validateWinners(winners []models.Winner) error {
	seen := make(map[string]struct{}, len(winners))
	for _, w := range winners {
		if w.TicketID == "" || w.UserID == "" {
			return fmt.Errorf("%w: winner without ticket or user id", ErrValidation)
		}
		if _, dup := seen[w.TicketID]; dup {
			return fmt.Errorf("%w: ticket %s listed twice", ErrValidation, w.TicketID)
		}
		seen[w.TicketID] = struct{}{}
	}
	return nil
}

// FinalizePayouts closes a distributed day's payout window. After it, tiers without a
// record can no longer be paid on that day and their money belongs to the next day's
// carry-forward. Finalizing twice is a no-op.
func (e *Engine) FinalizePayouts(ctx context.Context, gameDay string) (*models.DailyPrizePool, error) {
	var result *models.DailyPrizePool
	err := e.withRetry(ctx, "finalize", func(ctx context.Context) error {
		current, err := e.store.GetPool(ctx, gameDay)
		if err != nil {
			return fmt.Errorf("failed to read pool %s: %w", gameDay, err)
		}
		if !current.PoolsDistributed {
			return fmt.Errorf("%w: %s", ErrNotDistributed, gameDay)
		}
		if current.PayoutsFinalized {
			result = current
			return nil
		}
		if err := e.requireExecutedDraw(ctx, gameDay); err != nil {
			return err
		}

		now := e.now()
		if err := e.store.FinalizePool(ctx, gameDay, current.Version, now); err != nil {
			return err
		}
		next := current.Clone()
		next.PayoutsFinalized = true
		next.FinalizedAt = &now
		next.UpdatedAt = now
		next.Version = current.Version + 1
		result = next
		e.logger.Info().Str("game_day", gameDay).Msg("payouts finalized")
		return nil
	})
	if errors.Is(err, storage.ErrConcurrencyConflict) {
		return nil, fmt.Errorf("%w: finalizing %s: %w", ErrPayoutFailed, gameDay, err)
	}
	return result, err
}

// requireExecutedDraw fails with ErrDrawNotExecuted until the oracle has executed the
// day's draw.
func (e *Engine) requireExecutedDraw(ctx context.Context, gameDay string) error {
	draw, err := e.store.GetDrawResult(ctx, gameDay)
	if errors.Is(err, storage.ErrDrawNotFound) {
		return fmt.Errorf("%w: no result for %s", ErrDrawNotExecuted, gameDay)
	}
	if err != nil {
		return fmt.Errorf("failed to read draw for %s: %w", gameDay, err)
	}
	if !draw.Executed {
		return fmt.Errorf("%w: %s", ErrDrawNotExecuted, gameDay)
	}
	return nil
}
