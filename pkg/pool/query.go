package pool

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// MaxClaimableRangeDays bounds the day range a claimable query may span.
const MaxClaimableRangeDays = 366

// Snapshot returns the current state of a day's pool.
func (e *Engine) Snapshot(ctx context.Context, gameDay string) (*models.DailyPrizePool, error) {
	if _, err := gameday.Parse(gameDay); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return e.store.GetPool(ctx, gameDay)
}

// DistributionHistory returns the payout records of a day in tier order.
func (e *Engine) DistributionHistory(ctx context.Context, gameDay string) ([]models.PrizeDistributionRecord, error) {
	if _, err := gameday.Parse(gameDay); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	records, err := e.store.ListDistributions(ctx, gameDay)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return tierRank(records[i].Tier) < tierRank(records[j].Tier)
	})
	return records, nil
}

// PoolTransactions returns the audit trail of a day.
func (e *Engine) PoolTransactions(ctx context.Context, gameDay string) ([]models.PoolTransaction, error) {
	if _, err := gameday.Parse(gameDay); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return e.store.ListPoolTransactions(ctx, gameDay)
}

// ListUnsettledPools returns the pools before beforeDay whose payouts are still open,
// oldest first. Pools that were never distributed are included.
func (e *Engine) ListUnsettledPools(ctx context.Context, beforeDay string) ([]models.DailyPrizePool, error) {
	if _, err := gameday.Parse(beforeDay); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	pools, err := e.store.ListUnsettledPools(ctx)
	if err != nil {
		return nil, err
	}
	out := pools[:0]
	for _, p := range pools {
		if p.GameDay < beforeDay && !p.PayoutsFinalized {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameDay < out[j].GameDay })
	return out, nil
}

// ClaimableAward is one award of a user and whether it has been settled.
type ClaimableAward struct {
	GameDay  string
	Tier     models.Tier
	TicketID string
	Amount   int64
	Settled  bool
}

// Claimable summarizes what a user has won over a range of days.
type Claimable struct {
	UserID    string
	From      string
	To        string
	Awarded   int64
	Settled   int64
	Claimable int64
	Awards    []ClaimableAward
}

// Claimable sums a user's awards between from and to inclusive and subtracts the ones the
// custody layer has already settled.
func (e *Engine) Claimable(ctx context.Context, userID, from, to string) (*Claimable, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	start, err := gameday.Parse(from)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	end, err := gameday.Parse(to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if end.After(start.AddDate(0, 0, MaxClaimableRangeDays-1)) {
		return nil, fmt.Errorf("%w: range %s..%s exceeds %d days", ErrValidation, from, to, MaxClaimableRangeDays)
	}
	days, err := gameday.Range(from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	settlements, err := e.store.ListSettlementsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements of %s: %w", userID, err)
	}
	settled := make(map[string]bool, len(settlements))
	for _, s := range settlements {
		settled[s.GameDay+"/"+s.TicketID] = true
	}

	summary := &Claimable{UserID: userID, From: from, To: to, Awards: []ClaimableAward{}}
	for _, day := range days {
		records, err := e.store.ListDistributions(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("failed to list distributions of %s: %w", day, err)
		}
		for _, record := range records {
			for _, award := range record.Winners {
				if award.UserID != userID {
					continue
				}
				done := settled[day+"/"+award.TicketID]
				summary.Awards = append(summary.Awards, ClaimableAward{
					GameDay:  day,
					Tier:     record.Tier,
					TicketID: award.TicketID,
					Amount:   award.AmountAwarded,
					Settled:  done,
				})
				summary.Awarded += award.AmountAwarded
				if done {
					summary.Settled += award.AmountAwarded
				}
			}
		}
	}
	summary.Claimable = summary.Awarded - summary.Settled
	return summary, nil
}

// RecordSettlement stores that an award was paid to its owner. The settlement must match
// an award on record. Recording the same award twice returns storage.ErrAlreadySettled.
func (e *Engine) RecordSettlement(ctx context.Context, settlement models.Settlement) (*models.Settlement, error) {
	if settlement.UserID == "" || settlement.TicketID == "" {
		return nil, fmt.Errorf("%w: user and ticket ids are required", ErrValidation)
	}
	if !settlement.Tier.IsPrize() {
		return nil, fmt.Errorf("%w: tier %q has no awards", ErrValidation, settlement.Tier)
	}
	if _, err := gameday.Parse(settlement.GameDay); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	record, err := e.store.GetDistribution(ctx, settlement.GameDay, settlement.Tier)
	if errors.Is(err, storage.ErrDistributionNotFound) {
		return nil, fmt.Errorf("%w: no %s payout on %s", ErrValidation, settlement.Tier, settlement.GameDay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read distribution %s/%s: %w", settlement.GameDay, settlement.Tier, err)
	}

	var award *models.WinnerAward
	for i := range record.Winners {
		if record.Winners[i].TicketID == settlement.TicketID && record.Winners[i].UserID == settlement.UserID {
			award = &record.Winners[i]
			break
		}
	}
	if award == nil {
		return nil, fmt.Errorf("%w: ticket %s of %s has no award", ErrValidation, settlement.TicketID, settlement.UserID)
	}
	if settlement.Amount != award.AmountAwarded {
		return nil, fmt.Errorf("%w: settled amount %d differs from award %d", ErrValidation, settlement.Amount, award.AmountAwarded)
	}
	if settlement.SettledAt.IsZero() {
		settlement.SettledAt = e.now()
	}

	if err := e.store.RecordSettlement(ctx, &settlement); err != nil {
		return nil, err
	}
	e.logger.Info().Str("user_id", settlement.UserID).Str("ticket_id", settlement.TicketID).Int64("amount", settlement.Amount).Msg("settlement recorded")
	return &settlement, nil
}

func tierRank(t models.Tier) int {
	for i, tier := range models.PoolTiers {
		if tier == t {
			return i
		}
	}
	return len(models.PoolTiers)
}
