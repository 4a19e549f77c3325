package pool

import (
	"context"

	"github.com/chris/daily-prize-pools/pkg/models"
)

// PoolService covers contributions, distribution and the read side of a pool.
type PoolService interface {
	Contribute(ctx context.Context, req ContributionRequest) (bool, error)
	Snapshot(ctx context.Context, gameDay string) (*models.DailyPrizePool, error)
	ComputeCarryForward(ctx context.Context, beforeDay string) (CarryForward, error)
	Distribute(ctx context.Context, gameDay string) (*models.DailyPrizePool, error)
	DistributionHistory(ctx context.Context, gameDay string) ([]models.PrizeDistributionRecord, error)
	PoolTransactions(ctx context.Context, gameDay string) ([]models.PoolTransaction, error)
	ListUnsettledPools(ctx context.Context, beforeDay string) ([]models.DailyPrizePool, error)
}

// PayoutService pays tiers and closes a day's payout window.
type PayoutService interface {
	Payout(ctx context.Context, gameDay string, tier models.Tier, winners []models.Winner) (*models.PrizeDistributionRecord, error)
	FinalizePayouts(ctx context.Context, gameDay string) (*models.DailyPrizePool, error)
}

// ClaimService reports what users have won and records custody settlements.
type ClaimService interface {
	Claimable(ctx context.Context, userID, from, to string) (*Claimable, error)
	RecordSettlement(ctx context.Context, settlement models.Settlement) (*models.Settlement, error)
}

// Service is everything the engine offers to callers.
type Service interface {
	PoolService
	PayoutService
	ClaimService
}

var _ Service = (*Engine)(nil)
