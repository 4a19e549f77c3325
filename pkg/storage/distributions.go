package storage

import (
	"context"

	"github.com/chris/daily-prize-pools/pkg/models"
)

// DistributionStore defines read access to payout records.
type DistributionStore interface {
	// GetDistribution retrieves the record of a tier on a game day, or ErrDistributionNotFound.
	GetDistribution(ctx context.Context, gameDay string, tier models.Tier) (*models.PrizeDistributionRecord, error)

	// ListDistributions retrieves every record of a game day.
	ListDistributions(ctx context.Context, gameDay string) ([]models.PrizeDistributionRecord, error)
}
