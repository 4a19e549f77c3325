// Package jobs holds the scheduled and queued work around the pool engine: distributing
// a day when its draw fires, settling days from the queue and sweeping up days whose
// settlement was lost.
package jobs

import (
	"context"

	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/settlement"
)

// Distributor is the part of the engine the draw and reconciliation jobs drive.
type Distributor interface {
	Distribute(ctx context.Context, gameDay string) (*models.DailyPrizePool, error)
	ListUnsettledPools(ctx context.Context, beforeDay string) ([]models.DailyPrizePool, error)
}

// DaySettler settles one game day end to end.
type DaySettler interface {
	Settle(ctx context.Context, gameDay string) (*settlement.Summary, error)
}
