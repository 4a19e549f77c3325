package storage

import (
	"context"
	"time"

	"github.com/chris/daily-prize-pools/pkg/models"
)

// PoolReader defines the interface for reading pool data.
type PoolReader interface {
	// GetPool retrieves the pool for a game day. It returns ErrPoolNotFound if none exists.
	GetPool(ctx context.Context, gameDay string) (*models.DailyPrizePool, error)

	// GetTicketPurchase retrieves the purchase recorded for a ticket.
	GetTicketPurchase(ctx context.Context, ticketID string) (*models.TicketPurchase, error)

	// ListPoolTransactions retrieves the audit trail of a pool.
	ListPoolTransactions(ctx context.Context, gameDay string) ([]models.PoolTransaction, error)

	// ListUnsettledPools retrieves pools whose payouts were never finalized, oldest first.
	ListUnsettledPools(ctx context.Context) ([]models.DailyPrizePool, error)
}

// PoolWriter defines the atomic mutations of a pool. Each method commits all of its
// writes or none of them.
type PoolWriter interface {
	// CreatePool creates an empty pool. It returns ErrPoolExists if the day already has one.
	CreatePool(ctx context.Context, pool *models.DailyPrizePool) error

	// CommitContribution adds the purchase amount to an open pool, records the purchase
	// and its audit entry. It returns ErrPoolClosed, ErrDuplicateTicket or
	// ErrConcurrencyConflict without writing anything.
	CommitContribution(ctx context.Context, purchase *models.TicketPurchase, audit *models.PoolTransaction) error

	// CommitDistribution replaces an undistributed pool with its distributed state if the
	// stored version still equals expectedVersion.
	CommitDistribution(ctx context.Context, pool *models.DailyPrizePool, expectedVersion int64, audit []models.PoolTransaction) error

	// CommitPayout creates the distribution record, flips the tier's reserve flag and
	// records the payout audit entry. It returns ErrDistributionExists if the record was
	// already written and ErrConcurrencyConflict if the pool changed since expectedVersion.
	CommitPayout(ctx context.Context, record *models.PrizeDistributionRecord, expectedVersion int64, audit *models.PoolTransaction) error

	// FinalizePool closes the payout window of a distributed pool.
	FinalizePool(ctx context.Context, gameDay string, expectedVersion int64, at time.Time) error
}

// PoolStore combines the reader and writer interfaces.
type PoolStore interface {
	PoolReader
	PoolWriter
}
