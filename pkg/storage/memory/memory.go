// Package memory is an in-process implementation of the storage interfaces. Every
// method holds one mutex for its whole body, which makes each call atomic.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// Store keeps all state in maps.
type Store struct {
	mu            sync.RWMutex
	pools         map[string]*models.DailyPrizePool
	purchases     map[string]models.TicketPurchase
	poolTxs       map[string]map[string]models.PoolTransaction
	distributions map[string]map[models.Tier]models.PrizeDistributionRecord
	tickets       map[string][]models.Ticket
	draws         map[string]models.DrawResult
	cursors       map[string]models.ScanCursor
	matches       map[string]map[string]models.TicketMatch
	settlements   map[string]map[string]models.Settlement
}

var _ storage.Storage = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		pools:         make(map[string]*models.DailyPrizePool),
		purchases:     make(map[string]models.TicketPurchase),
		poolTxs:       make(map[string]map[string]models.PoolTransaction),
		distributions: make(map[string]map[models.Tier]models.PrizeDistributionRecord),
		tickets:       make(map[string][]models.Ticket),
		draws:         make(map[string]models.DrawResult),
		cursors:       make(map[string]models.ScanCursor),
		matches:       make(map[string]map[string]models.TicketMatch),
		settlements:   make(map[string]map[string]models.Settlement),
	}
}

func (s *Store) GetPool(ctx context.Context, gameDay string) (*models.DailyPrizePool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pools[gameDay]
	if !ok {
		return nil, storage.ErrPoolNotFound
	}
	return p.Clone(), nil
}

func (s *Store) GetTicketPurchase(ctx context.Context, ticketID string) (*models.TicketPurchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.purchases[ticketID]
	if !ok {
		return nil, storage.ErrPurchaseNotFound
	}
	return &p, nil
}

func (s *Store) ListPoolTransactions(ctx context.Context, gameDay string) ([]models.PoolTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txs := make([]models.PoolTransaction, 0, len(s.poolTxs[gameDay]))
	for _, tx := range s.poolTxs[gameDay] {
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID < txs[j].ID })
	return txs, nil
}

func (s *Store) ListUnsettledPools(ctx context.Context) ([]models.DailyPrizePool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pools []models.DailyPrizePool
	for _, p := range s.pools {
		if !p.PayoutsFinalized {
			pools = append(pools, *p.Clone())
		}
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].GameDay < pools[j].GameDay })
	return pools, nil
}

func (s *Store) CreatePool(ctx context.Context, pool *models.DailyPrizePool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pools[pool.GameDay]; ok {
		return storage.ErrPoolExists
	}
	s.pools[pool.GameDay] = pool.Clone()
	return nil
}

func (s *Store) CommitContribution(ctx context.Context, purchase *models.TicketPurchase, audit *models.PoolTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.purchases[purchase.TicketID]; dup {
		return storage.ErrDuplicateTicket
	}
	p, ok := s.pools[purchase.GameDay]
	if !ok || p.PoolsDistributed {
		return storage.ErrPoolClosed
	}
	p.TotalCollected += purchase.Amount
	p.TicketCount++
	p.Version++
	p.UpdatedAt = purchase.PurchasedAt
	s.purchases[purchase.TicketID] = *purchase
	s.putPoolTx(*audit)
	return nil
}

func (s *Store) CommitDistribution(ctx context.Context, pool *models.DailyPrizePool, expectedVersion int64, audit []models.PoolTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.pools[pool.GameDay]
	if !ok {
		return storage.ErrPoolNotFound
	}
	if current.Version != expectedVersion || current.PoolsDistributed {
		return storage.ErrConcurrencyConflict
	}
	s.pools[pool.GameDay] = pool.Clone()
	for _, tx := range audit {
		s.putPoolTx(tx)
	}
	return nil
}

func (s *Store) CommitPayout(ctx context.Context, record *models.PrizeDistributionRecord, expectedVersion int64, audit *models.PoolTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.distributions[record.GameDay][record.Tier]; exists {
		return storage.ErrDistributionExists
	}
	p, ok := s.pools[record.GameDay]
	if !ok || p.Version != expectedVersion || !p.PoolsDistributed || p.PayoutsFinalized {
		return storage.ErrConcurrencyConflict
	}
	if s.distributions[record.GameDay] == nil {
		s.distributions[record.GameDay] = make(map[models.Tier]models.PrizeDistributionRecord)
	}
	s.distributions[record.GameDay][record.Tier] = cloneRecord(*record)
	if p.ReserveReleased == nil {
		p.ReserveReleased = make(map[models.Tier]bool)
	}
	p.ReserveReleased[record.Tier] = true
	p.Version++
	p.UpdatedAt = record.CreatedAt
	s.putPoolTx(*audit)
	return nil
}

func (s *Store) FinalizePool(ctx context.Context, gameDay string, expectedVersion int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pools[gameDay]
	if !ok {
		return storage.ErrPoolNotFound
	}
	if p.Version != expectedVersion || !p.PoolsDistributed {
		return storage.ErrConcurrencyConflict
	}
	p.PayoutsFinalized = true
	p.FinalizedAt = &at
	p.UpdatedAt = at
	p.Version++
	return nil
}

func (s *Store) GetDistribution(ctx context.Context, gameDay string, tier models.Tier) (*models.PrizeDistributionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.distributions[gameDay][tier]
	if !ok {
		return nil, storage.ErrDistributionNotFound
	}
	c := cloneRecord(r)
	return &c, nil
}

func (s *Store) ListDistributions(ctx context.Context, gameDay string) ([]models.PrizeDistributionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]models.PrizeDistributionRecord, 0, len(s.distributions[gameDay]))
	for _, r := range s.distributions[gameDay] {
		records = append(records, cloneRecord(r))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Tier < records[j].Tier })
	return records, nil
}

func (s *Store) putPoolTx(tx models.PoolTransaction) {
	if s.poolTxs[tx.GameDay] == nil {
		s.poolTxs[tx.GameDay] = make(map[string]models.PoolTransaction)
	}
	s.poolTxs[tx.GameDay][tx.ID] = tx
}

func cloneRecord(r models.PrizeDistributionRecord) models.PrizeDistributionRecord {
	r.Winners = append([]models.WinnerAward(nil), r.Winners...)
	return r
}
