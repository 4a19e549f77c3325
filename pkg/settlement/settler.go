// Package settlement classifies a day's tickets against its draw and pays the winners.
//
// The scan runs in fixed-size batches. Each batch persists its matches before it moves
// the cursor, so a worker that crashes mid-scan resumes where the last one stopped and
// reclassifying a page is harmless.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/chris/daily-prize-pools/pkg/matcher"
	"github.com/chris/daily-prize-pools/pkg/metrics"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/pool"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// ErrDrawNotExecuted is returned when a day is settled before its draw was executed. It
// is the engine's error, so a payout refused for the same reason matches it too.
var ErrDrawNotExecuted = pool.ErrDrawNotExecuted

// ErrScanIncomplete is returned when winners are paid before every ticket was classified.
var ErrScanIncomplete = errors.New("ticket scan incomplete")

// Payer is the part of the pool engine the settler drives.
type Payer interface {
	Payout(ctx context.Context, gameDay string, tier models.Tier, winners []models.Winner) (*models.PrizeDistributionRecord, error)
	FinalizePayouts(ctx context.Context, gameDay string) (*models.DailyPrizePool, error)
}

// Config controls batching and throttling of the ticket scan.
type Config struct {
	BatchSize int32
	// ReadsPerSecond limits ticket ledger page reads. Zero disables the limit.
	ReadsPerSecond float64
	Burst          int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{BatchSize: 500, ReadsPerSecond: 10, Burst: 1}
}

// Settler runs the settlement of game days.
type Settler struct {
	store   storage.SettlerStore
	payer   Payer
	cfg     Config
	limiter *rate.Limiter
	logger  zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option customizes a Settler.
type Option func(*Settler)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Settler) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Settler) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Settler) { s.now = now }
}

// New creates a Settler.
func New(store storage.SettlerStore, payer Payer, cfg Config, opts ...Option) (*Settler, error) {
	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	limit := rate.Inf
	if cfg.ReadsPerSecond > 0 {
		limit = rate.Limit(cfg.ReadsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	s := &Settler{
		store:   store,
		payer:   payer,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Summary describes a settled day.
type Summary struct {
	GameDay     string
	Records     map[models.Tier]*models.PrizeDistributionRecord
	FreeTickets int
	Pool        *models.DailyPrizePool
}

// Settle scans every remaining ticket of the day and then pays its winners.
func (s *Settler) Settle(ctx context.Context, gameDay string) (*Summary, error) {
	for {
		done, err := s.ProcessBatch(ctx, gameDay)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return s.PayWinners(ctx, gameDay)
}

// ProcessBatch classifies the next page of tickets and advances the scan cursor. It
// reports whether the scan has reached the end of the day's tickets.
func (s *Settler) ProcessBatch(ctx context.Context, gameDay string) (bool, error) {
	draw, err := s.executedDraw(ctx, gameDay)
	if err != nil {
		return false, err
	}

	cursor, err := s.store.GetScanCursor(ctx, gameDay)
	if err != nil {
		return false, fmt.Errorf("failed to read scan cursor for %s: %w", gameDay, err)
	}
	if cursor.Done {
		return true, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return false, err
	}
	tickets, next, err := s.store.ListTickets(ctx, gameDay, cursor.Cursor, s.cfg.BatchSize)
	if err != nil {
		return false, fmt.Errorf("failed to list tickets for %s: %w", gameDay, err)
	}

	matches := s.classify(gameDay, tickets, draw.WinningNumbers)
	if err := s.store.SaveMatches(ctx, matches); err != nil {
		return false, fmt.Errorf("failed to save matches for %s: %w", gameDay, err)
	}

	advanced := &models.ScanCursor{
		GameDay:   gameDay,
		Cursor:    next,
		Processed: cursor.Processed + int64(len(tickets)),
		Matched:   cursor.Matched + int64(len(matches)),
		Done:      next == "",
		Version:   cursor.Version + 1,
		UpdatedAt: s.now(),
	}
	err = s.store.SaveScanCursor(ctx, advanced, cursor.Version)
	if errors.Is(err, storage.ErrConcurrencyConflict) {
		// Another worker moved the cursor first. Its matches cover this page too.
		s.logger.Warn().Str("game_day", gameDay).Int64("version", cursor.Version).Msg("scan cursor advanced concurrently")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to save scan cursor for %s: %w", gameDay, err)
	}

	s.metrics.Scanned(len(tickets))
	s.logger.Debug().
		Str("game_day", gameDay).
		Int("tickets", len(tickets)).
		Int("matches", len(matches)).
		Int64("processed", advanced.Processed).
		Bool("done", advanced.Done).
		Msg("settlement batch processed")
	return advanced.Done, nil
}

func (s *Settler) classify(gameDay string, tickets []models.Ticket, winning [4]int) []models.TicketMatch {
	var matches []models.TicketMatch
	for _, t := range tickets {
		if err := matcher.Validate(t.Numbers); err != nil {
			s.logger.Warn().Err(err).Str("ticket_id", t.TicketID).Msg("skipping ticket with invalid numbers")
			continue
		}
		tier := matcher.Classify(t.Numbers, winning)
		if tier == models.TierNone {
			continue
		}
		s.metrics.Matched(string(tier))
		matches = append(matches, models.TicketMatch{
			GameDay:   gameDay,
			TicketID:  t.TicketID,
			OwnerID:   t.OwnerID,
			WalletRef: t.WalletRef,
			Tier:      tier,
		})
	}
	return matches
}

// PayWinners pays every prize tier from the persisted matches and closes the day's
// payout window. The scan must be complete. Running it again after a crash reuses the
// records already written.
func (s *Settler) PayWinners(ctx context.Context, gameDay string) (*Summary, error) {
	cursor, err := s.store.GetScanCursor(ctx, gameDay)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan cursor for %s: %w", gameDay, err)
	}
	if !cursor.Done {
		return nil, fmt.Errorf("%w: %s has processed %d tickets", ErrScanIncomplete, gameDay, cursor.Processed)
	}

	summary := &Summary{GameDay: gameDay, Records: make(map[models.Tier]*models.PrizeDistributionRecord)}
	for _, tier := range models.PrizeTiers {
		matches, err := s.store.ListMatches(ctx, gameDay, tier)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s matches for %s: %w", tier, gameDay, err)
		}
		record, err := s.payer.Payout(ctx, gameDay, tier, winnersOf(matches))
		if err != nil {
			return nil, err
		}
		if record != nil {
			summary.Records[tier] = record
		}
	}

	free, err := s.store.ListMatches(ctx, gameDay, models.TierFreeTicket)
	if err != nil {
		return nil, fmt.Errorf("failed to list free ticket matches for %s: %w", gameDay, err)
	}
	summary.FreeTickets = len(free)

	finalized, err := s.payer.FinalizePayouts(ctx, gameDay)
	if err != nil {
		return nil, err
	}
	summary.Pool = finalized

	s.logger.Info().
		Str("game_day", gameDay).
		Int("paid_tiers", len(summary.Records)).
		Int("free_tickets", summary.FreeTickets).
		Msg("day settled")
	return summary, nil
}

func (s *Settler) executedDraw(ctx context.Context, gameDay string) (*models.DrawResult, error) {
	draw, err := s.store.GetDrawResult(ctx, gameDay)
	if errors.Is(err, storage.ErrDrawNotFound) {
		return nil, fmt.Errorf("%w: no result for %s", ErrDrawNotExecuted, gameDay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draw for %s: %w", gameDay, err)
	}
	if !draw.Executed {
		return nil, fmt.Errorf("%w: %s", ErrDrawNotExecuted, gameDay)
	}
	return draw, nil
}

func winnersOf(matches []models.TicketMatch) []models.Winner {
	winners := make([]models.Winner, 0, len(matches))
	for _, m := range matches {
		winners = append(winners, models.Winner{UserID: m.OwnerID, WalletRef: m.WalletRef, TicketID: m.TicketID})
	}
	return winners
}
