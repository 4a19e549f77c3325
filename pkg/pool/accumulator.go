package pool

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// ContributionRequest is one ticket purchase to be added to its day's pool.
type ContributionRequest struct {
	TicketID string
	UserID   string
	GameDay  string
	Amount   int64
}

func (r ContributionRequest) validate() error {
	if r.TicketID == "" || r.UserID == "" {
		return fmt.Errorf("%w: ticket and user ids are required", ErrValidation)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: contribution amount must be positive, got %d", ErrValidation, r.Amount)
	}
	if _, err := gameday.Parse(r.GameDay); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Contribute adds a ticket's price to the pool of its game day. It returns false without
// error when the pool has already been distributed, or when the engine has a game-day
// clock and the day's draw time has passed. Contributing the same ticket again with
// identical details is a no-op that reports success; reusing a ticket id with different
// details fails with storage.ErrDuplicateTicket. Neither case creates a pool.
func (e *Engine) Contribute(ctx context.Context, req ContributionRequest) (bool, error) {
	if err := req.validate(); err != nil {
		return false, err
	}

	var accepted bool
	err := e.withRetry(ctx, "contribute", func(ctx context.Context) error {
		ok, err := e.contributeOnce(ctx, req)
		accepted = ok
		return err
	})
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrConcurrencyConflict):
		e.metrics.Contribution("failed", 0)
		e.logger.Error().Err(err).Str("ticket_id", req.TicketID).Str("game_day", req.GameDay).Msg("contribution retries exhausted")
		return false, fmt.Errorf("%w: ticket %s: %w", ErrContributionFailed, req.TicketID, err)
	case errors.Is(err, storage.ErrDuplicateTicket):
		e.metrics.Contribution("duplicate", 0)
		return false, err
	default:
		return false, err
	}

	if !accepted {
		e.metrics.Contribution("closed", 0)
		e.logger.Info().Str("ticket_id", req.TicketID).Str("game_day", req.GameDay).Msg("contribution rejected, game day closed")
	}
	return accepted, nil
}

func (e *Engine) contributeOnce(ctx context.Context, req ContributionRequest) (bool, error) {
	_, err := e.store.GetTicketPurchase(ctx, req.TicketID)
	switch {
	case err == nil:
		return e.replayedContribution(ctx, req)
	case !errors.Is(err, storage.ErrPurchaseNotFound):
		return false, fmt.Errorf("failed to read purchase of ticket %s: %w", req.TicketID, err)
	}

	// Sales for a day end at its draw.
	if e.salesClosed(req.GameDay) {
		return false, nil
	}
	if err := e.ensurePool(ctx, req.GameDay); err != nil {
		return false, err
	}

	now := e.now()
	purchase := &models.TicketPurchase{
		TicketID:    req.TicketID,
		UserID:      req.UserID,
		GameDay:     req.GameDay,
		Amount:      req.Amount,
		PurchasedAt: now,
	}
	audit := &models.PoolTransaction{
		ID:        contributionTxID(req.TicketID),
		GameDay:   req.GameDay,
		Type:      models.PoolTxContribution,
		Amount:    req.Amount,
		TicketID:  req.TicketID,
		UserID:    req.UserID,
		CreatedAt: now,
	}

	err = e.store.CommitContribution(ctx, purchase, audit)
	switch {
	case err == nil:
		e.metrics.Contribution("accepted", req.Amount)
		return true, nil
	case errors.Is(err, storage.ErrDuplicateTicket):
		return e.replayedContribution(ctx, req)
	case errors.Is(err, storage.ErrPoolClosed):
		pool, getErr := e.store.GetPool(ctx, req.GameDay)
		if getErr != nil {
			return false, fmt.Errorf("failed to re-read pool %s: %w", req.GameDay, getErr)
		}
		if pool.PoolsDistributed {
			return false, nil
		}
		// The gate was closed when the write was evaluated but is open now.
		return false, storage.ErrConcurrencyConflict
	default:
		return false, fmt.Errorf("failed to commit contribution for ticket %s: %w", req.TicketID, err)
	}
}

// replayedContribution resolves a duplicate ticket id: a retry of the same purchase is
// a success, anything else is a conflicting reuse of the id.
func (e *Engine) replayedContribution(ctx context.Context, req ContributionRequest) (bool, error) {
	existing, err := e.store.GetTicketPurchase(ctx, req.TicketID)
	if err != nil {
		return false, fmt.Errorf("failed to read purchase of ticket %s: %w", req.TicketID, err)
	}
	if existing.UserID == req.UserID && existing.GameDay == req.GameDay && existing.Amount == req.Amount {
		e.metrics.Contribution("replayed", 0)
		return true, nil
	}
	return false, fmt.Errorf("ticket %s was already recorded for %s: %w", req.TicketID, existing.GameDay, storage.ErrDuplicateTicket)
}

// salesClosed reports whether gameDay is before the day currently on sale.
func (e *Engine) salesClosed(gameDay string) bool {
	if e.days == nil {
		return false
	}
	return gameDay < e.days.CurrentGameDay(e.now())
}

func (e *Engine) ensurePool(ctx context.Context, gameDay string) error {
	now := e.now()
	err := e.store.CreatePool(ctx, &models.DailyPrizePool{
		GameDay:   gameDay,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err == nil || errors.Is(err, storage.ErrPoolExists) {
		return nil
	}
	return fmt.Errorf("failed to create pool %s: %w", gameDay, err)
}

func contributionTxID(ticketID string) string {
	return "contribution#" + ticketID
}
