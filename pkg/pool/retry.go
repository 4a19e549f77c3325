package pool

import (
	"context"
	"errors"
	"time"

	"github.com/chris/daily-prize-pools/pkg/storage"
)

// withRetry runs fn, the complete read-decide-commit of one mutation, until it stops
// returning storage.ErrConcurrencyConflict or the attempts are used up. The last
// conflict is returned so callers can wrap it in their own failure error.
func (e *Engine) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	delay := e.cfg.BaseDelay
	var err error
	for attempt := 1; attempt <= e.cfg.MaxAttempts; attempt++ {
		err = fn(ctx)
		if !errors.Is(err, storage.ErrConcurrencyConflict) {
			return err
		}
		if attempt == e.cfg.MaxAttempts {
			break
		}

		e.metrics.Retry(op)
		e.logger.Warn().
			Str("operation", op).
			Int("attempt", attempt).
			Dur("backoff", delay).
			Msg("concurrent modification, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > e.cfg.MaxDelay {
			delay = e.cfg.MaxDelay
		}
	}
	return err
}
