package settlement

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/pool"
	"github.com/chris/daily-prize-pools/pkg/settlement/mocks"
	"github.com/chris/daily-prize-pools/pkg/storage"
	"github.com/chris/daily-prize-pools/pkg/storage/memory"
)

const day = "2024-01-01"

var winning = [4]int{1, 2, 3, 4}

// Against 1-2-3-4: none, second, first, third, none, free ticket, invalid.
var dayTickets = [][4]int{
	{5, 6, 7, 8},
	{4, 3, 2, 1},
	{1, 2, 3, 4},
	{1, 2, 3, 9},
	{0, 0, 0, 0},
	{4, 2, 3, 9},
	{30, 2, 3, 4},
}

func seedTickets(t *testing.T, store *memory.Store, engine *pool.Engine) {
	t.Helper()
	for i, numbers := range dayTickets {
		ticket := models.Ticket{
			TicketID:  fmt.Sprintf("ticket#%d", i+1),
			OwnerID:   fmt.Sprintf("user%d", i+1),
			WalletRef: fmt.Sprintf("wallet%d", i+1),
			GameDay:   day,
			Numbers:   numbers,
		}
		store.PutTicket(ticket)
		if engine == nil {
			continue
		}
		ok, err := engine.Contribute(context.Background(), pool.ContributionRequest{
			TicketID: ticket.TicketID,
			UserID:   ticket.OwnerID,
			GameDay:  day,
			Amount:   20,
		})
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func newTestSettler(t *testing.T, store storage.SettlerStore, payer Payer, batch int32) *Settler {
	t.Helper()
	s, err := New(store, payer, Config{BatchSize: batch})
	require.NoError(t, err)
	return s
}

func newTestEngine(t *testing.T, store storage.EngineStore) *pool.Engine {
	t.Helper()
	cfg := pool.DefaultConfig()
	cfg.BaseDelay = 0
	cfg.MaxDelay = 0
	engine, err := pool.New(store, cfg)
	require.NoError(t, err)
	return engine
}

func TestNew(t *testing.T) {
	_, err := New(memory.New(), nil, Config{BatchSize: 0})
	assert.Error(t, err)

	s, err := New(memory.New(), nil, DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, s.limiter)
}

func TestProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Draw Not Executed", func(t *testing.T) {
		store := memory.New()
		s := newTestSettler(t, store, nil, 3)

		_, err := s.ProcessBatch(ctx, day)
		assert.ErrorIs(t, err, ErrDrawNotExecuted)

		store.PutDrawResult(models.DrawResult{GameDay: day, WinningNumbers: winning})
		_, err = s.ProcessBatch(ctx, day)
		assert.ErrorIs(t, err, ErrDrawNotExecuted)
	})

	t.Run("Resumable Scan", func(t *testing.T) {
		store := memory.New()
		seedTickets(t, store, nil)
		store.PutDrawResult(models.DrawResult{GameDay: day, WinningNumbers: winning, Executed: true})
		s := newTestSettler(t, store, nil, 3)

		for i := 0; i < 2; i++ {
			done, err := s.ProcessBatch(ctx, day)
			require.NoError(t, err)
			assert.False(t, done)
		}

		// A fresh worker picks up from the stored cursor.
		resumed := newTestSettler(t, store, nil, 3)
		done, err := resumed.ProcessBatch(ctx, day)
		require.NoError(t, err)
		assert.True(t, done)

		cursor, err := store.GetScanCursor(ctx, day)
		require.NoError(t, err)
		assert.True(t, cursor.Done)
		assert.Equal(t, int64(7), cursor.Processed)
		assert.Equal(t, int64(4), cursor.Matched)
		assert.Equal(t, int64(3), cursor.Version)

		for tier, want := range map[models.Tier]string{
			models.TierFirst:      "ticket#3",
			models.TierSecond:     "ticket#2",
			models.TierThird:      "ticket#4",
			models.TierFreeTicket: "ticket#6",
		} {
			matches, err := store.ListMatches(ctx, day, tier)
			require.NoError(t, err)
			require.Len(t, matches, 1, tier)
			assert.Equal(t, want, matches[0].TicketID)
		}

		done, err = s.ProcessBatch(ctx, day)
		require.NoError(t, err)
		assert.True(t, done)
	})

	t.Run("Empty Day", func(t *testing.T) {
		store := memory.New()
		store.PutDrawResult(models.DrawResult{GameDay: day, WinningNumbers: winning, Executed: true})
		s := newTestSettler(t, store, nil, 3)

		done, err := s.ProcessBatch(ctx, day)
		require.NoError(t, err)
		assert.True(t, done)
	})

	t.Run("Cursor Conflict", func(t *testing.T) {
		store := memory.New()
		seedTickets(t, store, nil)
		store.PutDrawResult(models.DrawResult{GameDay: day, WinningNumbers: winning, Executed: true})
		s := newTestSettler(t, &racingCursorStore{Store: store}, nil, 3)

		done, err := s.ProcessBatch(ctx, day)
		require.NoError(t, err)
		assert.False(t, done)
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		store := memory.New()
		store.PutDrawResult(models.DrawResult{GameDay: day, WinningNumbers: winning, Executed: true})
		s := newTestSettler(t, store, nil, 3)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.ProcessBatch(cctx, day)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

type racingCursorStore struct {
	*memory.Store
}

func (s *racingCursorStore) SaveScanCursor(ctx context.Context, c *models.ScanCursor, v int64) error {
	return storage.ErrConcurrencyConflict
}

func TestSettle(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	engine := newTestEngine(t, store)
	seedTickets(t, store, engine)
	store.PutDrawResult(models.DrawResult{GameDay: day, WinningNumbers: winning, Executed: true, DrawnAt: time.Now()})

	_, err := engine.Distribute(ctx, day)
	require.NoError(t, err)

	s := newTestSettler(t, store, engine, 2)

	_, err = s.PayWinners(ctx, day)
	assert.ErrorIs(t, err, ErrScanIncomplete)

	summary, err := s.Settle(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FreeTickets)
	require.Len(t, summary.Records, 3)

	// 7 tickets of 20 make 140, split 112/14/7/7.
	assert.Equal(t, int64(112), summary.Records[models.TierFirst].PerWinnerAmount)
	assert.Equal(t, "ticket#3", summary.Records[models.TierFirst].Winners[0].TicketID)
	assert.Equal(t, "wallet3", summary.Records[models.TierFirst].Winners[0].WalletRef)
	assert.Equal(t, int64(14), summary.Records[models.TierSecond].PerWinnerAmount)
	assert.Equal(t, int64(7), summary.Records[models.TierThird].PerWinnerAmount)
	require.NotNil(t, summary.Pool)
	assert.True(t, summary.Pool.PayoutsFinalized)

	// Settling again reuses every stored record.
	again, err := s.Settle(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, summary.Records, again.Records)
}

func TestPayWinnersErrors(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedTickets(t, store, nil)
	store.PutDrawResult(models.DrawResult{GameDay: day, WinningNumbers: winning, Executed: true})

	payer := mocks.NewPayer(t)
	s := newTestSettler(t, store, payer, 10)
	done, err := s.ProcessBatch(ctx, day)
	require.NoError(t, err)
	require.True(t, done)

	t.Run("Payout Fails", func(t *testing.T) {
		failure := errors.New("boom")
		payer.On("Payout", mock.Anything, day, models.TierFirst, mock.Anything).Return(nil, failure).Once()

		_, err := s.PayWinners(ctx, day)
		assert.ErrorIs(t, err, failure)
		payer.AssertNotCalled(t, "FinalizePayouts", mock.Anything, mock.Anything)
	})

	t.Run("Finalize Fails", func(t *testing.T) {
		payer.On("Payout", mock.Anything, day, mock.Anything, mock.MatchedBy(func(w []models.Winner) bool {
			return len(w) == 1
		})).Return(&models.PrizeDistributionRecord{GameDay: day}, nil).Times(3)
		payer.On("FinalizePayouts", mock.Anything, day).Return(nil, pool.ErrPayoutFailed).Once()

		_, err := s.PayWinners(ctx, day)
		assert.ErrorIs(t, err, pool.ErrPayoutFailed)
	})
}
