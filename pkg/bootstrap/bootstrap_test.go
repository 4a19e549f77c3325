package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/daily-prize-pools/pkg/config"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/pool"
	"github.com/chris/daily-prize-pools/pkg/storage"
	"github.com/chris/daily-prize-pools/pkg/storage/memory"
)

type recordingScheduler struct {
	mu   sync.Mutex
	jobs []models.SettlementJob
}

func (s *recordingScheduler) ScheduleSettlement(ctx context.Context, job models.SettlementJob, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
	return nil
}

func newMemoryApp(t *testing.T, opts ...pool.Option) *App {
	t.Helper()
	cfg, err := config.FromEnv(func(key string) string {
		if key == "STORAGE_BACKEND" {
			return config.BackendMemory
		}
		return ""
	})
	require.NoError(t, err)
	cfg.Pool.BaseDelay = 0
	cfg.Pool.MaxDelay = 0

	app, err := New(context.Background(), cfg, zerolog.Nop(), nil, opts...)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func TestNewUnknownBackend(t *testing.T) {
	cfg := &config.Config{Backend: "mongo", Pool: pool.DefaultConfig()}
	_, err := New(context.Background(), cfg, zerolog.Nop(), nil)
	assert.Error(t, err)
}

func TestDayLifecycle(t *testing.T) {
	ctx := context.Background()
	// Bought during the 2024-01-01 game day.
	boughtAt := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	app := newMemoryApp(t, pool.WithClock(func() time.Time { return boughtAt }))
	store := app.Store.(*memory.Store)
	sched := &recordingScheduler{}

	day := app.Clock.CurrentGameDay(boughtAt)
	require.Equal(t, "2024-01-01", day)

	numbers := [][4]int{{1, 2, 3, 4}, {9, 9, 9, 9}, {4, 3, 2, 1}}
	for i, n := range numbers {
		ticket := models.Ticket{
			TicketID:  fmt.Sprintf("t%d", i),
			OwnerID:   fmt.Sprintf("u%d", i),
			WalletRef: fmt.Sprintf("w%d", i),
			GameDay:   day,
			Numbers:   n,
		}
		store.PutTicket(ticket)
		ok, err := app.Engine.Contribute(ctx, pool.ContributionRequest{TicketID: ticket.TicketID, UserID: ticket.OwnerID, GameDay: day, Amount: 100})
		require.NoError(t, err)
		require.True(t, ok)
	}

	draw := app.DrawJob(sched)
	require.NoError(t, draw.Run(ctx, time.Date(2024, 1, 2, 0, 0, 30, 0, time.UTC)))
	require.Equal(t, []models.SettlementJob{{GameDay: day, Attempt: 1}}, sched.jobs)

	worker := app.SettlementWorker(sched)

	// The oracle has not published yet: the job comes back later.
	require.NoError(t, worker.Handle(ctx, sched.jobs[0]))
	require.Len(t, sched.jobs, 2)
	assert.Equal(t, 2, sched.jobs[1].Attempt)

	store.PutDrawResult(models.DrawResult{GameDay: day, WinningNumbers: [4]int{1, 2, 3, 4}, Executed: true})
	require.NoError(t, worker.Handle(ctx, sched.jobs[1]))

	p, err := app.Engine.Snapshot(ctx, day)
	require.NoError(t, err)
	assert.True(t, p.PayoutsFinalized)

	records, err := app.Engine.DistributionHistory(ctx, day)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.TierFirst, records[0].Tier)
	assert.Equal(t, int64(240), records[0].PerWinnerAmount)
	assert.Equal(t, models.TierSecond, records[1].Tier)
	assert.Equal(t, int64(30), records[1].PerWinnerAmount)

	// Nothing is left for the reconciler.
	queued, err := app.Reconciler(sched).Run(ctx, time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, queued)
}

func TestSalesCloseAtDraw(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	app := newMemoryApp(t, pool.WithClock(func() time.Time { return now }))

	ok, err := app.Engine.Contribute(ctx, pool.ContributionRequest{TicketID: "late", UserID: "u1", GameDay: "2024-01-01", Amount: 100})
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = app.Engine.Snapshot(ctx, "2024-01-01")
	assert.ErrorIs(t, err, storage.ErrPoolNotFound)

	ok, err = app.Engine.Contribute(ctx, pool.ContributionRequest{TicketID: "on-time", UserID: "u1", GameDay: "2024-01-02", Amount: 100})
	require.NoError(t, err)
	assert.True(t, ok)
}
