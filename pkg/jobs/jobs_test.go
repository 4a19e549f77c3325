package jobs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/jobs/mocks"
	"github.com/chris/daily-prize-pools/pkg/models"
	scheduler_mocks "github.com/chris/daily-prize-pools/pkg/scheduler/mocks"
	"github.com/chris/daily-prize-pools/pkg/settlement"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

func newClock(t *testing.T) *gameday.Clock {
	t.Helper()
	clock, err := gameday.NewClock("0 0 * * *", "UTC", 5*time.Minute)
	require.NoError(t, err)
	return clock
}

// Fired just after midnight, closing 2024-01-01.
var firedAt = time.Date(2024, 1, 2, 0, 0, 30, 0, time.UTC)

func TestDrawJob(t *testing.T) {
	ctx := context.Background()
	first := models.SettlementJob{GameDay: "2024-01-01", Attempt: 1}

	t.Run("Success", func(t *testing.T) {
		pools := mocks.NewDistributor(t)
		sched := scheduler_mocks.NewScheduler(t)
		pools.On("Distribute", mock.Anything, "2024-01-01").Return(&models.DailyPrizePool{GameDay: "2024-01-01", PoolsDistributed: true}, nil)
		sched.On("ScheduleSettlement", mock.Anything, first, time.Duration(0)).Return(nil)

		job := &DrawJob{Clock: newClock(t), Pools: pools, Scheduler: sched, Logger: zerolog.Nop()}
		assert.NoError(t, job.Run(ctx, firedAt))
	})

	t.Run("No Sales", func(t *testing.T) {
		pools := mocks.NewDistributor(t)
		sched := scheduler_mocks.NewScheduler(t)
		pools.On("Distribute", mock.Anything, "2024-01-01").Return(nil, fmt.Errorf("read: %w", storage.ErrPoolNotFound))

		job := &DrawJob{Clock: newClock(t), Pools: pools, Scheduler: sched, Logger: zerolog.Nop()}
		assert.NoError(t, job.Run(ctx, firedAt))
		sched.AssertNotCalled(t, "ScheduleSettlement", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Distribute Fails", func(t *testing.T) {
		pools := mocks.NewDistributor(t)
		sched := scheduler_mocks.NewScheduler(t)
		failure := errors.New("throttled")
		pools.On("Distribute", mock.Anything, "2024-01-01").Return(nil, failure)

		job := &DrawJob{Clock: newClock(t), Pools: pools, Scheduler: sched, Logger: zerolog.Nop()}
		assert.ErrorIs(t, job.Run(ctx, firedAt), failure)
	})

	t.Run("Enqueue Fails", func(t *testing.T) {
		pools := mocks.NewDistributor(t)
		sched := scheduler_mocks.NewScheduler(t)
		failure := errors.New("queue down")
		pools.On("Distribute", mock.Anything, "2024-01-01").Return(&models.DailyPrizePool{GameDay: "2024-01-01"}, nil)
		sched.On("ScheduleSettlement", mock.Anything, first, time.Duration(0)).Return(failure)

		job := &DrawJob{Clock: newClock(t), Pools: pools, Scheduler: sched, Logger: zerolog.Nop()}
		assert.ErrorIs(t, job.Run(ctx, firedAt), failure)
	})
}

func TestSettlementWorker(t *testing.T) {
	ctx := context.Background()
	job := models.SettlementJob{GameDay: "2024-01-01", Attempt: 2}
	next := models.SettlementJob{GameDay: "2024-01-01", Attempt: 3}

	newWorker := func(s DaySettler, sched *scheduler_mocks.Scheduler) *SettlementWorker {
		return &SettlementWorker{Settler: s, Scheduler: sched, RetryDelay: 10 * time.Minute, MaxAttempts: 3, Logger: zerolog.Nop()}
	}

	t.Run("Settled", func(t *testing.T) {
		settler := mocks.NewDaySettler(t)
		settler.On("Settle", mock.Anything, "2024-01-01").Return(&settlement.Summary{GameDay: "2024-01-01"}, nil)

		assert.NoError(t, newWorker(settler, scheduler_mocks.NewScheduler(t)).Handle(ctx, job))
	})

	t.Run("Draw Pending", func(t *testing.T) {
		settler := mocks.NewDaySettler(t)
		sched := scheduler_mocks.NewScheduler(t)
		settler.On("Settle", mock.Anything, "2024-01-01").Return(nil, settlement.ErrDrawNotExecuted)
		sched.On("ScheduleSettlement", mock.Anything, next, 10*time.Minute).Return(nil)

		assert.NoError(t, newWorker(settler, sched).Handle(ctx, job))
	})

	t.Run("Deadline Reached", func(t *testing.T) {
		settler := mocks.NewDaySettler(t)
		sched := scheduler_mocks.NewScheduler(t)
		settler.On("Settle", mock.Anything, "2024-01-01").Return(nil, fmt.Errorf("wait: %w", context.DeadlineExceeded))
		sched.On("ScheduleSettlement", mock.Anything, next, 10*time.Minute).Return(nil)

		assert.NoError(t, newWorker(settler, sched).Handle(ctx, job))
	})

	t.Run("Attempts Exhausted", func(t *testing.T) {
		settler := mocks.NewDaySettler(t)
		settler.On("Settle", mock.Anything, "2024-01-01").Return(nil, settlement.ErrDrawNotExecuted)

		err := newWorker(settler, scheduler_mocks.NewScheduler(t)).Handle(ctx, next)
		assert.ErrorIs(t, err, ErrAttemptsExhausted)
		assert.ErrorIs(t, err, settlement.ErrDrawNotExecuted)
	})

	t.Run("Re-enqueue Fails", func(t *testing.T) {
		settler := mocks.NewDaySettler(t)
		sched := scheduler_mocks.NewScheduler(t)
		failure := errors.New("queue down")
		settler.On("Settle", mock.Anything, "2024-01-01").Return(nil, settlement.ErrDrawNotExecuted)
		sched.On("ScheduleSettlement", mock.Anything, next, 10*time.Minute).Return(failure)

		assert.ErrorIs(t, newWorker(settler, sched).Handle(ctx, job), failure)
	})

	t.Run("Other Failure", func(t *testing.T) {
		settler := mocks.NewDaySettler(t)
		failure := errors.New("boom")
		settler.On("Settle", mock.Anything, "2024-01-01").Return(nil, failure)

		assert.ErrorIs(t, newWorker(settler, scheduler_mocks.NewScheduler(t)).Handle(ctx, job), failure)
	})
}

func TestReconciler(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	t.Run("Nothing To Do", func(t *testing.T) {
		pools := mocks.NewDistributor(t)
		pools.On("ListUnsettledPools", mock.Anything, "2024-01-05").Return(nil, nil)

		r := &Reconciler{Clock: newClock(t), Pools: pools, Scheduler: scheduler_mocks.NewScheduler(t), Logger: zerolog.Nop()}
		queued, err := r.Run(ctx, now)
		require.NoError(t, err)
		assert.Zero(t, queued)
	})

	t.Run("Stranded And Unfinalized", func(t *testing.T) {
		pools := mocks.NewDistributor(t)
		sched := scheduler_mocks.NewScheduler(t)
		pools.On("ListUnsettledPools", mock.Anything, "2024-01-05").Return([]models.DailyPrizePool{
			{GameDay: "2024-01-02"},
			{GameDay: "2024-01-03", PoolsDistributed: true},
			{GameDay: "2024-01-04"},
		}, nil)
		pools.On("Distribute", mock.Anything, "2024-01-02").Return(&models.DailyPrizePool{GameDay: "2024-01-02", PoolsDistributed: true}, nil)
		pools.On("Distribute", mock.Anything, "2024-01-04").Return(nil, errors.New("prior day not settled"))
		sched.On("ScheduleSettlement", mock.Anything, models.SettlementJob{GameDay: "2024-01-02", Attempt: 1}, time.Duration(0)).Return(nil)
		sched.On("ScheduleSettlement", mock.Anything, models.SettlementJob{GameDay: "2024-01-03", Attempt: 1}, time.Duration(0)).Return(errors.New("queue down"))

		r := &Reconciler{Clock: newClock(t), Pools: pools, Scheduler: sched, Logger: zerolog.Nop()}
		queued, err := r.Run(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, queued)
	})

	t.Run("List Fails", func(t *testing.T) {
		pools := mocks.NewDistributor(t)
		failure := errors.New("scan failed")
		pools.On("ListUnsettledPools", mock.Anything, "2024-01-05").Return(nil, failure)

		r := &Reconciler{Clock: newClock(t), Pools: pools, Scheduler: scheduler_mocks.NewScheduler(t), Logger: zerolog.Nop()}
		_, err := r.Run(ctx, now)
		assert.ErrorIs(t, err, failure)
	})
}
