package scheduler

import (
	"context"
	"time"

	"github.com/chris/daily-prize-pools/pkg/models"
)

// Scheduler defines the interface for a component that schedules the settlement of a game day.
type Scheduler interface {
	// ScheduleSettlement enqueues a settlement job, visible to workers after delay.
	ScheduleSettlement(ctx context.Context, job models.SettlementJob, delay time.Duration) error
}
