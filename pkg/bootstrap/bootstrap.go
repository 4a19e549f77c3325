// Package bootstrap wires configuration into the stores, engine and queues shared by the
// server and the Lambda functions.
package bootstrap

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"

	"github.com/chris/daily-prize-pools/pkg/config"
	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/jobs"
	"github.com/chris/daily-prize-pools/pkg/metrics"
	"github.com/chris/daily-prize-pools/pkg/pool"
	"github.com/chris/daily-prize-pools/pkg/scheduler"
	"github.com/chris/daily-prize-pools/pkg/settlement"
	"github.com/chris/daily-prize-pools/pkg/storage"
	dydbstore "github.com/chris/daily-prize-pools/pkg/storage/dynamodb"
	"github.com/chris/daily-prize-pools/pkg/storage/memory"
	"github.com/chris/daily-prize-pools/pkg/storage/sqlstore"
)

// App is the wired service.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
	Store   storage.Storage
	Engine  *pool.Engine
	Settler *settlement.Settler
	Clock   *gameday.Clock

	closers []func() error
}

// New opens the configured store and builds the draw clock, engine and settler. Extra
// engine options are applied after the defaults.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics, opts ...pool.Option) (*App, error) {
	app := &App{Config: cfg, Logger: logger, Metrics: m}

	clock, err := gameday.NewClock(cfg.DrawSchedule, cfg.DrawTimezone, cfg.DrawGrace)
	if err != nil {
		return nil, err
	}
	app.Clock = clock

	store, err := app.openStorage(ctx)
	if err != nil {
		return nil, err
	}
	app.Store = store

	engineOpts := append([]pool.Option{
		pool.WithLogger(logger.With().Str("component", "engine").Logger()),
		pool.WithMetrics(m),
		pool.WithGameDayClock(clock),
	}, opts...)
	app.Engine, err = pool.New(store, cfg.Pool, engineOpts...)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	app.Settler, err = settlement.New(store, app.Engine, cfg.Settlement,
		settlement.WithLogger(logger.With().Str("component", "settler").Logger()),
		settlement.WithMetrics(m))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create settler: %w", err)
	}
	return app, nil
}

func (a *App) openStorage(ctx context.Context) (storage.Storage, error) {
	switch a.Config.Backend {
	case config.BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to load SDK config: %w", err)
		}
		return dydbstore.New(dynamodb.NewFromConfig(awsCfg), a.Config.Tables), nil
	case config.BackendPostgres:
		store, err := sqlstore.Open(postgres.Open(a.Config.DatabaseURL))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		if err := store.Migrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return store, nil
	case config.BackendMemory:
		a.Logger.Warn().Msg("using in-memory storage, state is lost on exit")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", a.Config.Backend)
	}
}

// NewSQSScheduler returns the settlement queue named by SQS_QUEUE_URL.
func (a *App) NewSQSScheduler(ctx context.Context) (*scheduler.SQSScheduler, error) {
	if a.Config.QueueURL == "" {
		return nil, fmt.Errorf("SQS_QUEUE_URL environment variable not set")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), a.Config.QueueURL), nil
}

// DrawJob returns the job run when a draw fires.
func (a *App) DrawJob(sched scheduler.Scheduler) *jobs.DrawJob {
	return &jobs.DrawJob{
		Clock:     a.Clock,
		Pools:     a.Engine,
		Scheduler: sched,
		Logger:    a.Logger.With().Str("component", "draw").Logger(),
	}
}

// SettlementWorker returns the consumer of settlement jobs.
func (a *App) SettlementWorker(sched scheduler.Scheduler) *jobs.SettlementWorker {
	return &jobs.SettlementWorker{
		Settler:     a.Settler,
		Scheduler:   sched,
		RetryDelay:  a.Config.SettlementRetryDelay,
		MaxAttempts: a.Config.SettlementMaxAttempts,
		Logger:      a.Logger.With().Str("component", "settlement").Logger(),
	}
}

// Reconciler returns the sweep for days whose settlement was lost.
func (a *App) Reconciler(sched scheduler.Scheduler) *jobs.Reconciler {
	return &jobs.Reconciler{
		Clock:     a.Clock,
		Pools:     a.Engine,
		Scheduler: sched,
		Logger:    a.Logger.With().Str("component", "reconciler").Logger(),
	}
}

// Close releases the store's connections.
func (a *App) Close() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			a.Logger.Warn().Err(err).Msg("failed to close resource")
		}
	}
	a.closers = nil
}
