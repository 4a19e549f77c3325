// Package pool implements the daily prize pool lifecycle: accumulating ticket revenue,
// splitting the pool once per day with carried-forward prizes, and paying tiers out to
// their winners.
package pool

import (
	"fmt"
	"time"

	"github.com/chris/daily-prize-pools/pkg/gameday"
	"github.com/chris/daily-prize-pools/pkg/metrics"
	"github.com/chris/daily-prize-pools/pkg/storage"
	"github.com/rs/zerolog"
)

// Config controls the engine. It replaces any process-wide settings.
type Config struct {
	Split Split
	// CarryWindowDays bounds how far back carry-forward looks for the previous pool.
	CarryWindowDays int
	// MaxAttempts is the number of times a conflicting write is tried before giving up.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Split:           DefaultSplit,
		CarryWindowDays: 30,
		MaxAttempts:     3,
		BaseDelay:       50 * time.Millisecond,
		MaxDelay:        2 * time.Second,
	}
}

func (c Config) validate() error {
	if err := c.Split.Validate(); err != nil {
		return err
	}
	if c.CarryWindowDays < 1 {
		return fmt.Errorf("%w: carry window must be at least one day", ErrValidation)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1", ErrValidation)
	}
	if c.BaseDelay < 0 || c.MaxDelay < c.BaseDelay {
		return fmt.Errorf("%w: invalid retry delays %s..%s", ErrValidation, c.BaseDelay, c.MaxDelay)
	}
	return nil
}

// Engine runs every pool mutation as one atomic store call inside a retry loop.
type Engine struct {
	store   storage.EngineStore
	cfg     Config
	logger  zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	// days closes ticket sales for a game day once its draw time has passed. Nil leaves
	// sales open until distribution.
	days *gameday.Clock
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the collectors the engine reports to.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithGameDayClock rejects contributions to game days whose draw has already passed.
func WithGameDayClock(c *gameday.Clock) Option {
	return func(e *Engine) { e.days = c }
}

// New creates an Engine.
func New(store storage.EngineStore, cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		store:  store,
		cfg:    cfg,
		logger: zerolog.Nop(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
