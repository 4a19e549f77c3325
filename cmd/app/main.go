package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/chris/daily-prize-pools/pkg/bootstrap"
	"github.com/chris/daily-prize-pools/pkg/config"
	"github.com/chris/daily-prize-pools/pkg/handlers"
	"github.com/chris/daily-prize-pools/pkg/logging"
	"github.com/chris/daily-prize-pools/pkg/mapping"
	"github.com/chris/daily-prize-pools/pkg/metrics"
	"github.com/chris/daily-prize-pools/pkg/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogConsole)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app, err := bootstrap.New(ctx, cfg, logger, metrics.New(reg))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise service")
	}
	defer app.Close()

	// Settlement goes through SQS when a queue is configured and runs in-process otherwise.
	var sched scheduler.Scheduler
	if cfg.QueueURL != "" {
		sqsScheduler, err := app.NewSQSScheduler(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create settlement queue")
		}
		sched = sqsScheduler
	} else {
		worker := app.SettlementWorker(nil)
		local := scheduler.NewLocalScheduler(worker.Handle, logger)
		worker.Scheduler = local
		defer local.Close()
		sched = local
	}

	if cfg.LocalCron {
		c := cron.New(cron.WithLocation(app.Clock.Location()))
		draw := app.DrawJob(sched)
		if _, err := c.AddFunc(cfg.DrawSchedule, func() {
			if err := draw.Run(ctx, time.Now()); err != nil {
				logger.Error().Err(err).Msg("draw job failed")
			}
		}); err != nil {
			logger.Fatal().Err(err).Msg("invalid draw schedule")
		}
		reconciler := app.Reconciler(sched)
		if _, err := c.AddFunc("@hourly", func() {
			if _, err := reconciler.Run(ctx, time.Now()); err != nil {
				logger.Error().Err(err).Msg("reconciliation failed")
			}
		}); err != nil {
			logger.Fatal().Err(err).Msg("invalid reconciliation schedule")
		}
		c.Start()
		defer c.Stop()
		logger.Info().Str("schedule", cfg.DrawSchedule).Str("timezone", cfg.DrawTimezone).Msg("local draw cron started")
	}

	handler := handlers.NewApiHandler(app.Engine, sched, mapping.New(cfg.TokenDecimals))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handlers.NewRouter(handler, logger, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	logger.Info().Str("port", cfg.HTTPPort).Str("backend", cfg.Backend).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
	logger.Info().Msg("server stopped")
}
