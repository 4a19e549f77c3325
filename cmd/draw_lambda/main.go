package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/chris/daily-prize-pools/pkg/bootstrap"
	"github.com/chris/daily-prize-pools/pkg/config"
	"github.com/chris/daily-prize-pools/pkg/jobs"
	"github.com/chris/daily-prize-pools/pkg/logging"
)

var drawJob *jobs.DrawJob

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := logging.New(cfg.LogLevel, false)

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, logger, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise service")
	}
	sched, err := app.NewSQSScheduler(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create settlement queue")
	}
	drawJob = app.DrawJob(sched)
}

// HandleRequest is triggered by the EventBridge rule that fires on the draw schedule.
func HandleRequest(ctx context.Context, event events.CloudWatchEvent) error {
	firedAt := event.Time
	if firedAt.IsZero() {
		firedAt = time.Now()
	}
	return drawJob.Run(ctx, firedAt)
}

func main() {
	lambda.Start(HandleRequest)
}
