package main

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chris/daily-prize-pools/pkg/bootstrap"
	"github.com/chris/daily-prize-pools/pkg/config"
	"github.com/chris/daily-prize-pools/pkg/jobs"
	"github.com/chris/daily-prize-pools/pkg/logging"
	"github.com/chris/daily-prize-pools/pkg/models"
)

var (
	worker *jobs.SettlementWorker
	logger zerolog.Logger
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger = logging.New(cfg.LogLevel, false)

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, logger, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise service")
	}
	sched, err := app.NewSQSScheduler(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create settlement queue")
	}
	worker = app.SettlementWorker(sched)
}

// HandleRequest settles the game days named by the SQS messages. Messages that fail are
// reported back so SQS redelivers only those.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, message := range sqsEvent.Records {
		var job models.SettlementJob
		if err := json.Unmarshal([]byte(message.Body), &job); err != nil {
			// A malformed message never gets better; let it go to the DLQ.
			logger.Error().Err(err).Str("message_id", message.MessageId).Msg("failed to unmarshal settlement job")
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
			continue
		}

		if err := worker.Handle(ctx, job); err != nil {
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
		}
	}
	return resp, nil
}

func main() {
	lambda.Start(HandleRequest)
}
