package dynamodb

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
	"github.com/chris/daily-prize-pools/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCommitDistribution(t *testing.T) {
	now := time.Now().UTC()
	pool := &models.DailyPrizePool{
		GameDay:          "2024-01-01",
		TotalCollected:   100,
		PoolsDistributed: true,
		TierPools:        map[models.Tier]int64{models.TierFirst: 80, models.TierSecond: 10, models.TierThird: 5, models.TierDevelopment: 5},
		Version:          5,
		DistributedAt:    &now,
	}
	audit := []models.PoolTransaction{
		{ID: "distribution#first", GameDay: "2024-01-01", Tier: models.TierFirst, Amount: 80},
		{ID: "distribution#second", GameDay: "2024-01-01", Tier: models.TierSecond, Amount: 10},
		{ID: "distribution#third", GameDay: "2024-01-01", Tier: models.TierThird, Amount: 5},
		{ID: "distribution#development", GameDay: "2024-01-01", Tier: models.TierDevelopment, Amount: 5},
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
			return len(in.TransactItems) == 5 &&
				aws.ToString(in.TransactItems[0].Put.ConditionExpression) == "version = :version AND pools_distributed = :false"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		assert.NoError(t, store.CommitDistribution(context.Background(), pool, 4, audit))
		mockClient.AssertExpectations(t)
	})

	t.Run("Version Moved", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(nil, canceled("ConditionalCheckFailed", "None", "None", "None", "None")).Once()

		assert.ErrorIs(t, store.CommitDistribution(context.Background(), pool, 4, audit), storage.ErrConcurrencyConflict)
		mockClient.AssertExpectations(t)
	})
}

func TestCommitPayout(t *testing.T) {
	record := &models.PrizeDistributionRecord{
		GameDay:            "2024-01-01",
		Tier:               models.TierFirst,
		TotalWinners:       1,
		TotalPrizePoolUsed: 80,
		PerWinnerAmount:    80,
		Winners:            []models.WinnerAward{{UserID: "u3", TicketID: "ticket#3", AmountAwarded: 80}},
		CreatedAt:          time.Now().UTC(),
	}
	audit := &models.PoolTransaction{ID: "payout#first", GameDay: "2024-01-01", Type: models.PoolTxPayout, Tier: models.TierFirst, Amount: 80}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
			update := in.TransactItems[1].Update
			return len(in.TransactItems) == 3 &&
				aws.ToString(in.TransactItems[0].Put.TableName) == "distributions" &&
				update.ExpressionAttributeNames["#tier"] == "first"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		assert.NoError(t, store.CommitPayout(context.Background(), record, 6, audit))
		mockClient.AssertExpectations(t)
	})

	t.Run("Record Exists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(nil, canceled("ConditionalCheckFailed", "ConditionalCheckFailed", "None")).Once()

		assert.ErrorIs(t, store.CommitPayout(context.Background(), record, 6, audit), storage.ErrDistributionExists)
		mockClient.AssertExpectations(t)
	})

	t.Run("Pool Changed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(nil, canceled("None", "ConditionalCheckFailed", "None")).Once()

		assert.ErrorIs(t, store.CommitPayout(context.Background(), record, 6, audit), storage.ErrConcurrencyConflict)
		mockClient.AssertExpectations(t)
	})
}
