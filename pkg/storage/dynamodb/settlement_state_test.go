package dynamodb

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
	"github.com/chris/daily-prize-pools/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListTickets(t *testing.T) {
	ticket, err := attributevalue.MarshalMap(models.Ticket{TicketID: "t3", GameDay: "2024-01-01", Numbers: [4]int{1, 2, 3, 4}})
	require.NoError(t, err)

	t.Run("Resumes From Cursor", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			start, ok := in.ExclusiveStartKey["ticket_id"].(*types.AttributeValueMemberS)
			return ok && start.Value == "t2" && aws.ToInt32(in.Limit) == 1
		})).Return(&dynamodb.QueryOutput{
			Items:            []map[string]types.AttributeValue{ticket},
			LastEvaluatedKey: map[string]types.AttributeValue{"game_day": &types.AttributeValueMemberS{Value: "2024-01-01"}, "ticket_id": &types.AttributeValueMemberS{Value: "t3"}},
		}, nil).Once()

		tickets, next, err := store.ListTickets(context.Background(), "2024-01-01", "t2", 1)

		assert.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, [4]int{1, 2, 3, 4}, tickets[0].Numbers)
		assert.Equal(t, "t3", next)
		mockClient.AssertExpectations(t)
	})

	t.Run("Last Page", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return in.ExclusiveStartKey == nil
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{ticket}}, nil).Once()

		_, next, err := store.ListTickets(context.Background(), "2024-01-01", "", 100)

		assert.NoError(t, err)
		assert.Empty(t, next)
		mockClient.AssertExpectations(t)
	})
}

func TestGetDrawResult(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := New(mockClient, testTables)
	mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

	_, err := store.GetDrawResult(context.Background(), "2024-01-01")

	assert.ErrorIs(t, err, storage.ErrDrawNotFound)
	mockClient.AssertExpectations(t)
}

func TestSaveScanCursor(t *testing.T) {
	t.Run("First Save", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			sk, ok := in.Item["sk"].(*types.AttributeValueMemberS)
			return ok && sk.Value == "CURSOR" && aws.ToString(in.ConditionExpression) == "attribute_not_exists(sk)"
		})).Return(&dynamodb.PutItemOutput{}, nil).Once()

		err := store.SaveScanCursor(context.Background(), &models.ScanCursor{GameDay: "2024-01-01", Cursor: "t9", Version: 1}, 0)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			return aws.ToString(in.ConditionExpression) == "version = :version"
		})).Return(nil, &types.ConditionalCheckFailedException{}).Once()

		err := store.SaveScanCursor(context.Background(), &models.ScanCursor{GameDay: "2024-01-01", Version: 4}, 3)

		assert.ErrorIs(t, err, storage.ErrConcurrencyConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Missing Cursor Is Zero", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

		cursor, err := store.GetScanCursor(context.Background(), "2024-01-01")

		assert.NoError(t, err)
		assert.Equal(t, int64(0), cursor.Version)
		assert.Equal(t, "2024-01-01", cursor.GameDay)
		mockClient.AssertExpectations(t)
	})
}

func TestSaveMatches(t *testing.T) {
	matches := make([]models.TicketMatch, 30)
	for i := range matches {
		matches[i] = models.TicketMatch{GameDay: "2024-01-01", TicketID: fmt.Sprintf("t%02d", i), Tier: models.TierThird}
	}

	t.Run("Splits Into Batches", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		mockClient.On("BatchWriteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.BatchWriteItemInput) bool {
			return len(in.RequestItems["settlement_state"]) == 25
		})).Return(&dynamodb.BatchWriteItemOutput{}, nil).Once()
		mockClient.On("BatchWriteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.BatchWriteItemInput) bool {
			return len(in.RequestItems["settlement_state"]) == 5
		})).Return(&dynamodb.BatchWriteItemOutput{}, nil).Once()

		assert.NoError(t, store.SaveMatches(context.Background(), matches))
		mockClient.AssertExpectations(t)
	})

	t.Run("Retries Unprocessed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables)
		leftover := map[string][]types.WriteRequest{"settlement_state": {{PutRequest: &types.PutRequest{}}}}
		mockClient.On("BatchWriteItem", mock.Anything, mock.Anything).Return(&dynamodb.BatchWriteItemOutput{UnprocessedItems: leftover}, nil).Once()
		mockClient.On("BatchWriteItem", mock.Anything, mock.Anything).Return(&dynamodb.BatchWriteItemOutput{}, nil).Once()

		assert.NoError(t, store.SaveMatches(context.Background(), matches[:3]))
		mockClient.AssertExpectations(t)
	})
}

func TestRecordSettlement(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := New(mockClient, testTables)
	mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{}).Once()

	err := store.RecordSettlement(context.Background(), &models.Settlement{UserID: "u1", TicketID: "t1", Amount: 40})

	assert.ErrorIs(t, err, storage.ErrAlreadySettled)
	mockClient.AssertExpectations(t)
}
