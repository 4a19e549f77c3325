package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// GetPool retrieves a pool with a strongly consistent read, so the version it carries
// can guard the next write.
func (s *Store) GetPool(ctx context.Context, gameDay string) (*models.DailyPrizePool, error) {
	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.Tables.Pools),
		Key:            map[string]types.AttributeValue{"game_day": &types.AttributeValueMemberS{Value: gameDay}},
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrPoolNotFound
	}

	var pool models.DailyPrizePool
	if err := attributevalue.UnmarshalMap(result.Item, &pool); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pool: %w", err)
	}
	return &pool, nil
}

// CreatePool writes an empty pool unless the day already has one.
func (s *Store) CreatePool(ctx context.Context, pool *models.DailyPrizePool) error {
	item, err := attributevalue.MarshalMap(pool)
	if err != nil {
		return fmt.Errorf("failed to marshal pool: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Pools),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(game_day)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return storage.ErrPoolExists
		}
		return fmt.Errorf("failed to create pool in DynamoDB: %w", err)
	}
	return nil
}

// GetTicketPurchase retrieves the purchase recorded for a ticket.
func (s *Store) GetTicketPurchase(ctx context.Context, ticketID string) (*models.TicketPurchase, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.Tables.Purchases),
		Key:            map[string]types.AttributeValue{"ticket_id": &types.AttributeValueMemberS{Value: ticketID}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket purchase from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrPurchaseNotFound
	}

	var purchase models.TicketPurchase
	if err := attributevalue.UnmarshalMap(result.Item, &purchase); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket purchase: %w", err)
	}
	return &purchase, nil
}

// ListPoolTransactions queries the audit trail of a day.
func (s *Store) ListPoolTransactions(ctx context.Context, gameDay string) ([]models.PoolTransaction, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.PoolTransactions),
		KeyConditionExpression: aws.String("game_day = :day"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":day": &types.AttributeValueMemberS{Value: gameDay},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query pool transactions: %w", err)
	}

	var txs []models.PoolTransaction
	if err := attributevalue.UnmarshalListOfMaps(items, &txs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pool transactions: %w", err)
	}
	return txs, nil
}

// ListUnsettledPools scans for pools whose payouts are still open. The table holds one
// item per day, so a filtered scan stays small.
func (s *Store) ListUnsettledPools(ctx context.Context) ([]models.DailyPrizePool, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.Tables.Pools),
		FilterExpression: aws.String("payouts_finalized = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
		ConsistentRead: aws.Bool(true),
	}

	var pools []models.DailyPrizePool
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan for unsettled pools: %w", err)
		}
		var batch []models.DailyPrizePool
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal unsettled pools: %w", err)
		}
		pools = append(pools, batch...)
		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sort.Slice(pools, func(i, j int) bool { return pools[i].GameDay < pools[j].GameDay })
	return pools, nil
}

// FinalizePool closes the payout window of a distributed pool at the expected version.
func (s *Store) FinalizePool(ctx context.Context, gameDay string, expectedVersion int64, at time.Time) error {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("failed to marshal finalize time: %w", err)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.Tables.Pools),
		Key:                 map[string]types.AttributeValue{"game_day": &types.AttributeValueMemberS{Value: gameDay}},
		UpdateExpression:    aws.String("SET payouts_finalized = :true, finalized_at = :at, updated_at = :at, version = version + :inc"),
		ConditionExpression: aws.String("version = :version AND pools_distributed = :true"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":    &types.AttributeValueMemberBOOL{Value: true},
			":at":      atAV,
			":inc":     &types.AttributeValueMemberN{Value: "1"},
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return storage.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to finalize pool %s: %w", gameDay, err)
	}
	return nil
}

// queryAll follows LastEvaluatedKey until the query is exhausted.
func (s *Store) queryAll(ctx context.Context, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, result.Items...)
		if len(result.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
