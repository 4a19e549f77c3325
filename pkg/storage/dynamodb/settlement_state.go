package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// The settlement state table holds one cursor item and one item per winning ticket for
// each day, told apart by the sort key.
const (
	cursorSortKey    = "CURSOR"
	matchSortKeyBase = "MATCH#"
	// maxBatchWrite is DynamoDB's per-call limit for BatchWriteItem.
	maxBatchWrite       = 25
	maxUnprocessedTries = 5
)

func matchSortKey(tier models.Tier, ticketID string) string {
	return matchSortKeyBase + string(tier) + "#" + ticketID
}

// GetScanCursor reads the scan cursor of a day, or a zero cursor if the scan never ran.
func (s *Store) GetScanCursor(ctx context.Context, gameDay string) (*models.ScanCursor, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.SettlementState),
		Key: map[string]types.AttributeValue{
			"game_day": &types.AttributeValueMemberS{Value: gameDay},
			"sk":       &types.AttributeValueMemberS{Value: cursorSortKey},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get scan cursor from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return &models.ScanCursor{GameDay: gameDay}, nil
	}

	var cursor models.ScanCursor
	if err := attributevalue.UnmarshalMap(result.Item, &cursor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scan cursor: %w", err)
	}
	return &cursor, nil
}

// SaveScanCursor writes the cursor if nobody advanced it past expectedVersion.
func (s *Store) SaveScanCursor(ctx context.Context, cursor *models.ScanCursor, expectedVersion int64) error {
	item, err := attributevalue.MarshalMap(cursor)
	if err != nil {
		return fmt.Errorf("failed to marshal scan cursor: %w", err)
	}
	item["sk"] = &types.AttributeValueMemberS{Value: cursorSortKey}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.SettlementState),
		Item:      item,
	}
	if expectedVersion == 0 {
		input.ConditionExpression = aws.String("attribute_not_exists(sk)")
	} else {
		input.ConditionExpression = aws.String("version = :version")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
		}
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		if isConditionFailed(err) {
			return storage.ErrConcurrencyConflict
		}
		return fmt.Errorf("failed to save scan cursor: %w", err)
	}
	return nil
}

// SaveMatches writes matches in batches. Matches are keyed by tier and ticket, so
// writing one again overwrites it with the same content.
func (s *Store) SaveMatches(ctx context.Context, matches []models.TicketMatch) error {
	for start := 0; start < len(matches); start += maxBatchWrite {
		end := start + maxBatchWrite
		if end > len(matches) {
			end = len(matches)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, m := range matches[start:end] {
			item, err := attributevalue.MarshalMap(m)
			if err != nil {
				return fmt.Errorf("failed to marshal ticket match: %w", err)
			}
			item["sk"] = &types.AttributeValueMemberS{Value: matchSortKey(m.Tier, m.TicketID)}
			requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
		}

		if err := s.batchWrite(ctx, map[string][]types.WriteRequest{s.Tables.SettlementState: requests}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) batchWrite(ctx context.Context, pending map[string][]types.WriteRequest) error {
	backoff := 50 * time.Millisecond
	for try := 0; try < maxUnprocessedTries; try++ {
		out, err := s.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			return fmt.Errorf("failed to batch write ticket matches: %w", err)
		}
		if len(out.UnprocessedItems) == 0 {
			return nil
		}
		pending = out.UnprocessedItems

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("ticket matches still unprocessed after %d attempts: %w", maxUnprocessedTries, storage.ErrConcurrencyConflict)
}

// ListMatches retrieves the winning tickets of a tier on a day.
func (s *Store) ListMatches(ctx context.Context, gameDay string, tier models.Tier) ([]models.TicketMatch, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.SettlementState),
		KeyConditionExpression: aws.String("game_day = :day AND begins_with(sk, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":day":    &types.AttributeValueMemberS{Value: gameDay},
			":prefix": &types.AttributeValueMemberS{Value: matchSortKeyBase + string(tier) + "#"},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket matches: %w", err)
	}

	var matches []models.TicketMatch
	if err := attributevalue.UnmarshalListOfMaps(items, &matches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket matches: %w", err)
	}
	return matches, nil
}
