package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/daily-prize-pools/pkg/models"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

// ListTickets pages through the ticket ledger of a day in ticket id order. The cursor is
// the id of the last ticket of the previous page.
func (s *Store) ListTickets(ctx context.Context, gameDay string, cursor string, limit int32) ([]models.Ticket, string, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Tickets),
		KeyConditionExpression: aws.String("game_day = :day"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":day": &types.AttributeValueMemberS{Value: gameDay},
		},
		Limit: aws.Int32(limit),
	}
	if cursor != "" {
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"game_day":  &types.AttributeValueMemberS{Value: gameDay},
			"ticket_id": &types.AttributeValueMemberS{Value: cursor},
		}
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query tickets: %w", err)
	}

	var tickets []models.Ticket
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &tickets); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal tickets: %w", err)
	}

	next := ""
	if last, ok := result.LastEvaluatedKey["ticket_id"].(*types.AttributeValueMemberS); ok {
		next = last.Value
	}
	return tickets, next, nil
}

// GetDrawResult reads the draw oracle's published result for a day.
func (s *Store) GetDrawResult(ctx context.Context, gameDay string) (*models.DrawResult, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Draws),
		Key:       map[string]types.AttributeValue{"game_day": &types.AttributeValueMemberS{Value: gameDay}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get draw result from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrDrawNotFound
	}

	var draw models.DrawResult
	if err := attributevalue.UnmarshalMap(result.Item, &draw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draw result: %w", err)
	}
	return &draw, nil
}
