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

// RecordSettlement stores a settlement once per user and ticket.
func (s *Store) RecordSettlement(ctx context.Context, settlement *models.Settlement) error {
	item, err := attributevalue.MarshalMap(settlement)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Settlements),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(ticket_id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return storage.ErrAlreadySettled
		}
		return fmt.Errorf("failed to record settlement: %w", err)
	}
	return nil
}

// ListSettlementsByUser retrieves every settlement of a user.
func (s *Store) ListSettlementsByUser(ctx context.Context, userID string) ([]models.Settlement, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Settlements),
		KeyConditionExpression: aws.String("user_id = :userID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements by user ID: %w", err)
	}

	var settlements []models.Settlement
	if err := attributevalue.UnmarshalListOfMaps(items, &settlements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settlements: %w", err)
	}
	return settlements, nil
}
