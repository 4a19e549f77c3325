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

// GetDistribution retrieves the payout record of a tier on a day.
func (s *Store) GetDistribution(ctx context.Context, gameDay string, tier models.Tier) (*models.PrizeDistributionRecord, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Distributions),
		Key: map[string]types.AttributeValue{
			"game_day": &types.AttributeValueMemberS{Value: gameDay},
			"tier":     &types.AttributeValueMemberS{Value: string(tier)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get distribution from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, storage.ErrDistributionNotFound
	}

	var record models.PrizeDistributionRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal distribution: %w", err)
	}
	return &record, nil
}

// ListDistributions retrieves every payout record of a day.
func (s *Store) ListDistributions(ctx context.Context, gameDay string) ([]models.PrizeDistributionRecord, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Distributions),
		KeyConditionExpression: aws.String("game_day = :day"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":day": &types.AttributeValueMemberS{Value: gameDay},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query distributions: %w", err)
	}

	var records []models.PrizeDistributionRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal distributions: %w", err)
	}
	return records, nil
}
