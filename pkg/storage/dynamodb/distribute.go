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

// CommitDistribution replaces the pool with its distributed state and writes one audit
// entry per tier. The put only lands if no contribution or other distributor touched
// the pool since it was read at expectedVersion.
func (s *Store) CommitDistribution(ctx context.Context, pool *models.DailyPrizePool, expectedVersion int64, audit []models.PoolTransaction) error {
	poolAV, err := attributevalue.MarshalMap(pool)
	if err != nil {
		return fmt.Errorf("failed to marshal distributed pool: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Pools),
				Item:                poolAV,
				ConditionExpression: aws.String("version = :version AND pools_distributed = :false"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
					":false":   &types.AttributeValueMemberBOOL{Value: false},
				},
			},
		},
	}
	for _, entry := range audit {
		entryAV, err := attributevalue.MarshalMap(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal distribution audit: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(s.Tables.PoolTransactions),
				Item:      entryAV,
			},
		})
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if mapped := translateTransactionErr(err, conditionErr{item: 0, err: storage.ErrConcurrencyConflict}); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to execute distribution transaction: %w", err)
	}
	return nil
}
