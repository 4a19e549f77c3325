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

// CommitPayout writes the distribution record of a tier, flips the tier's reserve flag on
// the pool and records the payout audit entry, all or nothing.
func (s *Store) CommitPayout(ctx context.Context, record *models.PrizeDistributionRecord, expectedVersion int64, audit *models.PoolTransaction) error {
	recordAV, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal distribution record: %w", err)
	}
	auditAV, err := attributevalue.MarshalMap(audit)
	if err != nil {
		return fmt.Errorf("failed to marshal payout audit: %w", err)
	}
	nowAV, err := attributevalue.Marshal(record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal payout time: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the record; its existence is the idempotency guard.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Distributions),
					Item:                recordAV,
					ConditionExpression: aws.String("attribute_not_exists(game_day)"),
				},
			},
			{
				// Operation 2: Release the tier's reserve on the pool.
				Update: &types.Update{
					TableName:           aws.String(s.Tables.Pools),
					Key:                 map[string]types.AttributeValue{"game_day": &types.AttributeValueMemberS{Value: record.GameDay}},
					UpdateExpression:    aws.String("SET reserve_released.#tier = :true, updated_at = :now, version = version + :inc"),
					ConditionExpression: aws.String("version = :version AND pools_distributed = :true AND payouts_finalized = :false"),
					ExpressionAttributeNames: map[string]string{
						"#tier": string(record.Tier),
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":true":    &types.AttributeValueMemberBOOL{Value: true},
						":false":   &types.AttributeValueMemberBOOL{Value: false},
						":now":     nowAV,
						":inc":     &types.AttributeValueMemberN{Value: "1"},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
					},
				},
			},
			{
				// Operation 3: Audit entry.
				Put: &types.Put{
					TableName: aws.String(s.Tables.PoolTransactions),
					Item:      auditAV,
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if mapped := translateTransactionErr(err,
			conditionErr{item: 0, err: storage.ErrDistributionExists},
			conditionErr{item: 1, err: storage.ErrConcurrencyConflict},
		); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to execute payout transaction: %w", err)
	}
	return nil
}
