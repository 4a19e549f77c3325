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

// CommitContribution atomically increments an open pool, records the purchase and writes
// the contribution audit entry. The pool update uses ADD so concurrent purchases never
// need to agree on a version; only the open/closed gate is checked.
func (s *Store) CommitContribution(ctx context.Context, purchase *models.TicketPurchase, audit *models.PoolTransaction) error {
	purchaseAV, err := attributevalue.MarshalMap(purchase)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket purchase: %w", err)
	}
	auditAV, err := attributevalue.MarshalMap(audit)
	if err != nil {
		return fmt.Errorf("failed to marshal contribution audit: %w", err)
	}
	nowAV, err := attributevalue.Marshal(purchase.PurchasedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal purchase time: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Add the ticket price to the open pool.
				Update: &types.Update{
					TableName:           aws.String(s.Tables.Pools),
					Key:                 map[string]types.AttributeValue{"game_day": &types.AttributeValueMemberS{Value: purchase.GameDay}},
					UpdateExpression:    aws.String("SET updated_at = :now ADD total_collected :amount, ticket_count :inc, version :inc"),
					ConditionExpression: aws.String("attribute_exists(game_day) AND pools_distributed = :false"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":now":    nowAV,
						":amount": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", purchase.Amount)},
						":inc":    &types.AttributeValueMemberN{Value: "1"},
						":false":  &types.AttributeValueMemberBOOL{Value: false},
					},
				},
			},
			{
				// Operation 2: Record the purchase, once per ticket.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Purchases),
					Item:                purchaseAV,
					ConditionExpression: aws.String("attribute_not_exists(ticket_id)"),
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
			conditionErr{item: 1, err: storage.ErrDuplicateTicket},
			conditionErr{item: 0, err: storage.ErrPoolClosed},
		); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to execute contribution transaction: %w", err)
	}
	return nil
}
