package dynamodb

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/daily-prize-pools/pkg/storage"
)

const (
	reasonConditionalCheckFailed = "ConditionalCheckFailed"
	reasonTransactionConflict    = "TransactionConflict"
)

// conditionErr maps a failed condition on the item at index item of a transaction.
type conditionErr struct {
	item int
	err  error
}

// translateTransactionErr turns a cancelled TransactWriteItems call into a storage
// sentinel. Conditions are checked in the order given, so callers list the most specific
// failure first. It returns nil when err does not describe a known cancellation.
func translateTransactionErr(err error, conditions ...conditionErr) error {
	var conflict *types.TransactionConflictException
	if errors.As(err, &conflict) {
		return storage.ErrConcurrencyConflict
	}

	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return nil
	}

	reasons := canceled.CancellationReasons
	for _, c := range conditions {
		if c.item < len(reasons) && aws.ToString(reasons[c.item].Code) == reasonConditionalCheckFailed {
			return c.err
		}
	}
	for _, r := range reasons {
		switch aws.ToString(r.Code) {
		case reasonTransactionConflict, reasonConditionalCheckFailed:
			return storage.ErrConcurrencyConflict
		}
	}
	return nil
}

func isConditionFailed(err error) bool {
	var condCheckFailed *types.ConditionalCheckFailedException
	return errors.As(err, &condCheckFailed)
}
